package state

import (
	"storeconsole-backend/internal/domain"
)

func upsertProducts(table map[int64]*domain.Product, products []domain.Product) map[int64]*domain.Product {
	out := make(map[int64]*domain.Product, len(table)+len(products))
	for k, v := range table {
		out[k] = v
	}
	for i := range products {
		p := products[i]
		out[p.ID] = &p
	}
	return out
}

// reduceProductList tracks paging. A request only records the page asked
// for; the page on screen is replaced when the response lands.
func reduceProductList(list domain.ProductList, a Action) domain.ProductList {
	switch act := a.(type) {
	case ProductsRequest:
		list.RequestedPage = act.Page
	case ProductsRequestSuccess:
		ids := make([]int64, 0, len(act.Products))
		for _, p := range act.Products {
			ids = append(ids, p.ID)
		}
		list.CurrentPage = act.Page
		list.TotalPages = act.TotalPages
		list.TotalProducts = act.TotalProducts
		list.ProductIDs = ids
	case ProductsRequestFailure:
		if list.RequestedPage == act.Page {
			list.RequestedPage = list.CurrentPage
		}
	}
	return list
}

func reduceSetupChoices(choices domain.Resource[domain.SetupChoices], a Action) (domain.Resource[domain.SetupChoices], bool) {
	switch act := a.(type) {
	case SetupChoicesRequest:
		return choices.StartLoading(), true
	case SetupChoicesRequestSuccess:
		return choices.Succeed(act.Data), true
	case SetupChoicesRequestFailure:
		return choices.Fail(act.Err), true
	case SetupChoiceUpdateSuccess:
		if !choices.IsLoaded() {
			return choices, false
		}
		return choices.Update(func(c domain.SetupChoices) domain.SetupChoices {
			next, _ := c.With(act.Choice, act.Value)
			return next
		}), true
	}
	return choices, false
}

// reduceZoneDraft keeps the zone edit form. Edits without an open draft are
// ignored.
func reduceZoneDraft(draft *domain.ZoneDraft, a Action) (*domain.ZoneDraft, bool) {
	switch act := a.(type) {
	case ShippingZoneAddNew:
		return &domain.ZoneDraft{IsNew: true}, true
	case ShippingZoneOpenForEdit:
		return &domain.ZoneDraft{ZoneID: act.Zone.ID, Name: act.Zone.Name, Order: act.Zone.Order}, true
	case ShippingZoneEditName:
		if draft == nil {
			return draft, false
		}
		next := *draft
		next.Name = act.Name
		return &next, true
	case ShippingZoneEditOrder:
		if draft == nil {
			return draft, false
		}
		next := *draft
		next.Order = act.Order
		return &next, true
	case ShippingZoneEditClose:
		return nil, draft != nil
	}
	return draft, false
}
