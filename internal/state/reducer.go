package state

// Reduce is the root reducer. It never mutates prev; a nil prev is treated
// as the empty state. When no slice changes, prev itself is returned.
func Reduce(prev *State, a Action) *State {
	if prev == nil {
		prev = New()
	}
	if a == nil {
		return prev
	}

	sites, sitesChanged := Keyed(prev.Sites, a, reduceSite)
	ui, uiChanged := reduceUI(prev.UI, a)
	if !sitesChanged && !uiChanged {
		return prev
	}
	return &State{Sites: sites, UI: ui}
}

// Keyed routes a site-scoped action to the entry addressed by its site id.
// reduce receives nil for a site that has no entry yet and returns its input
// pointer when nothing changed. Every other entry keeps its pointer, and the
// map itself is only copied when the addressed entry changed.
func Keyed[S any](items map[int64]*S, a Action, reduce func(*S, Action) *S) (map[int64]*S, bool) {
	scoped, ok := a.(SiteScoped)
	if !ok {
		return items, false
	}
	siteID := scoped.Site()
	if siteID <= 0 {
		return items, false
	}

	prev := items[siteID]
	next := reduce(prev, a)
	if next == prev {
		return items, false
	}

	out := make(map[int64]*S, len(items)+1)
	for k, v := range items {
		out[k] = v
	}
	if next == nil {
		delete(out, siteID)
	} else {
		out[siteID] = next
	}
	return out, true
}

func reduceSite(prev *SiteState, a Action) *SiteState {
	var next SiteState
	if prev != nil {
		next = *prev
	}

	switch act := a.(type) {
	case ShippingZonesRequest, ShippingZonesRequestSuccess, ShippingZonesRequestFailure,
		ShippingZoneUpdateSuccess, ShippingZoneDeleteSuccess:
		zones, methods, changed := reduceShippingZones(next.ShippingZones, next.ShippingZoneMethods, act)
		if !changed {
			return prev
		}
		next.ShippingZones, next.ShippingZoneMethods = zones, methods

	case ShippingZoneMethodsRequest, ShippingZoneMethodsRequestSuccess, ShippingZoneMethodsRequestFailure:
		zones, methods, changed := reduceShippingZoneMethods(next.ShippingZones, next.ShippingZoneMethods, act)
		if !changed {
			return prev
		}
		next.ShippingZones, next.ShippingZoneMethods = zones, methods

	case ProductsRequestSuccess:
		next.Products = upsertProducts(next.Products, act.Products)

	case SetupChoicesRequest, SetupChoicesRequestSuccess, SetupChoicesRequestFailure, SetupChoiceUpdateSuccess:
		choices, changed := reduceSetupChoices(next.SetupChoices, act)
		if !changed {
			return prev
		}
		next.SetupChoices = choices

	default:
		return prev
	}
	return &next
}

func reduceUI(prev UIState, a Action) (UIState, bool) {
	if sel, ok := a.(SiteSelect); ok {
		if sel.SiteID == prev.SelectedSiteID {
			return prev, false
		}
		prev.SelectedSiteID = sel.SiteID
		return prev, true
	}

	sites, changed := Keyed(prev.Sites, a, reduceSiteUI)
	if !changed {
		return prev, false
	}
	prev.Sites = sites
	return prev, true
}

func reduceSiteUI(prev *SiteUIState, a Action) *SiteUIState {
	var next SiteUIState
	if prev != nil {
		next = *prev
	}

	switch a.(type) {
	case ProductsRequest, ProductsRequestSuccess, ProductsRequestFailure:
		next.ProductList = reduceProductList(next.ProductList, a)
	case ShippingZoneAddNew, ShippingZoneOpenForEdit, ShippingZoneEditName, ShippingZoneEditOrder, ShippingZoneEditClose:
		draft, changed := reduceZoneDraft(next.ZoneDraft, a)
		if !changed {
			return prev
		}
		next.ZoneDraft = draft
	default:
		return prev
	}
	return &next
}
