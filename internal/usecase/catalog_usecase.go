package usecase

import (
	"context"
	"net/url"
	"strconv"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
)

const productsPath = "/wc/v3/products"

type CatalogUsecase struct {
	store   Store
	gateway domain.Gateway
	perPage int
}

func NewCatalogUsecase(store Store, gateway domain.Gateway, perPage int) *CatalogUsecase {
	if perPage <= 0 {
		perPage = 10
	}
	return &CatalogUsecase{
		store:   store,
		gateway: gateway,
		perPage: perPage,
	}
}

// FetchProducts loads one page of the product listing. The page on screen
// stays current until the requested one arrives.
func (uc *CatalogUsecase) FetchProducts(ctx context.Context, siteID int64, page int) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	if page < 1 {
		page = 1
	}
	uc.store.Dispatch(state.RequestProducts(siteID, page))

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(uc.perPage))

	resp, err := uc.gateway.Get(detach(ctx), siteID, productsPath, query)
	var products []domain.Product
	if err == nil {
		products, err = decode[[]domain.Product](resp)
	}
	if err != nil {
		te := domain.AsTransportError(err)
		uc.store.Dispatch(state.RequestProductsFailure(siteID, page, te))
		return te
	}

	uc.store.Dispatch(state.RequestProductsSuccess(siteID, page, resp.TotalPages, resp.Total, products))
	return nil
}

// ProductListView is the product listing of one site.
type ProductListView struct {
	SiteID        int64             `json:"siteId"`
	CurrentPage   int               `json:"currentPage"`
	RequestedPage int               `json:"requestedPage"`
	TotalPages    int               `json:"totalPages"`
	TotalProducts int               `json:"totalProducts"`
	Loading       bool              `json:"loading"`
	Complete      bool              `json:"complete"`
	Products      []*domain.Product `json:"products"`
	Missing       []int64           `json:"missingProductIds,omitempty"`
}

func (uc *CatalogUsecase) ProductList(siteID int64) *ProductListView {
	st, _ := uc.store.Snapshot()
	join := state.GetProductListProducts(st, siteID)
	view := &ProductListView{
		SiteID:        siteID,
		CurrentPage:   state.GetProductListCurrentPage(st, siteID),
		RequestedPage: state.GetProductListRequestedPage(st, siteID),
		TotalPages:    state.GetProductListTotalPages(st, siteID),
		TotalProducts: state.GetProductListTotalProducts(st, siteID),
		Loading:       state.IsProductListPageLoading(st, siteID),
		Complete:      join.Status == state.JoinComplete,
		Products:      join.Items,
		Missing:       join.Missing,
	}
	if view.Products == nil {
		view.Products = []*domain.Product{}
	}
	return view
}

func (uc *CatalogUsecase) GetProduct(siteID, productID int64) *domain.Product {
	st, _ := uc.store.Snapshot()
	return state.GetProduct(st, siteID, productID)
}
