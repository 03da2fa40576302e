package state

import "storeconsole-backend/internal/domain"

// GetProduct returns the stored product, or nil.
func GetProduct(s *State, siteID, productID int64) *domain.Product {
	site := s.site(siteID)
	if site == nil {
		return nil
	}
	return site.Products[productID]
}

func productList(s *State, siteID int64) domain.ProductList {
	ui := s.siteUI(siteID)
	if ui == nil {
		return domain.ProductList{}
	}
	return ui.ProductList
}

func GetProductListCurrentPage(s *State, siteID int64) int {
	return productList(s, siteID).CurrentPage
}

func GetProductListRequestedPage(s *State, siteID int64) int {
	return productList(s, siteID).RequestedPage
}

func GetProductListTotalPages(s *State, siteID int64) int {
	return productList(s, siteID).TotalPages
}

func GetProductListTotalProducts(s *State, siteID int64) int {
	return productList(s, siteID).TotalProducts
}

// IsProductListPageLoading reports whether a page other than the one on
// screen has been requested and not answered yet.
func IsProductListPageLoading(s *State, siteID int64) bool {
	l := productList(s, siteID)
	return l.RequestedPage != 0 && l.RequestedPage != l.CurrentPage
}

// GetProductListProducts joins the current page's ids with the product
// table. Status is JoinUnknown until a page has loaded.
func GetProductListProducts(s *State, siteID int64) Join[domain.Product] {
	l := productList(s, siteID)
	if l.CurrentPage == 0 {
		return Join[domain.Product]{Status: JoinUnknown}
	}
	var table map[int64]*domain.Product
	if site := s.site(siteID); site != nil {
		table = site.Products
	}
	return joinIDs(l.ProductIDs, table)
}

func setupChoicesResource(s *State, siteID int64) domain.Resource[domain.SetupChoices] {
	site := s.site(siteID)
	if site == nil {
		return domain.NotRequested[domain.SetupChoices]()
	}
	return site.SetupChoices
}

// AreSetupChoicesLoaded reports whether the setup choices hold a value.
func AreSetupChoicesLoaded(s *State, siteID int64) bool {
	return setupChoicesResource(s, siteID).IsLoaded()
}

// AreSetupChoicesLoading reports whether the setup choices are being fetched.
func AreSetupChoicesLoading(s *State, siteID int64) bool {
	return setupChoicesResource(s, siteID).IsLoading()
}

func setupChoices(s *State, siteID int64) domain.SetupChoices {
	if siteID <= 0 {
		return domain.SetupChoices{}
	}
	c, _ := setupChoicesResource(s, siteID).Value()
	return c
}

func HasOptedOutOfShippingSetup(s *State, siteID int64) bool {
	return setupChoices(s, siteID).OptedOutOfShippingSetup
}

func HasOptedOutOfTaxSetup(s *State, siteID int64) bool {
	return setupChoices(s, siteID).OptedOutOfTaxesSetup
}

func HasTriedCustomizer(s *State, siteID int64) bool {
	return setupChoices(s, siteID).TriedCustomizer
}

// GetFinishedInitialSetup is false until the merchant finished setup, and
// for every site whose choices are not loaded.
func GetFinishedInitialSetup(s *State, siteID int64) bool {
	return setupChoices(s, siteID).FinishedInitialSetup
}
