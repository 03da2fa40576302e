package v1

import (
	"net/http"

	"storeconsole-backend/internal/delivery/http/middleware"
)

type Handlers struct {
	Shipping *ShippingHandler
	Catalog  *CatalogHandler
	Setup    *SetupHandler
	UI       *UIHandler
}

// RegisterRoutes mounts the console API under /api/v1. Every route needs a
// valid token; site routes also need access to the site.
func RegisterRoutes(mux *http.ServeMux, h Handlers, resolve middleware.SiteResolver) {
	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(fn)
	}
	siteAccess := middleware.NewSiteAccessMiddleware(resolve)
	site := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(siteAccess(fn))
	}

	// UI
	mux.Handle("GET /api/v1/ui/selected-site", authed(h.UI.GetSelectedSite))
	mux.Handle("PUT /api/v1/ui/selected-site", authed(h.UI.SelectSite))

	// Shipping zones
	mux.Handle("GET /api/v1/sites/{siteId}/shipping-zones", site(h.Shipping.ListZones))
	mux.Handle("POST /api/v1/sites/{siteId}/shipping-zones/fetch", site(h.Shipping.FetchZones))
	mux.Handle("DELETE /api/v1/sites/{siteId}/shipping-zones/{zoneId}", site(h.Shipping.DeleteZone))
	mux.Handle("GET /api/v1/sites/{siteId}/shipping-zones/{zoneId}/methods", site(h.Shipping.GetZoneMethods))
	mux.Handle("POST /api/v1/sites/{siteId}/shipping-zones/{zoneId}/methods/fetch", site(h.Shipping.FetchZoneMethods))
	mux.Handle("GET /api/v1/sites/{siteId}/shipping-zones/{zoneId}/method-type-options", site(h.Shipping.GetMethodTypeOptions))
	mux.Handle("GET /api/v1/sites/{siteId}/shipping-zone-methods/{methodId}", site(h.Shipping.GetMethod))

	// Zone draft
	mux.Handle("POST /api/v1/sites/{siteId}/zone-draft", site(h.Shipping.OpenDraft))
	mux.Handle("PATCH /api/v1/sites/{siteId}/zone-draft", site(h.Shipping.EditDraft))
	mux.Handle("DELETE /api/v1/sites/{siteId}/zone-draft", site(h.Shipping.CloseDraft))
	mux.Handle("POST /api/v1/sites/{siteId}/zone-draft/save", site(h.Shipping.SaveDraft))

	// Products
	mux.Handle("GET /api/v1/sites/{siteId}/products", site(h.Catalog.ListProducts))
	mux.Handle("POST /api/v1/sites/{siteId}/products/fetch", site(h.Catalog.FetchProducts))
	mux.Handle("GET /api/v1/sites/{siteId}/products/{productId}", site(h.Catalog.GetProduct))

	// Setup choices
	mux.Handle("GET /api/v1/sites/{siteId}/setup-choices", site(h.Setup.GetChoices))
	mux.Handle("POST /api/v1/sites/{siteId}/setup-choices/fetch", site(h.Setup.FetchChoices))
	mux.Handle("PUT /api/v1/sites/{siteId}/setup-choices/{choice}", site(h.Setup.UpdateChoice))
}
