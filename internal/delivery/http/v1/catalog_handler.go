package v1

import (
	"net/http"

	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/utils"
)

type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.catalog.ProductList(siteID(r)))
}

func (h *CatalogHandler) FetchProducts(w http.ResponseWriter, r *http.Request) {
	site := siteID(r)
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	if err := h.catalog.FetchProducts(r.Context(), site, page); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.catalog.ProductList(site))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}
	product := h.catalog.GetProduct(siteID(r), productID)
	if product == nil {
		utils.WriteError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}
