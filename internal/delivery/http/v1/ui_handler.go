package v1

import (
	"net/http"

	"storeconsole-backend/internal/delivery/http/middleware"
	"storeconsole-backend/internal/state"
	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/utils"
)

type UIHandler struct {
	shipping *usecase.ShippingUsecase
	reader   StateReader
}

func NewUIHandler(shipping *usecase.ShippingUsecase, reader StateReader) *UIHandler {
	return &UIHandler{shipping: shipping, reader: reader}
}

type selectedSiteResponse struct {
	SiteID int64 `json:"siteId"`
}

func (h *UIHandler) GetSelectedSite(w http.ResponseWriter, r *http.Request) {
	st, _ := h.reader.Snapshot()
	utils.WriteJSON(w, http.StatusOK, selectedSiteResponse{SiteID: state.SelectedSiteID(st)})
}

type selectSiteRequest struct {
	SiteID int64 `json:"siteId"`
}

// SelectSite makes siteId the current site and loads its shipping zones
// when it changed.
func (h *UIHandler) SelectSite(w http.ResponseWriter, r *http.Request) {
	var req selectSiteRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.SiteID <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: siteId is required")
		return
	}
	if !middleware.OperatorFromContext(r.Context()).CanManage(req.SiteID) {
		utils.WriteError(w, http.StatusForbidden, "Forbidden: Site not managed by operator")
		return
	}

	if err := h.shipping.SelectSite(r.Context(), req.SiteID); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, selectedSiteResponse{SiteID: req.SiteID})
}

// SiteResolver resolves {siteId} path values; "current" is the selected
// site.
func SiteResolver(reader StateReader) middleware.SiteResolver {
	return func(r *http.Request) (int64, bool) {
		st, _ := reader.Snapshot()
		return utils.ParseSiteID(r.PathValue("siteId"), state.SelectedSiteID(st))
	}
}
