package v1

import (
	"net/http"

	"storeconsole-backend/internal/delivery/http/middleware"
	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/utils"
)

// StateReader is the read side of the store.
type StateReader interface {
	Snapshot() (*state.State, uint64)
}

type ShippingHandler struct {
	shipping *usecase.ShippingUsecase
	reader   StateReader
}

func NewShippingHandler(shipping *usecase.ShippingUsecase, reader StateReader) *ShippingHandler {
	return &ShippingHandler{shipping: shipping, reader: reader}
}

func siteID(r *http.Request) int64 {
	id, _ := middleware.SiteIDFromContext(r.Context())
	return id
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok := utils.ParseID(r.PathValue(name))
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid "+name)
	}
	return id, ok
}

func (h *ShippingHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.shipping.ZoneList(siteID(r)))
}

func (h *ShippingHandler) FetchZones(w http.ResponseWriter, r *http.Request) {
	site := siteID(r)
	if err := h.shipping.FetchShippingZones(r.Context(), site); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.shipping.ZoneList(site))
}

type zoneMethodsResponse struct {
	ZoneID   int64                        `json:"zoneId"`
	Loaded   bool                         `json:"loaded"`
	Loading  bool                         `json:"loading"`
	Status   string                       `json:"status"`
	Methods  []*domain.ShippingZoneMethod `json:"methods"`
	Missing  []int64                      `json:"missingMethodIds,omitempty"`
	Revision uint64                       `json:"revision"`
}

func (h *ShippingHandler) zoneMethods(site, zoneID int64) (*zoneMethodsResponse, bool) {
	st, rev := h.reader.Snapshot()
	if _, ok := state.GetShippingZone(st, site, zoneID); !ok {
		return nil, false
	}
	join := state.JoinShippingZoneMethods(st, site, zoneID)
	resp := &zoneMethodsResponse{
		ZoneID:   zoneID,
		Loaded:   state.AreShippingZoneMethodsLoaded(st, site, zoneID),
		Loading:  state.AreShippingZoneMethodsLoading(st, site, zoneID),
		Status:   join.Status.String(),
		Methods:  join.Items,
		Missing:  join.Missing,
		Revision: rev,
	}
	if resp.Methods == nil {
		resp.Methods = []*domain.ShippingZoneMethod{}
	}
	return resp, true
}

func (h *ShippingHandler) GetZoneMethods(w http.ResponseWriter, r *http.Request) {
	zoneID, ok := pathID(w, r, "zoneId")
	if !ok {
		return
	}
	resp, ok := h.zoneMethods(siteID(r), zoneID)
	if !ok {
		utils.WriteError(w, http.StatusNotFound, domain.ErrZoneNotFound.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ShippingHandler) FetchZoneMethods(w http.ResponseWriter, r *http.Request) {
	zoneID, ok := pathID(w, r, "zoneId")
	if !ok {
		return
	}
	site := siteID(r)
	if err := h.shipping.FetchShippingZoneMethods(r.Context(), site, zoneID); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	resp, ok := h.zoneMethods(site, zoneID)
	if !ok {
		// Methods of a zone not in the list are stored but not joinable.
		w.WriteHeader(http.StatusAccepted)
		return
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ShippingHandler) GetMethod(w http.ResponseWriter, r *http.Request) {
	methodID, ok := pathID(w, r, "methodId")
	if !ok {
		return
	}
	st, _ := h.reader.Snapshot()
	method := state.GetShippingZoneMethod(st, siteID(r), methodID)
	if method == nil {
		utils.WriteError(w, http.StatusNotFound, "shipping zone method not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, method)
}

func (h *ShippingHandler) GetMethodTypeOptions(w http.ResponseWriter, r *http.Request) {
	zoneID, ok := pathID(w, r, "zoneId")
	if !ok {
		return
	}
	st, _ := h.reader.Snapshot()
	options := state.GetNewMethodTypeOptions(st, siteID(r), zoneID)
	if options == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"loaded": false, "options": []domain.MethodType{}})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"loaded": true, "options": options})
}

type openDraftRequest struct {
	ZoneID *int64 `json:"zoneId"`
}

// OpenDraft starts editing an existing zone, or a new one when no zoneId is
// given.
func (h *ShippingHandler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	var req openDraftRequest
	if err := utils.DecodeOptionalJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	site := siteID(r)
	var draft *domain.ZoneDraft
	var err error
	if req.ZoneID == nil {
		draft, err = h.shipping.AddNewZone(site)
	} else {
		draft, err = h.shipping.OpenZoneForEdit(site, *req.ZoneID)
	}
	if err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, draft)
}

type editDraftRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

func (h *ShippingHandler) EditDraft(w http.ResponseWriter, r *http.Request) {
	var req editDraftRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	draft, err := h.shipping.EditZoneDraft(siteID(r), req.Name, req.Order)
	if err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, draft)
}

func (h *ShippingHandler) CloseDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.shipping.CloseZoneDraft(siteID(r)); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShippingHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	zone, err := h.shipping.SaveZoneDraft(r.Context(), siteID(r))
	if err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, zone)
}

func (h *ShippingHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	zoneID, ok := pathID(w, r, "zoneId")
	if !ok {
		return
	}
	if err := h.shipping.DeleteShippingZone(r.Context(), siteID(r), zoneID); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
