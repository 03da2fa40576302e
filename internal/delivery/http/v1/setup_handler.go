package v1

import (
	"net/http"

	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/utils"
)

type SetupHandler struct {
	setup *usecase.SetupUsecase
}

func NewSetupHandler(setup *usecase.SetupUsecase) *SetupHandler {
	return &SetupHandler{setup: setup}
}

func (h *SetupHandler) GetChoices(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.setup.SetupChoices(siteID(r)))
}

func (h *SetupHandler) FetchChoices(w http.ResponseWriter, r *http.Request) {
	site := siteID(r)
	if err := h.setup.FetchSetupChoices(r.Context(), site); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.setup.SetupChoices(site))
}

type updateChoiceRequest struct {
	Value *bool `json:"value"`
}

func (h *SetupHandler) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	var req updateChoiceRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Value == nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: value is required")
		return
	}
	site := siteID(r)
	if err := h.setup.UpdateSetupChoice(r.Context(), site, r.PathValue("choice"), *req.Value); err != nil {
		utils.WriteUsecaseError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.setup.SetupChoices(site))
}
