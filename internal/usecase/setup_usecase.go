package usecase

import (
	"context"
	"fmt"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
)

const setupChoicesPath = "/wc/v3/setup-choices"

type SetupUsecase struct {
	store   Store
	gateway domain.Gateway
}

func NewSetupUsecase(store Store, gateway domain.Gateway) *SetupUsecase {
	return &SetupUsecase{store: store, gateway: gateway}
}

func (uc *SetupUsecase) FetchSetupChoices(ctx context.Context, siteID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	uc.store.Dispatch(state.RequestSetupChoices(siteID))

	resp, err := uc.gateway.Get(detach(ctx), siteID, setupChoicesPath, nil)
	var choices domain.SetupChoices
	if err == nil {
		choices, err = decode[domain.SetupChoices](resp)
	}
	if err != nil {
		te := domain.AsTransportError(err)
		uc.store.Dispatch(state.RequestSetupChoicesFailure(siteID, te))
		return te
	}

	uc.store.Dispatch(state.RequestSetupChoicesSuccess(siteID, choices))
	return nil
}

// UpdateSetupChoice stores one choice remotely and, once accepted, in the
// store.
func (uc *SetupUsecase) UpdateSetupChoice(ctx context.Context, siteID int64, choice string, value bool) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	if _, ok := (domain.SetupChoices{}).With(choice, value); !ok {
		return fmt.Errorf("%q: %w", choice, domain.ErrInvalidSetupChoice)
	}

	body := map[string]bool{choice: value}
	if _, err := uc.gateway.Put(detach(ctx), siteID, setupChoicesPath, body); err != nil {
		return domain.AsTransportError(err)
	}
	uc.store.Dispatch(state.UpdateSetupChoiceSuccess(siteID, choice, value))
	return nil
}

// SetupChoicesView is the setup checklist state of one site.
type SetupChoicesView struct {
	SiteID                  int64 `json:"siteId"`
	Loaded                  bool  `json:"loaded"`
	Loading                 bool  `json:"loading"`
	OptedOutOfShippingSetup bool  `json:"optedOutOfShippingSetup"`
	OptedOutOfTaxesSetup    bool  `json:"optedOutOfTaxesSetup"`
	TriedCustomizer         bool  `json:"triedCustomizer"`
	FinishedInitialSetup    bool  `json:"finishedInitialSetup"`
}

func (uc *SetupUsecase) SetupChoices(siteID int64) *SetupChoicesView {
	st, _ := uc.store.Snapshot()
	return &SetupChoicesView{
		SiteID:                  siteID,
		Loaded:                  state.AreSetupChoicesLoaded(st, siteID),
		Loading:                 state.AreSetupChoicesLoading(st, siteID),
		OptedOutOfShippingSetup: state.HasOptedOutOfShippingSetup(st, siteID),
		OptedOutOfTaxesSetup:    state.HasOptedOutOfTaxSetup(st, siteID),
		TriedCustomizer:         state.HasTriedCustomizer(st, siteID),
		FinishedInitialSetup:    state.GetFinishedInitialSetup(st, siteID),
	}
}
