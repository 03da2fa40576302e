package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
)

func TestFetchSetupChoices(t *testing.T) {
	store := state.NewStore()
	gw := newFakeGateway().on("GET", setupChoicesPath, fakeReply{raw: `{
		"opted_out_of_shipping_setup": true,
		"finished_initial_setup": false,
		"tried_customizer_during_initial_setup": true
	}`})
	uc := NewSetupUsecase(store, gw)

	require.NoError(t, uc.FetchSetupChoices(context.Background(), testSiteID))

	view := uc.SetupChoices(testSiteID)
	assert.True(t, view.Loaded)
	assert.False(t, view.Loading)
	assert.True(t, view.OptedOutOfShippingSetup)
	assert.False(t, view.OptedOutOfTaxesSetup)
	assert.True(t, view.TriedCustomizer)
	assert.False(t, view.FinishedInitialSetup)
}

func TestFetchSetupChoices_Failure(t *testing.T) {
	store := state.NewStore()
	gw := newFakeGateway().on("GET", setupChoicesPath, fakeReply{err: &domain.TransportError{Code: "boom", Status: 500}})
	uc := NewSetupUsecase(store, gw)

	err := uc.FetchSetupChoices(context.Background(), testSiteID)

	assert.Equal(t, "boom", domain.AsTransportError(err).Code)
	view := uc.SetupChoices(testSiteID)
	assert.False(t, view.Loaded)
	assert.False(t, view.Loading)
	assert.False(t, view.OptedOutOfShippingSetup)
}

func TestUpdateSetupChoice(t *testing.T) {
	store := state.NewStore()
	gw := newFakeGateway().
		on("GET", setupChoicesPath, fakeReply{raw: `{}`}).
		on("PUT", setupChoicesPath, fakeReply{raw: `{"finished_initial_setup": true}`})
	uc := NewSetupUsecase(store, gw)
	require.NoError(t, uc.FetchSetupChoices(context.Background(), testSiteID))

	require.NoError(t, uc.UpdateSetupChoice(context.Background(), testSiteID, domain.ChoiceFinishedInitialSetup, true))

	assert.Equal(t, map[string]bool{domain.ChoiceFinishedInitialSetup: true}, gw.lastCall().Body)
	assert.True(t, uc.SetupChoices(testSiteID).FinishedInitialSetup)
}

func TestUpdateSetupChoice_Validation(t *testing.T) {
	gw := newFakeGateway()
	uc := NewSetupUsecase(state.NewStore(), gw)

	err := uc.UpdateSetupChoice(context.Background(), testSiteID, "likes_tea", true)
	assert.ErrorIs(t, err, domain.ErrInvalidSetupChoice)

	err = uc.UpdateSetupChoice(context.Background(), 0, domain.ChoiceTriedCustomizer, true)
	assert.ErrorIs(t, err, domain.ErrInvalidSite)
	assert.Empty(t, gw.calls)
}

func TestUpdateSetupChoice_FailureLeavesStore(t *testing.T) {
	store := state.NewStore()
	gw := newFakeGateway().
		on("GET", setupChoicesPath, fakeReply{raw: `{}`}).
		on("PUT", setupChoicesPath, fakeReply{err: &domain.TransportError{Code: "boom", Status: 500}})
	uc := NewSetupUsecase(store, gw)
	require.NoError(t, uc.FetchSetupChoices(context.Background(), testSiteID))

	assert.Error(t, uc.UpdateSetupChoice(context.Background(), testSiteID, domain.ChoiceTriedCustomizer, true))
	assert.False(t, uc.SetupChoices(testSiteID).TriedCustomizer)
}
