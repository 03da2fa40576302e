// Package state holds the normalized in-memory store of the console: the
// per-site entity cache, the actions that describe remote calls, the pure
// reducers that apply them and the selectors that read it back.
//
// State values are immutable once published by a Store. Reducers build new
// values with copy-on-write and keep every untouched sub-tree pointer
// identical, so a caller can compare pointers to detect change.
package state

import "storeconsole-backend/internal/domain"

// State is the whole store.
type State struct {
	Sites map[int64]*SiteState
	UI    UIState
}

// SiteState is the entity cache of one site.
type SiteState struct {
	// ShippingZones keeps API order; use the sorted selector for display.
	ShippingZones       domain.Resource[[]domain.ShippingZone]
	ShippingZoneMethods map[int64]*domain.ShippingZoneMethod
	Products            map[int64]*domain.Product
	SetupChoices        domain.Resource[domain.SetupChoices]
}

// UIState is view state that the console shares across requests.
type UIState struct {
	SelectedSiteID int64
	Sites          map[int64]*SiteUIState
}

type SiteUIState struct {
	ProductList domain.ProductList
	ZoneDraft   *domain.ZoneDraft
}

// New returns the empty state.
func New() *State {
	return &State{}
}

func (s *State) site(siteID int64) *SiteState {
	if s == nil {
		return nil
	}
	return s.Sites[siteID]
}

func (s *State) siteUI(siteID int64) *SiteUIState {
	if s == nil {
		return nil
	}
	return s.UI.Sites[siteID]
}
