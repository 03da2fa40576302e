package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/internal/state"
	"storeconsole-backend/pkg/cache"
	"storeconsole-backend/pkg/logger"
)

const shippingZonesPath = "/wc/v3/shipping/zones"

type ShippingUsecase struct {
	store   Store
	gateway domain.Gateway
	views   cache.CacheService
	viewTTL time.Duration
}

func NewShippingUsecase(store Store, gateway domain.Gateway, views cache.CacheService, viewTTL time.Duration) *ShippingUsecase {
	return &ShippingUsecase{
		store:   store,
		gateway: gateway,
		views:   views,
		viewTTL: viewTTL,
	}
}

type apiZone struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type apiZoneMethod struct {
	ID         int64       `json:"id"`
	InstanceID int64       `json:"instance_id"`
	Title      string      `json:"title"`
	MethodID   string      `json:"method_id"`
	Enabled    bool        `json:"enabled"`
	Settings   apiSettings `json:"settings"`
}

// apiSettings is keyed by setting id. PHP encodes an empty map as [].
type apiSettings map[string]map[string]interface{}

func (s *apiSettings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*s = nil
		return nil
	}
	var m map[string]map[string]interface{}
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*s = m
	return nil
}

func (z apiZone) normalize() domain.ShippingZone {
	return domain.ShippingZone{ID: z.ID, Name: z.Name, Order: z.Order}
}

// normalize flattens {"cost": {"id": "cost", "value": "10", ...}} into
// {"cost": "10"}.
func (m apiZoneMethod) normalize() domain.ShippingZoneMethod {
	id := m.InstanceID
	if id == 0 {
		id = m.ID
	}
	out := domain.ShippingZoneMethod{
		ID:         id,
		Title:      m.Title,
		MethodType: domain.MethodType(m.MethodID),
		Enabled:    m.Enabled,
	}
	if len(m.Settings) > 0 {
		out.Settings = make(map[string]interface{}, len(m.Settings))
		for key, setting := range m.Settings {
			out.Settings[key] = setting["value"]
		}
	}
	return out
}

// FetchShippingZones loads the zone list of a site and then the methods of
// every zone. Method failures are recorded per zone and logged; only the
// zone list failure is returned.
func (uc *ShippingUsecase) FetchShippingZones(ctx context.Context, siteID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	uc.store.Dispatch(state.RequestShippingZones(siteID))

	zones, err := uc.fetchZones(detach(ctx), siteID)
	if err != nil {
		te := domain.AsTransportError(err)
		uc.store.Dispatch(state.RequestShippingZonesFailure(siteID, te))
		return te
	}
	uc.store.Dispatch(state.RequestShippingZonesSuccess(siteID, zones))

	var wg sync.WaitGroup
	for _, z := range zones {
		wg.Add(1)
		go func(zoneID int64) {
			defer wg.Done()
			if err := uc.FetchShippingZoneMethods(ctx, siteID, zoneID); err != nil {
				logger.Warn().
					Err(err).
					Int64("site_id", siteID).
					Int64("zone_id", zoneID).
					Msg("Failed to fetch shipping zone methods")
			}
		}(z.ID)
	}
	wg.Wait()
	return nil
}

func (uc *ShippingUsecase) fetchZones(ctx context.Context, siteID int64) ([]domain.ShippingZone, error) {
	resp, err := uc.gateway.Get(ctx, siteID, shippingZonesPath, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decode[[]apiZone](resp)
	if err != nil {
		return nil, err
	}
	zones := make([]domain.ShippingZone, 0, len(raw))
	for _, z := range raw {
		zones = append(zones, z.normalize())
	}
	return zones, nil
}

func (uc *ShippingUsecase) FetchShippingZoneMethods(ctx context.Context, siteID, zoneID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	uc.store.Dispatch(state.RequestShippingZoneMethods(siteID, zoneID))

	path := fmt.Sprintf("%s/%d/methods", shippingZonesPath, zoneID)
	resp, err := uc.gateway.Get(detach(ctx), siteID, path, nil)
	var raw []apiZoneMethod
	if err == nil {
		raw, err = decode[[]apiZoneMethod](resp)
	}
	if err != nil {
		te := domain.AsTransportError(err)
		uc.store.Dispatch(state.RequestShippingZoneMethodsFailure(siteID, zoneID, te))
		return te
	}

	methods := make([]domain.ShippingZoneMethod, 0, len(raw))
	for _, m := range raw {
		methods = append(methods, m.normalize())
	}
	uc.store.Dispatch(state.RequestShippingZoneMethodsSuccess(siteID, zoneID, methods))
	return nil
}

// SelectSite switches the current site and refetches its zones when the
// selection changed.
func (uc *ShippingUsecase) SelectSite(ctx context.Context, siteID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	prev, _ := uc.store.Snapshot()
	if state.SelectedSiteID(prev) == siteID {
		return nil
	}
	uc.store.Dispatch(state.SelectSite(siteID))
	return uc.FetchShippingZones(ctx, siteID)
}

func (uc *ShippingUsecase) AddNewZone(siteID int64) (*domain.ZoneDraft, error) {
	if err := checkSite(siteID); err != nil {
		return nil, err
	}
	st := uc.store.Dispatch(state.AddNewShippingZone(siteID))
	return state.GetZoneDraft(st, siteID), nil
}

func (uc *ShippingUsecase) OpenZoneForEdit(siteID, zoneID int64) (*domain.ZoneDraft, error) {
	if err := checkSite(siteID); err != nil {
		return nil, err
	}
	st, _ := uc.store.Snapshot()
	zone, ok := state.GetShippingZone(st, siteID, zoneID)
	if !ok {
		return nil, fmt.Errorf("zone %d: %w", zoneID, domain.ErrZoneNotFound)
	}
	st = uc.store.Dispatch(state.OpenShippingZoneForEdit(siteID, zone))
	return state.GetZoneDraft(st, siteID), nil
}

// EditZoneDraft applies the given fields to the open draft. Nil fields are
// left alone.
func (uc *ShippingUsecase) EditZoneDraft(siteID int64, name *string, order *int) (*domain.ZoneDraft, error) {
	if err := checkSite(siteID); err != nil {
		return nil, err
	}
	st, _ := uc.store.Snapshot()
	if state.GetZoneDraft(st, siteID) == nil {
		return nil, fmt.Errorf("site %d: %w", siteID, domain.ErrNoDraft)
	}
	if name != nil {
		st = uc.store.Dispatch(state.EditShippingZoneName(siteID, *name))
	}
	if order != nil {
		st = uc.store.Dispatch(state.EditShippingZoneOrder(siteID, *order))
	}
	return state.GetZoneDraft(st, siteID), nil
}

func (uc *ShippingUsecase) CloseZoneDraft(siteID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	uc.store.Dispatch(state.CloseShippingZoneEdit(siteID))
	return nil
}

// SaveZoneDraft creates or updates the zone behind the open draft. On
// success the zone table is updated and the draft closed; on failure the
// draft stays open.
func (uc *ShippingUsecase) SaveZoneDraft(ctx context.Context, siteID int64) (*domain.ShippingZone, error) {
	if err := checkSite(siteID); err != nil {
		return nil, err
	}
	st, _ := uc.store.Snapshot()
	draft := state.GetZoneDraft(st, siteID)
	if draft == nil {
		return nil, fmt.Errorf("site %d: %w", siteID, domain.ErrNoDraft)
	}
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, domain.ErrZoneNameRequired
	}

	body := map[string]interface{}{"name": name, "order": draft.Order}
	var resp *domain.Response
	var err error
	if draft.IsNew {
		resp, err = uc.gateway.Post(detach(ctx), siteID, shippingZonesPath, body)
	} else {
		resp, err = uc.gateway.Put(detach(ctx), siteID, fmt.Sprintf("%s/%d", shippingZonesPath, draft.ZoneID), body)
	}
	var raw apiZone
	if err == nil {
		raw, err = decode[apiZone](resp)
	}
	if err != nil {
		return nil, domain.AsTransportError(err)
	}

	zone := raw.normalize()
	uc.store.Dispatch(state.UpdateShippingZoneSuccess(siteID, zone))
	uc.store.Dispatch(state.CloseShippingZoneEdit(siteID))
	return &zone, nil
}

func (uc *ShippingUsecase) DeleteShippingZone(ctx context.Context, siteID, zoneID int64) error {
	if err := checkSite(siteID); err != nil {
		return err
	}
	if zoneID == domain.RestOfTheWorldZoneID {
		return domain.ErrZoneProtected
	}
	st, _ := uc.store.Snapshot()
	if _, ok := state.GetShippingZone(st, siteID, zoneID); !ok {
		return fmt.Errorf("zone %d: %w", zoneID, domain.ErrZoneNotFound)
	}

	path := fmt.Sprintf("%s/%d?force=true", shippingZonesPath, zoneID)
	if _, err := uc.gateway.Delete(detach(ctx), siteID, path); err != nil {
		return domain.AsTransportError(err)
	}
	uc.store.Dispatch(state.DeleteShippingZoneSuccess(siteID, zoneID))
	return nil
}

// ZoneView is one row of the zone list with its joined methods.
type ZoneView struct {
	ID             int64                        `json:"id"`
	Name           string                       `json:"name"`
	Order          int                          `json:"order"`
	MethodsLoaded  bool                         `json:"methodsLoaded"`
	MethodsLoading bool                         `json:"methodsLoading"`
	Methods        []*domain.ShippingZoneMethod `json:"methods"`
	MissingMethods []int64                      `json:"missingMethodIds,omitempty"`
}

// ZoneListView is what the zone list screen renders for one site.
type ZoneListView struct {
	SiteID   int64                  `json:"siteId"`
	Revision uint64                 `json:"revision"`
	Loaded   bool                   `json:"loaded"`
	Loading  bool                   `json:"loading"`
	Error    *domain.TransportError `json:"error,omitempty"`
	Zones    []ZoneView             `json:"zones"`
}

// ZoneList builds the sorted zone list view from the current snapshot. Views
// are memoized per (site, revision) since a revision never changes content.
func (uc *ShippingUsecase) ZoneList(siteID int64) *ZoneListView {
	st, rev := uc.store.Snapshot()
	key := fmt.Sprintf("zones:view:%d:%d", siteID, rev)
	return cache.Memoize(uc.views, key, uc.viewTTL, func() *ZoneListView {
		return buildZoneList(st, rev, siteID)
	})
}

func buildZoneList(st *state.State, rev uint64, siteID int64) *ZoneListView {
	view := &ZoneListView{
		SiteID:   siteID,
		Revision: rev,
		Loaded:   state.AreShippingZonesLoaded(st, siteID),
		Loading:  state.AreShippingZonesLoading(st, siteID),
		Error:    state.ShippingZonesError(st, siteID),
		Zones:    []ZoneView{},
	}
	for _, z := range state.GetSortedShippingZones(st, siteID) {
		join := state.JoinShippingZoneMethods(st, siteID, z.ID)
		row := ZoneView{
			ID:             z.ID,
			Name:           z.Name,
			Order:          z.Order,
			MethodsLoaded:  state.AreShippingZoneMethodsLoaded(st, siteID, z.ID),
			MethodsLoading: state.AreShippingZoneMethodsLoading(st, siteID, z.ID),
			Methods:        join.Items,
			MissingMethods: join.Missing,
		}
		if row.Methods == nil {
			row.Methods = []*domain.ShippingZoneMethod{}
		}
		view.Zones = append(view.Zones, row)
	}
	return view
}
