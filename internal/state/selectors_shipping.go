package state

import (
	"slices"

	"storeconsole-backend/internal/domain"
)

func shippingZonesResource(s *State, siteID int64) zonesResource {
	site := s.site(siteID)
	if site == nil {
		return domain.NotRequested[[]domain.ShippingZone]()
	}
	return site.ShippingZones
}

// AreShippingZonesLoaded reports whether the site's zone list holds a value.
func AreShippingZonesLoaded(s *State, siteID int64) bool {
	return shippingZonesResource(s, siteID).IsLoaded()
}

// AreShippingZonesLoading reports whether the zone list is being fetched.
func AreShippingZonesLoading(s *State, siteID int64) bool {
	return shippingZonesResource(s, siteID).IsLoading()
}

// ShippingZonesError returns the error of the last failed zone fetch.
func ShippingZonesError(s *State, siteID int64) *domain.TransportError {
	return shippingZonesResource(s, siteID).Err()
}

// GetShippingZones returns the zones in API order, or nil when not loaded.
// The slice is shared with the store and must not be modified.
func GetShippingZones(s *State, siteID int64) []domain.ShippingZone {
	zones, _ := shippingZonesResource(s, siteID).Value()
	return zones
}

// GetSortedShippingZones returns a sorted copy of the zones for display.
func GetSortedShippingZones(s *State, siteID int64) []domain.ShippingZone {
	zones, ok := shippingZonesResource(s, siteID).Value()
	if !ok {
		return nil
	}
	return SortShippingZones(zones)
}

// SortShippingZones returns zones ordered by domain.ZoneLess.
func SortShippingZones(zones []domain.ShippingZone) []domain.ShippingZone {
	out := slices.Clone(zones)
	slices.SortStableFunc(out, func(a, b domain.ShippingZone) int {
		switch {
		case domain.ZoneLess(a, b):
			return -1
		case domain.ZoneLess(b, a):
			return 1
		}
		return 0
	})
	return out
}

// GetShippingZone returns a zone by id. ok is false when the list is not
// loaded or has no such zone.
func GetShippingZone(s *State, siteID, zoneID int64) (domain.ShippingZone, bool) {
	zones, ok := shippingZonesResource(s, siteID).Value()
	if !ok {
		return domain.ShippingZone{}, false
	}
	i := zoneIndex(zones, zoneID)
	if i < 0 {
		return domain.ShippingZone{}, false
	}
	return zones[i], true
}

func zoneMethodIDs(s *State, siteID, zoneID int64) domain.Resource[[]int64] {
	zone, ok := GetShippingZone(s, siteID, zoneID)
	if !ok {
		return domain.NotRequested[[]int64]()
	}
	return zone.MethodIDs
}

// AreShippingZoneMethodsLoaded reports whether the zone's method ids are known.
func AreShippingZoneMethodsLoaded(s *State, siteID, zoneID int64) bool {
	return zoneMethodIDs(s, siteID, zoneID).IsLoaded()
}

// AreShippingZoneMethodsLoading reports whether the zone's methods are being fetched.
func AreShippingZoneMethodsLoading(s *State, siteID, zoneID int64) bool {
	return zoneMethodIDs(s, siteID, zoneID).IsLoading()
}

// GetShippingZoneMethod returns the stored method record, or nil.
func GetShippingZoneMethod(s *State, siteID, methodID int64) *domain.ShippingZoneMethod {
	site := s.site(siteID)
	if site == nil {
		return nil
	}
	return site.ShippingZoneMethods[methodID]
}

// JoinShippingZoneMethods resolves the zone's method ids into method records.
func JoinShippingZoneMethods(s *State, siteID, zoneID int64) Join[domain.ShippingZoneMethod] {
	ids, ok := zoneMethodIDs(s, siteID, zoneID).Value()
	if !ok {
		return Join[domain.ShippingZoneMethod]{Status: JoinUnknown}
	}
	var table methodTable
	if site := s.site(siteID); site != nil {
		table = site.ShippingZoneMethods
	}
	return joinIDs(ids, table)
}

// GetShippingZoneMethods returns the zone's methods keyed by id. ok is false
// when the zone or its method ids are unknown, or when any referenced method
// record is missing. A zone known to have no methods yields an empty map.
func GetShippingZoneMethods(s *State, siteID, zoneID int64) (map[int64]*domain.ShippingZoneMethod, bool) {
	return JoinShippingZoneMethods(s, siteID, zoneID).ByID(func(m *domain.ShippingZoneMethod) int64 { return m.ID })
}

// GetNewMethodTypeOptions lists the method types a new method of the zone
// may use. Flat rate can repeat; the other types are offered once per zone.
// Returns nil while the zone's methods are not fully known.
func GetNewMethodTypeOptions(s *State, siteID, zoneID int64) []domain.MethodType {
	j := JoinShippingZoneMethods(s, siteID, zoneID)
	if j.Status != JoinComplete {
		return nil
	}
	used := make(map[domain.MethodType]bool, len(j.Items))
	for _, m := range j.Items {
		used[m.MethodType] = true
	}
	out := make([]domain.MethodType, 0, len(domain.MethodTypes))
	for _, t := range domain.MethodTypes {
		if t == domain.MethodFlatRate || !used[t] {
			out = append(out, t)
		}
	}
	return out
}

// GetZoneDraft returns the zone being edited, or nil.
func GetZoneDraft(s *State, siteID int64) *domain.ZoneDraft {
	ui := s.siteUI(siteID)
	if ui == nil {
		return nil
	}
	return ui.ZoneDraft
}
