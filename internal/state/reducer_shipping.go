package state

import (
	"maps"
	"slices"

	"storeconsole-backend/internal/domain"
)

type (
	zonesResource = domain.Resource[[]domain.ShippingZone]
	methodTable   = map[int64]*domain.ShippingZoneMethod
)

func reduceShippingZones(zones zonesResource, methods methodTable, a Action) (zonesResource, methodTable, bool) {
	switch act := a.(type) {
	case ShippingZonesRequest:
		return zones.StartLoading(), methods, true

	case ShippingZonesRequestSuccess:
		return zones.Succeed(slices.Clone(act.Data)), methods, true

	case ShippingZonesRequestFailure:
		return zones.Fail(act.Err), methods, true

	case ShippingZoneUpdateSuccess:
		if !zones.IsLoaded() {
			return zones, methods, false
		}
		return zones.Update(func(list []domain.ShippingZone) []domain.ShippingZone {
			return upsertZone(list, act.Data)
		}), methods, true

	case ShippingZoneDeleteSuccess:
		list, ok := zones.Value()
		if !ok {
			return zones, methods, false
		}
		i := zoneIndex(list, act.ZoneID)
		if i < 0 {
			return zones, methods, false
		}
		if ids, ok := list[i].MethodIDs.Value(); ok && len(ids) > 0 {
			methods = removeMethods(methods, ids)
		}
		return zones.Update(func(list []domain.ShippingZone) []domain.ShippingZone {
			return slices.Delete(slices.Clone(list), i, i+1)
		}), methods, true
	}
	return zones, methods, false
}

// reduceShippingZoneMethods tracks the method ids of one zone in the zone
// list and upserts the method records into the site's method table.
func reduceShippingZoneMethods(zones zonesResource, methods methodTable, a Action) (zonesResource, methodTable, bool) {
	switch act := a.(type) {
	case ShippingZoneMethodsRequest:
		next, ok := updateZoneMethodIDs(zones, act.ZoneID, func(r domain.Resource[[]int64]) domain.Resource[[]int64] {
			return r.StartLoading()
		})
		return next, methods, ok

	case ShippingZoneMethodsRequestSuccess:
		ids := make([]int64, 0, len(act.Data))
		for _, m := range act.Data {
			ids = append(ids, m.ID)
		}
		methods = upsertMethods(methods, act.Data)
		next, _ := updateZoneMethodIDs(zones, act.ZoneID, func(r domain.Resource[[]int64]) domain.Resource[[]int64] {
			return r.Succeed(ids)
		})
		return next, methods, true

	case ShippingZoneMethodsRequestFailure:
		next, ok := updateZoneMethodIDs(zones, act.ZoneID, func(r domain.Resource[[]int64]) domain.Resource[[]int64] {
			return r.Fail(act.Err)
		})
		return next, methods, ok
	}
	return zones, methods, false
}

// updateZoneMethodIDs rewrites the method id resource of one loaded zone.
// ok is false when the zone list is not loaded or has no such zone.
func updateZoneMethodIDs(zones zonesResource, zoneID int64, fn func(domain.Resource[[]int64]) domain.Resource[[]int64]) (zonesResource, bool) {
	list, ok := zones.Value()
	if !ok {
		return zones, false
	}
	i := zoneIndex(list, zoneID)
	if i < 0 {
		return zones, false
	}
	return zones.Update(func(list []domain.ShippingZone) []domain.ShippingZone {
		out := slices.Clone(list)
		out[i].MethodIDs = fn(out[i].MethodIDs)
		return out
	}), true
}

func zoneIndex(list []domain.ShippingZone, zoneID int64) int {
	return slices.IndexFunc(list, func(z domain.ShippingZone) bool { return z.ID == zoneID })
}

// upsertZone replaces the zone with the same id or appends it. A saved zone
// without method state keeps the method ids already known.
func upsertZone(list []domain.ShippingZone, zone domain.ShippingZone) []domain.ShippingZone {
	out := slices.Clone(list)
	i := zoneIndex(out, zone.ID)
	if i < 0 {
		return append(out, zone)
	}
	if zone.MethodIDs.Status() == domain.StatusNotRequested {
		zone.MethodIDs = out[i].MethodIDs
	}
	out[i] = zone
	return out
}

func upsertMethods(table methodTable, methods []domain.ShippingZoneMethod) methodTable {
	if len(methods) == 0 && table != nil {
		return table
	}
	out := make(methodTable, len(table)+len(methods))
	for k, v := range table {
		out[k] = v
	}
	for i := range methods {
		m := methods[i]
		m.Settings = maps.Clone(m.Settings)
		out[m.ID] = &m
	}
	return out
}

func removeMethods(table methodTable, ids []int64) methodTable {
	out := make(methodTable, len(table))
	for k, v := range table {
		out[k] = v
	}
	for _, id := range ids {
		delete(out, id)
	}
	return out
}
