package domain

// RestOfTheWorldZoneID is the synthetic zone covering every location not
// matched by another zone. It always sorts last.
const RestOfTheWorldZoneID int64 = 0

type MethodType string

const (
	MethodFlatRate     MethodType = "flat_rate"
	MethodFreeShipping MethodType = "free_shipping"
	MethodLocalPickup  MethodType = "local_pickup"
)

// MethodTypes lists the supported method types in picker order.
var MethodTypes = []MethodType{
	MethodFlatRate,
	MethodFreeShipping,
	MethodLocalPickup,
}

func (t MethodType) Valid() bool {
	for _, m := range MethodTypes {
		if m == t {
			return true
		}
	}
	return false
}

// ShippingZone is a zone as held in the store. Methods are referenced by id
// only; the records live in the site's method table.
type ShippingZone struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Order     int               `json:"order"`
	MethodIDs Resource[[]int64] `json:"-"`
}

// ZoneLess orders zones for display: order ascending, then id ascending,
// with the rest-of-the-world zone last.
func ZoneLess(a, b ShippingZone) bool {
	if a.ID == RestOfTheWorldZoneID || b.ID == RestOfTheWorldZoneID {
		return b.ID == RestOfTheWorldZoneID && a.ID != RestOfTheWorldZoneID
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.ID < b.ID
}

type ShippingZoneMethod struct {
	ID         int64                  `json:"id"`
	Title      string                 `json:"title"`
	MethodType MethodType             `json:"methodType"`
	Enabled    bool                   `json:"enabled"`
	Settings   map[string]interface{} `json:"settings"`
}

// ZoneDraft is the in-progress edit of one zone. It is never merged into the
// zone table until it is saved.
type ZoneDraft struct {
	ZoneID int64  `json:"zoneId"`
	IsNew  bool   `json:"isNew"`
	Name   string `json:"name"`
	Order  int    `json:"order"`
}
