package state

import "storeconsole-backend/internal/domain"

// ActionType names a message. Values are opaque; only equality matters.
type ActionType string

const (
	TypeShippingZonesRequest        ActionType = "WOOCOMMERCE_SHIPPING_ZONES_REQUEST"
	TypeShippingZonesRequestSuccess ActionType = "WOOCOMMERCE_SHIPPING_ZONES_REQUEST_SUCCESS"
	TypeShippingZonesRequestFailure ActionType = "WOOCOMMERCE_SHIPPING_ZONES_REQUEST_FAILURE"
	TypeShippingZoneUpdateSuccess   ActionType = "WOOCOMMERCE_SHIPPING_ZONE_UPDATE_SUCCESS"
	TypeShippingZoneDeleteSuccess   ActionType = "WOOCOMMERCE_SHIPPING_ZONE_DELETE_SUCCESS"

	TypeShippingZoneMethodsRequest        ActionType = "WOOCOMMERCE_SHIPPING_ZONE_METHODS_REQUEST"
	TypeShippingZoneMethodsRequestSuccess ActionType = "WOOCOMMERCE_SHIPPING_ZONE_METHODS_REQUEST_SUCCESS"
	TypeShippingZoneMethodsRequestFailure ActionType = "WOOCOMMERCE_SHIPPING_ZONE_METHODS_REQUEST_FAILURE"

	TypeProductsRequest        ActionType = "WOOCOMMERCE_PRODUCTS_REQUEST"
	TypeProductsRequestSuccess ActionType = "WOOCOMMERCE_PRODUCTS_REQUEST_SUCCESS"
	TypeProductsRequestFailure ActionType = "WOOCOMMERCE_PRODUCTS_REQUEST_FAILURE"

	TypeSetupChoicesRequest        ActionType = "WOOCOMMERCE_SETUP_CHOICES_REQUEST"
	TypeSetupChoicesRequestSuccess ActionType = "WOOCOMMERCE_SETUP_CHOICES_REQUEST_SUCCESS"
	TypeSetupChoicesRequestFailure ActionType = "WOOCOMMERCE_SETUP_CHOICES_REQUEST_FAILURE"
	TypeSetupChoiceUpdateSuccess   ActionType = "WOOCOMMERCE_SETUP_CHOICE_UPDATE_SUCCESS"

	TypeSiteSelect              ActionType = "SELECTED_SITE_SET"
	TypeShippingZoneAddNew      ActionType = "WOOCOMMERCE_SHIPPING_ZONE_ADD_NEW"
	TypeShippingZoneOpenForEdit ActionType = "WOOCOMMERCE_SHIPPING_ZONE_OPEN_FOR_EDIT"
	TypeShippingZoneEditName    ActionType = "WOOCOMMERCE_SHIPPING_ZONE_EDIT_NAME"
	TypeShippingZoneEditOrder   ActionType = "WOOCOMMERCE_SHIPPING_ZONE_EDIT_ORDER"
	TypeShippingZoneEditClose   ActionType = "WOOCOMMERCE_SHIPPING_ZONE_EDIT_CLOSE"
)

// Action is a message applied to the store by the reducers.
type Action interface {
	ActionType() ActionType
}

// SiteScoped actions address the sub-tree of one site.
type SiteScoped interface {
	Action
	Site() int64
}

// --- Shipping zones ---

type ShippingZonesRequest struct{ SiteID int64 }

type ShippingZonesRequestSuccess struct {
	SiteID int64
	Data   []domain.ShippingZone
}

type ShippingZonesRequestFailure struct {
	SiteID int64
	Err    *domain.TransportError
}

// ShippingZoneUpdateSuccess upserts one saved zone.
type ShippingZoneUpdateSuccess struct {
	SiteID int64
	Data   domain.ShippingZone
}

type ShippingZoneDeleteSuccess struct {
	SiteID int64
	ZoneID int64
}

func (ShippingZonesRequest) ActionType() ActionType        { return TypeShippingZonesRequest }
func (ShippingZonesRequestSuccess) ActionType() ActionType { return TypeShippingZonesRequestSuccess }
func (ShippingZonesRequestFailure) ActionType() ActionType { return TypeShippingZonesRequestFailure }
func (ShippingZoneUpdateSuccess) ActionType() ActionType   { return TypeShippingZoneUpdateSuccess }
func (ShippingZoneDeleteSuccess) ActionType() ActionType   { return TypeShippingZoneDeleteSuccess }

func (a ShippingZonesRequest) Site() int64        { return a.SiteID }
func (a ShippingZonesRequestSuccess) Site() int64 { return a.SiteID }
func (a ShippingZonesRequestFailure) Site() int64 { return a.SiteID }
func (a ShippingZoneUpdateSuccess) Site() int64   { return a.SiteID }
func (a ShippingZoneDeleteSuccess) Site() int64   { return a.SiteID }

func RequestShippingZones(siteID int64) ShippingZonesRequest {
	return ShippingZonesRequest{SiteID: siteID}
}

func RequestShippingZonesSuccess(siteID int64, zones []domain.ShippingZone) ShippingZonesRequestSuccess {
	return ShippingZonesRequestSuccess{SiteID: siteID, Data: zones}
}

func RequestShippingZonesFailure(siteID int64, err *domain.TransportError) ShippingZonesRequestFailure {
	return ShippingZonesRequestFailure{SiteID: siteID, Err: err}
}

func UpdateShippingZoneSuccess(siteID int64, zone domain.ShippingZone) ShippingZoneUpdateSuccess {
	return ShippingZoneUpdateSuccess{SiteID: siteID, Data: zone}
}

func DeleteShippingZoneSuccess(siteID, zoneID int64) ShippingZoneDeleteSuccess {
	return ShippingZoneDeleteSuccess{SiteID: siteID, ZoneID: zoneID}
}

// --- Shipping zone methods ---

type ShippingZoneMethodsRequest struct {
	SiteID int64
	ZoneID int64
}

type ShippingZoneMethodsRequestSuccess struct {
	SiteID int64
	ZoneID int64
	Data   []domain.ShippingZoneMethod
}

type ShippingZoneMethodsRequestFailure struct {
	SiteID int64
	ZoneID int64
	Err    *domain.TransportError
}

func (ShippingZoneMethodsRequest) ActionType() ActionType { return TypeShippingZoneMethodsRequest }
func (ShippingZoneMethodsRequestSuccess) ActionType() ActionType {
	return TypeShippingZoneMethodsRequestSuccess
}
func (ShippingZoneMethodsRequestFailure) ActionType() ActionType {
	return TypeShippingZoneMethodsRequestFailure
}

func (a ShippingZoneMethodsRequest) Site() int64        { return a.SiteID }
func (a ShippingZoneMethodsRequestSuccess) Site() int64 { return a.SiteID }
func (a ShippingZoneMethodsRequestFailure) Site() int64 { return a.SiteID }

func RequestShippingZoneMethods(siteID, zoneID int64) ShippingZoneMethodsRequest {
	return ShippingZoneMethodsRequest{SiteID: siteID, ZoneID: zoneID}
}

func RequestShippingZoneMethodsSuccess(siteID, zoneID int64, methods []domain.ShippingZoneMethod) ShippingZoneMethodsRequestSuccess {
	return ShippingZoneMethodsRequestSuccess{SiteID: siteID, ZoneID: zoneID, Data: methods}
}

func RequestShippingZoneMethodsFailure(siteID, zoneID int64, err *domain.TransportError) ShippingZoneMethodsRequestFailure {
	return ShippingZoneMethodsRequestFailure{SiteID: siteID, ZoneID: zoneID, Err: err}
}

// --- Products ---

type ProductsRequest struct {
	SiteID int64
	Page   int
}

type ProductsRequestSuccess struct {
	SiteID        int64
	Page          int
	TotalPages    int
	TotalProducts int
	Products      []domain.Product
}

type ProductsRequestFailure struct {
	SiteID int64
	Page   int
	Err    *domain.TransportError
}

func (ProductsRequest) ActionType() ActionType        { return TypeProductsRequest }
func (ProductsRequestSuccess) ActionType() ActionType { return TypeProductsRequestSuccess }
func (ProductsRequestFailure) ActionType() ActionType { return TypeProductsRequestFailure }

func (a ProductsRequest) Site() int64        { return a.SiteID }
func (a ProductsRequestSuccess) Site() int64 { return a.SiteID }
func (a ProductsRequestFailure) Site() int64 { return a.SiteID }

func RequestProducts(siteID int64, page int) ProductsRequest {
	return ProductsRequest{SiteID: siteID, Page: page}
}

func RequestProductsSuccess(siteID int64, page, totalPages, totalProducts int, products []domain.Product) ProductsRequestSuccess {
	return ProductsRequestSuccess{
		SiteID:        siteID,
		Page:          page,
		TotalPages:    totalPages,
		TotalProducts: totalProducts,
		Products:      products,
	}
}

func RequestProductsFailure(siteID int64, page int, err *domain.TransportError) ProductsRequestFailure {
	return ProductsRequestFailure{SiteID: siteID, Page: page, Err: err}
}

// --- Setup choices ---

type SetupChoicesRequest struct{ SiteID int64 }

type SetupChoicesRequestSuccess struct {
	SiteID int64
	Data   domain.SetupChoices
}

type SetupChoicesRequestFailure struct {
	SiteID int64
	Err    *domain.TransportError
}

type SetupChoiceUpdateSuccess struct {
	SiteID int64
	Choice string
	Value  bool
}

func (SetupChoicesRequest) ActionType() ActionType        { return TypeSetupChoicesRequest }
func (SetupChoicesRequestSuccess) ActionType() ActionType { return TypeSetupChoicesRequestSuccess }
func (SetupChoicesRequestFailure) ActionType() ActionType { return TypeSetupChoicesRequestFailure }
func (SetupChoiceUpdateSuccess) ActionType() ActionType   { return TypeSetupChoiceUpdateSuccess }

func (a SetupChoicesRequest) Site() int64        { return a.SiteID }
func (a SetupChoicesRequestSuccess) Site() int64 { return a.SiteID }
func (a SetupChoicesRequestFailure) Site() int64 { return a.SiteID }
func (a SetupChoiceUpdateSuccess) Site() int64   { return a.SiteID }

func RequestSetupChoices(siteID int64) SetupChoicesRequest {
	return SetupChoicesRequest{SiteID: siteID}
}

func RequestSetupChoicesSuccess(siteID int64, choices domain.SetupChoices) SetupChoicesRequestSuccess {
	return SetupChoicesRequestSuccess{SiteID: siteID, Data: choices}
}

func RequestSetupChoicesFailure(siteID int64, err *domain.TransportError) SetupChoicesRequestFailure {
	return SetupChoicesRequestFailure{SiteID: siteID, Err: err}
}

func UpdateSetupChoiceSuccess(siteID int64, choice string, value bool) SetupChoiceUpdateSuccess {
	return SetupChoiceUpdateSuccess{SiteID: siteID, Choice: choice, Value: value}
}

// --- UI ---

// SiteSelect is not site scoped: it sets the console-wide selection.
type SiteSelect struct{ SiteID int64 }

type ShippingZoneAddNew struct{ SiteID int64 }

// ShippingZoneOpenForEdit carries a copy of the zone so the draft can be
// seeded without reading entity state from the UI reducer.
type ShippingZoneOpenForEdit struct {
	SiteID int64
	Zone   domain.ShippingZone
}

type ShippingZoneEditName struct {
	SiteID int64
	Name   string
}

type ShippingZoneEditOrder struct {
	SiteID int64
	Order  int
}

type ShippingZoneEditClose struct{ SiteID int64 }

func (SiteSelect) ActionType() ActionType              { return TypeSiteSelect }
func (ShippingZoneAddNew) ActionType() ActionType      { return TypeShippingZoneAddNew }
func (ShippingZoneOpenForEdit) ActionType() ActionType { return TypeShippingZoneOpenForEdit }
func (ShippingZoneEditName) ActionType() ActionType    { return TypeShippingZoneEditName }
func (ShippingZoneEditOrder) ActionType() ActionType   { return TypeShippingZoneEditOrder }
func (ShippingZoneEditClose) ActionType() ActionType   { return TypeShippingZoneEditClose }

func (a ShippingZoneAddNew) Site() int64      { return a.SiteID }
func (a ShippingZoneOpenForEdit) Site() int64 { return a.SiteID }
func (a ShippingZoneEditName) Site() int64    { return a.SiteID }
func (a ShippingZoneEditOrder) Site() int64   { return a.SiteID }
func (a ShippingZoneEditClose) Site() int64   { return a.SiteID }

func SelectSite(siteID int64) SiteSelect {
	return SiteSelect{SiteID: siteID}
}

func AddNewShippingZone(siteID int64) ShippingZoneAddNew {
	return ShippingZoneAddNew{SiteID: siteID}
}

func OpenShippingZoneForEdit(siteID int64, zone domain.ShippingZone) ShippingZoneOpenForEdit {
	return ShippingZoneOpenForEdit{SiteID: siteID, Zone: zone}
}

func EditShippingZoneName(siteID int64, name string) ShippingZoneEditName {
	return ShippingZoneEditName{SiteID: siteID, Name: name}
}

func EditShippingZoneOrder(siteID int64, order int) ShippingZoneEditOrder {
	return ShippingZoneEditOrder{SiteID: siteID, Order: order}
}

func CloseShippingZoneEdit(siteID int64) ShippingZoneEditClose {
	return ShippingZoneEditClose{SiteID: siteID}
}
