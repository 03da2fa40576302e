package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeconsole-backend/internal/domain"
	infracache "storeconsole-backend/internal/infrastructure/cache"
	"storeconsole-backend/internal/state"
	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/utils"
)

const testSiteID int64 = 123

// stubGateway serves canned JSON by "METHOD path".
type stubGateway struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
}

func newStubGateway() *stubGateway {
	return &stubGateway{replies: map[string]string{}, errs: map[string]error{}}
}

func (g *stubGateway) reply(method, path, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[method+" "+path] = body
}

func (g *stubGateway) fail(method, path string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[method+" "+path] = err
}

func (g *stubGateway) do(method, path string) (*domain.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.errs[method+" "+path]; ok {
		return nil, err
	}
	body, ok := g.replies[method+" "+path]
	if !ok {
		return nil, &domain.TransportError{Code: "rest_no_route", Status: 404}
	}
	return &domain.Response{Data: json.RawMessage(body), TotalPages: 2, Total: 12}, nil
}

func (g *stubGateway) Get(_ context.Context, _ int64, path string, _ url.Values) (*domain.Response, error) {
	return g.do("GET", path)
}

func (g *stubGateway) Post(_ context.Context, _ int64, path string, _ interface{}) (*domain.Response, error) {
	return g.do("POST", path)
}

func (g *stubGateway) Put(_ context.Context, _ int64, path string, _ interface{}) (*domain.Response, error) {
	return g.do("PUT", path)
}

func (g *stubGateway) Delete(_ context.Context, _ int64, path string) (*domain.Response, error) {
	return g.do("DELETE", path)
}

type apiFixture struct {
	mux   *http.ServeMux
	store *state.Store
	gw    *stubGateway
	token string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	utils.SetSecret("handler-secret")
	token, err := utils.GenerateJWT("op-1", "ops@example.com", "manager", []int64{testSiteID}, time.Hour)
	require.NoError(t, err)

	store := state.NewStore()
	gw := newStubGateway()
	gw.reply("GET", "/wc/v3/shipping/zones", `[{"id":0,"name":"Rest","order":0},{"id":1,"name":"USA","order":0}]`)
	gw.reply("GET", "/wc/v3/shipping/zones/1/methods", `[{"instance_id":7,"title":"Flat rate","method_id":"flat_rate","enabled":true}]`)
	gw.reply("GET", "/wc/v3/shipping/zones/0/methods", `[]`)

	views := infracache.NewMemoryCache(time.Minute, time.Minute)
	shipping := usecase.NewShippingUsecase(store, gw, views, time.Minute)
	catalog := usecase.NewCatalogUsecase(store, gw, 10)
	setup := usecase.NewSetupUsecase(store, gw)

	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Shipping: NewShippingHandler(shipping, store),
		Catalog:  NewCatalogHandler(catalog),
		Setup:    NewSetupHandler(setup),
		UI:       NewUIHandler(shipping, store),
	}, SiteResolver(store))

	return &apiFixture{mux: mux, store: store, gw: gw, token: token}
}

func (f *apiFixture) call(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestShippingZones_FetchAndList(t *testing.T) {
	f := newAPIFixture(t)

	w, body := f.call(t, "GET", "/api/v1/sites/123/shipping-zones", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["loaded"])

	w, body = f.call(t, "POST", "/api/v1/sites/123/shipping-zones/fetch", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["loaded"])
	zones := body["zones"].([]interface{})
	require.Len(t, zones, 2)
	first := zones[0].(map[string]interface{})
	assert.Equal(t, "USA", first["name"])
	assert.Len(t, first["methods"], 1)

	w, body = f.call(t, "GET", "/api/v1/sites/123/shipping-zones/1/methods", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "complete", body["status"])

	w, body = f.call(t, "GET", "/api/v1/sites/123/shipping-zone-methods/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "flat_rate", body["methodType"])

	w, _ = f.call(t, "GET", "/api/v1/sites/123/shipping-zone-methods/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.call(t, "GET", "/api/v1/sites/123/shipping-zones/9/methods", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = f.call(t, "GET", "/api/v1/sites/123/shipping-zones/1/method-type-options", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"flat_rate", "free_shipping", "local_pickup"}, body["options"])
}

func TestShippingZones_TransportFailure(t *testing.T) {
	f := newAPIFixture(t)
	f.gw.fail("GET", "/wc/v3/shipping/zones", &domain.TransportError{Code: "rest_forbidden", Message: "nope", Status: 403})

	w, body := f.call(t, "POST", "/api/v1/sites/123/shipping-zones/fetch", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "rest_forbidden", body["code"])
}

func TestSiteAccess(t *testing.T) {
	f := newAPIFixture(t)

	w, _ := f.call(t, "GET", "/api/v1/sites/456/shipping-zones", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.call(t, "GET", "/api/v1/sites/current/shipping-zones", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "no site selected yet")

	w, _ = f.call(t, "PUT", "/api/v1/ui/selected-site", `{"siteId": 456}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := f.call(t, "PUT", "/api/v1/ui/selected-site", `{"siteId": 123}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(123), body["siteId"])

	w, body = f.call(t, "GET", "/api/v1/sites/current/shipping-zones", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["loaded"], "selecting a site loads its zones")

	r := httptest.NewRequest("GET", "/api/v1/sites/123/shipping-zones", nil)
	w = httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestZoneDraftFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.call(t, "POST", "/api/v1/sites/123/shipping-zones/fetch", "")
	f.gw.reply("PUT", "/wc/v3/shipping/zones/1", `{"id":1,"name":"United States","order":3}`)

	w, _ := f.call(t, "PATCH", "/api/v1/sites/123/zone-draft", `{"name":"x"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.call(t, "POST", "/api/v1/sites/123/zone-draft", `{"zoneId": 9}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := f.call(t, "POST", "/api/v1/sites/123/zone-draft", `{"zoneId": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "USA", body["name"])

	w, body = f.call(t, "PATCH", "/api/v1/sites/123/zone-draft", `{"name":"United States","order":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["order"])

	w, body = f.call(t, "POST", "/api/v1/sites/123/zone-draft/save", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "United States", body["name"])

	st := f.store.State()
	assert.Nil(t, state.GetZoneDraft(st, testSiteID))
	zone, ok := state.GetShippingZone(st, testSiteID, 1)
	require.True(t, ok)
	assert.Equal(t, 3, zone.Order)

	w, body = f.call(t, "POST", "/api/v1/sites/123/zone-draft", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["isNew"])
	w, _ = f.call(t, "POST", "/api/v1/sites/123/zone-draft/save", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "name is required")
	w, _ = f.call(t, "DELETE", "/api/v1/sites/123/zone-draft", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOpenDraft_Bodies(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		chunked  bool
		wantCode int
		wantNew  bool
	}{
		{name: "chunked empty body", chunked: true, wantCode: http.StatusCreated, wantNew: true},
		{name: "whitespace only", body: " \n", wantCode: http.StatusCreated, wantNew: true},
		{name: "empty object", body: `{}`, wantCode: http.StatusCreated, wantNew: true},
		{name: "chunked zone id", body: `{"zoneId": 1}`, chunked: true, wantCode: http.StatusCreated},
		{name: "malformed", body: `{"zoneId":`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			f.call(t, "POST", "/api/v1/sites/123/shipping-zones/fetch", "")

			r := httptest.NewRequest(http.MethodPost, "/api/v1/sites/123/zone-draft", strings.NewReader(tt.body))
			if tt.chunked {
				r.ContentLength = -1
			}
			r.Header.Set("Authorization", "Bearer "+f.token)
			w := httptest.NewRecorder()
			f.mux.ServeHTTP(w, r)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusCreated {
				return
			}
			draft := state.GetZoneDraft(f.store.State(), testSiteID)
			require.NotNil(t, draft)
			assert.Equal(t, tt.wantNew, draft.IsNew)
		})
	}
}

func TestDeleteZone(t *testing.T) {
	f := newAPIFixture(t)
	f.call(t, "POST", "/api/v1/sites/123/shipping-zones/fetch", "")
	f.gw.reply("DELETE", "/wc/v3/shipping/zones/1?force=true", `{"id":1}`)

	w, _ := f.call(t, "DELETE", "/api/v1/sites/123/shipping-zones/0", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.call(t, "DELETE", "/api/v1/sites/123/shipping-zones/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, ok := state.GetShippingZone(f.store.State(), testSiteID, 1)
	assert.False(t, ok)
}

func TestProducts(t *testing.T) {
	f := newAPIFixture(t)
	f.gw.reply("GET", "/wc/v3/products", `[{"id":389,"name":"Hoodie"},{"id":15,"name":"Mug"}]`)

	w, body := f.call(t, "POST", "/api/v1/sites/123/products/fetch?page=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Equal(t, float64(2), body["totalPages"])
	assert.Equal(t, float64(12), body["totalProducts"])
	assert.Len(t, body["products"], 2)

	w, body = f.call(t, "GET", "/api/v1/sites/123/products/389", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hoodie", body["name"])

	w, _ = f.call(t, "GET", "/api/v1/sites/123/products/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.call(t, "GET", "/api/v1/sites/123/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupChoices(t *testing.T) {
	f := newAPIFixture(t)
	f.gw.reply("GET", "/wc/v3/setup-choices", `{"opted_out_of_taxes_setup":true}`)
	f.gw.reply("PUT", "/wc/v3/setup-choices", `{}`)

	w, body := f.call(t, "GET", "/api/v1/sites/123/setup-choices", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["loaded"])

	w, body = f.call(t, "POST", "/api/v1/sites/123/setup-choices/fetch", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["optedOutOfTaxesSetup"])

	w, body = f.call(t, "PUT", "/api/v1/sites/123/setup-choices/finished_initial_setup", `{"value": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["finishedInitialSetup"])

	w, _ = f.call(t, "PUT", "/api/v1/sites/123/setup-choices/likes_tea", `{"value": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.call(t, "PUT", "/api/v1/sites/123/setup-choices/finished_initial_setup", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
