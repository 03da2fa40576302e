package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAction(t *testing.T) {
	m := New("test")

	m.RecordAction("WOOCOMMERCE_SHIPPING_ZONES_REQUEST", true, 4)
	m.RecordAction("WOOCOMMERCE_SHIPPING_ZONES_REQUEST", true, 5)
	m.RecordAction("WOOCOMMERCE_SHIPPING_ZONE_EDIT_CLOSE", false, 5)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ActionsDispatched.WithLabelValues("WOOCOMMERCE_SHIPPING_ZONES_REQUEST", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActionsDispatched.WithLabelValues("WOOCOMMERCE_SHIPPING_ZONE_EDIT_CLOSE", "false")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.StoreRevision))
}

func TestHandlerExposesGatewayMetrics(t *testing.T) {
	m := New("test")
	m.RecordGatewayRequest(http.MethodGet, 200, 20*time.Millisecond)
	m.SetCircuitBreakerState("gateway", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `test_gateway_requests_total{method="GET",status="200"} 1`))
	assert.True(t, strings.Contains(body, `test_circuit_breaker_state{name="gateway"} 2`))
}
