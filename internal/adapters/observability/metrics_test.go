package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"luxe_haven/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/rooms", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("/rooms", "GET", 401, 3*time.Millisecond)
	observability.ObserveRefresh(true)
	observability.ObserveNotification("error")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"frontdesk_http_requests_total",
		"frontdesk_api_requests_total",
		"frontdesk_token_refreshes_total",
		"frontdesk_notifications_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
