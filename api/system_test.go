package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ascendhq/ascend/api"
)

func TestHealthHandler(t *testing.T) {
	h := &api.SystemHandler{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HealthHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(w.Body.String(), `"service":"ascend"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestVersionHandler(t *testing.T) {
	h := &api.SystemHandler{}
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	h.VersionHandler("1.2.3", "2026-08-28T00:00:00Z")(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"version":"1.2.3"`) || !strings.Contains(body, "2026-08-28") {
		t.Fatalf("unexpected body: %s", body)
	}
}
