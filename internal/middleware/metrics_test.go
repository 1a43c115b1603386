package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

type mockRequestRecorder struct {
	records []recordedRequest
}

func (m *mockRequestRecorder) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.records = append(m.records, recordedRequest{method: method, route: route, status: statusCode})
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	recorder := &mockRequestRecorder{}
	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(recorder))
	r.Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks/0b7f6a8e-1111-4c1e-9c55-0d1c2b3a4f5e", nil))

	if len(recorder.records) != 1 {
		t.Fatalf("records = %d, want 1", len(recorder.records))
	}
	got := recorder.records[0]
	if got.method != "GET" || got.route != "/api/tasks/{id}" || got.status != http.StatusNotFound {
		t.Errorf("record = %+v", got)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	recorder := &mockRequestRecorder{}
	handler := NewMetricsMiddleware(recorder)(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(recorder.records) != 1 || recorder.records[0].route != "unmatched" {
		t.Errorf("records = %+v", recorder.records)
	}
}
