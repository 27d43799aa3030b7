package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wulf-order-services/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func echoClientID(w http.ResponseWriter, r *http.Request) {
	id, _ := GetClientID(r.Context())
	_, _ = w.Write([]byte(id))
}

func TestClientIDFromHeaderAndQuery(t *testing.T) {
	h := ClientID()(http.HandlerFunc(echoClientID))

	cases := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"header", "/cart", "tab-1", "tab-1"},
		{"query", "/ws/cart?clientId=tab-2", "", "tab-2"},
		{"header wins", "/ws/cart?clientId=tab-2", "tab-3", "tab-3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set(ClientIDHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Body.String() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, rec.Body.String())
			}
			if rec.Header().Get(ClientIDHeader) != tc.want {
				t.Fatalf("expected echoed header %s, got %s", tc.want, rec.Header().Get(ClientIDHeader))
			}
		})
	}
}

func TestClientIDMintsUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	ClientID()(http.HandlerFunc(echoClientID)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("expected minted uuid, got %q: %v", rec.Body.String(), err)
	}
	if rec.Header().Get(ClientIDHeader) != rec.Body.String() {
		t.Fatal("expected minted id to be echoed")
	}
}

func TestRequestIDKeepsCorrelationID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-Id", "corr-1")
	rec := httptest.NewRecorder()
	RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "corr-1" {
		t.Fatalf("expected corr-1, got %s", got)
	}
}

func TestTelemetryLogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(Telemetry(zap.New(core), metrics.New(reg)))
	r.Get("/api/public/menu/{category}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/public/menu/pizza", nil))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["routePattern"] != "/api/public/menu/{category}" {
		t.Fatalf("unexpected route pattern %v", fields["routePattern"])
	}
	if fields["clientError"] != true {
		t.Fatalf("expected clientError flag, got %v", fields["clientError"])
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			for _, metric := range mf.GetMetric() {
				for _, pair := range metric.GetLabel() {
					if pair.GetName() == "route" && pair.GetValue() == "GET /api/public/menu/{category}" {
						found = true
					}
				}
			}
		}
	}
	if !found {
		t.Fatal("expected request counted under its route pattern")
	}
}

func TestTelemetryGroupsUnmatchedPaths(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(Telemetry(zap.New(core), metrics.New(reg)))
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})

	for i := 0; i < 5; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/no-such/%d", i), nil))
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var routes []string
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == "route" {
					routes = append(routes, pair.GetValue())
				}
			}
			if metric.GetCounter().GetValue() != 5 {
				t.Fatalf("expected 5 requests in one series, got %v", metric.GetCounter().GetValue())
			}
		}
	}
	if len(routes) != 1 || routes[0] != unmatchedRoute {
		t.Fatalf("expected a single unmatched series, got %v", routes)
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 5 || entries[4].ContextMap()["path"] != "/no-such/4" {
		t.Fatalf("expected each raw path to be logged, got %d entries", len(entries))
	}
}
