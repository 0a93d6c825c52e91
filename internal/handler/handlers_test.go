package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/levinOo/homewizard-p1-exporter/internal/models"
	"github.com/levinOo/homewizard-p1-exporter/internal/registry"
	"go.uber.org/zap"
)

func TestRouter(t *testing.T) {
	type want struct {
		code        int
		contentType string
		body        string
	}

	tests := []struct {
		name   string
		url    string
		method string
		want   want
	}{
		{
			name:   "MetricsHandler / Exposition document",
			url:    "/metrics",
			method: http.MethodGet,
			want: want{
				code:        http.StatusOK,
				contentType: "text/plain; version=0.0.4; charset=utf-8",
				body:        "homewizard_p1_active_power_watts 1500\n",
			},
		},
		{
			name:   "RootHandler / Landing page links to metrics",
			url:    "/",
			method: http.MethodGet,
			want: want{
				code:        http.StatusOK,
				contentType: "text/html",
				body:        `<a href="/metrics">`,
			},
		},
		{
			name:   "Unknown path",
			url:    "/api/v1/data",
			method: http.MethodGet,
			want: want{
				code: http.StatusNotFound,
			},
		},
		{
			name:   "Unknown method on metrics path",
			url:    "/metrics",
			method: http.MethodPost,
			want: want{
				code: http.StatusNotFound,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.NewRegistry()
			reg.Apply(&models.Snapshot{ActivePowerW: 1500.0, ActiveTariff: 1})

			r := NewRouter(reg, zap.NewNop().Sugar())

			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.want.code {
				t.Errorf("got status: %d, want: %d", rec.Code, tt.want.code)
			}

			if tt.want.contentType != "" {
				if got := rec.Header().Get("Content-Type"); got != tt.want.contentType {
					t.Errorf("got content type: %q, want: %q", got, tt.want.contentType)
				}
			}

			if tt.want.body != "" && !strings.Contains(rec.Body.String(), tt.want.body) {
				t.Errorf("body does not contain %q:\n%s", tt.want.body, rec.Body.String())
			}
		})
	}
}

// TestMetricsHandlerInitialState проверяет scrape до первого успешного опроса:
// скалярные ряды по нулям, лейбловых кортежей нет.
func TestMetricsHandlerInitialState(t *testing.T) {
	reg := registry.NewRegistry()
	r := NewRouter(reg, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status: %d, want: %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "homewizard_p1_power_import_total_kwh 0\n") {
		t.Errorf("initial scrape is missing zeroed scalar series:\n%s", body)
	}
	if strings.Contains(body, "homewizard_p1_meter_info") {
		t.Errorf("initial scrape leaks info tuples:\n%s", body)
	}
}
