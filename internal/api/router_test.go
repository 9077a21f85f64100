package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := config.NewDefaultConfig()
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return api.NewRouter(api.Services{
		System:     testutil.NewTestSystemService(t, db),
		Investment: testutil.NewTestInvestmentService(t, db),
		Export:     testutil.NewTestExportService(t, db),
		Chart:      testutil.NewTestChartService(t, db),
		Snapshot:   testutil.NewTestSnapshotService(t, db),
	}, cfg)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/system/version", "", http.StatusOK},
		{http.MethodGet, "/api/investment", "", http.StatusOK},
		{http.MethodGet, "/api/investment/catalog", "", http.StatusOK},
		{http.MethodGet, "/api/investment/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/api/investment/3d6f1c2e-1b7a-4a51-9a4e-2f3c7a0b9d11", "", http.StatusNotFound},
		{http.MethodGet, "/api/portfolio", "", http.StatusOK},
		{http.MethodGet, "/api/portfolio/export", "", http.StatusOK},
		{http.MethodGet, "/api/portfolio/allocation/chart", "", http.StatusNotFound},
		{http.MethodGet, "/api/portfolio/history", "", http.StatusOK},
		{http.MethodPost, "/api/portfolio/snapshot", "", http.StatusCreated},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := serve(router, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_InvestmentLifecycle(t *testing.T) {
	router := setupRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodPost, "/api/investment",
		strings.NewReader(`{"id":"3d6f1c2e-1b7a-4a51-9a4e-2f3c7a0b9d11","name":"Gold","invested":1000}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	path := "/api/investment/3d6f1c2e-1b7a-4a51-9a4e-2f3c7a0b9d11"

	w = serve(router, httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"current":1200}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
	if !strings.Contains(w.Body.String(), `"current":1200`) {
		t.Errorf("Expected updated current value in portfolio, got %s", w.Body.String())
	}

	w = serve(router, httptest.NewRequest(http.MethodDelete, path, nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	const apiKey = "router-test-key"
	t.Setenv("INTERNAL_API_KEY", apiKey)

	router := setupRouter(t)

	t.Run("clear requires credentials", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodDelete, "/api/investment", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("import requires credentials", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodPost, "/api/investment/import", strings.NewReader(`[]`)))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("import and clear succeed with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/investment/import?replace=true",
			strings.NewReader(`[{"name":"A","invested":"10"},{"name":"B","invested":"20"}]`))
		req.Header.Set("X-API-Key", apiKey)
		req.Header.Set("X-Time-Token", middleware.GenerateTimeToken(apiKey))

		w := serve(router, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		req = httptest.NewRequest(http.MethodDelete, "/api/investment", nil)
		req.Header.Set("X-API-Key", apiKey)
		req.Header.Set("X-Time-Token", middleware.GenerateTimeToken(apiKey))

		w = serve(router, req)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"deleted":2`) {
			t.Errorf("Expected 2 deleted, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRouter_CORS(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/investment", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := serve(router, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin, got %q", got)
	}
}
