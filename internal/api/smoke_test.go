// Package api_test runs HTTP-level smoke tests using net/http/httptest.
// These tests do NOT require a PostgreSQL database — they verify:
//   - Gin router routing and middleware wiring
//   - Request validation error responses (400)
//   - JWT auth middleware (401 without token, 401 with bad token)
//   - Response format consistency (success/error envelope)
//   - CORS preflight handling
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

func testCfg() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Env:  "development",
			Port: "8080",
		},
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret-abcdefghijklmnop",
			RefreshSecret: "test-refresh-secret-abcdefghijklmnop",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    30 * 24 * time.Hour,
		},
		Funding: config.FundingConfig{
			CurrencyPrecision: 2,
			AllocateRemainder: true,
			ScanTimeout:       10 * time.Second,
		},
	}
}

// buildTestRouter creates a Gin engine with a real AuthService (no DB needed
// for token parsing) and nil for everything that requires a DB.
func buildTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testCfg()
	// NewAuthService with a nil repo works for ParseAccessToken (secret-only op)
	authSvc := service.NewAuthService(nil, cfg)

	r := api.SetupRouter(api.RouterDeps{
		AuthSvc:         authSvc,
		ProjectSvc:      nil,
		InvestmentSvc:   nil,
		DistributionSvc: nil,
		CreatorSvc:      nil,
		InsightSvc:      nil,
		Hub:             nil,
		Cfg:             cfg,
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("response is not valid JSON: %v — body: %s", err, rr.Body.String())
	}
	return m
}

// ── /health ───────────────────────────────────────────────────────────────────

func TestHealthEndpoint(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rr.Code)
	}
}

// ── Auth endpoints — validation layer ─────────────────────────────────────────

func TestRegister_MissingFields(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/auth/register", `{}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/auth/register empty body = %d, want 400", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != false {
		t.Errorf("response.success should be false on error, got %v", body["success"])
	}
	if body["code"] == nil {
		t.Errorf("error envelope missing 'code', got: %v", body)
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"email":"notanemail","password":"password123","role":"FAN"}`
	rr := do(t, h, http.MethodPost, "/api/auth/register", payload, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("register with invalid email = %d, want 400", rr.Code)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"email":"user@example.com","password":"password123","role":"WIZARD"}`
	rr := do(t, h, http.MethodPost, "/api/auth/register", payload, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("register with unknown role = %d, want 400", rr.Code)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"email":"user@example.com","password":"short","role":"FAN"}`
	rr := do(t, h, http.MethodPost, "/api/auth/register", payload, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("register with short password = %d, want 400", rr.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/auth/login", `{}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /api/auth/login empty = %d, want 400", rr.Code)
	}
}

// ── JWT auth middleware (no token → 401) ──────────────────────────────────────

func TestMe_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/me without token = %d, want 401", rr.Code)
	}
}

func TestMyInvestments_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/investments/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/investments/me without token = %d, want 401", rr.Code)
	}
}

func TestInvest_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"amount":"100.00"}`
	rr := do(t, h, http.MethodPost, "/api/projects/11111111-1111-1111-1111-111111111111/invest", payload, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/projects/:id/invest without token = %d, want 401", rr.Code)
	}
}

func TestRevenueReport_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"total_revenue":"5000.00"}`
	rr := do(t, h, http.MethodPost, "/api/projects/11111111-1111-1111-1111-111111111111/revenue-report", payload, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/projects/:id/revenue-report without token = %d, want 401", rr.Code)
	}
}

func TestCreateProject_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"title":"Demo","description":"x","goal_amount":"1000"}`
	rr := do(t, h, http.MethodPost, "/api/projects", payload, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/projects without token = %d, want 401", rr.Code)
	}
}

func TestRecalculateCompatibility_NoToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"target_id":"11111111-1111-1111-1111-111111111111","target_type":"BRAND"}`
	rr := do(t, h, http.MethodPost, "/api/compatibility/recalculate", payload, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("POST /api/compatibility/recalculate without token = %d, want 401", rr.Code)
	}
}

// ── JWT auth middleware (invalid token → 401) ─────────────────────────────────

func TestMe_InvalidToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/me", "", map[string]string{
		"Authorization": "Bearer not.a.valid.jwt",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/me with bad JWT = %d, want 401", rr.Code)
	}
}

func TestInvest_InvalidToken_Returns401(t *testing.T) {
	h := buildTestRouter(t)
	payload := `{"amount":"100.00"}`
	// A well-formed JWT header+payload but wrong secret → ParseAccessToken will reject it
	fakeJWT := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" +
		".eyJzdWIiOiIxMjM0NTY3ODkwIiwicm9sZSI6IkZBTiIsInR5cGUiOiJhY2Nlc3MifQ" +
		".BADSIG"
	rr := do(t, h, http.MethodPost, "/api/projects/11111111-1111-1111-1111-111111111111/invest", payload, map[string]string{
		"Authorization": "Bearer " + fakeJWT,
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("invest with invalid JWT = %d, want 401", rr.Code)
	}
}

// ── Public catalogue endpoints ────────────────────────────────────────────────

func TestPublicProjects_IsPublic(t *testing.T) {
	h := buildTestRouter(t)
	// No token: should NOT be 401. Will be 500 (nil projectSvc) — that's acceptable.
	rr := do(t, h, http.MethodGet, "/api/projects/public", "", nil)
	if rr.Code == http.StatusUnauthorized {
		t.Error("GET /api/projects/public should be a public endpoint (no 401)")
	}
	t.Logf("GET /api/projects/public = %d (not 401, public route OK)", rr.Code)
}

func TestDiscoverCreators_IsPublic(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/discover/creators", "", nil)
	if rr.Code == http.StatusUnauthorized {
		t.Error("GET /api/discover/creators should be public (no 401)")
	}
}

func TestCompatibilityScore_IsPublic(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/compatibility/creator/11111111-1111-1111-1111-111111111111", "", nil)
	if rr.Code == http.StatusUnauthorized {
		t.Error("GET /api/compatibility/creator/:id should be public (no 401)")
	}
}

// ── Error envelope format ─────────────────────────────────────────────────────

func TestErrorEnvelope_HasRequiredFields(t *testing.T) {
	h := buildTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/auth/register", `{}`, nil)
	body := decodeBody(t, rr)

	for _, field := range []string{"success", "error", "code"} {
		if _, ok := body[field]; !ok {
			t.Errorf("error envelope missing field %q, got: %v", field, body)
		}
	}
	if body["success"] != false {
		t.Errorf("error envelope.success = %v, want false", body["success"])
	}
}

// ── CORS headers ──────────────────────────────────────────────────────────────

func TestCORSOptionsRequest(t *testing.T) {
	h := buildTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("OPTIONS preflight = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want * in dev mode", got)
	}
}
