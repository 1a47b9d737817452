package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskgoal/riskgoal/internal/config"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), &config.Configuration{})
}

func performGet(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleHealth(t *testing.T) {
	rr := performGet(t, newTestHandler(t), "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestHandleRiskToGoalSuccess(t *testing.T) {
	rr := performGet(t, newTestHandler(t),
		"/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=10&inflation=0.07")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp goalResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Inputs.TargetCorpusToday != 1000000 {
		t.Errorf("expected echoed corpus 1000000, got %v", resp.Inputs.TargetCorpusToday)
	}
	if resp.Inputs.RiskLevel != "moderate" {
		t.Errorf("expected risk level moderate, got %q", resp.Inputs.RiskLevel)
	}
	if resp.Inputs.Years != 10 {
		t.Errorf("expected years 10, got %d", resp.Inputs.Years)
	}
	if resp.Inputs.AssumedInflation != 0.07 {
		t.Errorf("expected inflation 0.07, got %v", resp.Inputs.AssumedInflation)
	}
	if resp.Inputs.AssumedReturn != 0.13 {
		t.Errorf("expected return 0.13, got %v", resp.Inputs.AssumedReturn)
	}

	if resp.Outputs.InflationAdjustedTargetFV != 1967151 {
		t.Errorf("expected inflated goal 1967151, got %v", resp.Outputs.InflationAdjustedTargetFV)
	}
	if resp.Outputs.EstimatedMonthlySIP != 8061 {
		t.Errorf("expected monthly SIP 8061, got %v", resp.Outputs.EstimatedMonthlySIP)
	}
	if resp.Outputs.EstimatedLumpsum != 579500 {
		t.Errorf("expected lumpsum 579500, got %v", resp.Outputs.EstimatedLumpsum)
	}
}

func TestHandleRiskToGoalDefaultInflation(t *testing.T) {
	rr := performGet(t, newTestHandler(t),
		"/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=10")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp goalResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Inputs.AssumedInflation != 0.07 {
		t.Errorf("expected default inflation 0.07, got %v", resp.Inputs.AssumedInflation)
	}
	if resp.Outputs.InflationAdjustedTargetFV != 1967151 {
		t.Errorf("expected inflated goal 1967151, got %v", resp.Outputs.InflationAdjustedTargetFV)
	}
}

func TestHandleRiskToGoalEchoRounding(t *testing.T) {
	rr := performGet(t, newTestHandler(t),
		"/risk-to-goal?target_corpus=123456.789&risk_level=low&years=5")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp goalResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Inputs.TargetCorpusToday != 123456.79 {
		t.Errorf("expected echoed corpus rounded to 123456.79, got %v", resp.Inputs.TargetCorpusToday)
	}
}

func TestHandleProjectedSIPSuccess(t *testing.T) {
	handler := newTestHandler(t)

	for _, route := range []string{"/projected-sip", "/projected-corpus"} {
		rr := performGet(t, handler, route+"?monthly_sip=10000&risk_level=high&years=15")

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d: %s", route, rr.Code, rr.Body.String())
		}

		var resp projectionResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: failed to decode response: %v", route, err)
		}

		if resp.Inputs.MonthlySIP == nil || *resp.Inputs.MonthlySIP != 10000 {
			t.Errorf("%s: expected echoed SIP 10000, got %v", route, resp.Inputs.MonthlySIP)
		}
		if resp.Inputs.Lumpsum != nil {
			t.Errorf("%s: expected no lumpsum echo, got %v", route, *resp.Inputs.Lumpsum)
		}
		if resp.Inputs.AssumedReturn != 0.155 {
			t.Errorf("%s: expected return 0.155, got %v", route, resp.Inputs.AssumedReturn)
		}
		if resp.Outputs.ProjectedCorpusFV != 7026238 {
			t.Errorf("%s: expected projected corpus 7026238, got %v", route, resp.Outputs.ProjectedCorpusFV)
		}
	}
}

func TestHandleProjectedLumpsumSuccess(t *testing.T) {
	rr := performGet(t, newTestHandler(t),
		"/projected-lumpsum?lumpsum=500000&risk_level=moderate&years=10")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp projectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Inputs.Lumpsum == nil || *resp.Inputs.Lumpsum != 500000 {
		t.Errorf("expected echoed lumpsum 500000, got %v", resp.Inputs.Lumpsum)
	}
	if resp.Inputs.MonthlySIP != nil {
		t.Errorf("expected no SIP echo, got %v", *resp.Inputs.MonthlySIP)
	}
	if resp.Outputs.ProjectedCorpusFV != 1697284 {
		t.Errorf("expected projected corpus 1697284, got %v", resp.Outputs.ProjectedCorpusFV)
	}
}

func TestValidationRejections(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing target corpus", target: "/risk-to-goal?risk_level=moderate&years=10"},
		{name: "negative target corpus", target: "/risk-to-goal?target_corpus=-5&risk_level=moderate&years=10"},
		{name: "zero target corpus", target: "/risk-to-goal?target_corpus=0&risk_level=moderate&years=10"},
		{name: "non-numeric target corpus", target: "/risk-to-goal?target_corpus=abc&risk_level=moderate&years=10"},
		{name: "NaN target corpus", target: "/risk-to-goal?target_corpus=NaN&risk_level=moderate&years=10"},
		{name: "missing risk level", target: "/risk-to-goal?target_corpus=1000000&years=10"},
		{name: "unknown risk level", target: "/risk-to-goal?target_corpus=1000000&risk_level=aggressive&years=10"},
		{name: "missing years", target: "/risk-to-goal?target_corpus=1000000&risk_level=moderate"},
		{name: "zero years", target: "/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=0"},
		{name: "fractional years", target: "/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=2.5"},
		{name: "inflation above cap", target: "/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=10&inflation=0.5"},
		{name: "negative inflation", target: "/risk-to-goal?target_corpus=1000000&risk_level=moderate&years=10&inflation=-0.01"},
		{name: "missing monthly sip", target: "/projected-sip?risk_level=high&years=15"},
		{name: "negative monthly sip", target: "/projected-sip?monthly_sip=-100&risk_level=high&years=15"},
		{name: "projected sip zero years", target: "/projected-sip?monthly_sip=10000&risk_level=high&years=0"},
		{name: "missing lumpsum", target: "/projected-lumpsum?risk_level=low&years=5"},
		{name: "zero lumpsum", target: "/projected-lumpsum?lumpsum=0&risk_level=low&years=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performGet(t, handler, tt.target)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] == "" {
				t.Error("expected descriptive error message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/risk-to-goal", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	handler := newTestHandler(t)

	rr := performGet(t, handler, "/health")
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected open CORS origin, got %q", got)
	}

	req := httptest.NewRequest(http.MethodOptions, "/risk-to-goal", nil)
	req.Header.Set("Origin", "https://example.com")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("expected allowed methods header, got %q", got)
	}
}

func TestConfiguredReturnOverride(t *testing.T) {
	override := 0.18
	cfg := &config.Configuration{}
	cfg.Planning.Returns = map[string]float64{"high": override}
	handler := NewHandler(zap.NewNop(), cfg)

	rr := performGet(t, handler, "/projected-lumpsum?lumpsum=100000&risk_level=high&years=10")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp projectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Inputs.AssumedReturn != override {
		t.Errorf("expected overridden return %v, got %v", override, resp.Inputs.AssumedReturn)
	}
	// 100000 * 1.18^10
	if resp.Outputs.ProjectedCorpusFV != 523384 {
		t.Errorf("expected projected corpus 523384, got %v", resp.Outputs.ProjectedCorpusFV)
	}
}
