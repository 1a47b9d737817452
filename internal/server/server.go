// Package server exposes the goal-planning calculators over HTTP. All state
// is fixed at construction time (the return table and default inflation
// rate), so the handler is safe for any number of concurrent requests.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/riskgoal/riskgoal/internal/config"
	"github.com/riskgoal/riskgoal/pkg/mathutil"
	"github.com/riskgoal/riskgoal/pkg/planner"
	"go.uber.org/zap"
)

type handler struct {
	logger           *zap.Logger
	returns          planner.ReturnTable
	defaultInflation float64
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, cfg *config.Configuration) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &config.Configuration{}
	}

	h := &handler{
		logger:           logger,
		returns:          cfg.ReturnTable(),
		defaultInflation: cfg.DefaultInflationRate(),
	}

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestLogMiddleware(logger))

	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/risk-to-goal", h.handleRiskToGoal).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/projected-sip", h.handleProjectedSIP).Methods(http.MethodGet, http.MethodOptions)
	// Route name kept from an earlier revision of the API.
	router.HandleFunc("/projected-corpus", h.handleProjectedSIP).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/projected-lumpsum", h.handleProjectedLumpsum).Methods(http.MethodGet, http.MethodOptions)

	return router
}

type goalResponse struct {
	Inputs  goalInputs  `json:"inputs"`
	Outputs goalOutputs `json:"outputs"`
}

type goalInputs struct {
	TargetCorpusToday float64          `json:"target_corpus_today"`
	RiskLevel         planner.RiskTier `json:"risk_level"`
	Years             int              `json:"years"`
	AssumedInflation  float64          `json:"assumed_inflation"`
	AssumedReturn     float64          `json:"assumed_return"`
}

type goalOutputs struct {
	InflationAdjustedTargetFV float64 `json:"inflation_adjusted_target_fv"`
	EstimatedMonthlySIP       float64 `json:"estimated_monthly_sip"`
	EstimatedLumpsum          float64 `json:"estimated_lumpsum"`
}

type projectionResponse struct {
	Inputs  projectionInputs  `json:"inputs"`
	Outputs projectionOutputs `json:"outputs"`
}

type projectionInputs struct {
	MonthlySIP    *float64         `json:"monthly_sip,omitempty"`
	Lumpsum       *float64         `json:"lumpsum,omitempty"`
	RiskLevel     planner.RiskTier `json:"risk_level"`
	Years         int              `json:"years"`
	AssumedReturn float64          `json:"assumed_return"`
}

type projectionOutputs struct {
	ProjectedCorpusFV float64 `json:"projected_corpus_fv"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleRiskToGoal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRiskToGoal"
	query := r.URL.Query()

	targetCorpus, err := parsePositiveFloat(query, "target_corpus")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	tier, err := parseRiskLevel(query)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	years, err := parsePositiveInt(query, "years")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	inflation, err := parseInflation(query, h.defaultInflation)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	annualReturn, err := h.returns.AnnualReturn(tier)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	inflatedGoal := planner.InflateGoal(targetCorpus, years, inflation)
	monthlySIP := planner.SIPRequired(inflatedGoal, annualReturn, years)
	lumpsum := planner.LumpsumRequired(inflatedGoal, annualReturn, years)

	h.logger.Info("goal plan computed",
		zap.String("op", op),
		zap.String("risk_level", string(tier)),
		zap.Int("years", years),
		zap.Float64("inflated_goal", inflatedGoal),
		zap.Float64("monthly_sip", monthlySIP),
	)

	h.writeJSON(w, http.StatusOK, goalResponse{
		Inputs: goalInputs{
			TargetCorpusToday: mathutil.Round(targetCorpus),
			RiskLevel:         tier,
			Years:             years,
			AssumedInflation:  inflation,
			AssumedReturn:     annualReturn,
		},
		Outputs: goalOutputs{
			InflationAdjustedTargetFV: mathutil.RoundWhole(inflatedGoal),
			EstimatedMonthlySIP:       mathutil.RoundWhole(monthlySIP),
			EstimatedLumpsum:          mathutil.RoundWhole(lumpsum),
		},
	})
}

func (h *handler) handleProjectedSIP(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectedSIP"
	query := r.URL.Query()

	monthlySIP, err := parsePositiveFloat(query, "monthly_sip")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	tier, err := parseRiskLevel(query)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	years, err := parsePositiveInt(query, "years")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	annualReturn, err := h.returns.AnnualReturn(tier)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	projected := planner.FutureValueOfSIP(monthlySIP, annualReturn, years)

	h.logger.Info("SIP projection computed",
		zap.String("op", op),
		zap.String("risk_level", string(tier)),
		zap.Int("years", years),
		zap.Float64("projected_corpus", projected),
	)

	echoedSIP := mathutil.Round(monthlySIP)
	h.writeJSON(w, http.StatusOK, projectionResponse{
		Inputs: projectionInputs{
			MonthlySIP:    &echoedSIP,
			RiskLevel:     tier,
			Years:         years,
			AssumedReturn: annualReturn,
		},
		Outputs: projectionOutputs{
			ProjectedCorpusFV: mathutil.RoundWhole(projected),
		},
	})
}

func (h *handler) handleProjectedLumpsum(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectedLumpsum"
	query := r.URL.Query()

	lumpsum, err := parsePositiveFloat(query, "lumpsum")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	tier, err := parseRiskLevel(query)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	years, err := parsePositiveInt(query, "years")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	annualReturn, err := h.returns.AnnualReturn(tier)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	projected := planner.FutureValueOfLumpsum(lumpsum, annualReturn, years)

	h.logger.Info("lumpsum projection computed",
		zap.String("op", op),
		zap.String("risk_level", string(tier)),
		zap.Int("years", years),
		zap.Float64("projected_corpus", projected),
	)

	echoedLumpsum := mathutil.Round(lumpsum)
	h.writeJSON(w, http.StatusOK, projectionResponse{
		Inputs: projectionInputs{
			Lumpsum:       &echoedLumpsum,
			RiskLevel:     tier,
			Years:         years,
			AssumedReturn: annualReturn,
		},
		Outputs: projectionOutputs{
			ProjectedCorpusFV: mathutil.RoundWhole(projected),
		},
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
