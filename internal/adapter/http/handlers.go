package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/waterborne-risk-service/internal/content"
	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
	"github.com/couchcryptid/waterborne-risk-service/internal/report"
)

type handlers struct {
	reports           ReportSubmitter
	education         EducationSource
	metrics           *observability.Metrics
	healthCenterPhone string
	logger            *slog.Logger
}

type assessmentResponse struct {
	Input             domain.AssessmentInput   `json:"input"`
	Score             int                      `json:"score"`
	MaxScore          int                      `json:"max_score"`
	Tier              domain.RiskTier          `json:"tier"`
	Display           domain.ScoreDisplay      `json:"display"`
	Recommendations   domain.RecommendationSet `json:"recommendations"`
	HealthCenterPhone string                   `json:"health_center_phone,omitempty"`
}

// reportRequest holds the fields a reporter may supply. Identity, timestamps
// and location are assigned server-side.
type reportRequest struct {
	Name           string `json:"name"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Village        string `json:"village"`
	Phone          string `json:"phone"`
	Symptoms       string `json:"symptoms"`
	Duration       string `json:"duration"`
	WaterSource    string `json:"water_source"`
	AdditionalInfo string `json:"additional_info"`
}

func (h *handlers) getCatalogs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.AllCatalogs())
}

func (h *handlers) postAssessment(w http.ResponseWriter, r *http.Request) {
	var in domain.AssessmentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !in.Complete() {
		writeError(w, http.StatusBadRequest, "water_source and rainfall are required")
		return
	}
	if !domain.WaterSources().Contains(in.WaterSourceID) {
		writeError(w, http.StatusBadRequest, "unknown water_source "+in.WaterSourceID)
		return
	}
	if !domain.RainfallLevels().Contains(in.RainfallID) {
		writeError(w, http.StatusBadRequest, "unknown rainfall "+in.RainfallID)
		return
	}
	if in.SymptomIDs == nil {
		in.SymptomIDs = []string{}
	}

	result := domain.ScoreAssessment(in)
	h.metrics.Assessments.WithLabelValues(string(result.Tier)).Inc()
	h.metrics.AssessmentScore.Observe(float64(result.TotalScore))

	resp := assessmentResponse{
		Input:           in,
		Score:           result.TotalScore,
		MaxScore:        domain.MaxScore(),
		Tier:            result.Tier,
		Display:         domain.NewScoreDisplay(result.TotalScore),
		Recommendations: domain.Recommendations(result.Tier),
	}
	if result.Tier == domain.TierHigh {
		resp.HealthCenterPhone = h.healthCenterPhone
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getResetAssessment(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.ResetAssessment())
}

func (h *handlers) getRecommendations(w http.ResponseWriter, r *http.Request) {
	tier, err := domain.ParseRiskTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.Recommendations(tier))
}

func (h *handlers) getEducation(w http.ResponseWriter, r *http.Request) {
	edu, err := h.education.All(requestLanguage(r))
	if err != nil {
		h.logger.Error("localize education", "error", err)
		writeError(w, http.StatusInternalServerError, "education content unavailable")
		return
	}
	writeJSON(w, http.StatusOK, edu)
}

func (h *handlers) getEducationTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.education.Topic(requestLanguage(r), chi.URLParam(r, "topic"))
	switch {
	case errors.Is(err, content.ErrUnknownTopic):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("localize education topic", "error", err)
		writeError(w, http.StatusInternalServerError, "education content unavailable")
	default:
		writeJSON(w, http.StatusOK, topic)
	}
}

func (h *handlers) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.NewDashboard(domain.Now()))
}

func (h *handlers) getOverview(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.NewOverview())
}

func (h *handlers) getReportOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.NewReportOptions())
}

func (h *handlers) postReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ack, err := h.reports.Submit(r.Context(), domain.CaseReport{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Village:        req.Village,
		Phone:          req.Phone,
		Symptoms:       req.Symptoms,
		Duration:       req.Duration,
		WaterSource:    req.WaterSource,
		AdditionalInfo: req.AdditionalInfo,
	})

	var verr *domain.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, ack)
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   verr.Error(),
			Missing: verr.Missing,
			Invalid: verr.Invalid,
		})
	case errors.Is(err, context.Canceled):
		writeError(w, statusClientClosedRequest, "request cancelled")
	case errors.Is(err, report.ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, "report intake is busy, try again shortly")
	case errors.Is(err, report.ErrDispatcherStopped):
		writeError(w, http.StatusServiceUnavailable, "report intake is shutting down")
	default:
		h.logger.Error("submit report", "error", err)
		writeError(w, http.StatusInternalServerError, "could not submit report")
	}
}

// requestLanguage prefers the lang query parameter and falls back to the
// Accept-Language header.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return r.Header.Get("Accept-Language")
}
