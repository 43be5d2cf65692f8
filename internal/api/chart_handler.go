package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/astral-api/internal/api/shared"
	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/service"
)

// ChartHandler handles chart, transit and horoscope HTTP requests
type ChartHandler struct {
	charts   service.ChartService
	profiles service.ProfileService
	now      func() time.Time
	logger   *slog.Logger
}

// NewChartHandler creates a new ChartHandler. profiles backs compatibility
// requests by profile ID.
func NewChartHandler(
	charts service.ChartService,
	profiles service.ProfileService,
	logger *slog.Logger,
) *ChartHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ChartHandler")
	}

	return &ChartHandler{
		charts:   charts,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("component", "chart_handler")),
	}
}

// ComputeChart handles POST /api/charts requests
func (h *ChartHandler) ComputeChart(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	svcReq, err := req.ToService()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	chart, err := h.charts.ComputeChart(r.Context(), svcReq)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute chart")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chart)
}

// ComputeBatch handles POST /api/charts/batch requests. Items that fail are
// reported in place; the response is 200 unless the batch itself is invalid.
func (h *ChartHandler) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req BatchChartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if len(req.Charts) > service.MaxBatchSize {
		HandleAPIError(w, r, service.ErrBatchTooLarge, "")
		return
	}

	response := BatchChartResponse{Results: make([]BatchItemResponse, len(req.Charts))}

	// Conversion failures are per-item results, like computation failures.
	svcReqs := make([]service.ChartRequest, 0, len(req.Charts))
	positions := make([]int, 0, len(req.Charts))
	for i, item := range req.Charts {
		response.Results[i].Index = i
		svcReq, err := item.ToService()
		if err != nil {
			response.Results[i].Error = GetSafeErrorMessage(err)
			continue
		}
		svcReqs = append(svcReqs, svcReq)
		positions = append(positions, i)
	}

	if len(svcReqs) > 0 {
		results, err := h.charts.ComputeBatch(r.Context(), svcReqs)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to compute charts")
			return
		}
		for _, res := range results {
			slot := &response.Results[positions[res.Index]]
			if res.Err != nil {
				slot.Error = GetSafeErrorMessage(res.Err)
				continue
			}
			slot.Chart = res.Chart
		}
	}

	for _, item := range response.Results {
		if item.Error != "" {
			response.Failed++
		} else {
			response.Succeeded++
		}
	}

	log.Debug("batch computed",
		slog.Int("succeeded", response.Succeeded),
		slog.Int("failed", response.Failed))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Compatibility handles POST /api/compatibility requests
func (h *ChartHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	var req CompatibilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var (
		result *domain.CompatibilityResult
		err    error
	)
	if len(req.ProfileIDs) > 0 {
		if h.profiles == nil {
			shared.RespondWithError(w, r, http.StatusNotImplemented, "Profiles are not available")
			return
		}
		a, b, parseErr := req.profileIDs()
		if parseErr != nil {
			HandleAPIError(w, r, parseErr, "")
			return
		}
		result, err = h.profiles.ProfileCompatibility(r.Context(), a, b)
	} else {
		first, convErr := req.First.ToService()
		if convErr != nil {
			HandleAPIError(w, r, convErr, "")
			return
		}
		second, convErr := req.Second.ToService()
		if convErr != nil {
			HandleAPIError(w, r, convErr, "")
			return
		}
		result, err = h.charts.Compatibility(r.Context(), first, second)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute compatibility")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// CurrentTransits handles GET /api/transits requests. The optional at query
// parameter is an RFC 3339 instant.
func (h *ChartHandler) CurrentTransits(w http.ResponseWriter, r *http.Request) {
	at, err := parseInstant(r.URL.Query().Get("at"), h.now())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	positions, err := h.charts.CurrentPositions(r.Context(), at)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute positions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PositionsResponse{At: at, Positions: positions})
}

// PersonalTransits handles POST /api/transits/personal requests
func (h *ChartHandler) PersonalTransits(w http.ResponseWriter, r *http.Request) {
	var req PersonalTransitsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	at, err := parseInstant(req.At, h.now())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	svcReq, err := req.Chart.ToService()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.charts.PersonalTransits(r.Context(), svcReq, at)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute transits")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// DailyHoroscope handles GET /api/horoscopes/{sign} requests. The optional
// date query parameter is YYYY-MM-DD and defaults to today in UTC.
func (h *ChartHandler) DailyHoroscope(w http.ResponseWriter, r *http.Request) {
	sign, err := domain.ParseZodiacSign(chi.URLParam(r, "sign"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	date, err := parseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	horoscope, err := h.charts.DailyHoroscope(r.Context(), sign, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate horoscope")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, horoscope)
}
