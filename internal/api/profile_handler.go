package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/astral-api/internal/api/shared"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/service"
)

// ProfileHandler handles stored profile HTTP requests
type ProfileHandler struct {
	profiles service.ProfileService
	now      func() time.Time
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}

	return &ProfileHandler{
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("component", "profile_handler")),
	}
}

// CreateProfile handles POST /api/profiles requests
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	birth, err := req.BirthData.ToDomain()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.profiles.CreateProfile(r.Context(), req.Name, birth)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create profile")
		return
	}

	log.Debug("profile created", slog.String("profile_id", created.Profile.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateProfileResponse{
		Profile: profileToResponse(created.Profile),
		Chart:   created.Chart,
	})
}

// ListProfiles handles GET /api/profiles requests
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profiles, err := h.profiles.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	response := ProfileListResponse{
		Profiles: make([]ProfileResponse, 0, len(profiles)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, profileToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetProfile handles GET /api/profiles/{id} requests
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// ProfileChart handles GET /api/profiles/{id}/chart requests
func (h *ProfileHandler) ProfileChart(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	chart, err := h.profiles.ProfileChart(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get chart")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chart)
}

// ProfileTransits handles GET /api/profiles/{id}/transits requests
func (h *ProfileHandler) ProfileTransits(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	at, err := parseInstant(r.URL.Query().Get("at"), h.now())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.profiles.ProfileTransits(r.Context(), id, at)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute transits")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// DeleteProfile handles DELETE /api/profiles/{id} requests
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.profiles.DeleteProfile(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete profile")
		return
	}

	log.Debug("profile deleted", slog.String("profile_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
