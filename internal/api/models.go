package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/service"
)

// BirthDataRequest is the wire form of domain.BirthData. DateTime is the
// local wall-clock reading, e.g. "1990-06-15T14:30:00".
type BirthDataRequest struct {
	DateTime    string   `json:"date_time"     validate:"required"`
	TimeZone    string   `json:"time_zone"     validate:"required,max=64"`
	Latitude    *float64 `json:"latitude"      validate:"required"`
	Longitude   *float64 `json:"longitude"     validate:"required"`
	PlaceName   string   `json:"place_name"    validate:"max=200"`
	IsTimeExact *bool    `json:"is_time_exact"`
}

// ToDomain converts the request into validated birth data. An omitted
// is_time_exact means the time is exact.
func (b BirthDataRequest) ToDomain() (domain.BirthData, error) {
	if b.Latitude == nil || b.Longitude == nil {
		return domain.BirthData{}, fmt.Errorf("%w: latitude and longitude are required", domain.ErrValidation)
	}
	dt, err := domain.ParseLocalDateTime(strings.TrimSpace(b.DateTime))
	if err != nil {
		return domain.BirthData{}, err
	}
	exact := true
	if b.IsTimeExact != nil {
		exact = *b.IsTimeExact
	}
	return domain.NewBirthData(dt, b.TimeZone, *b.Latitude, *b.Longitude, b.PlaceName, exact)
}

// ChartRequest defines the payload for computing a natal chart.
type ChartRequest struct {
	Name                string           `json:"name"                  validate:"max=200"`
	BirthData           BirthDataRequest `json:"birth_data"`
	HouseSystem         string           `json:"house_system"          validate:"omitempty,oneof=porphyry equal"`
	IncludeMinorAspects *bool            `json:"include_minor_aspects"`
}

// ToService converts the request into a service.ChartRequest.
func (c ChartRequest) ToService() (service.ChartRequest, error) {
	birth, err := c.BirthData.ToDomain()
	if err != nil {
		return service.ChartRequest{}, err
	}
	req := service.ChartRequest{
		Birth:               birth,
		Name:                strings.TrimSpace(c.Name),
		IncludeMinorAspects: c.IncludeMinorAspects,
	}
	if c.HouseSystem != "" {
		system, err := domain.ParseHouseSystem(c.HouseSystem)
		if err != nil {
			return service.ChartRequest{}, err
		}
		req.HouseSystem = system
	}
	return req, nil
}

// BatchChartRequest defines the payload for the batch endpoint.
type BatchChartRequest struct {
	Charts []ChartRequest `json:"charts" validate:"required,min=1,dive"`
}

// BatchItemResponse is one entry of a batch response. Exactly one of Chart
// and Error is set.
type BatchItemResponse struct {
	Index int                `json:"index"`
	Chart *domain.BirthChart `json:"chart,omitempty"`
	Error string             `json:"error,omitempty"`
}

// BatchChartResponse defines the response of the batch endpoint.
type BatchChartResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// CompatibilityRequest compares either two inline charts or two stored
// profiles.
type CompatibilityRequest struct {
	First      *ChartRequest `json:"first"`
	Second     *ChartRequest `json:"second"`
	ProfileIDs []string      `json:"profile_ids" validate:"omitempty,len=2,dive,uuid"`
}

// Validate requires exactly one of the two forms.
func (c CompatibilityRequest) Validate() error {
	inline := c.First != nil || c.Second != nil
	switch {
	case inline && len(c.ProfileIDs) > 0:
		return fmt.Errorf("%w: give either first and second or profile_ids", domain.ErrValidation)
	case inline && (c.First == nil || c.Second == nil):
		return fmt.Errorf("%w: both first and second are required", domain.ErrValidation)
	case !inline && len(c.ProfileIDs) == 0:
		return fmt.Errorf("%w: first and second or profile_ids are required", domain.ErrValidation)
	}
	return nil
}

// profileIDs parses ProfileIDs; validation has already checked the format.
func (c CompatibilityRequest) profileIDs() (uuid.UUID, uuid.UUID, error) {
	a, err := uuid.Parse(c.ProfileIDs[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
	}
	b, err := uuid.Parse(c.ProfileIDs[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
	}
	return a, b, nil
}

// PersonalTransitsRequest asks for transits to a natal chart at an instant.
// An empty At means now.
type PersonalTransitsRequest struct {
	Chart ChartRequest `json:"chart"`
	At    string       `json:"at"`
}

// PositionsResponse lists the planets at an instant.
type PositionsResponse struct {
	At        time.Time             `json:"at"`
	Positions []domain.BodyPosition `json:"positions"`
}

// CreateProfileRequest defines the payload for storing a birth profile.
type CreateProfileRequest struct {
	Name      string           `json:"name"       validate:"required,max=200"`
	BirthData BirthDataRequest `json:"birth_data"`
}

// ProfileResponse is the wire form of a stored profile.
type ProfileResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	BirthData domain.BirthData `json:"birth_data"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CreateProfileResponse returns the stored profile and its first chart.
type CreateProfileResponse struct {
	Profile ProfileResponse    `json:"profile"`
	Chart   *domain.BirthChart `json:"chart"`
}

// ProfileListResponse is a page of profiles.
type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	Store  string `json:"store"`
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		BirthData: p.BirthData,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
