package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Profile
var (
	ErrEmptyProfileID   = errors.New("profile ID cannot be empty")
	ErrEmptyProfileName = errors.New("profile name cannot be empty")
	ErrProfileNameLong  = errors.New("profile name cannot exceed 200 characters")
)

const maxProfileNameLength = 200

// Profile is a stored person together with their birth data. The computed
// chart is stored separately as a snapshot.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthData BirthData `json:"birth_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile creates a new Profile with a generated ID and current
// timestamps. Returns an error if validation fails.
func NewProfile(name string, birth BirthData) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:        uuid.New(),
		Name:      name,
		BirthData: birth,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks the profile fields and the embedded birth data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}

	if p.Name == "" {
		return ErrEmptyProfileName
	}

	if len(p.Name) > maxProfileNameLength {
		return ErrProfileNameLong
	}

	if err := p.BirthData.Validate(); err != nil {
		return fmt.Errorf("profile birth data: %w", err)
	}

	return nil
}
