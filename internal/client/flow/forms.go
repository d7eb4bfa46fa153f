package flow

import (
	"strings"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

// ValidateRegistration requires name, email, phone and password, and a
// matching confirmation. An empty role defaults to CUSTOMER.
func ValidateRegistration(in *models.RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Phone) == "" || in.Password == "" {
		return ErrMissingFields
	}
	if in.Password != in.Password2 {
		return ErrPasswordMismatch
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if in.Role != models.RoleCustomer && in.Role != models.RoleMechanic {
		return ErrInvalidRole
	}
	return nil
}

// ValidateRating accepts 1 to 5 stars.
func ValidateRating(in models.RatingInput) error {
	switch {
	case in.Stars == 0:
		return ErrNoStars
	case in.Stars < 1 || in.Stars > 5:
		return ErrStarsOutOfRange
	}
	return nil
}

// ValidateProfile requires a location and a known skill.
func ValidateProfile(p *models.MechanicProfile) error {
	if !p.HasLocation() {
		return ErrNoProfileLocation
	}
	if !p.SkillType.Valid() {
		return ErrUnknownSkill
	}
	return nil
}

func ValidateCoordinates(loc models.Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}
