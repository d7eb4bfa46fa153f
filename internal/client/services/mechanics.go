package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

type MechanicService interface {
	Profile(ctx context.Context) (*models.MechanicProfile, error)
	UpdateProfile(ctx context.Context, upd models.MechanicProfileUpdate) (*models.MechanicProfile, error)
	Nearby(ctx context.Context, lat, lng float64) ([]models.MechanicCandidate, error)
}

type mechanicService struct {
	api Requester
}

func NewMechanicService(api Requester) MechanicService {
	return &mechanicService{api: api}
}

func (s *mechanicService) Profile(ctx context.Context) (*models.MechanicProfile, error) {
	var p models.MechanicProfile
	if err := s.api.JSON(ctx, http.MethodGet, "/mechanic/profile/", nil, nil, &p); err != nil {
		return nil, fmt.Errorf("mechanic profile: %w", err)
	}
	return &p, nil
}

func (s *mechanicService) UpdateProfile(ctx context.Context, upd models.MechanicProfileUpdate) (*models.MechanicProfile, error) {
	var p models.MechanicProfile
	if err := s.api.JSON(ctx, http.MethodPost, "/mechanic/profile/update/", nil, upd, &p); err != nil {
		return nil, fmt.Errorf("update mechanic profile: %w", err)
	}
	return &p, nil
}

// Nearby returns available mechanics ordered by distance from (lat, lng).
func (s *mechanicService) Nearby(ctx context.Context, lat, lng float64) ([]models.MechanicCandidate, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	var out []models.MechanicCandidate
	if err := s.api.JSON(ctx, http.MethodGet, "/mechanics/nearby/", q, nil, &out); err != nil {
		return nil, fmt.Errorf("nearby mechanics: %w", err)
	}
	return out, nil
}
