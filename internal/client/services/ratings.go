package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

type RatingService interface {
	Add(ctx context.Context, in models.RatingInput) (*models.Rating, error)
	ListForMechanic(ctx context.Context, mechanicUserID int64) ([]models.Rating, error)
}

type ratingService struct {
	api Requester
}

func NewRatingService(api Requester) RatingService {
	return &ratingService{api: api}
}

func (s *ratingService) Add(ctx context.Context, in models.RatingInput) (*models.Rating, error) {
	var r models.Rating
	if err := s.api.JSON(ctx, http.MethodPost, "/ratings/add/", nil, in, &r); err != nil {
		return nil, fmt.Errorf("add rating: %w", err)
	}
	return &r, nil
}

func (s *ratingService) ListForMechanic(ctx context.Context, mechanicUserID int64) ([]models.Rating, error) {
	var out []models.Rating
	path := fmt.Sprintf("/ratings/mechanic/%d/", mechanicUserID)
	if err := s.api.JSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("mechanic ratings: %w", err)
	}
	return out, nil
}
