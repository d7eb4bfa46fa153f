package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

// RequestService manages service requests. Status changes are made by the
// backend; callers use the returned record as the new state.
type RequestService interface {
	Create(ctx context.Context, in models.CreateRequestInput) (*models.ServiceRequest, error)
	ListForCustomer(ctx context.Context) ([]models.ServiceRequest, error)
	ListForMechanic(ctx context.Context) ([]models.ServiceRequest, error)
	Accept(ctx context.Context, id int64) (*models.ServiceRequest, error)
	Complete(ctx context.Context, id int64) (*models.ServiceRequest, error)
}

type requestService struct {
	api Requester
}

func NewRequestService(api Requester) RequestService {
	return &requestService{api: api}
}

func (s *requestService) Create(ctx context.Context, in models.CreateRequestInput) (*models.ServiceRequest, error) {
	var r models.ServiceRequest
	if err := s.api.JSON(ctx, http.MethodPost, "/requests/create/", nil, in, &r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return &r, nil
}

func (s *requestService) list(ctx context.Context, path string) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	if err := s.api.JSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return out, nil
}

func (s *requestService) ListForCustomer(ctx context.Context) ([]models.ServiceRequest, error) {
	return s.list(ctx, "/requests/customer/")
}

// ListForMechanic returns requests assigned to the mechanic.
func (s *requestService) ListForMechanic(ctx context.Context) ([]models.ServiceRequest, error) {
	return s.list(ctx, "/requests/mechanic/")
}

func (s *requestService) transition(ctx context.Context, id int64, action string) (*models.ServiceRequest, error) {
	var r models.ServiceRequest
	path := fmt.Sprintf("/requests/%d/%s/", id, action)
	if err := s.api.JSON(ctx, http.MethodPost, path, nil, nil, &r); err != nil {
		return nil, fmt.Errorf("%s request %d: %w", action, id, err)
	}
	return &r, nil
}

func (s *requestService) Accept(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	return s.transition(ctx, id, "accept")
}

func (s *requestService) Complete(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	return s.transition(ctx, id, "complete")
}
