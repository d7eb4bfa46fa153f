package flow

import (
	"context"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

type fakeMechanics struct {
	nearby     []models.MechanicCandidate
	nearbyErr  error
	nearbyArgs [][2]float64
}

func (f *fakeMechanics) Profile(context.Context) (*models.MechanicProfile, error) {
	return &models.MechanicProfile{}, nil
}

func (f *fakeMechanics) UpdateProfile(_ context.Context, upd models.MechanicProfileUpdate) (*models.MechanicProfile, error) {
	return &models.MechanicProfile{SkillType: upd.SkillType}, nil
}

func (f *fakeMechanics) Nearby(_ context.Context, lat, lng float64) ([]models.MechanicCandidate, error) {
	f.nearbyArgs = append(f.nearbyArgs, [2]float64{lat, lng})
	return f.nearby, f.nearbyErr
}

type fakeRequests struct {
	created  []models.CreateRequestInput
	list     []models.ServiceRequest
	accepted []int64
	complete []int64
	err      error
}

func (f *fakeRequests) Create(_ context.Context, in models.CreateRequestInput) (*models.ServiceRequest, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceRequest{ID: 9, IssueText: in.IssueText, Status: models.StatusRequested}, nil
}

func (f *fakeRequests) ListForCustomer(context.Context) ([]models.ServiceRequest, error) {
	return f.list, f.err
}

func (f *fakeRequests) ListForMechanic(context.Context) ([]models.ServiceRequest, error) {
	return f.list, f.err
}

func (f *fakeRequests) Accept(_ context.Context, id int64) (*models.ServiceRequest, error) {
	f.accepted = append(f.accepted, id)
	return &models.ServiceRequest{ID: id, Status: models.StatusAccepted}, nil
}

func (f *fakeRequests) Complete(_ context.Context, id int64) (*models.ServiceRequest, error) {
	f.complete = append(f.complete, id)
	return &models.ServiceRequest{ID: id, Status: models.StatusCompleted, Mechanic: &models.User{ID: 7}}, nil
}

type fakeRatings struct {
	added []models.RatingInput
}

func (f *fakeRatings) Add(_ context.Context, in models.RatingInput) (*models.Rating, error) {
	f.added = append(f.added, in)
	return &models.Rating{ID: 1, Stars: in.Stars}, nil
}

func (f *fakeRatings) ListForMechanic(context.Context, int64) ([]models.Rating, error) {
	return nil, nil
}

func dist(v float64) *models.Decimal {
	d := models.Decimal(v)
	return &d
}

func candidate(id, userID int64, km *models.Decimal) models.MechanicCandidate {
	return models.MechanicCandidate{ID: id, User: models.User{ID: userID, Role: models.RoleMechanic}, DistanceKm: km}
}
