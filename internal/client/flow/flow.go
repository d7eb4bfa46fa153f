package flow

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/dmitrijs2005/mechanicassist/internal/client/services"
)

// Locator resolves the device position.
type Locator interface {
	Locate(ctx context.Context) (models.Location, error)
}

// FixedLocator always reports the same position; nil means unknown.
type FixedLocator struct {
	Location *models.Location
}

func (l *FixedLocator) Locate(context.Context) (models.Location, error) {
	if l.Location == nil {
		return models.Location{}, ErrNoLocation
	}
	return *l.Location, nil
}

// RequestFlow is the create-request screen: locate, list nearby mechanics
// with their estimated cost, select one, submit.
type RequestFlow struct {
	tariff    Tariff
	locator   Locator
	mechanics services.MechanicService
	requests  services.RequestService

	selection Selection
	location  *models.Location
}

func NewRequestFlow(t Tariff, loc Locator, m services.MechanicService, r services.RequestService) *RequestFlow {
	return &RequestFlow{tariff: t, locator: loc, mechanics: m, requests: r}
}

// LoadNearby resolves the location and reloads the candidate list. On a
// locate failure the previous location is dropped, so Submit fails with
// ErrNoLocation until a later load succeeds.
func (f *RequestFlow) LoadNearby(ctx context.Context) ([]Quote, error) {
	loc, err := f.locator.Locate(ctx)
	if err != nil {
		f.location = nil
		return nil, err
	}
	f.location = &loc

	candidates, err := f.mechanics.Nearby(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}
	f.selection.Replace(candidates)
	return f.Quotes(), nil
}

func (f *RequestFlow) Quotes() []Quote {
	return f.tariff.Quotes(f.selection.Candidates(), &f.selection)
}

func (f *RequestFlow) Location() *models.Location {
	return f.location
}

// Select picks the candidate at index i of the last loaded list.
func (f *RequestFlow) Select(i int) (Quote, error) {
	c, err := f.selection.Select(i)
	if err != nil {
		return Quote{}, err
	}
	d := c.Distance()
	return Quote{Candidate: c, DistanceKm: d, EstimatedCost: f.tariff.EstimatedCost(d), Selected: true}, nil
}

func (f *RequestFlow) Selected() *models.MechanicCandidate {
	return f.selection.Selected()
}

// Submit validates the form and creates the request. No call is made when
// validation fails. The selection is cleared after a successful submit.
func (f *RequestFlow) Submit(ctx context.Context, issueText string) (*models.ServiceRequest, error) {
	d := Draft{IssueText: issueText, Mechanic: f.selection.Selected(), Location: f.location}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r, err := f.requests.Create(ctx, d.Input())
	if err != nil {
		return nil, err
	}
	f.selection.Clear()
	return r, nil
}

// JobBoard is the list of requests with status-gated actions. It never
// changes a status locally: every action replaces the record with the one
// the backend returns.
type JobBoard struct {
	requests services.RequestService
	ratings  services.RatingService
	jobs     map[int64]models.ServiceRequest
}

func NewJobBoard(r services.RequestService, rt services.RatingService) *JobBoard {
	return &JobBoard{requests: r, ratings: rt, jobs: map[int64]models.ServiceRequest{}}
}

func (b *JobBoard) load(list []models.ServiceRequest, err error) ([]models.ServiceRequest, error) {
	if err != nil {
		return nil, err
	}
	b.jobs = make(map[int64]models.ServiceRequest, len(list))
	for _, r := range list {
		b.jobs[r.ID] = r
	}
	return list, nil
}

func (b *JobBoard) LoadCustomer(ctx context.Context) ([]models.ServiceRequest, error) {
	return b.load(b.requests.ListForCustomer(ctx))
}

func (b *JobBoard) LoadMechanic(ctx context.Context) ([]models.ServiceRequest, error) {
	return b.load(b.requests.ListForMechanic(ctx))
}

// Get returns the last known record for id.
func (b *JobBoard) Get(id int64) (models.ServiceRequest, bool) {
	r, ok := b.jobs[id]
	return r, ok
}

// gate checks action against the last known status. Unknown ids are let
// through and left to the backend.
func (b *JobBoard) gate(id int64, action Action) error {
	r, ok := b.jobs[id]
	if !ok {
		return nil
	}
	return Require(r.Status, action)
}

func (b *JobBoard) Accept(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	if err := b.gate(id, ActionAccept); err != nil {
		return nil, err
	}
	r, err := b.requests.Accept(ctx, id)
	if err != nil {
		return nil, err
	}
	b.jobs[r.ID] = *r
	return r, nil
}

func (b *JobBoard) Complete(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	if err := b.gate(id, ActionComplete); err != nil {
		return nil, err
	}
	r, err := b.requests.Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	b.jobs[r.ID] = *r
	return r, nil
}

// Rate rates the mechanic of a completed request. The mechanic is taken from
// the last known record of the request.
func (b *JobBoard) Rate(ctx context.Context, requestID int64, stars int, review string) (*models.Rating, error) {
	r, ok := b.jobs[requestID]
	if !ok {
		return nil, fmt.Errorf("%w: request %d is not loaded", ErrActionNotAllowed, requestID)
	}
	if err := Require(r.Status, ActionRate); err != nil {
		return nil, err
	}
	if r.Mechanic == nil {
		return nil, fmt.Errorf("%w: request %d has no mechanic", ErrActionNotAllowed, requestID)
	}
	in := models.RatingInput{MechanicID: r.Mechanic.ID, ServiceRequestID: r.ID, Stars: stars, ReviewText: review}
	if err := ValidateRating(in); err != nil {
		return nil, err
	}
	return b.ratings.Add(ctx, in)
}
