package flow

import (
	"strings"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

// Draft is the create-request form.
type Draft struct {
	IssueText string
	Mechanic  *models.MechanicCandidate
	Location  *models.Location
}

// Validate checks the issue text, then the mechanic, then the location and
// returns the first failure.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.IssueText) == "":
		return ErrEmptyIssue
	case d.Mechanic == nil:
		return ErrNoMechanic
	case d.Location == nil:
		return ErrNoLocation
	}
	return nil
}

// Input builds the request body. The backend expects the mechanic's user id.
// Call Validate first.
func (d Draft) Input() models.CreateRequestInput {
	return models.CreateRequestInput{
		IssueText:   d.IssueText,
		CustomerLat: d.Location.Latitude,
		CustomerLng: d.Location.Longitude,
		MechanicID:  d.Mechanic.User.ID,
	}
}
