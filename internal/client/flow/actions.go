package flow

import (
	"fmt"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionComplete Action = "complete"
	ActionRate     Action = "rate"
)

// ActionsFor lists what may be done with a request in the given status:
// a mechanic accepts a REQUESTED job and completes an ACCEPTED one, a
// customer rates a COMPLETED one.
func ActionsFor(status models.RequestStatus) []Action {
	switch status {
	case models.StatusRequested:
		return []Action{ActionAccept}
	case models.StatusAccepted:
		return []Action{ActionComplete}
	case models.StatusCompleted:
		return []Action{ActionRate}
	}
	return nil
}

// Require returns ErrActionNotAllowed unless action is offered for status.
func Require(status models.RequestStatus, action Action) error {
	for _, a := range ActionsFor(status) {
		if a == action {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s a %s request", ErrActionNotAllowed, action, status)
}
