package models

import "time"

// RequestStatus is the lifecycle state of a service request. Transitions
// happen on the server; the client only triggers them and reads the result.
type RequestStatus string

const (
	StatusRequested RequestStatus = "REQUESTED"
	StatusAccepted  RequestStatus = "ACCEPTED"
	StatusCompleted RequestStatus = "COMPLETED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ServiceRequest is a customer's request for roadside help.
type ServiceRequest struct {
	ID            int64         `json:"id"`
	Customer      *User         `json:"customer"`
	Mechanic      *User         `json:"mechanic"`
	IssueText     string        `json:"issue_text"`
	CustomerLat   Decimal       `json:"customer_lat"`
	CustomerLng   Decimal       `json:"customer_lng"`
	DistanceKm    *Decimal      `json:"distance_km"`
	EstimatedCost *Decimal      `json:"estimated_cost"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
}

// CreateRequestInput is the body of POST /requests/create/.
// MechanicID is the mechanic's user id, not the profile id.
type CreateRequestInput struct {
	IssueText   string  `json:"issue_text"`
	CustomerLat float64 `json:"customer_lat"`
	CustomerLng float64 `json:"customer_lng"`
	MechanicID  int64   `json:"mechanic_id"`
}
