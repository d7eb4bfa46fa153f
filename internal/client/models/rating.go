package models

import "time"

// Rating is a customer's review of a completed job.
type Rating struct {
	ID             int64     `json:"id"`
	Customer       *User     `json:"customer"`
	Mechanic       *User     `json:"mechanic"`
	ServiceRequest *int64    `json:"service_request"`
	Stars          int       `json:"stars"`
	ReviewText     string    `json:"review_text"`
	CreatedAt      time.Time `json:"created_at"`
}

// RatingInput is the body of POST /ratings/add/.
type RatingInput struct {
	MechanicID       int64  `json:"mechanic_id"`
	ServiceRequestID int64  `json:"service_request_id"`
	Stars            int    `json:"stars"`
	ReviewText       string `json:"review_text,omitempty"`
}
