package model

import "time"

// Submission is a create/edit form payload captured for later review.
type Submission struct {
	SubmittedAt time.Time
	ID          string
	Kind        string
	Payload     []byte // JSON encoded record
}
