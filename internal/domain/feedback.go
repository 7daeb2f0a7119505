package domain

import "time"

// FeedbackStatus marks whether the student rated the service or skipped.
type FeedbackStatus string

const (
	FeedbackSubmitted FeedbackStatus = "submitted"
	FeedbackSkipped   FeedbackStatus = "skipped"
)

// Feedback is a post-transaction rating. Rating 0 means skipped.
type Feedback struct {
	ID              int64
	QueueNumber     int
	Rating          int
	Comments        string
	Status          FeedbackStatus
	TransactionType string
	SubmittedAt     time.Time
}
