package domain

import "time"

// TransactionStatus enumerates closure outcomes.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
	TransactionCancelled TransactionStatus = "Cancelled"
)

// Transaction is the immutable closure record snapshotted from a queue entry
// when an operator completes or cancels it.
type Transaction struct {
	ID              int64
	QueueNumber     int
	StudentName     string
	TransactionType string
	JoinedAt        time.Time
	CompletedAt     time.Time
	WaitingTime     int
	Status          TransactionStatus
	ServedBy        string
}
