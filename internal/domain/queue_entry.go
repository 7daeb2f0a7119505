package domain

import "time"

// QueueStatus enumerates lifecycle states for queue entries.
type QueueStatus string

const (
	StatusWaiting   QueueStatus = "waiting"
	StatusCalled    QueueStatus = "called"
	StatusCompleted QueueStatus = "completed"
	StatusCancelled QueueStatus = "cancelled"
)

// QueueEntry is one student's ticket in the service queue. Entries are never
// physically deleted; closed entries keep their terminal status as history.
type QueueEntry struct {
	ID          int64
	QueueNumber int
	StudentName string
	Purpose     string
	PurposeText string
	JoinedAt    time.Time
	Status      QueueStatus
	IsCurrent   bool
}

// Active reports whether the entry still participates in the live queue.
func (e *QueueEntry) Active() bool {
	return e.Status == StatusWaiting || e.Status == StatusCalled
}
