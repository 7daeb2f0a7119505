package events

import "time"

// EventType enumerates broadcast event identifiers.
type EventType string

const (
	EventQueueUpdated         EventType = "queue_updated"
	EventStudentCalled        EventType = "student_called"
	EventTransactionCompleted EventType = "transaction_completed"
	EventTransactionCancelled EventType = "transaction_cancelled"
)

// All lists every event type; transports subscribe to the full set.
func All() []EventType {
	return []EventType{
		EventQueueUpdated,
		EventStudentCalled,
		EventTransactionCompleted,
		EventTransactionCancelled,
	}
}

// Event is a queue state change fanned out to connected clients.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// StudentCalledPayload accompanies EventStudentCalled.
type StudentCalledPayload struct {
	QueueNumber int    `json:"queueNumber"`
	PurposeText string `json:"purposeText"`
}

// TransactionClosedPayload accompanies completion and cancellation events.
type TransactionClosedPayload struct {
	QueueNumber int `json:"queueNumber"`
}
