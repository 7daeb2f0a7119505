package domain

import "time"

// SystemStats is the singleton counters record. QueueCounter holds the next
// queue number to assign; it starts at 100 and is never reused.
type SystemStats struct {
	ID                int64
	QueueCounter      int
	LastReset         time.Time
	TotalTransactions int
	AvgWaitTime       float64
	AvgRating         float64
}
