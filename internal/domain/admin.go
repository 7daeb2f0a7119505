package domain

import "time"

// Admin is an operator account allowed to drive the queue.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
