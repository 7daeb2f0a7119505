package dto

// JoinRequest payload.
type JoinRequest struct {
	Purpose     string `json:"purpose"`
	PurposeText string `json:"purposeText"`
	StudentName string `json:"studentName"`
}

// JoinResponse carries the assigned number and position.
type JoinResponse struct {
	Success     bool `json:"success"`
	QueueNumber int  `json:"queueNumber"`
	Position    int  `json:"position"`
}

// StudentSummary is the board view of one entry.
type StudentSummary struct {
	Number      int    `json:"number"`
	PurposeText string `json:"purposeText"`
	StudentName string `json:"studentName"`
}

// CurrentQueueResponse is the display board projection.
type CurrentQueueResponse struct {
	CurrentStudent *StudentSummary  `json:"currentStudent"`
	Queue          []StudentSummary `json:"queue"`
	QueueCounter   int              `json:"queueCounter"`
}

// CallNextResponse carries the newly called student.
type CallNextResponse struct {
	Success bool            `json:"success"`
	Student *StudentSummary `json:"student,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CloseRequest identifies the entry to complete or cancel.
type CloseRequest struct {
	QueueNumber int `json:"queueNumber"`
}

// StatusResponse is a student's own ticket view.
type StatusResponse struct {
	Status    string `json:"status"`
	Position  int    `json:"position"`
	WaitTime  int    `json:"waitTime"`
	IsCurrent bool   `json:"isCurrent"`
}

// TransactionItem is one row of the closure history listing.
type TransactionItem struct {
	Date            string `json:"date"`
	QueueNumber     int    `json:"queueNumber"`
	StudentName     string `json:"studentName"`
	TransactionType string `json:"transactionType"`
	WaitingTime     int    `json:"waitingTime"`
	Status          string `json:"status"`
}

// StatsResponse is the dashboard aggregate payload.
type StatsResponse struct {
	ServedToday       int     `json:"servedToday"`
	AvgWaitTime       float64 `json:"avgWaitTime"`
	WaitingStudents   int     `json:"waitingStudents"`
	TotalTransactions int     `json:"totalTransactions"`
	AvgRating         float64 `json:"avgRating"`
	FeedbackCount     int     `json:"feedbackCount"`
}
