package dto

// SubmitFeedbackRequest payload.
type SubmitFeedbackRequest struct {
	QueueNumber     int    `json:"queueNumber"`
	Rating          int    `json:"rating"`
	Comments        string `json:"comments"`
	TransactionType string `json:"transactionType"`
}

// SkipFeedbackRequest payload.
type SkipFeedbackRequest struct {
	QueueNumber     int    `json:"queueNumber"`
	TransactionType string `json:"transactionType"`
}

// FeedbackItem is one row of the submitted feedback listing.
type FeedbackItem struct {
	QueueNumber     int    `json:"queueNumber"`
	Rating          int    `json:"rating"`
	Comments        string `json:"comments"`
	TransactionType string `json:"transactionType"`
	SubmittedAt     string `json:"submittedAt"`
}
