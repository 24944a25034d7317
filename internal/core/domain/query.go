package domain

import "time"

// QueryStatus tracks how far a contact query has been handled.
type QueryStatus string

const (
	QueryNew      QueryStatus = "new"
	QueryRead     QueryStatus = "read"
	QueryResolved QueryStatus = "resolved"
)

// ContactQuery is a message submitted through the public contact form.
type ContactQuery struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	Status    QueryStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
