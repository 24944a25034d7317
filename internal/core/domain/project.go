package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectClosed     ProjectStatus = "closed"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// AcceptsBids reports whether new bids may be placed against a project in
// this status. Only open projects accept bids.
func (s ProjectStatus) AcceptsBids() bool {
	return s == ProjectOpen
}

// Project is a campaign posted by a client. BudgetMin <= BudgetMax is an
// invariant checked at creation; the slug is unique across the collection.
type Project struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"client_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	BudgetMin   float64       `json:"budget_min"`
	BudgetMax   float64       `json:"budget_max"`
	Niches      []string      `json:"niches"`
	Platforms   []string      `json:"platforms"`
	Status      ProjectStatus `json:"status"`
	Slug        string        `json:"slug"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
