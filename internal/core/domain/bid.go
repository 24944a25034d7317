package domain

import "time"

// BidStatus represents the lifecycle state of a bid.
type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

// BidAction is a state-changing operation requested against a bid.
type BidAction string

const (
	ActionAccept   BidAction = "accept"
	ActionReject   BidAction = "reject"
	ActionWithdraw BidAction = "withdraw"
)

// bidTransitions defines the allowed state machine transitions. Accepted,
// rejected and withdrawn are terminal: no action leaves them.
var bidTransitions = map[BidStatus]map[BidAction]BidStatus{
	BidPending: {
		ActionAccept:   BidAccepted,
		ActionReject:   BidRejected,
		ActionWithdraw: BidWithdrawn,
	},
}

// Next returns the status an action leads to from s, or ErrInvalidTransition
// when the action is not permitted in the current state.
func (s BidStatus) Next(action BidAction) (BidStatus, error) {
	next, ok := bidTransitions[s][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// Terminal reports whether no further transition is permitted from s.
func (s BidStatus) Terminal() bool {
	return len(bidTransitions[s]) == 0
}

// Bid is an influencer's offer on a project. At most one bid may exist per
// (project, influencer) pair for the lifetime of the bid, enforced by a
// unique compound index.
type Bid struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	InfluencerID string    `json:"influencer_id"`
	Amount       float64   `json:"amount"`
	Message      string    `json:"message,omitempty"`
	Status       BidStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
