package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the acting user is not the owner the
	// operation requires (project client or bid influencer).
	ErrForbidden = errors.New("access forbidden")

	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registration hits the unique email index.
	ErrEmailTaken = errors.New("email already registered")

	// ErrConflict is returned when a storage-level unique constraint other
	// than email or the bid pair rejects a write (e.g. a slug collision that
	// slipped past the resolver's probe).
	ErrConflict = errors.New("unique constraint violated")

	// ErrDuplicateBid is returned when an influencer already has a bid on the
	// project, regardless of that bid's current status.
	ErrDuplicateBid = errors.New("already bid on this project")

	// ErrProjectNotOpen is returned when bidding on a project whose status is
	// not open.
	ErrProjectNotOpen = errors.New("project is not open for bids")

	// ErrInvalidTransition is returned when a bid action is not permitted in
	// the bid's current state, including any action on a terminal bid.
	ErrInvalidTransition = errors.New("invalid bid status transition")

	// ErrSlugExhausted is returned when the slug resolver runs out of retry
	// attempts without finding a free candidate.
	ErrSlugExhausted = errors.New("could not derive a unique slug")

	// ErrValidation is returned for malformed or out-of-range input that
	// survived transport-level schema validation.
	ErrValidation = errors.New("invalid input")
)
