// Package filter turns free-form list query parameters into a typed, bounded
// query description. Handlers call Build with the raw URL values; repositories
// translate the resulting Query into datastore syntax. User input is never
// interpolated into a query language directly.
package filter

import "time"

// Kind selects the entity collection a query runs against.
type Kind string

const (
	KindInfluencers Kind = "influencers"
	KindClients     Kind = "clients"
	KindProjects    Kind = "projects"
)

// TextMatch is a case-insensitive substring match on a designated text field.
// Pattern is already escaped: metacharacters from the raw input match
// literally when compiled into a pattern predicate.
type TextMatch struct {
	Field   string
	Pattern string
}

// Range is an inclusive numeric range on a single field. Either bound may be
// nil, leaving that end open.
type Range struct {
	Field string
	Min   *float64
	Max   *float64
}

// SetMembership matches documents whose multi-valued Field contains any of
// Values.
type SetMembership struct {
	Field  string
	Values []string
}

// DateRange bounds the creation timestamp. Either end may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Spec is the assembled filter. All populated predicates apply conjunctively.
type Spec struct {
	// Role scopes user collections ("influencer"/"client"); empty for projects.
	Role    string
	Text    *TextMatch
	Slug    string
	Status  string
	Ranges  []Range
	Sets    []SetMembership
	Created *DateRange
}

// SortField is a single sort key with direction.
type SortField struct {
	Field string
	Desc  bool
}

// Pagination carries the page window. Skip is precomputed as (Page-1)*Limit.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// Query is the complete description handed to a repository scan.
type Query struct {
	Spec Spec
	Sort []SortField
	Page Pagination
}
