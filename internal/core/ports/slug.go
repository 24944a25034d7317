package ports

import "context"

// SlugKind selects which entity collection a slug belongs to.
type SlugKind string

const (
	SlugKindUser    SlugKind = "user"
	SlugKindProject SlugKind = "project"
)

// SlugProber answers existence checks during slug resolution. The probe is an
// advisory fast path: the storage layer's unique index remains the final race
// arbiter on insert.
type SlugProber interface {
	// ExistsSlug reports whether any entity of the given kind other than
	// excludeID already holds slug. excludeID may be empty on creation.
	ExistsSlug(ctx context.Context, kind SlugKind, slug, excludeID string) (bool, error)
}

// SlugResolver derives a unique, URL-safe identifier from mutable display
// text. The returned slug always matches [a-z0-9-]+ and is non-empty.
type SlugResolver interface {
	Resolve(ctx context.Context, sourceText string, kind SlugKind, excludeID string) (string, error)
}
