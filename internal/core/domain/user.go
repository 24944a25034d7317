package domain

import "time"

const (
	RoleInfluencer = "influencer"
	RoleClient     = "client"
	RoleAdmin      = "admin"
)

// Stats holds the aggregate audience metrics of an influencer profile.
type Stats struct {
	Followers      int64   `json:"followers"`
	AvgViews       int64   `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
}

// User models an account in the marketplace. Influencers bid on projects,
// clients post them; admins only moderate. Email and slug are unique across
// the collection, enforced by storage-level indexes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Slug         string    `json:"slug"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Platforms    []string  `json:"platforms"`
	Niches       []string  `json:"niches"`
	Stats        Stats     `json:"stats"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
