package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// SlugProber answers slug existence checks across entity collections. It is
// an advisory fast path for the resolver's probed-retry strategy; the unique
// slug indexes remain the final race arbiter.
type SlugProber struct {
	db *mongo.Database
}

func NewSlugProber(db *mongo.Database) *SlugProber {
	return &SlugProber{db: db}
}

// ExistsSlug reports whether any entity of the given kind other than
// excludeID currently holds slug.
func (p *SlugProber) ExistsSlug(ctx context.Context, kind ports.SlugKind, slug, excludeID string) (bool, error) {
	var col *mongo.Collection
	switch kind {
	case ports.SlugKindUser:
		col = p.db.Collection(collectionUsers)
	case ports.SlugKindProject:
		col = p.db.Collection(collectionProjects)
	default:
		return false, fmt.Errorf("%w: unknown slug kind %q", domain.ErrValidation, kind)
	}

	f := bson.M{"slug": slug}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			f["_id"] = bson.M{"$ne": oid}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, f)
	if err != nil {
		return false, fmt.Errorf("probe slug: %w", err)
	}
	return n > 0, nil
}
