package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/influconnect/marketplace-api/internal/core/filter"
)

// specToBson translates a typed filter spec into a MongoDB filter document.
// The text pattern is already escaped by the builder, so it compiles to a
// literal case-insensitive substring match.
func specToBson(spec filter.Spec) bson.M {
	f := bson.M{}
	if spec.Role != "" {
		f["role"] = spec.Role
	}
	if spec.Text != nil {
		f[spec.Text.Field] = primitive.Regex{Pattern: spec.Text.Pattern, Options: "i"}
	}
	if spec.Slug != "" {
		f["slug"] = spec.Slug
	}
	if spec.Status != "" {
		f["status"] = spec.Status
	}
	for _, r := range spec.Ranges {
		cond := bson.M{}
		if r.Min != nil {
			cond["$gte"] = *r.Min
		}
		if r.Max != nil {
			cond["$lte"] = *r.Max
		}
		f[r.Field] = cond
	}
	for _, m := range spec.Sets {
		f[m.Field] = bson.M{"$in": m.Values}
	}
	if spec.Created != nil {
		cond := bson.M{}
		if spec.Created.From != nil {
			cond["$gte"] = *spec.Created.From
		}
		if spec.Created.To != nil {
			cond["$lte"] = *spec.Created.To
		}
		f["created_at"] = cond
	}
	return f
}

// sortToBson translates sort fields into a MongoDB sort document, preserving
// key order.
func sortToBson(sort []filter.SortField) bson.D {
	out := make(bson.D, 0, len(sort))
	for _, s := range sort {
		dir := 1
		if s.Desc {
			dir = -1
		}
		out = append(out, bson.E{Key: s.Field, Value: dir})
	}
	return out
}
