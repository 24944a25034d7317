package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/influconnect/marketplace-api/internal/core/filter"
)

func floatPtr(v float64) *float64 { return &v }

func TestSpecToBson(t *testing.T) {
	spec := filter.Spec{
		Role: "influencer",
		Text: &filter.TextMatch{Field: "name", Pattern: `ali\.ce`},
		Ranges: []filter.Range{
			{Field: "stats.followers", Min: floatPtr(1000), Max: floatPtr(5000)},
			{Field: "stats.engagement_rate", Min: floatPtr(2.5)},
		},
		Sets: []filter.SetMembership{
			{Field: "platforms", Values: []string{"instagram", "tiktok"}},
		},
	}

	f := specToBson(spec)

	if f["role"] != "influencer" {
		t.Fatalf("role not applied: %v", f["role"])
	}
	re, ok := f["name"].(primitive.Regex)
	if !ok || re.Pattern != `ali\.ce` || re.Options != "i" {
		t.Fatalf("unexpected name predicate %v", f["name"])
	}
	followers, ok := f["stats.followers"].(bson.M)
	if !ok || followers["$gte"] != 1000.0 || followers["$lte"] != 5000.0 {
		t.Fatalf("unexpected followers predicate %v", f["stats.followers"])
	}
	engagement, ok := f["stats.engagement_rate"].(bson.M)
	if !ok || engagement["$gte"] != 2.5 {
		t.Fatalf("unexpected engagement predicate %v", f["stats.engagement_rate"])
	}
	if _, exists := engagement["$lte"]; exists {
		t.Fatalf("open upper bound must be omitted")
	}
	platforms, ok := f["platforms"].(bson.M)
	if !ok {
		t.Fatalf("unexpected platforms predicate %v", f["platforms"])
	}
	vals, ok := platforms["$in"].([]string)
	if !ok || len(vals) != 2 {
		t.Fatalf("unexpected $in values %v", platforms["$in"])
	}
}

func TestSpecToBson_Empty(t *testing.T) {
	f := specToBson(filter.Spec{})
	if len(f) != 0 {
		t.Fatalf("empty spec must produce empty filter, got %v", f)
	}
}

func TestSortToBson_PreservesOrder(t *testing.T) {
	sort := []filter.SortField{
		{Field: "stats.followers", Desc: true},
		{Field: "name"},
	}

	d := sortToBson(sort)
	if len(d) != 2 {
		t.Fatalf("expected 2 keys, got %v", d)
	}
	if d[0].Key != "stats.followers" || d[0].Value != -1 {
		t.Fatalf("unexpected first key %v", d[0])
	}
	if d[1].Key != "name" || d[1].Value != 1 {
		t.Fatalf("unexpected second key %v", d[1])
	}
}
