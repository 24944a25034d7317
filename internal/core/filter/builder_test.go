package filter

import (
	"errors"
	"net/url"
	"testing"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

func TestBuild_Defaults(t *testing.T) {
	q, err := Build(url.Values{}, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Spec.Role != domain.RoleInfluencer {
		t.Fatalf("role not scoped: %q", q.Spec.Role)
	}
	if q.Page.Page != 1 || q.Page.Limit != DefaultLimit || q.Page.Skip != 0 {
		t.Fatalf("unexpected pagination %+v", q.Page)
	}
	if len(q.Sort) != 1 || q.Sort[0].Field != "created_at" || !q.Sort[0].Desc {
		t.Fatalf("unexpected default sort %+v", q.Sort)
	}
}

func TestBuild_RangeAndPagination(t *testing.T) {
	raw := url.Values{
		"followersMin": {"1000"},
		"followersMax": {"5000"},
		"page":         {"2"},
		"limit":        {"10"},
	}
	q, err := Build(raw, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Page.Skip != 10 || q.Page.Limit != 10 {
		t.Fatalf("expected skip=10 limit=10, got %+v", q.Page)
	}

	var r *Range
	for i := range q.Spec.Ranges {
		if q.Spec.Ranges[i].Field == "stats.followers" {
			r = &q.Spec.Ranges[i]
		}
	}
	if r == nil || r.Min == nil || r.Max == nil || *r.Min != 1000 || *r.Max != 5000 {
		t.Fatalf("followers range not assembled: %+v", q.Spec.Ranges)
	}
}

func TestBuild_SingleBoundRange(t *testing.T) {
	q, err := Build(url.Values{"engagementRateMin": {"2.5"}}, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(q.Spec.Ranges) != 1 {
		t.Fatalf("expected 1 range, got %+v", q.Spec.Ranges)
	}
	r := q.Spec.Ranges[0]
	if r.Field != "stats.engagement_rate" || r.Min == nil || *r.Min != 2.5 || r.Max != nil {
		t.Fatalf("unexpected range %+v", r)
	}
}

func TestBuild_InvertedRange(t *testing.T) {
	raw := url.Values{"followersMin": {"5000"}, "followersMax": {"100"}}
	_, err := Build(raw, KindInfluencers)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuild_NonNumericRange(t *testing.T) {
	_, err := Build(url.Values{"followersMin": {"lots"}}, KindInfluencers)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Regex metacharacters in the name filter must match literally.
func TestBuild_NameEscaped(t *testing.T) {
	q, err := Build(url.Values{"name": {".*"}}, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Spec.Text == nil || q.Spec.Text.Pattern != `\.\*` {
		t.Fatalf("pattern not escaped: %+v", q.Spec.Text)
	}
}

func TestBuild_SetMembership(t *testing.T) {
	q, err := Build(url.Values{"platforms": {"instagram, tiktok,,"}}, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(q.Spec.Sets) != 1 {
		t.Fatalf("expected 1 set predicate, got %+v", q.Spec.Sets)
	}
	set := q.Spec.Sets[0]
	if set.Field != "platforms" || len(set.Values) != 2 || set.Values[0] != "instagram" || set.Values[1] != "tiktok" {
		t.Fatalf("unexpected set %+v", set)
	}
}

func TestBuild_LimitCapped(t *testing.T) {
	q, err := Build(url.Values{"limit": {"500"}}, KindClients)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Page.Limit != MaxLimit {
		t.Fatalf("limit not capped: %d", q.Page.Limit)
	}
}

func TestBuild_PageZeroRejected(t *testing.T) {
	_, err := Build(url.Values{"page": {"0"}}, KindClients)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuild_UnknownSortRejected(t *testing.T) {
	_, err := Build(url.Values{"sort": {"password_hash"}}, KindInfluencers)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuild_MultiSort(t *testing.T) {
	q, err := Build(url.Values{"sort": {"-followers,name"}}, KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(q.Sort) != 2 {
		t.Fatalf("expected 2 sort keys, got %+v", q.Sort)
	}
	if q.Sort[0].Field != "stats.followers" || !q.Sort[0].Desc {
		t.Fatalf("unexpected first key %+v", q.Sort[0])
	}
	if q.Sort[1].Field != "name" || q.Sort[1].Desc {
		t.Fatalf("unexpected second key %+v", q.Sort[1])
	}
}

// Clients have no range or status parameters; stray ones are ignored rather
// than applied.
func TestBuild_ClientsNarrowSurface(t *testing.T) {
	raw := url.Values{"followersMin": {"1000"}, "status": {"open"}}
	q, err := Build(raw, KindClients)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(q.Spec.Ranges) != 0 || q.Spec.Status != "" {
		t.Fatalf("client filter must ignore foreign params: %+v", q.Spec)
	}
}

func TestBuild_ProjectStatus(t *testing.T) {
	q, err := Build(url.Values{"status": {"open"}}, KindProjects)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Spec.Status != "open" {
		t.Fatalf("status not applied: %q", q.Spec.Status)
	}

	if _, err := Build(url.Values{"status": {"archived"}}, KindProjects); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
}

func TestBuild_ProjectBudgetBounds(t *testing.T) {
	raw := url.Values{"budgetMin": {"100"}, "budgetMax": {"900"}}
	q, err := Build(raw, KindProjects)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fields := map[string]bool{}
	for _, r := range q.Spec.Ranges {
		fields[r.Field] = true
	}
	if !fields["budget_min"] || !fields["budget_max"] {
		t.Fatalf("budget bounds not mapped: %+v", q.Spec.Ranges)
	}
}

func TestBuild_DateRange(t *testing.T) {
	raw := url.Values{"createdFrom": {"2026-01-01"}, "createdTo": {"2026-06-30T23:59:59Z"}}
	q, err := Build(raw, KindProjects)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Spec.Created == nil || q.Spec.Created.From == nil || q.Spec.Created.To == nil {
		t.Fatalf("date range not assembled: %+v", q.Spec.Created)
	}

	if _, err := Build(url.Values{"createdFrom": {"yesterday"}}, KindProjects); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad date must be rejected, got %v", err)
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build(url.Values{}, Kind("gadgets"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
