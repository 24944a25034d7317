package filter

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	defaultSort = "-createdAt"
)

// kindConfig declares, per entity kind, which query parameters are accepted
// and how they map onto stored field paths.
type kindConfig struct {
	role      string
	textField string
	// rangeParams maps a "<param>Min"/"<param>Max" prefix to a field path.
	rangeParams map[string]string
	setParams   map[string]string
	// sortFields maps the external sort name to the stored field path.
	sortFields map[string]string
	hasStatus  bool
}

var kinds = map[Kind]kindConfig{
	KindInfluencers: {
		role:      domain.RoleInfluencer,
		textField: "name",
		rangeParams: map[string]string{
			"followers":      "stats.followers",
			"avgViews":       "stats.avg_views",
			"engagementRate": "stats.engagement_rate",
		},
		setParams: map[string]string{
			"platforms": "platforms",
			"niches":    "niches",
		},
		sortFields: map[string]string{
			"createdAt":      "created_at",
			"name":           "name",
			"followers":      "stats.followers",
			"avgViews":       "stats.avg_views",
			"engagementRate": "stats.engagement_rate",
		},
	},
	KindClients: {
		role:      domain.RoleClient,
		textField: "name",
		sortFields: map[string]string{
			"createdAt": "created_at",
			"name":      "name",
		},
	},
	KindProjects: {
		textField: "title",
		rangeParams: map[string]string{
			"budgetMin": "budget_min",
			"budgetMax": "budget_max",
		},
		setParams: map[string]string{
			"platforms": "platforms",
			"niches":    "niches",
		},
		sortFields: map[string]string{
			"createdAt": "created_at",
			"title":     "title",
			"budgetMin": "budget_min",
			"budgetMax": "budget_max",
		},
		hasStatus: true,
	},
}

// Build validates raw query parameters against the rules for kind and
// assembles the Query. All parse and whitelist failures wrap
// domain.ErrValidation.
func Build(raw url.Values, kind Kind) (*Query, error) {
	cfg, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown entity kind %q", domain.ErrValidation, kind)
	}

	spec := Spec{Role: cfg.role}

	if name := strings.TrimSpace(raw.Get("name")); name != "" {
		// QuoteMeta makes user-supplied metacharacters match literally.
		spec.Text = &TextMatch{Field: cfg.textField, Pattern: regexp.QuoteMeta(name)}
	}
	spec.Slug = strings.TrimSpace(raw.Get("slug"))

	if cfg.hasStatus {
		if status := strings.TrimSpace(raw.Get("status")); status != "" {
			switch domain.ProjectStatus(status) {
			case domain.ProjectOpen, domain.ProjectClosed, domain.ProjectInProgress, domain.ProjectCompleted:
				spec.Status = status
			default:
				return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
			}
		}
	}

	for param, field := range cfg.rangeParams {
		r, err := parseRange(raw, param, field)
		if err != nil {
			return nil, err
		}
		if r != nil {
			spec.Ranges = append(spec.Ranges, *r)
		}
	}

	for param, field := range cfg.setParams {
		if vals := splitList(raw.Get(param)); len(vals) > 0 {
			spec.Sets = append(spec.Sets, SetMembership{Field: field, Values: vals})
		}
	}

	created, err := parseDateRange(raw)
	if err != nil {
		return nil, err
	}
	spec.Created = created

	sort, err := parseSort(raw.Get("sort"), cfg.sortFields)
	if err != nil {
		return nil, err
	}

	page, err := parsePagination(raw)
	if err != nil {
		return nil, err
	}

	return &Query{Spec: spec, Sort: sort, Page: page}, nil
}

// parseRange reads "<param>Min" and "<param>Max", except for params that
// already end in Min/Max (projects' budgetMin/budgetMax map one to one).
func parseRange(raw url.Values, param, field string) (*Range, error) {
	var minKey, maxKey string
	switch {
	case strings.HasSuffix(param, "Min"):
		minKey, maxKey = param, ""
	case strings.HasSuffix(param, "Max"):
		minKey, maxKey = "", param
	default:
		minKey, maxKey = param+"Min", param+"Max"
	}

	var r Range
	r.Field = field
	if minKey != "" {
		v, err := parseFloat(raw, minKey)
		if err != nil {
			return nil, err
		}
		r.Min = v
	}
	if maxKey != "" {
		v, err := parseFloat(raw, maxKey)
		if err != nil {
			return nil, err
		}
		r.Max = v
	}
	if r.Min == nil && r.Max == nil {
		return nil, nil
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return nil, fmt.Errorf("%w: %s range is inverted", domain.ErrValidation, field)
	}
	return &r, nil
}

func parseFloat(raw url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(raw.Get(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric", domain.ErrValidation, key)
	}
	return &v, nil
}

func parseDateRange(raw url.Values) (*DateRange, error) {
	from, err := parseDate(raw.Get("createdFrom"), "createdFrom")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(raw.Get("createdTo"), "createdTo")
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return nil, nil
	}
	return &DateRange{From: from, To: to}, nil
}

func parseDate(s, key string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or YYYY-MM-DD date", domain.ErrValidation, key)
}

// parseSort accepts a comma-separated list of field names, each optionally
// prefixed with "-" for descending order. Unknown fields are rejected, not
// silently dropped.
func parseSort(s string, allowed map[string]string) ([]SortField, error) {
	if strings.TrimSpace(s) == "" {
		s = defaultSort
	}
	var out []SortField
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		desc := strings.HasPrefix(tok, "-")
		name := strings.TrimPrefix(tok, "-")
		field, ok := allowed[name]
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort by %q", domain.ErrValidation, name)
		}
		out = append(out, SortField{Field: field, Desc: desc})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty sort expression", domain.ErrValidation)
	}
	return out, nil
}

func parsePagination(raw url.Values) (Pagination, error) {
	page, err := parsePositiveInt(raw, "page", 1)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := parsePositiveInt(raw, "limit", DefaultLimit)
	if err != nil {
		return Pagination{}, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}, nil
}

func parsePositiveInt(raw url.Values, key string, def int) (int, error) {
	s := strings.TrimSpace(raw.Get(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, key)
	}
	return v, nil
}

// splitList splits a comma-separated parameter, trimming each element and
// dropping empties.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
