package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// maxSlugAttempts bounds the probed-retry loop. Exhausting it returns
// domain.ErrSlugExhausted instead of looping forever.
const maxSlugAttempts = 10

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// SlugResolver derives unique URL-safe identifiers from display text.
//
// Two strategies, selected by entity kind:
//   - users: probe the collection for the candidate and retry with a random
//     token on collision. Slugs stay a clean function of the display name
//     across renames.
//   - projects: append the creation timestamp once, no probe. Project slugs
//     are set once and collisions at millisecond resolution are negligible.
//
// Either way the unique index on the target collection is the final race
// arbiter; the probe only avoids pointless constraint-violation round trips.
type SlugResolver struct {
	prober ports.SlugProber
	log    zerolog.Logger

	// overridable for deterministic tests
	now   func() time.Time
	token func() string
}

func NewSlugResolver(prober ports.SlugProber, log zerolog.Logger) *SlugResolver {
	return &SlugResolver{
		prober: prober,
		log:    log,
		now:    time.Now,
		token:  randomToken,
	}
}

// Resolve implements ports.SlugResolver.
func (r *SlugResolver) Resolve(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error) {
	base := normalizeSlug(sourceText)
	if base == "" {
		base = fallbackBase(kind)
	}

	switch kind {
	case ports.SlugKindProject:
		return fmt.Sprintf("%s-%d", base, r.now().UnixMilli()), nil
	case ports.SlugKindUser:
		return r.resolveProbed(ctx, base, excludeID)
	default:
		return "", fmt.Errorf("%w: unknown slug kind %q", domain.ErrValidation, kind)
	}
}

func (r *SlugResolver) resolveProbed(ctx context.Context, base, excludeID string) (string, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := candidateSlug(base, r.token(), attempt)
		exists, err := r.prober.ExistsSlug(ctx, ports.SlugKindUser, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("slug probe: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		r.log.Debug().Str("candidate", candidate).Int("attempt", attempt).Msg("slug taken, retrying")
	}
	return "", domain.ErrSlugExhausted
}

// candidateSlug is a pure function of the base, a random token, and the
// attempt index. Attempt 0 is the bare base; later attempts append the token,
// plus the attempt number once a single token has already failed.
func candidateSlug(base, token string, attempt int) string {
	switch {
	case attempt == 0:
		return base
	case attempt == 1:
		return fmt.Sprintf("%s-%s", base, token)
	default:
		return fmt.Sprintf("%s-%s%d", base, token, attempt)
	}
}

// normalizeSlug lowercases, strips to [a-z0-9-], and collapses hyphen runs.
func normalizeSlug(s string) string {
	out := slug.Make(s)
	out = nonSlugChars.ReplaceAllString(out, "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

func fallbackBase(kind ports.SlugKind) string {
	if kind == ports.SlugKindProject {
		return "project"
	}
	return "user"
}

// randomToken returns 4 lowercase hex characters.
func randomToken() string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%04x", time.Now().UnixNano()&0xFFFF)
	}
	return fmt.Sprintf("%04x", b)
}
