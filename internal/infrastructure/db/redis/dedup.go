package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupWindow = time.Hour

// QueryDedup suppresses repeated contact-query submissions from the same
// sender about the same subject within a sliding window. Keys are hashed so
// raw email addresses never land in Redis.
type QueryDedup struct {
	client *redis.Client
	window time.Duration
}

func NewQueryDedup(client *redis.Client, window time.Duration) *QueryDedup {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &QueryDedup{client: client, window: window}
}

func dedupKey(email, subject string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(email) + "\x00" + strings.ToLower(subject)))
	return "query:dedup:" + hex.EncodeToString(sum[:])
}

// IsDuplicate reports whether an equivalent submission was marked within the
// window.
func (d *QueryDedup) IsDuplicate(ctx context.Context, email, subject string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := d.client.Exists(ctx, dedupKey(email, subject)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup exists: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission so follow-ups inside the window are suppressed.
func (d *QueryDedup) Mark(ctx context.Context, email, subject string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := d.client.Set(ctx, dedupKey(email, subject), 1, d.window).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}
