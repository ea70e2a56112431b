package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchingCache is the slice of the cache layer the matching path needs.
// Implementations must tolerate an unavailable backend by turning every call
// into a no-op miss.
type MatchingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const matchingCachePattern = "matching:*"

func matchingCacheKey(projectID uuid.UUID) string {
	return "matching:" + projectID.String()
}
