package ports

import (
	"context"

	"github.com/bnema/emetic/internal/domain"
)

// CacheStore persists the session cookies and identity between runs.
type CacheStore interface {
	Load(ctx context.Context) (domain.CacheState, error)
	Save(ctx context.Context, state domain.CacheState) error
}
