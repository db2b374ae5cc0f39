package page

import (
	"context"

	domain "tradecapacity/internal/domain/page"
)

// Store persists page content.
type Store interface {
	Get(ctx context.Context, view string) (domain.Page, error)
	Save(ctx context.Context, p domain.Page) error
}
