package capacity

import (
	"context"

	domain "tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
)

// Store serves the read-only capacity data set.
type Store interface {
	ListRows(ctx context.Context) ([]domain.Row, error)
	GetRow(ctx context.Context, id int) (domain.Row, error)
	Catalog(ctx context.Context) (filter.Catalog, error)
	ListStates(ctx context.Context) ([]domain.StateCapacity, error)
	ListTerritories(ctx context.Context) ([]domain.TerritoryCapacity, error)
	Replace(ctx context.Context, d domain.Dataset) error
}
