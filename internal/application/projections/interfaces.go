package projections

import (
	"context"

	domainCapacity "tradecapacity/internal/domain/capacity"
	domainPage "tradecapacity/internal/domain/page"
)

// CapacityStore interface for capacity data queries.
type CapacityStore interface {
	ListRows(ctx context.Context) ([]domainCapacity.Row, error)
	ListStates(ctx context.Context) ([]domainCapacity.StateCapacity, error)
	ListTerritories(ctx context.Context) ([]domainCapacity.TerritoryCapacity, error)
}

// PageStore interface for page content queries.
type PageStore interface {
	Get(ctx context.Context, view string) (domainPage.Page, error)
}
