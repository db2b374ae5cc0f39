package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"tradecapacity/internal/adapters/storage/fixtures"
	"tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/page"
)

// SeedCapacityStore is the store interface needed to load the data set.
type SeedCapacityStore interface {
	Replace(ctx context.Context, d capacity.Dataset) error
}

// SeedPageStore is the store interface needed to load page content.
type SeedPageStore interface {
	Save(ctx context.Context, p page.Page) error
}

// SeedFixturesDeps holds dependencies for SeedFixtures.
type SeedFixturesDeps struct {
	CapacityStore SeedCapacityStore
	PageStore     SeedPageStore
}

// ExecuteSeedFixtures loads the fixture set into storage.
// PRE: schema is migrated
// POST: storage holds exactly the fixture data set; running it again changes nothing
func ExecuteSeedFixtures(ctx context.Context, set fixtures.Set, deps SeedFixturesDeps) error {
	if err := deps.CapacityStore.Replace(ctx, set.Data); err != nil {
		return fmt.Errorf("seed capacity data: %w", err)
	}
	for _, p := range set.Pages {
		if err := deps.PageStore.Save(ctx, p); err != nil {
			return fmt.Errorf("seed page %s: %w", p.View, err)
		}
	}
	slog.Info("seed_fixtures", "rows", len(set.Data.Rows), "states", len(set.Data.States), "pages", len(set.Pages))
	return nil
}
