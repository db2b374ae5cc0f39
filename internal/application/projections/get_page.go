package projections

import (
	"context"
	"errors"

	domainPage "tradecapacity/internal/domain/page"
	"tradecapacity/internal/domain/route"
)

// GetPageQuery carries query parameters.
type GetPageQuery struct {
	View route.View
}

// GetPageDeps holds dependencies for GetPage.
type GetPageDeps struct {
	PageStore PageStore
}

// QueryGetPage retrieves the content of a placeholder page.
// PRE: query.View is a navigable view other than overview
// POST: Returns the stored page, or a page titled after the view when none is stored
func QueryGetPage(ctx context.Context, query GetPageQuery, deps GetPageDeps) (domainPage.Page, error) {
	p, err := deps.PageStore.Get(ctx, string(query.View))
	if errors.Is(err, domainPage.ErrNotFound) {
		return domainPage.Page{View: string(query.View), Title: query.View.Title()}, nil
	}
	if err != nil {
		return domainPage.Page{}, err
	}
	return p, nil
}
