package projections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/filter"
	domainPage "tradecapacity/internal/domain/page"
	"tradecapacity/internal/domain/route"
	"tradecapacity/internal/domain/session"
	"tradecapacity/internal/domain/sidebar"
)

func TestQueryGetState_Fresh(t *testing.T) {
	cat := testDataset().Catalog()
	v := QueryGetState(viewstate.Initial(cat))

	assert.False(t, v.Session.Authenticated)
	assert.Equal(t, route.Login, v.Route)
	assert.Nil(t, v.Alert)
	assert.Equal(t, "email", v.LoginMode)
	assert.Equal(t, -sidebar.Width, v.Sidebar.Left)
	assert.Equal(t, "map", v.ViewMode)
	assert.Equal(t, "area", v.OrganizeBy)
	assert.Len(t, v.Selection, len(filter.Categories))
	assert.Equal(t, []string{"Planning"}, v.Selection["activity"])
	assert.Equal(t, []string{}, v.Selection["area"])
}

func TestQueryGetState_SignedIn(t *testing.T) {
	st := viewstate.Initial(filter.Catalog{})
	st.Session = session.Login("a@b.com")
	st.Path = "/capacity"
	st.Sidebar = sidebar.State{Open: true}
	a, err := alert.Raise("id-1", "hello", alert.ColorInfo)
	require.NoError(t, err)
	st.Alert = a

	v := QueryGetState(st)
	assert.Equal(t, route.Capacity, v.Route)
	assert.Equal(t, "a@b.com", v.Session.UserEmail)
	require.NotNil(t, v.Alert)
	assert.Equal(t, "hello", v.Alert.Message)
	assert.Equal(t, alert.AutoHideTicks, v.Alert.Remaining)
	assert.Equal(t, sidebar.Width, v.Sidebar.ContentMargin)
	assert.True(t, v.Sidebar.OverlayInteractive)
}

type mockPageStore struct {
	pages map[string]domainPage.Page
}

func (m *mockPageStore) Get(_ context.Context, view string) (domainPage.Page, error) {
	p, ok := m.pages[view]
	if !ok {
		return domainPage.Page{}, domainPage.ErrNotFound
	}
	return p, nil
}

func TestQueryGetPage(t *testing.T) {
	store := &mockPageStore{pages: map[string]domainPage.Page{
		"cycle": {View: "cycle", Title: "Cycle Management", Body: "# Cycles"},
	}}

	p, err := QueryGetPage(context.Background(), GetPageQuery{View: route.Cycle}, GetPageDeps{PageStore: store})
	require.NoError(t, err)
	assert.Equal(t, "Cycle Management", p.Title)

	p, err = QueryGetPage(context.Background(), GetPageQuery{View: route.Control}, GetPageDeps{PageStore: store})
	require.NoError(t, err)
	assert.Equal(t, route.Control.Title(), p.Title)
	assert.Empty(t, p.Body)
}
