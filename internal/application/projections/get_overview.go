package projections

import (
	"context"
	"fmt"

	"tradecapacity/internal/application/listutil"
	"tradecapacity/internal/application/viewstate"
	domainCapacity "tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/viewmode"
)

// GetOverviewQuery carries query parameters.
type GetOverviewQuery struct {
	State   viewstate.State
	Catalog filter.Catalog
}

// FilterOption is one checkbox of a filter group.
type FilterOption struct {
	Value    string
	Selected bool
}

// FilterGroup is the multi-select of one category.
type FilterGroup struct {
	Category filter.Category
	Label    string
	Options  []FilterOption
	Count    int // number of selected values
}

// GridColumn is a sortable grid header.
type GridColumn struct {
	Key     string
	Label   string
	Sorted  bool
	Dir     string // current direction when Sorted
	NextDir string // direction a click on the header requests
}

// GridRow is a grid row with its derived presentation.
type GridRow struct {
	domainCapacity.Row
	BandColor string
	Selected  bool
}

// RowDetail is the detail card of the selected row.
type RowDetail struct {
	Row            domainCapacity.Row
	BandColor      string
	CapacityStatus string
	OverCapacity   bool
	PacingStatus   string
	OnTrack        bool
}

// MapTile is one state of the tile-grid map.
type MapTile struct {
	State     string
	Capacity  int
	Row       int
	Col       int
	Color     string
	Area      string // empty when the state has no area
	Clickable bool
	Selected  bool // its area is in the area selection
}

// GraphBar is one territory bar of the capacity graph.
type GraphBar struct {
	Territory     string
	Capacity      int
	Color         string
	HeightPercent int // relative to the tallest bar
}

// GetOverviewResult carries the query result.
type GetOverviewResult struct {
	Filters   []FilterGroup
	Columns   []GridColumn
	Rows      []GridRow
	Page      listutil.PageInfo
	Detail    *RowDetail
	Tiles     []MapTile
	MapMin    int
	MapMax    int
	Bars      []GraphBar
	ViewMode  viewmode.State
	ShowMap   bool
	ShowGraph bool
}

// GetOverviewDeps holds dependencies for GetOverview.
type GetOverviewDeps struct {
	CapacityStore CapacityStore
}

// QueryGetOverview assembles the overview page from the session state.
// PRE: query.State was produced by the controller that owns query.Catalog
// POST: Rows are the derived rows sorted and paginated by the grid state;
// Page is clamped to the available pages
// INVARIANT: the session state is not mutated
func QueryGetOverview(ctx context.Context, query GetOverviewQuery, deps GetOverviewDeps) (GetOverviewResult, error) {
	rows, err := deps.CapacityStore.ListRows(ctx)
	if err != nil {
		return GetOverviewResult{}, fmt.Errorf("list rows: %w", err)
	}
	states, err := deps.CapacityStore.ListStates(ctx)
	if err != nil {
		return GetOverviewResult{}, fmt.Errorf("list states: %w", err)
	}
	territories, err := deps.CapacityStore.ListTerritories(ctx)
	if err != nil {
		return GetOverviewResult{}, fmt.Errorf("list territories: %w", err)
	}

	st := query.State
	grid := st.Grid

	derived := filter.DeriveRows(rows, st.Selection)
	sorted := domainCapacity.SortRows(derived, grid.Sort, grid.Dir)
	pageInfo := listutil.NewPageInfo(grid.Page, grid.PerPage, len(sorted))

	result := GetOverviewResult{
		Filters:   buildFilterGroups(query.Catalog.Options, st.Selection),
		Columns:   buildColumns(grid),
		Page:      pageInfo,
		ViewMode:  st.ViewMode,
		ShowMap:   st.ViewMode.Mode == viewmode.Map,
		ShowGraph: st.ViewMode.Mode == viewmode.Graph,
	}

	for _, r := range listutil.Paginate(sorted, pageInfo) {
		result.Rows = append(result.Rows, GridRow{
			Row:       r,
			BandColor: domainCapacity.BandColor[r.Band()],
			Selected:  r.ID == grid.SelectedRowID,
		})
	}

	if grid.SelectedRowID > 0 {
		for _, r := range derived {
			if r.ID == grid.SelectedRowID {
				result.Detail = &RowDetail{
					Row:            r,
					BandColor:      domainCapacity.BandColor[r.Band()],
					CapacityStatus: r.CapacityStatus(),
					OverCapacity:   r.OverCapacity(),
					PacingStatus:   r.PacingStatus(),
					OnTrack:        r.OnTrack(),
				}
				break
			}
		}
	}

	result.Tiles, result.MapMin, result.MapMax = buildTiles(states, query.Catalog.AreaLookup, st.Selection)
	result.Bars = buildBars(territories)
	return result, nil
}

func buildFilterGroups(opts filter.Options, sel filter.Selection) []FilterGroup {
	groups := make([]FilterGroup, 0, len(filter.Categories))
	for _, c := range filter.Categories {
		g := FilterGroup{Category: c, Label: c.Label()}
		for _, v := range opts[c] {
			selected := sel.Has(c, v)
			if selected {
				g.Count++
			}
			g.Options = append(g.Options, FilterOption{Value: v, Selected: selected})
		}
		groups = append(groups, g)
	}
	return groups
}

func buildColumns(grid viewstate.GridState) []GridColumn {
	cols := make([]GridColumn, 0, len(domainCapacity.Columns))
	for _, key := range domainCapacity.Columns {
		col := GridColumn{Key: key, Label: domainCapacity.ColumnHeaders[key], NextDir: "asc"}
		if grid.Sort == key {
			col.Sorted = true
			col.Dir = grid.Dir
			if grid.Dir == "asc" {
				col.NextDir = "desc"
			}
		}
		cols = append(cols, col)
	}
	return cols
}

func buildTiles(states []domainCapacity.StateCapacity, lookup filter.AreaLookup, sel filter.Selection) ([]MapTile, int, int) {
	if len(states) == 0 {
		return nil, 0, 0
	}
	minCap, maxCap := states[0].Capacity, states[0].Capacity
	for _, s := range states[1:] {
		minCap = min(minCap, s.Capacity)
		maxCap = max(maxCap, s.Capacity)
	}

	tiles := make([]MapTile, 0, len(states))
	for _, s := range states {
		area, mapped := lookup[s.State]
		tiles = append(tiles, MapTile{
			State:     s.State,
			Capacity:  s.Capacity,
			Row:       s.TileRow,
			Col:       s.TileCol,
			Color:     domainCapacity.ScaleColor(s.Capacity, minCap, maxCap),
			Area:      area,
			Clickable: mapped,
			Selected:  mapped && sel.Has(filter.Area, area),
		})
	}
	return tiles, minCap, maxCap
}

func buildBars(territories []domainCapacity.TerritoryCapacity) []GraphBar {
	tallest := 0
	for _, t := range territories {
		tallest = max(tallest, t.Capacity)
	}
	bars := make([]GraphBar, 0, len(territories))
	for _, t := range territories {
		height := 0
		if tallest > 0 {
			height = t.Capacity * 100 / tallest
		}
		bars = append(bars, GraphBar{
			Territory:     t.Territory,
			Capacity:      t.Capacity,
			Color:         domainCapacity.BandColor[domainCapacity.BandFor(t.Capacity)],
			HeightPercent: height,
		})
	}
	return bars
}
