package capacity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"tradecapacity/internal/domain/filter"
)

// Row is one territory record of the capacity grid.
type Row struct {
	ID              int
	Area            string
	Region          string
	Division        string
	Territory       string
	CapacityPercent int
	PacingPercent   int
	RegionColor     string
}

// Field implements filter.Fielder. Activity and cycle are not row attributes.
func (r Row) Field(c filter.Category) (string, bool) {
	switch c {
	case filter.Area:
		return r.Area, true
	case filter.Region:
		return r.Region, true
	case filter.Division:
		return r.Division, true
	case filter.Territory:
		return r.Territory, true
	}
	return "", false
}

// Capacity bands
const (
	BandOver  = "over"  // > 100%
	BandNear  = "near"  // 90-100%
	BandUnder = "under" // < 90%
)

// BandColor maps bands to their highlight colour.
var BandColor = map[string]string{
	BandOver:  "#ff5722",
	BandNear:  "#ff9800",
	BandUnder: "#4caf50",
}

// BandFor classifies a capacity percentage.
func BandFor(capacityPercent int) string {
	switch {
	case capacityPercent > 100:
		return BandOver
	case capacityPercent >= 90:
		return BandNear
	default:
		return BandUnder
	}
}

// Band returns the capacity band of the row.
func (r Row) Band() string {
	return BandFor(r.CapacityPercent)
}

// OverCapacity reports whether the row is above 100%.
func (r Row) OverCapacity() bool {
	return r.CapacityPercent > 100
}

// CapacityStatus returns the detail-card capacity label.
func (r Row) CapacityStatus() string {
	if r.OverCapacity() {
		return "Over Capacity"
	}
	return "Within Limits"
}

// OnTrack reports whether year-to-date pacing is above half.
func (r Row) OnTrack() bool {
	return r.PacingPercent > 50
}

// PacingStatus returns the detail-card pacing label.
func (r Row) PacingStatus() string {
	if r.OnTrack() {
		return "On Track"
	}
	return "Needs Attention"
}

// Sortable grid columns
const (
	ColumnID        = "id"
	ColumnArea      = "tm_area"
	ColumnRegion    = "tm_region"
	ColumnDivision  = "tm_division"
	ColumnTerritory = "tm_territory"
	ColumnCapacity  = "capacity_percent"
	ColumnPacing    = "pacing_percent"
)

// Columns lists the grid columns in display order.
var Columns = []string{ColumnID, ColumnArea, ColumnRegion, ColumnDivision, ColumnTerritory, ColumnCapacity, ColumnPacing}

// ColumnHeaders maps columns to header labels.
var ColumnHeaders = map[string]string{
	ColumnID:        "#",
	ColumnArea:      "TM Area",
	ColumnRegion:    "TM Region",
	ColumnDivision:  "TM Division",
	ColumnTerritory: "TM Territory",
	ColumnCapacity:  "Capacity %",
	ColumnPacing:    "Pacing %",
}

// SortRows returns a sorted copy. Unknown columns keep the input order.
// Ties keep input order.
func SortRows(rows []Row, column, dir string) []Row {
	out := append([]Row(nil), rows...)
	less := lessFor(column)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == "desc" {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFor(column string) func(a, b Row) bool {
	switch column {
	case ColumnID:
		return func(a, b Row) bool { return a.ID < b.ID }
	case ColumnArea:
		return func(a, b Row) bool { return strings.Compare(a.Area, b.Area) < 0 }
	case ColumnRegion:
		return func(a, b Row) bool { return strings.Compare(a.Region, b.Region) < 0 }
	case ColumnDivision:
		return func(a, b Row) bool { return strings.Compare(a.Division, b.Division) < 0 }
	case ColumnTerritory:
		return func(a, b Row) bool { return strings.Compare(a.Territory, b.Territory) < 0 }
	case ColumnCapacity:
		return func(a, b Row) bool { return a.CapacityPercent < b.CapacityPercent }
	case ColumnPacing:
		return func(a, b Row) bool { return a.PacingPercent < b.PacingPercent }
	}
	return nil
}

// StateCapacity is one state of the capacity map.
type StateCapacity struct {
	State    string
	Capacity int
	TileRow  int // position on the tile-grid map
	TileCol  int
}

// TerritoryCapacity is one bar of the capacity graph.
type TerritoryCapacity struct {
	Territory string
	Capacity  int
}

// colorScale is the map colour ramp, from low to high capacity.
var colorScale = []struct {
	at  float64
	rgb [3]int
}{
	{0.0, [3]int{0xe8, 0xea, 0xf6}},
	{0.5, [3]int{0xff, 0xeb, 0x3b}},
	{0.8, [3]int{0xff, 0x98, 0x00}},
	{1.0, [3]int{0xff, 0x57, 0x22}},
}

// ScaleColor interpolates the map colour of value within [min, max].
// PRE: none (a degenerate range maps everything to the top colour)
// POST: returns a #rrggbb colour
func ScaleColor(value, min, max int) string {
	pos := 1.0
	if max > min {
		pos = float64(value-min) / float64(max-min)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	for i := 1; i < len(colorScale); i++ {
		lo, hi := colorScale[i-1], colorScale[i]
		if pos > hi.at {
			continue
		}
		frac := (pos - lo.at) / (hi.at - lo.at)
		var c [3]int
		for k := range c {
			c[k] = lo.rgb[k] + int(math.Round(float64(hi.rgb[k]-lo.rgb[k])*frac))
		}
		return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
	}
	last := colorScale[len(colorScale)-1].rgb
	return fmt.Sprintf("#%02x%02x%02x", last[0], last[1], last[2])
}

// ErrRowNotFound is returned when no row has the requested id.
var ErrRowNotFound = errors.New("capacity row not found")

// Dataset is the full read-only data set behind the dashboard.
type Dataset struct {
	Rows        []Row
	Options     filter.Options // static option lists (categories rows do not carry)
	Defaults    filter.Selection
	AreaLookup  filter.AreaLookup
	States      []StateCapacity
	Territories []TerritoryCapacity
}

// Catalog builds the selection catalog of the data set.
func (d Dataset) Catalog() filter.Catalog {
	return filter.Catalog{
		Options:    filter.OptionsFromRows(d.Rows, d.Options, d.AreaLookup),
		Defaults:   d.Defaults,
		AreaLookup: d.AreaLookup,
	}
}
