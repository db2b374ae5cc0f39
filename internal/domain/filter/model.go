package filter

import (
	"errors"
	"sort"
	"strings"
)

// Category is a filter dimension of the overview page.
type Category string

// Filter categories
const (
	Activity  Category = "activity"
	Cycle     Category = "cycle"
	Area      Category = "area"
	Region    Category = "region"
	Division  Category = "division"
	Territory Category = "territory"
)

// Categories lists every category in display order.
var Categories = []Category{Activity, Cycle, Area, Region, Division, Territory}

var labels = map[Category]string{
	Activity:  "Activity",
	Cycle:     "Cycle",
	Area:      "Area",
	Region:    "Region",
	Division:  "Division",
	Territory: "Territory",
}

// ErrInvalidCategory is returned for unknown categories.
var ErrInvalidCategory = errors.New("filter category must be one of: activity, cycle, area, region, division, territory")

// ParseCategory validates a raw category name.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := labels[c]; !ok {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Label returns the display label of the category.
func (c Category) Label() string {
	return labels[c]
}

// Options holds the known values of each category, in display order.
type Options map[Category][]string

// Contains reports whether v is a known option of c.
func (o Options) Contains(c Category, v string) bool {
	for _, opt := range o[c] {
		if opt == v {
			return true
		}
	}
	return false
}

// Selection maps each category to its selected values, in option order.
// A missing or empty entry means the category is unconstrained.
type Selection map[Category][]string

// Values returns a copy of the selected values of c.
func (s Selection) Values(c Category) []string {
	return append([]string(nil), s[c]...)
}

// Has reports whether v is selected in c.
func (s Selection) Has(c Category, v string) bool {
	for _, sel := range s[c] {
		if sel == v {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for c, vals := range s {
		if len(vals) > 0 {
			out[c] = append([]string(nil), vals...)
		}
	}
	return out
}

// SetSelection replaces the selection of one category.
// Values outside the category's options are dropped silently; duplicates collapse.
// PRE: c is a valid category
// POST: returns a new selection (the input is not mutated) whose c entry is a
// subset of opts[c] in option order, and the number of distinct values dropped
func SetSelection(sel Selection, opts Options, c Category, values []string) (Selection, int) {
	requested := make(map[string]bool, len(values))
	for _, v := range values {
		requested[v] = true
	}

	var kept []string
	for _, opt := range opts[c] {
		if requested[opt] {
			kept = append(kept, opt)
			delete(requested, opt)
		}
	}

	next := sel.Clone()
	if len(kept) == 0 {
		delete(next, c)
	} else {
		next[c] = kept
	}
	return next, len(requested)
}

// Fielder exposes the value a record carries for a category.
// ok is false when the record has no field for the category.
type Fielder interface {
	Field(c Category) (value string, ok bool)
}

// DeriveRows returns the rows passing the selection, in input order.
// A row passes when every non-empty category it has a field for contains the
// row's value. Empty categories impose no constraint, so an empty selection
// returns every row.
// INVARIANT: rows is not mutated
func DeriveRows[T Fielder](rows []T, sel Selection) []T {
	sets := make(map[Category]map[string]bool, len(sel))
	for c, vals := range sel {
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]bool, len(vals))
		for _, v := range vals {
			set[v] = true
		}
		sets[c] = set
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(row, sets) {
			out = append(out, row)
		}
	}
	return out
}

func matches[T Fielder](row T, sets map[Category]map[string]bool) bool {
	for c, set := range sets {
		v, ok := row.Field(c)
		if !ok {
			continue
		}
		if !set[v] {
			return false
		}
	}
	return true
}

// AreaLookup maps a map state code to its coarse area.
type AreaLookup map[string]string

// Catalog bundles everything a selection is validated against.
type Catalog struct {
	Options    Options
	Defaults   Selection
	AreaLookup AreaLookup
}

// DefaultSelection returns the catalog defaults, filtered through the options.
func (c Catalog) DefaultSelection() Selection {
	sel := Selection{}
	for _, cat := range Categories {
		sel, _ = SetSelection(sel, c.Options, cat, c.Defaults[cat])
	}
	return sel
}

// ApplyMapClick overwrites the area selection with the area of the clicked state.
// Unmapped states leave the selection unchanged.
// PRE: none
// POST: returns the next selection and whether the click mapped to an area
func ApplyMapClick(sel Selection, cat Catalog, state string) (Selection, bool) {
	area, ok := cat.AreaLookup[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return sel.Clone(), false
	}
	next, _ := SetSelection(sel, cat.Options, Area, []string{area})
	return next, true
}

// OptionsFromRows builds the option lists: static lists are kept as given,
// every category the rows carry a field for lists its distinct values in row
// order, and the area list also includes every area reachable from lookup.
func OptionsFromRows[T Fielder](rows []T, static Options, lookup AreaLookup) Options {
	opts := make(Options, len(Categories))
	for c, vals := range static {
		opts[c] = append([]string(nil), vals...)
	}

	for _, c := range Categories {
		if _, ok := static[c]; ok {
			continue
		}
		seen := map[string]bool{}
		var vals []string
		for _, row := range rows {
			v, ok := row.Field(c)
			if !ok || v == "" || seen[v] {
				continue
			}
			seen[v] = true
			vals = append(vals, v)
		}
		if c == Area {
			var extra []string
			for _, area := range lookup {
				if !seen[area] {
					seen[area] = true
					extra = append(extra, area)
				}
			}
			sort.Strings(extra)
			vals = append(vals, extra...)
		}
		if len(vals) > 0 {
			opts[c] = vals
		}
	}
	return opts
}
