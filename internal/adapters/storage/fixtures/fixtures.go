// Package fixtures holds the embedded sample data set.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
	"tradecapacity/internal/domain/page"
)

//go:embed fixtures.yaml
var raw []byte

// Set is everything the store is seeded with.
type Set struct {
	Data  capacity.Dataset
	Pages []page.Page
}

type document struct {
	Options    map[string][]string `yaml:"options"`
	Defaults   map[string][]string `yaml:"defaults"`
	AreaLookup map[string]string   `yaml:"area_lookup"`
	Rows       []struct {
		ID              int    `yaml:"id"`
		Area            string `yaml:"tm_area"`
		Region          string `yaml:"tm_region"`
		Division        string `yaml:"tm_division"`
		Territory       string `yaml:"tm_territory"`
		CapacityPercent int    `yaml:"capacity_percent"`
		PacingPercent   int    `yaml:"pacing_percent"`
		RegionColor     string `yaml:"region_color"`
	} `yaml:"rows"`
	States []struct {
		State    string `yaml:"state"`
		Capacity int    `yaml:"capacity"`
		Row      int    `yaml:"row"`
		Col      int    `yaml:"col"`
	} `yaml:"states"`
	Territories []struct {
		Territory string `yaml:"territory"`
		Capacity  int    `yaml:"capacity"`
	} `yaml:"territories"`
	Pages []struct {
		View    string `yaml:"view"`
		Title   string `yaml:"title"`
		Summary string `yaml:"summary"`
		Body    string `yaml:"body"`
	} `yaml:"pages"`
}

// Load decodes the embedded fixtures.
func Load() (Set, error) {
	return Parse(raw)
}

// Parse decodes a fixtures document.
// PRE: none
// POST: option and default keys are valid categories; row ids are unique and positive
func Parse(b []byte) (Set, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Set{}, fmt.Errorf("decode fixtures: %w", err)
	}

	opts, err := categoryMap(doc.Options)
	if err != nil {
		return Set{}, fmt.Errorf("fixtures options: %w", err)
	}
	defaults, err := categoryMap(doc.Defaults)
	if err != nil {
		return Set{}, fmt.Errorf("fixtures defaults: %w", err)
	}

	set := Set{Data: capacity.Dataset{
		Options:    filter.Options(opts),
		Defaults:   filter.Selection(defaults),
		AreaLookup: filter.AreaLookup(doc.AreaLookup),
	}}

	seen := map[int]bool{}
	for _, r := range doc.Rows {
		if r.ID <= 0 || seen[r.ID] {
			return Set{}, fmt.Errorf("fixtures rows: invalid or duplicate id %d", r.ID)
		}
		seen[r.ID] = true
		set.Data.Rows = append(set.Data.Rows, capacity.Row{
			ID:              r.ID,
			Area:            r.Area,
			Region:          r.Region,
			Division:        r.Division,
			Territory:       r.Territory,
			CapacityPercent: r.CapacityPercent,
			PacingPercent:   r.PacingPercent,
			RegionColor:     r.RegionColor,
		})
	}
	for _, s := range doc.States {
		set.Data.States = append(set.Data.States, capacity.StateCapacity{
			State: s.State, Capacity: s.Capacity, TileRow: s.Row, TileCol: s.Col,
		})
	}
	for _, t := range doc.Territories {
		set.Data.Territories = append(set.Data.Territories, capacity.TerritoryCapacity{
			Territory: t.Territory, Capacity: t.Capacity,
		})
	}
	for _, p := range doc.Pages {
		set.Pages = append(set.Pages, page.Page{View: p.View, Title: p.Title, Summary: p.Summary, Body: p.Body})
	}
	return set, nil
}

func categoryMap(in map[string][]string) (map[filter.Category][]string, error) {
	out := make(map[filter.Category][]string, len(in))
	for k, v := range in {
		c, err := filter.ParseCategory(k)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		out[c] = v
	}
	return out, nil
}
