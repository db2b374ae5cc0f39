package capacity_test

import (
	"testing"

	"tradecapacity/internal/domain/capacity"
	"tradecapacity/internal/domain/filter"
)

// TestBandFor verifies the capacity band thresholds.
func TestBandFor(t *testing.T) {
	tests := []struct {
		capacity int
		want     string
	}{
		{120, capacity.BandOver},
		{101, capacity.BandOver},
		{100, capacity.BandNear},
		{90, capacity.BandNear},
		{89, capacity.BandUnder},
		{0, capacity.BandUnder},
	}
	for _, tt := range tests {
		if got := capacity.BandFor(tt.capacity); got != tt.want {
			t.Errorf("BandFor(%d) = %q, want %q", tt.capacity, got, tt.want)
		}
	}
}

// TestRow_Statuses verifies detail-card labels.
func TestRow_Statuses(t *testing.T) {
	over := capacity.Row{CapacityPercent: 110, PacingPercent: 42}
	if over.CapacityStatus() != "Over Capacity" || over.PacingStatus() != "Needs Attention" {
		t.Errorf("unexpected statuses for %+v", over)
	}
	ok := capacity.Row{CapacityPercent: 100, PacingPercent: 82}
	if ok.CapacityStatus() != "Within Limits" || ok.PacingStatus() != "On Track" {
		t.Errorf("unexpected statuses for %+v", ok)
	}
	edge := capacity.Row{PacingPercent: 50}
	if edge.OnTrack() {
		t.Error("pacing of exactly 50 is not on track")
	}
}

// TestRow_Field verifies which categories rows carry.
func TestRow_Field(t *testing.T) {
	r := capacity.Row{Area: "A", Region: "R", Division: "D", Territory: "T"}
	for c, want := range map[filter.Category]string{filter.Area: "A", filter.Region: "R", filter.Division: "D", filter.Territory: "T"} {
		if got, ok := r.Field(c); !ok || got != want {
			t.Errorf("Field(%q) = %q, %v", c, got, ok)
		}
	}
	for _, c := range []filter.Category{filter.Activity, filter.Cycle} {
		if _, ok := r.Field(c); ok {
			t.Errorf("Field(%q) should not be present", c)
		}
	}
}

// TestSortRows verifies sorting by column and direction.
func TestSortRows(t *testing.T) {
	rows := []capacity.Row{
		{ID: 1, CapacityPercent: 110, Territory: "b"},
		{ID: 2, CapacityPercent: 87, Territory: "c"},
		{ID: 3, CapacityPercent: 120, Territory: "a"},
		{ID: 4, CapacityPercent: 87, Territory: "d"},
	}
	order := func(rs []capacity.Row) []int {
		var ids []int
		for _, r := range rs {
			ids = append(ids, r.ID)
		}
		return ids
	}
	tests := []struct {
		column, dir string
		want        []int
	}{
		{capacity.ColumnCapacity, "asc", []int{2, 4, 1, 3}},
		{capacity.ColumnCapacity, "desc", []int{3, 1, 2, 4}},
		{capacity.ColumnTerritory, "asc", []int{3, 1, 2, 4}},
		{"", "asc", []int{1, 2, 3, 4}},
		{"bogus", "desc", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := order(capacity.SortRows(rows, tt.column, tt.dir))
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("SortRows(%q,%q) = %v, want %v", tt.column, tt.dir, got, tt.want)
				break
			}
		}
	}
	if rows[0].ID != 1 {
		t.Error("SortRows mutated its input")
	}
}

// TestScaleColor verifies ramp endpoints and clamping.
func TestScaleColor(t *testing.T) {
	tests := []struct {
		value, min, max int
		want            string
	}{
		{45, 45, 96, "#e8eaf6"},
		{96, 45, 96, "#ff5722"},
		{0, 45, 96, "#e8eaf6"},
		{200, 45, 96, "#ff5722"},
		{50, 0, 100, "#ffeb3b"},
		{80, 0, 100, "#ff9800"},
		{7, 7, 7, "#ff5722"},
		// halfway along a falling blue channel rounds away from zero
		{25, 0, 100, "#f4eb98"},
	}
	for _, tt := range tests {
		if got := capacity.ScaleColor(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("ScaleColor(%d,%d,%d) = %q, want %q", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}
