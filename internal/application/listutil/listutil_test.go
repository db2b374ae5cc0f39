package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams_Defaults verifies default page params when no form values provided.
func TestParsePageParams_Defaults(t *testing.T) {
	p := ParsePageParams(url.Values{})
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParsePageParams_Valid verifies correct parsing of valid page and per_page values.
func TestParsePageParams_Valid(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"3"}, "per_page": {"25"}})
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PerPage != 25 {
		t.Errorf("expected per_page 25, got %d", p.PerPage)
	}
}

// TestParsePageParams_InvalidPerPage verifies fallback to default for invalid per_page.
func TestParsePageParams_InvalidPerPage(t *testing.T) {
	p := ParsePageParams(url.Values{"per_page": {"20"}}) // not in allowed list
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected default per_page %d for invalid value, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParsePageParams_NegativePage verifies page is clamped to 1 for negative input.
func TestParsePageParams_NegativePage(t *testing.T) {
	p := ParsePageParams(url.Values{"page": {"-1"}})
	if p.Page != 1 {
		t.Errorf("expected page 1 for negative input, got %d", p.Page)
	}
}

// TestParseSortParams_Valid verifies correct parsing of sort column and direction.
func TestParseSortParams_Valid(t *testing.T) {
	s := ParseSortParams(url.Values{"sort": {"capacity_percent"}, "dir": {"desc"}}, []string{"id", "capacity_percent"})
	if s.Sort != "capacity_percent" {
		t.Errorf("expected sort=capacity_percent, got %s", s.Sort)
	}
	if s.Dir != "desc" {
		t.Errorf("expected dir=desc, got %s", s.Dir)
	}
}

// TestParseSortParams_DisallowedColumn verifies disallowed sort columns are rejected.
func TestParseSortParams_DisallowedColumn(t *testing.T) {
	s := ParseSortParams(url.Values{"sort": {"region_color"}}, []string{"id"})
	if s.Sort != "" {
		t.Errorf("expected empty sort for disallowed column, got %s", s.Sort)
	}
}

// TestParseSortParams_InvalidDir verifies invalid direction defaults to asc.
func TestParseSortParams_InvalidDir(t *testing.T) {
	s := ParseSortParams(url.Values{"sort": {"id"}, "dir": {"DROP TABLE"}}, []string{"id"})
	if s.Dir != "asc" {
		t.Errorf("expected dir=asc for invalid dir, got %s", s.Dir)
	}
}

// TestParseMultiParams verifies repeated and comma-separated values.
func TestParseMultiParams(t *testing.T) {
	q := url.Values{
		"area":    {"A", "B"},
		"region":  {"X, Y,,"},
		"cycle":   {""},
		"unknown": {"z"},
	}
	got := ParseMultiParams(q, []string{"area", "region", "cycle", "division"})
	if len(got["area"]) != 2 || got["area"][1] != "B" {
		t.Errorf("area: got %v", got["area"])
	}
	if len(got["region"]) != 2 || got["region"][0] != "X" || got["region"][1] != "Y" {
		t.Errorf("region: got %v", got["region"])
	}
	if vals, ok := got["cycle"]; !ok || len(vals) != 0 {
		t.Errorf("cycle: expected present and empty, got %v (present=%v)", vals, ok)
	}
	if _, ok := got["division"]; ok {
		t.Error("absent key should not be reported")
	}
	if _, ok := got["unknown"]; ok {
		t.Error("unexpected key 'unknown'")
	}
}

// TestNewPageInfo verifies pagination metadata computation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int
		wantPages  int
		wantPage   int
		wantStart  int
		wantEnd    int
		wantOffset int
	}{
		{"basic", 1, 25, 85, 4, 1, 1, 25, 0},
		{"page2", 2, 25, 85, 4, 2, 26, 50, 25},
		{"lastPage", 4, 25, 85, 4, 4, 76, 85, 75},
		{"pageBeyondTotal", 10, 25, 85, 4, 4, 76, 85, 75},
		{"emptyList", 1, 50, 0, 1, 1, 0, 0, 0},
		{"exactFit", 1, 10, 10, 1, 1, 1, 10, 0},
		{"sampleRows", 1, 50, 9, 1, 1, 1, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			if pi.StartRow() != tt.wantStart {
				t.Errorf("StartRow: got %d, want %d", pi.StartRow(), tt.wantStart)
			}
			if pi.EndRow() != tt.wantEnd {
				t.Errorf("EndRow: got %d, want %d", pi.EndRow(), tt.wantEnd)
			}
			if pi.Offset() != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", pi.Offset(), tt.wantOffset)
			}
		})
	}
}

// TestPaginate verifies slicing of in-memory rows.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := Paginate(items, NewPageInfo(1, 10, len(items)))
	if len(got) != 9 {
		t.Errorf("page 1 of 10: got %v", got)
	}
	p := PageInfo{Page: 2, PerPage: 4, Total: 9, TotalPages: 3}
	got = Paginate(items, p)
	if len(got) != 4 || got[0] != 5 {
		t.Errorf("page 2 of 4: got %v", got)
	}
	p.Page = 3
	if got = Paginate(items, p); len(got) != 1 || got[0] != 9 {
		t.Errorf("page 3 of 4: got %v", got)
	}
	if got = Paginate([]int{}, NewPageInfo(1, 10, 0)); len(got) != 0 {
		t.Errorf("empty: got %v", got)
	}
}

// TestPageNumbers verifies page number window generation.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name string
		page int
		tot  int
		want []int
	}{
		{"3pages_at1", 1, 3, []int{1, 2, 3}},
		{"10pages_at1", 1, 10, []int{1, 2, 3, 4, 5}},
		{"10pages_at5", 5, 10, []int{3, 4, 5, 6, 7}},
		{"10pages_at10", 10, 10, []int{6, 7, 8, 9, 10}},
		{"1page", 1, 1, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, 10, tt.tot*10)
			got := pi.PageNumbers()
			if len(got) != len(tt.want) {
				t.Fatalf("PageNumbers length: got %d, want %d", len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("PageNumbers[%d]: got %d, want %d", i, v, tt.want[i])
				}
			}
		})
	}
}

// TestShowPagination verifies pagination visibility logic.
func TestShowPagination(t *testing.T) {
	if NewPageInfo(1, 10, 10).ShowPagination() {
		t.Error("should not show pagination when total == perPage")
	}
	if !NewPageInfo(1, 10, 11).ShowPagination() {
		t.Error("should show pagination when total > perPage")
	}
}
