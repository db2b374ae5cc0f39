package viewstate_test

import (
	"testing"

	"go.uber.org/goleak"

	"tradecapacity/internal/domain/filter"
)

const (
	western = "AW - WESTERN AREA"
	eastern = "AE - EASTERN AREA"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testCatalog() filter.Catalog {
	return filter.Catalog{
		Options: filter.Options{
			filter.Activity:  {"Trade Planning", "Sales Review"},
			filter.Cycle:     {"Cycle 1", "Cycle 2", "Cycle 3"},
			filter.Area:      {western, eastern, "NA - NORTHERN AREA"},
			filter.Region:    {"SDR - LOS ANGELES REGION", "SDR - SAN FRANCISCO REGION"},
			filter.Division:  {"DIV 1", "DIV 2"},
			filter.Territory: {"T1", "T2"},
		},
		Defaults: filter.Selection{
			filter.Activity: {"Trade Planning"},
			filter.Cycle:    {"Cycle 3"},
		},
		AreaLookup: filter.AreaLookup{
			"CA": western, "TX": western, "OR": western, "WA": western,
			"FL": eastern, "NY": eastern,
		},
	}
}
