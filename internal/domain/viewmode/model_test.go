package viewmode_test

import (
	"testing"

	"tradecapacity/internal/domain/viewmode"
)

// TestState_Press verifies button transitions.
func TestState_Press(t *testing.T) {
	tests := []struct {
		name      string
		start     viewmode.State
		button    viewmode.Button
		wantMode  viewmode.Mode
		wantFired bool
	}{
		{name: "graph from map", start: viewmode.Default(), button: viewmode.ButtonGraph, wantMode: viewmode.Graph, wantFired: true},
		{name: "map from graph", start: viewmode.State{Mode: viewmode.Graph, OrganizeBy: viewmode.ByArea}, button: viewmode.ButtonMap, wantMode: viewmode.Map, wantFired: true},
		{name: "graph while organized by area", start: viewmode.State{Mode: viewmode.Map, OrganizeBy: viewmode.ByArea}, button: viewmode.ButtonGraph, wantMode: viewmode.Graph, wantFired: true},
		{name: "cycle info is a no-op", start: viewmode.State{Mode: viewmode.Graph}, button: viewmode.ButtonCycleInfo, wantMode: viewmode.Graph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fired := tt.start.Press(tt.button)
			if got.Mode != tt.wantMode || fired != tt.wantFired {
				t.Errorf("Press(%q) = (%+v, %v), want mode %q fired %v", tt.button, got, fired, tt.wantMode, tt.wantFired)
			}
			if got.OrganizeBy != tt.start.OrganizeBy {
				t.Error("Press must not change OrganizeBy")
			}
		})
	}
}

// TestState_Organize verifies area forces the map and state only records the choice.
func TestState_Organize(t *testing.T) {
	graph := viewmode.State{Mode: viewmode.Graph, OrganizeBy: viewmode.ByState}
	if got := graph.Organize(viewmode.ByArea); got.Mode != viewmode.Map || got.OrganizeBy != viewmode.ByArea {
		t.Errorf("Organize(area) = %+v", got)
	}
	graph.OrganizeBy = viewmode.ByArea
	if got := graph.Organize(viewmode.ByState); got.Mode != viewmode.Graph || got.OrganizeBy != viewmode.ByState {
		t.Errorf("Organize(state) = %+v", got)
	}
}

// TestParse verifies raw value validation.
func TestParse(t *testing.T) {
	if _, err := viewmode.ParseButton("chart"); err == nil {
		t.Error("expected error for unknown button")
	}
	if b, err := viewmode.ParseButton("graph"); err != nil || b != viewmode.ButtonGraph {
		t.Errorf("ParseButton(graph) = %q, %v", b, err)
	}
	if _, err := viewmode.ParseOrganizeBy("region"); err == nil {
		t.Error("expected error for unknown organize-by")
	}
	if o, err := viewmode.ParseOrganizeBy("state"); err != nil || o != viewmode.ByState {
		t.Errorf("ParseOrganizeBy(state) = %q, %v", o, err)
	}
}
