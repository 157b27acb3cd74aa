package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.IsEnabled(OverlayReachBox) {
		t.Fatal("overlays should start disabled")
	}
	if !reg.Toggle(OverlayReachBox) {
		t.Error("Toggle = false, want true")
	}
	if reg.Toggle(OverlayReachBox) {
		t.Error("second Toggle = true, want false")
	}
	if reg.Toggle("missing") {
		t.Error("Toggle of an unknown overlay = true, want false")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled(OverlayFoodLabels, true)
	reg.Toggle(OverlayHeadings)

	if reg.IsEnabled(OverlayFoodLabels) {
		t.Error("food labels still enabled after enabling headings")
	}
	if !reg.IsEnabled(OverlayHeadings) {
		t.Error("headings not enabled")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyF)
	if !ok || id != OverlayPerf || !on {
		t.Errorf("HandleKeyPress(F) = (%q, %v, %v), want (%q, true, true)", id, on, ok, OverlayPerf)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("HandleKeyPress(Z) matched an overlay")
	}

	enabled := reg.EnabledOverlays()
	if len(enabled) != 1 || enabled[0] != OverlayPerf {
		t.Errorf("EnabledOverlays = %v, want [%s]", enabled, OverlayPerf)
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != "world" || cats[1] != "debug" {
		t.Errorf("Categories = %v, want [world debug]", cats)
	}
	if got := len(reg.ByCategory("debug")); got != 2 {
		t.Errorf("debug overlays = %d, want 2", got)
	}
}

func TestControlRows(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Toggle(OverlayPerf)

	rows := controlRows(reg)
	want := 2 + len(reg.All()) + 1 + len(keyLegend)
	if len(rows) != want {
		t.Fatalf("len(rows) = %d, want %d", len(rows), want)
	}
	if rows[0].kind != rowHeader || rows[0].text != "World" {
		t.Errorf("first row = %+v, want World header", rows[0])
	}

	var perfOn bool
	for _, row := range rows {
		if row.kind == rowToggle && row.text == "Performance" {
			perfOn = row.on
			if row.key != "F" {
				t.Errorf("perf key = %q, want F", row.key)
			}
		}
	}
	if !perfOn {
		t.Error("Performance row not marked on")
	}
	if last := rows[len(rows)-1]; last.kind != rowKey || last.key != "Tab" {
		t.Errorf("last row = %+v, want the Tab legend entry", last)
	}
}
