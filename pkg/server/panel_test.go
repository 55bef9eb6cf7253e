package server

import (
	"testing"

	"hdfview/internal/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestPanelDefaults(t *testing.T) {
	p := NewPanel("gray", ",", 2)
	st := p.Snapshot()
	if st.Colormap != "gray" || st.Marker != "," {
		t.Errorf("defaults = %+v", st)
	}
	if st.Min != 0 || st.Max != 255 {
		t.Errorf("contrast window = [%d, %d], want [0, 255]", st.Min, st.Max)
	}
	if st.DisplayMode != models.DisplayPlot {
		t.Errorf("display mode = %q, want plot", st.DisplayMode)
	}
	if st.Tab != 1 {
		t.Errorf("tab = %d, want 1", st.Tab)
	}
}

func TestPanelApplyIsPartial(t *testing.T) {
	p := NewPanel("gray", ",", 2)
	p.Apply(controlUpdate{SliceIndex: intPtr(7), Colormap: strPtr("magma")})

	st := p.Snapshot()
	if st.SliceIndex != 7 || st.Colormap != "magma" {
		t.Errorf("state = %+v", st)
	}
	if st.Marker != "," || st.Max != 255 {
		t.Error("unsent fields were modified")
	}
}

func TestPanelZoomProfileExclusive(t *testing.T) {
	p := NewPanel("gray", ",", 2)

	p.Apply(controlUpdate{Zoom: boolPtr(true)})
	if st := p.Snapshot(); !st.Zoom || st.Profile {
		t.Errorf("after zoom on: %+v", st)
	}

	p.Apply(controlUpdate{Profile: boolPtr(true)})
	if st := p.Snapshot(); st.Zoom || !st.Profile {
		t.Errorf("enabling profile must disable zoom: %+v", st)
	}

	p.Apply(controlUpdate{Zoom: boolPtr(true)})
	if st := p.Snapshot(); !st.Zoom || st.Profile {
		t.Errorf("enabling zoom must disable profile: %+v", st)
	}
}

func TestPanelSelectResetsSliceOnNewDataset(t *testing.T) {
	p := NewPanel("gray", ",", 2)
	p.Select("scan.nxs", "/entry/data")
	p.Apply(controlUpdate{SliceIndex: intPtr(12)})

	// Re-selecting the same dataset keeps the position.
	p.Select("scan.nxs", "/entry/data")
	if st := p.Snapshot(); st.SliceIndex != 12 {
		t.Errorf("same dataset reset the slice to %d", st.SliceIndex)
	}

	// A different key starts from the first slice.
	p.Select("scan.nxs", "/entry/other")
	if st := p.Snapshot(); st.SliceIndex != 0 {
		t.Errorf("new dataset kept slice %d", st.SliceIndex)
	}
}

func TestPanelPushbackSetters(t *testing.T) {
	p := NewPanel("gray", ",", 2)
	p.SetSliceIndex(3)
	p.SetAxis(2)
	p.SetContrastMin(99)
	p.SetValueText("Array shape: [8 16 16]")

	st := p.Snapshot()
	if st.SliceIndex != 3 || st.Axis != 2 || st.Min != 99 {
		t.Errorf("state after pushbacks = %+v", st)
	}
	if st.ValueText != "Array shape: [8 16 16]" {
		t.Errorf("value text = %q", st.ValueText)
	}
}

func TestPanelClearDropsSelection(t *testing.T) {
	p := NewPanel("gray", ",", 2)
	p.Select("scan.nxs", "/entry/data")
	p.Apply(controlUpdate{SliceIndex: intPtr(9)})
	p.SetValueText("Array shape: [8 16 16]")

	p.Clear()
	st := p.Snapshot()
	if st.FilePath != "" || st.Key != "" || st.SliceIndex != 0 || st.ValueText != "" {
		t.Errorf("state after clear = %+v", st)
	}
	if st.Colormap != "gray" {
		t.Error("clearing the selection must not touch the display settings")
	}
}
