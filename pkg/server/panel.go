package server

import (
	"sync"

	"hdfview/internal/models"
)

// Panel holds the live control values set from the browser. It is the
// reconciler's control source; the reconciler reads a snapshot each tick
// and may push clamped values back through the setters.
type Panel struct {
	mu sync.Mutex
	st models.ViewState
}

// NewPanel builds a panel with the given display defaults.
func NewPanel(colormap, marker string, zoomFactor int) *Panel {
	return &Panel{
		st: models.ViewState{
			Colormap:    colormap,
			DisplayMode: models.DisplayPlot,
			Marker:      marker,
			Max:         255,
			Tab:         1,
			ZoomFactor:  zoomFactor,
			ProfileDir:  models.ProfileHorizontal,
		},
	}
}

// Snapshot returns the current view state by value.
func (p *Panel) Snapshot() models.ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// SetSliceIndex is the reconciler pushing a clamped index back.
func (p *Panel) SetSliceIndex(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.SliceIndex = i
}

// SetAxis is the reconciler pushing an axis fallback back.
func (p *Panel) SetAxis(a int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Axis = a
}

// SetContrastMin is the reconciler pulling the window minimum below the
// maximum.
func (p *Panel) SetContrastMin(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Min = v
}

// SetValueText mirrors the displayed value text into the state tuple.
func (p *Panel) SetValueText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.ValueText = text
}

// Clear drops the file selection. The display loop blanks the view on its
// next pass through the empty-selection branch.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.FilePath = ""
	p.st.Key = ""
	p.st.SliceIndex = 0
	p.st.ValueText = ""
}

// Select points the panel at a dataset. Selecting a new file or key resets
// the slice position so stale indices never carry over between datasets.
func (p *Panel) Select(file, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.st.FilePath != file || p.st.Key != key {
		p.st.SliceIndex = 0
	}
	p.st.FilePath = file
	p.st.Key = key
}

// controlUpdate carries a partial control change from the browser. Pointer
// fields distinguish "not sent" from zero values.
type controlUpdate struct {
	SliceIndex  *int    `json:"slice_index,omitempty"`
	Axis        *int    `json:"axis,omitempty"`
	Colormap    *string `json:"colormap,omitempty"`
	DisplayMode *string `json:"display_mode,omitempty"`
	Marker      *string `json:"marker,omitempty"`
	Min         *int    `json:"min,omitempty"`
	Max         *int    `json:"max,omitempty"`
	Tab         *int    `json:"tab,omitempty"`
	Zoom        *bool   `json:"zoom,omitempty"`
	Profile     *bool   `json:"profile,omitempty"`
	ZoomFactor  *int    `json:"zoom_factor,omitempty"`
	ProfileDir  *string `json:"profile_dir,omitempty"`
}

// Apply merges a partial update into the state. Zoom and profile are
// mutually exclusive: enabling one disables the other.
func (p *Panel) Apply(u controlUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u.SliceIndex != nil {
		p.st.SliceIndex = *u.SliceIndex
	}
	if u.Axis != nil {
		p.st.Axis = *u.Axis
	}
	if u.Colormap != nil {
		p.st.Colormap = *u.Colormap
	}
	if u.DisplayMode != nil {
		p.st.DisplayMode = *u.DisplayMode
	}
	if u.Marker != nil {
		p.st.Marker = *u.Marker
	}
	if u.Min != nil {
		p.st.Min = *u.Min
	}
	if u.Max != nil {
		p.st.Max = *u.Max
	}
	if u.Tab != nil {
		p.st.Tab = *u.Tab
	}
	if u.Zoom != nil {
		p.st.Zoom = *u.Zoom
		if p.st.Zoom {
			p.st.Profile = false
		}
	}
	if u.Profile != nil {
		p.st.Profile = *u.Profile
		if p.st.Profile {
			p.st.Zoom = false
		}
	}
	if u.ZoomFactor != nil {
		p.st.ZoomFactor = *u.ZoomFactor
	}
	if u.ProfileDir != nil {
		p.st.ProfileDir = *u.ProfileDir
	}
}
