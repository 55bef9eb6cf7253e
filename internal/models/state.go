package models

// DataKind classifies what lives behind a key in a hierarchical file.
type DataKind string

const (
	KindGroup   DataKind = "group"
	KindNumber  DataKind = "number"
	KindString  DataKind = "string"
	KindBoolean DataKind = "boolean"
	KindArray   DataKind = "array"
	KindNotPath DataKind = "not path"
	KindUnknown DataKind = "unknown"
)

// DisplayMode selects how 1D/2D data is shown.
const (
	DisplayPlot  = "plot"
	DisplayTable = "table"
)

// Profile orientations for the intensity-profile overlay.
const (
	ProfileHorizontal = "horizontal"
	ProfileVertical   = "vertical"
)

// ViewState is an immutable snapshot of every input that determines what is
// rendered. It is compared by value between polling ticks; two equal states
// must produce identical output, so an unchanged state needs no file read.
type ViewState struct {
	// FilePath and Key identify the dataset; resolved lazily on each read.
	FilePath string
	Key      string

	// SliceIndex and Axis select a 2D plane from a 3D dataset.
	SliceIndex int
	Axis       int

	// ValueText is the scalar text currently displayed.
	ValueText string

	// Colormap names the lookup table applied to image slices.
	Colormap string

	// DisplayMode is "plot" or "table" for 1D/2D data.
	DisplayMode string

	// Marker is the plot marker style.
	Marker string

	// Min and Max are the contrast window bounds; Min < Max always holds
	// after clamping.
	Min int
	Max int

	// Tab is the active panel tab (1: data, 2: statistics).
	Tab int

	// Zoom and Profile toggle the ROI and profile overlays; at most one
	// is active.
	Zoom    bool
	Profile bool

	// ZoomFactor is the ROI magnification (2, 4, ...).
	ZoomFactor int

	// ProfileDir is horizontal or vertical.
	ProfileDir string
}

// TreeNode is one node of the file hierarchy shown in the browser tree.
type TreeNode struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Children []TreeNode `json:"children,omitempty"`
}

// Availability says which control groups are enabled. It is a pure function
// of the active render strategy: image-only controls and series-only
// controls are never enabled together.
type Availability struct {
	SliceSlider bool `json:"slice_slider"`
	Contrast    bool `json:"contrast"`
	Axis        bool `json:"axis"`
	Colormap    bool `json:"colormap"`
	Zoom        bool `json:"zoom"`
	Profile     bool `json:"profile"`
	SaveImage   bool `json:"save_image"`

	DisplayType bool `json:"display_type"`
	Marker      bool `json:"marker"`
	SaveData    bool `json:"save_data"`
}
