// Package reconcile drives the display loop of the viewer. On a fixed
// interval it samples the control inputs, decides whether anything that
// determines the rendered view has changed, and if so performs exactly one
// reconciliation pass: fetch, dispatch to a render strategy, and push the
// result to the renderer sink. Passes are strictly serialized; a tick never
// overlaps a running pass.
package reconcile

import (
	"hdfview/internal/models"
	"hdfview/pkg/render"
)

// Controls is the source of the current view inputs. Setters exist so the
// reconciler can push clamped or fallback values back into the controls
// (slice index clamped to a new bound, axis fallback, contrast min pulled
// below max, the displayed value text). A pushback changes the state, so
// the pass after it settles the view.
type Controls interface {
	Snapshot() models.ViewState
	SetSliceIndex(i int)
	SetAxis(a int)
	SetContrastMin(v int)
	SetValueText(text string)
}

// Renderer is the output sink. Implementations display exactly what they
// are handed; all rendering decisions happen in the reconciler and the
// render strategies.
type Renderer interface {
	// ShowValue displays the scalar/value text next to the key.
	ShowValue(text string)

	// ShowImage displays the main image (PNG bytes).
	ShowImage(png []byte)

	// ShowAux displays the zoom/profile pane next to the image.
	ShowAux(png []byte)

	// ShowPlot displays 1D/2D data rendered as a plot (PNG bytes).
	ShowPlot(png []byte)

	// ShowTable displays 1D/2D data as a table; nil blanks the table.
	ShowTable(t *render.TableModel)

	// ShowStats displays the statistics rows and histogram for the
	// current image slice.
	ShowStats(rows []render.StatRow, histogram []byte)

	// SetSliceBound announces the maximum valid slice index.
	SetSliceBound(max int)

	// SetAvailability enables/disables control groups.
	SetAvailability(a models.Availability)

	// Notify surfaces a user-visible notice.
	Notify(msg string)

	// Clear blanks the view. With keepDisplay the file path and key text
	// stay visible; the user is never left looking at stale data.
	Clear(keepDisplay bool)
}

// Mode identifies the active render strategy.
type Mode int

const (
	ModeNone Mode = iota
	ModeImage
	ModeSeries
)

// AvailabilityFor maps the active strategy to enabled control groups.
// Image-only controls and series-only controls are mutually exclusive.
func AvailabilityFor(m Mode) models.Availability {
	switch m {
	case ModeImage:
		return models.Availability{
			SliceSlider: true,
			Contrast:    true,
			Axis:        true,
			Colormap:    true,
			Zoom:        true,
			Profile:     true,
			SaveImage:   true,
		}
	case ModeSeries:
		return models.Availability{
			DisplayType: true,
			Marker:      true,
			SaveData:    true,
		}
	default:
		return models.Availability{}
	}
}
