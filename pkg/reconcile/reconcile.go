package reconcile

import (
	"context"
	"fmt"
	"image"
	"path"
	"strings"
	"sync"
	"time"

	"hdfview/internal/models"
	"hdfview/pkg/hdf"
	"hdfview/pkg/render"
)

// sliceKey identifies the cached 2D slice; the slice is reused only while
// the (index, axis, file) triple is unchanged.
type sliceKey struct {
	index int
	axis  int
	file  string
}

// point is the last clicked pixel in image coordinates.
type point struct {
	x, y int
}

// Reconciler compares the view state between ticks and re-renders on
// change. All state behind the mutex belongs to the single logical
// scheduling domain: a pass runs to completion, including file I/O, before
// the next tick is considered.
type Reconciler struct {
	reader   hdf.Reader
	controls Controls
	out      Renderer
	interval time.Duration

	mu       sync.Mutex
	prev     *models.ViewState
	mode     Mode
	image    *models.Grid // current raw slice; nil outside image mode
	norm     []uint8      // normalized pixels of the current slice
	vector   models.Vector
	series   *models.Grid
	cacheKey sliceKey
	click    *point
}

// New builds a reconciler polling at the given interval.
func New(reader hdf.Reader, controls Controls, out Renderer, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Reconciler{
		reader:   reader,
		controls: controls,
		out:      out,
		interval: interval,
	}
}

// Run drives the polling loop until the context is canceled. Ticks are
// delivered by one goroutine, so passes never overlap; the mutex extends
// the same guarantee to click handling and view accessors.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick performs at most one reconciliation pass. If no view input changed
// since the previous pass, nothing is read and nothing is rendered.
func (r *Reconciler) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.controls.Snapshot()
	if st.FilePath == "" || st.Key == "" {
		r.showValue("")
		r.reset(true)
		return
	}
	if r.prev != nil && st == *r.prev {
		return
	}
	r.prev = &st

	entry, err := r.reader.Entry(st.FilePath, st.Key)
	if err != nil {
		r.fail(st, err)
		return
	}

	switch entry.Kind {
	case models.KindNumber, models.KindString, models.KindBoolean:
		r.showValue(entry.Value)
		r.reset(true)
	case models.KindArray:
		r.showValue("Array shape: " + hdf.ShapeText(entry.Shape))
		switch len(entry.Shape) {
		case 3:
			r.showCube(st)
		case 1, 2:
			r.showSeries(st, entry)
		default:
			r.out.Notify(fmt.Sprintf("Can't display %d-d array!", len(entry.Shape)))
			r.reset(true)
		}
	default:
		// group, not path, unknown: report the kind inline, no exception
		r.showValue(string(entry.Kind))
		r.reset(true)
	}
}

// showValue displays the value text and mirrors it into the control state,
// keeping the state tuple equal to what is on screen.
func (r *Reconciler) showValue(text string) {
	r.out.ShowValue(text)
	r.controls.SetValueText(text)
}

// HandleClick records the clicked pixel for the ROI/profile overlays and
// invalidates the stored state so the next tick redraws them from scratch.
func (r *Reconciler) HandleClick(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.image == nil {
		return
	}
	if x < 0 || y < 0 || x >= r.image.Width || y >= r.image.Height {
		return
	}
	r.click = &point{x: x, y: y}
	r.prev = nil
}

// Image returns the currently displayed raw slice, or nil.
func (r *Reconciler) Image() *models.Grid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.image
}

// Series returns the currently displayed 1D/2D data. At most one of the
// return values is non-nil.
func (r *Reconciler) Series() (models.Vector, *models.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vector, r.series
}

// reset blanks the view and drops all cached data. Exactly one
// visualization can be live at a time, so everything goes.
func (r *Reconciler) reset(keepDisplay bool) {
	r.image = nil
	r.norm = nil
	r.vector = nil
	r.series = nil
	r.cacheKey = sliceKey{}
	r.mode = ModeNone
	r.out.SetAvailability(AvailabilityFor(ModeNone))
	r.out.Clear(keepDisplay)
}

// fail runs the two-stage diagnostic on a fetch failure: broken external
// link first, unavailable compression codec second, raw error plus a
// generic hint last. The view resets but keeps the displayed path and key.
func (r *Reconciler) fail(st models.ViewState, err error) {
	r.reset(true)

	if _, broken, msg := r.reader.CheckExternalLink(st.FilePath, st.Key); broken {
		r.out.Notify(msg)
		return
	}
	if standard, plugin, msg := r.reader.CheckCompression(st.FilePath, st.Key); standard || plugin {
		r.out.Notify(msg)
		return
	}
	r.out.Notify(fmt.Sprintf("Error: %v", err))
	r.out.Notify("Dataset may be an external link and the target file is " +
		"not accessible (moved, deleted, or corrupted)!")
}

// showCube renders a slice of a 3D dataset as an image.
func (r *Reconciler) showCube(st models.ViewState) {
	cube, err := r.reader.ReadCube(st.FilePath, st.Key)
	if err != nil {
		r.fail(st, err)
		return
	}

	bound := render.AxisBound(cube, st.Axis)
	r.out.SetSliceBound(bound)
	index := st.SliceIndex
	if index > bound {
		index = bound
		r.controls.SetSliceIndex(bound)
	}

	key := sliceKey{index: index, axis: st.Axis, file: st.FilePath}
	if r.image == nil || key != r.cacheKey {
		sel := render.SelectSlice(cube, st.Axis, index)
		if sel.Notice != "" {
			r.out.Notify(sel.Notice)
		}
		if sel.Axis != st.Axis {
			// large-array fallback moved us to another axis
			r.controls.SetAxis(sel.Axis)
			r.controls.SetSliceIndex(sel.Index)
			r.out.SetSliceBound(render.AxisBound(cube, sel.Axis))
		}
		r.cacheKey = sliceKey{index: sel.Index, axis: sel.Axis, file: st.FilePath}
		r.image = sel.Grid
	}

	min, max := render.ClampWindow(st.Min, st.Max)
	if min != st.Min {
		r.controls.SetContrastMin(min)
	}
	r.norm = render.Normalize(r.image, min, max)

	img := render.ToImage(r.norm, r.image.Height, r.image.Width, st.Colormap)
	r.drawOverlay(st, img)

	data, err := render.EncodePNG(img)
	if err != nil {
		r.out.Notify(fmt.Sprintf("Error: %v", err))
		return
	}

	r.vector = nil
	r.series = nil
	r.mode = ModeImage
	r.out.SetAvailability(AvailabilityFor(ModeImage))
	r.out.ShowImage(data)

	if st.Tab == 2 {
		hist, err := render.Histogram(r.image)
		if err != nil {
			hist = nil
		}
		r.out.ShowStats(render.Statistics(r.image), hist)
	}
}

// drawOverlay redraws the ROI rectangle or the profile line at the last
// clicked pixel and pushes the matching aux pane. The overlays are
// mutually exclusive and rebuilt from scratch on every pass.
func (r *Reconciler) drawOverlay(st models.ViewState, img *image.RGBA) {
	if r.click == nil || (!st.Zoom && !st.Profile) {
		return
	}
	cx, cy := r.click.x, r.click.y
	if cx >= r.image.Width || cy >= r.image.Height {
		return
	}

	if st.Profile {
		var aux []byte
		var err error
		if st.ProfileDir == models.ProfileVertical {
			render.DrawVLine(img, cx)
			aux, err = render.PlotProfile("column", cx, r.image.Column(cx))
		} else {
			render.DrawHLine(img, cy)
			aux, err = render.PlotProfile("row", cy, r.image.Row(cy))
		}
		if err == nil {
			r.out.ShowAux(aux)
		}
		return
	}

	zoom := st.ZoomFactor
	if zoom < 1 {
		zoom = 2
	}
	sub, size, x0, y0 := render.ROI(r.norm, r.image.Height, r.image.Width, cx, cy, zoom)
	render.DrawRect(img, x0, y0, size)
	aux, err := render.EncodePNG(render.ToImage(sub, size, size, st.Colormap))
	if err == nil {
		r.out.ShowAux(aux)
	}
}

// showSeries renders 1D/2D data as a plot or a table.
func (r *Reconciler) showSeries(st models.ViewState, entry hdf.Entry) {
	r.image = nil
	r.norm = nil
	r.cacheKey = sliceKey{}

	switch len(entry.Shape) {
	case 1:
		vec, err := r.reader.ReadVector(st.FilePath, st.Key)
		if err != nil {
			r.fail(st, err)
			return
		}
		r.vector = vec
		r.series = nil
		if st.DisplayMode == models.DisplayTable {
			r.out.ShowTable(render.FormatVector(vec))
		} else {
			data, err := render.PlotVector(titleOf(st.Key), vec, st.Marker)
			if err != nil {
				r.out.Notify(fmt.Sprintf("Error: %v", err))
				return
			}
			r.out.ShowPlot(data)
		}
	case 2:
		grid, err := r.reader.ReadGrid(st.FilePath, st.Key)
		if err != nil {
			r.fail(st, err)
			return
		}
		r.series = grid
		r.vector = nil
		if st.DisplayMode == models.DisplayTable {
			r.out.ShowTable(render.FormatTable(grid))
		} else if x, y, raster := render.CoordinatePair(grid); raster {
			// not coordinate pairs: show the 2D array as a raster
			pix := render.Normalize(grid, 0, 255)
			data, err := render.EncodePNG(render.ToImage(pix, grid.Height, grid.Width, st.Colormap))
			if err != nil {
				r.out.Notify(fmt.Sprintf("Error: %v", err))
				return
			}
			r.out.ShowPlot(data)
		} else {
			data, err := render.PlotSeries(titleOf(st.Key), x, y, st.Marker)
			if err != nil {
				r.out.Notify(fmt.Sprintf("Error: %v", err))
				return
			}
			r.out.ShowPlot(data)
		}
	}

	r.mode = ModeSeries
	r.out.SetAvailability(AvailabilityFor(ModeSeries))
}

// titleOf derives a plot title from the last key segment.
func titleOf(key string) string {
	name := path.Base(strings.TrimSuffix(key, "/"))
	if name == "" || name == "." {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
