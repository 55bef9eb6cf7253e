package render

import "image/color"

// anchor is one control point of a colormap gradient.
type anchor struct {
	r, g, b float64
}

// colormaps holds the gradient control points for each supported lookup
// table. Values are interpolated linearly between anchors.
var colormaps = map[string][]anchor{
	"gray": {
		{0, 0, 0}, {255, 255, 255},
	},
	"inferno": {
		{0, 0, 4}, {87, 16, 110}, {188, 55, 84}, {249, 142, 9}, {252, 255, 164},
	},
	"afmhot": {
		{0, 0, 0}, {255, 128, 0}, {255, 255, 255},
	},
	"viridis": {
		{68, 1, 84}, {59, 82, 139}, {33, 145, 140}, {94, 201, 98}, {253, 231, 37},
	},
	"magma": {
		{0, 0, 4}, {81, 18, 124}, {183, 55, 121}, {252, 137, 97}, {252, 253, 191},
	},
}

// Colormaps lists the supported colormap names in display order.
func Colormaps() []string {
	return []string{"gray", "inferno", "afmhot", "viridis", "magma"}
}

// Lookup returns the color for an 8-bit intensity under the named colormap.
// Unknown names fall back to gray.
func Lookup(name string, v uint8) color.RGBA {
	anchors, ok := colormaps[name]
	if !ok {
		anchors = colormaps["gray"]
	}
	pos := float64(v) / 255.0 * float64(len(anchors)-1)
	i := int(pos)
	if i >= len(anchors)-1 {
		last := anchors[len(anchors)-1]
		return color.RGBA{uint8(last.r), uint8(last.g), uint8(last.b), 255}
	}
	f := pos - float64(i)
	a, b := anchors[i], anchors[i+1]
	return color.RGBA{
		R: uint8(a.r + (b.r-a.r)*f),
		G: uint8(a.g + (b.g-a.g)*f),
		B: uint8(a.b + (b.b-a.b)*f),
		A: 255,
	}
}
