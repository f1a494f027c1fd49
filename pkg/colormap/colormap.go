// Package colormap turns residual depth values into colours and
// produces the draw order needed for painter's-algorithm rendering.
//
// Colour mapping is split into two small strategies: a Normalizer maps
// a residual value onto [0,1] (range-clamped or periodic), and a Ramp
// maps that unit parameter onto an RGB colour.
package colormap

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"phaseviz/internal/models"
)

// Normalizer maps a residual depth value onto the unit interval.
type Normalizer interface {
	Normalize(z float64) float64
}

// Clamp normalizes by linear position inside [Min, Max], saturating
// outside the range. Used for absolute-depth views.
type Clamp struct {
	Min, Max float64
}

// Normalize returns (z-Min)/(Max-Min) clamped to [0,1]. A degenerate
// range maps everything to the midpoint.
func (c Clamp) Normalize(z float64) float64 {
	span := c.Max - c.Min
	if span == 0 {
		return 0.5
	}
	t := (z - c.Min) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Periodic normalizes by Euclidean modulo so z and z+Period map to the
// same parameter and negative z wraps into [0,1) instead of going
// negative. Used for periodic residual views where wraparound is
// meaningful, such as fringe-order ambiguity.
type Periodic struct {
	Period float64
}

// Normalize returns (z/Period) mod 1 in [0,1).
func (p Periodic) Normalize(z float64) float64 {
	t := math.Mod(z/p.Period, 1)
	if t < 0 {
		t++
	}
	if t >= 1 {
		t = 0
	}
	return t
}

// Ramp is a continuous colour scale over the unit interval.
type Ramp interface {
	At(t float64) color.RGBA
}

// sequentialRamp wraps a perceptually-uniform gonum/plot colour map.
type sequentialRamp struct {
	cm palette.ColorMap
}

// Sequential returns the perceptually-uniform ramp used for clamped
// absolute-depth views (extended-Kindlmann).
func Sequential() Ramp {
	cm := moreland.ExtendedKindlmann()
	cm.SetMin(0)
	cm.SetMax(1)
	return &sequentialRamp{cm: cm}
}

func (r *sequentialRamp) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	c, err := r.cm.At(t)
	if err != nil {
		// t is clamped above, so the map cannot reject it
		return color.RGBA{A: 255}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// cyclicRainbow walks the HSV hue wheel once over [0,1), so t=0 and t=1
// meet at the same colour. Used with the Periodic normalizer.
type cyclicRainbow struct{}

// CyclicRainbow returns the cyclic hue-wheel ramp.
func CyclicRainbow() Ramp {
	return cyclicRainbow{}
}

func (cyclicRainbow) At(t float64) color.RGBA {
	t -= math.Floor(t)
	r, g, b := hsvToRGB(t*360, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// hsvToRGB converts hue in degrees and unit saturation/value to 8-bit RGB
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var rf, gf, bf float64
	switch {
	case hp < 1:
		rf, gf, bf = c, x, 0
	case hp < 2:
		rf, gf, bf = x, c, 0
	case hp < 3:
		rf, gf, bf = 0, c, x
	case hp < 4:
		rf, gf, bf = 0, x, c
	case hp < 5:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	m := v - c
	return uint8((rf + m) * 255), uint8((gf + m) * 255), uint8((bf + m) * 255)
}

// Colors maps every point's residual through the normalizer and ramp,
// returning one colour per point in the cloud's own order.
func Colors(cloud models.PointCloud, n Normalizer, r Ramp) []color.RGBA {
	out := make([]color.RGBA, len(cloud))
	for i, p := range cloud {
		out[i] = r.At(n.Normalize(p.Z))
	}
	return out
}

// Stops samples the ramp at n evenly spaced parameters, as hex colour
// strings. Backends that hand colour interpolation to an external
// engine (the HTML backend's visual map) consume these instead of
// per-point colours.
func Stops(r Ramp, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = hexColor(r.At(t))
	}
	return out
}

func hexColor(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0xf]
	}
	return string(b)
}

// DepthOrder returns an index permutation over the cloud sorted by the
// given depth key ascending. The key convention is that smaller values
// are farther from the viewer, so drawing in the returned order is
// exactly the painter's algorithm: far points first, near points last.
// Ties are broken arbitrarily.
func DepthOrder(cloud models.PointCloud, depth func(models.Point) float64) []int {
	order := make([]int, len(cloud))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return depth(cloud[order[a]]) < depth(cloud[order[b]])
	})
	return order
}
