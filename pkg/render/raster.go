package render

import (
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"phaseviz/pkg/colormap"
)

// markerRadius is the filled-circle point size in pixels
const markerRadius = 1.5

var axisFont *truetype.Font

func init() {
	var err error
	axisFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Raster renders the cloud in-process: every point is projected through
// the scene camera, depth-sorted far-to-near and drawn as an opaque
// filled circle, which gives correct occlusion for non-overlapping
// markers without a z-buffer.
type Raster struct {
	// Format selects the image encoder, "png" or "jpeg"
	Format string
}

// NewRaster returns a raster backend writing the given image format
func NewRaster(format string) *Raster {
	return &Raster{Format: format}
}

// Render draws the scene and writes the image file
func (r *Raster) Render(s *Scene) error {
	cam := NewCamera(s)

	dc := gg.NewContext(s.Width, s.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawFrame(dc, cam, s)

	order := colormap.DepthOrder(s.Cloud, cam.Depth)
	for _, i := range order {
		p := s.Cloud[i]
		sx, sy := cam.Project(p.X, p.Y, p.Z)
		dc.SetColor(s.Colors[i])
		dc.DrawCircle(sx, sy, markerRadius)
		dc.Fill()
	}

	out, err := os.Create(s.OutputPath)
	if err != nil {
		return &RenderError{Op: "create output image", Err: err}
	}
	defer out.Close()

	switch r.Format {
	case "jpeg":
		err = jpeg.Encode(out, dc.Image(), &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(out, dc.Image())
	}
	if err != nil {
		return &RenderError{Op: "encode output image", Err: err}
	}
	return nil
}

// drawFrame draws the bounding box of the data cube plus min/max labels
// on the three visible axes, so the render is readable without an
// external legend.
func drawFrame(dc *gg.Context, cam *Camera, s *Scene) {
	frame := color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	dc.SetColor(frame)
	dc.SetLineWidth(1)

	xs := [2]float64{s.X.Min, s.X.Max}
	ys := [2]float64{s.Y.Min, s.Y.Max}
	zs := [2]float64{s.Z.Min, s.Z.Max}

	edge := func(x0, y0, z0, x1, y1, z1 float64) {
		ax, ay := cam.Project(x0, y0, z0)
		bx, by := cam.Project(x1, y1, z1)
		dc.DrawLine(ax, ay, bx, by)
		dc.Stroke()
	}

	// 12 cube edges
	for _, y := range ys {
		for _, z := range zs {
			edge(xs[0], y, z, xs[1], y, z)
		}
	}
	for _, x := range xs {
		for _, z := range zs {
			edge(x, ys[0], z, x, ys[1], z)
		}
	}
	for _, x := range xs {
		for _, y := range ys {
			edge(x, y, zs[0], x, y, zs[1])
		}
	}

	label := color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}
	dc.SetFontFace(truetype.NewFace(axisFont, &truetype.Options{Size: 11}))
	dc.SetColor(label)

	text := func(v float64, x, y, z float64, dx, dy float64) {
		sx, sy := cam.Project(x, y, z)
		dc.DrawStringAnchored(fmt.Sprintf("%.3g", v), sx+dx, sy+dy, 0.5, 0.5)
	}

	// x axis along the front-bottom edge, y axis receding, z axis vertical
	text(s.X.Min, s.X.Min, ys[1], zs[0], -4, 14)
	text(s.X.Max, s.X.Max, ys[1], zs[0], 4, 14)
	text(s.Y.Min, xs[1], s.Y.Min, zs[0], 24, 6)
	text(s.Y.Max, xs[1], s.Y.Max, zs[0], 24, 6)
	text(s.Z.Min, xs[0], ys[1], s.Z.Min, -24, 0)
	text(s.Z.Max, xs[0], ys[1], s.Z.Max, -24, 0)
}
