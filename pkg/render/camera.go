package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"phaseviz/internal/models"
)

// Camera fixes the perspective projection used by the raster backend.
// Data coordinates are first normalized into a unit cube centered on
// the origin using the scene's axis ranges (which is where mirroring
// and axis reversal take effect), then viewed from a fixed oblique
// eye position.
type Camera struct {
	view mgl64.Mat4
	mvp  mgl64.Mat4

	x, y, z models.AxisRange

	width  float64
	height float64
}

// NewCamera builds the projection for a scene
func NewCamera(s *Scene) *Camera {
	aspect := float64(s.Width) / float64(s.Height)
	// The eye distance and field of view are chosen so the whole unit
	// cube projects inside the canvas at any aspect ratio >= 4:3.
	view := mgl64.LookAtV(
		mgl64.Vec3{1.7, 1.25, 1.7},
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	proj := mgl64.Perspective(mgl64.DegToRad(45), aspect, 0.1, 10)
	return &Camera{
		view:   view,
		mvp:    proj.Mul4(view),
		x:      s.X,
		y:      s.Y,
		z:      s.Z,
		width:  float64(s.Width),
		height: float64(s.Height),
	}
}

// world maps data coordinates into the view cube: the data x axis runs
// along world x, the residual depth z runs up along world y, and the
// data y axis (image rows) runs into the scene along world z.
func (c *Camera) world(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{
		c.x.Norm(x) - 0.5,
		c.z.Norm(z) - 0.5,
		c.y.Norm(y) - 0.5,
	}
}

// Project maps a data point to pixel coordinates on the canvas
func (c *Camera) Project(x, y, z float64) (float64, float64) {
	v := c.mvp.Mul4x1(c.world(x, y, z).Vec4(1))
	ndcX := v.X() / v.W()
	ndcY := v.Y() / v.W()
	sx := (ndcX + 1) / 2 * c.width
	sy := (1 - ndcY) / 2 * c.height
	return sx, sy
}

// Depth returns the painter sort key for a point: its camera-space z
// coordinate, which grows toward the viewer. Sorting keys ascending and
// drawing in that order therefore paints far points first and near
// points last.
func (c *Camera) Depth(p models.Point) float64 {
	return c.view.Mul4x1(c.world(p.X, p.Y, p.Z).Vec4(1)).Z()
}
