// Package pointcloud builds a filtered point cloud from a pair of
// co-registered 2D fields: an unwrapped-phase array supplying the z
// values and a quality array deciding which samples are trustworthy
// enough to keep.
package pointcloud

import (
	"fmt"
	"math"

	"phaseviz/internal/models"
)

// ShapeMismatchError reports that the phase and quality arrays do not
// have identical dimensions and therefore cannot be co-registered.
type ShapeMismatchError struct {
	PhaseRows, PhaseCols     int
	QualityRows, QualityCols int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("phase array is %dx%d but quality array is %dx%d",
		e.PhaseRows, e.PhaseCols, e.QualityRows, e.QualityCols)
}

// Build scans both fields in row-major order and materializes one point
// per cell whose quality is strictly greater than threshold. Each point
// carries (x=col, y=row, z=phase, quality). The returned zmin and zmax
// are the extrema of the phase values among retained points, folded
// during the same scan rather than recomputed in a second pass; when no
// point is retained they are +Inf and -Inf respectively.
func Build(phase, quality *models.Field, threshold float64) (models.PointCloud, float64, float64, error) {
	if !phase.SameShape(quality) {
		return nil, 0, 0, &ShapeMismatchError{
			PhaseRows:   phase.Rows,
			PhaseCols:   phase.Cols,
			QualityRows: quality.Rows,
			QualityCols: quality.Cols,
		}
	}

	cloud := make(models.PointCloud, 0, len(phase.Data))
	zmin := math.Inf(1)
	zmax := math.Inf(-1)

	for row := 0; row < phase.Rows; row++ {
		for col := 0; col < phase.Cols; col++ {
			q := quality.At(row, col)
			if q <= threshold {
				continue
			}
			z := phase.At(row, col)
			cloud = append(cloud, models.Point{
				X:       float64(col),
				Y:       float64(row),
				Z:       z,
				Quality: q,
			})
			if z < zmin {
				zmin = z
			}
			if z > zmax {
				zmax = z
			}
		}
	}

	return cloud, zmin, zmax, nil
}
