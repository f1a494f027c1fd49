package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTML renders an interactive top-down scatter of the residual field as
// a standalone go-echarts page. Colour interpolation happens in the
// browser through the chart's visual map, fed with samples of the
// active ramp; the 3D view, mirroring and depth handling are out of
// scope on this path.
type HTML struct{}

// Render writes the chart page to the scene's output path
func (h *HTML) Render(s *Scene) error {
	data := make([]opts.ScatterData, 0, len(s.Cloud))
	for _, p := range s.Cloud {
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y, p.Z}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Calibrated phase residual",
			Width:     fmt.Sprintf("%dpx", s.Width),
			Height:    fmt.Sprintf("%dpx", s.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Calibrated phase residual",
			Subtitle: fmt.Sprintf("points=%d", len(s.Cloud)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: s.X.Min, Max: s.X.Max, Name: "x (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Min: s.Y.Min, Max: s.Y.Max, Name: "y (px)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(s.Z.Min),
			Max:        float32(s.Z.Max),
			InRange:    &opts.VisualMapInRange{Color: s.Stops},
		}),
	)
	scatter.AddSeries("residual", data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	out, err := os.Create(s.OutputPath)
	if err != nil {
		return &RenderError{Op: "create output page", Err: err}
	}
	defer out.Close()

	if err := scatter.Render(out); err != nil {
		return &RenderError{Op: "render chart page", Err: err}
	}
	return nil
}
