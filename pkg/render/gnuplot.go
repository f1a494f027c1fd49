package render

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"strings"

	"phaseviz/internal/models"
)

// Gnuplot renders through an external gnuplot process. It writes a
// whitespace-separated point-data file (columns: x, residual-z, y,
// packed 24-bit RGB) and a command script referencing it, runs the
// tool, and removes both files afterwards. Depth sorting and hidden
// surface handling are gnuplot's job on this path, so the scene's
// colours are the only part of the mapping stage it consumes.
type Gnuplot struct {
	// Bin is the gnuplot executable; empty means "gnuplot" on PATH
	Bin string

	// Terminal is the gnuplot terminal; empty means pngcairo
	Terminal string
}

// Render generates the data and script files and runs gnuplot
func (g *Gnuplot) Render(s *Scene) error {
	data, err := os.CreateTemp("", "phaseviz-*.dat")
	if err != nil {
		return &RenderError{Op: "create point data file", Err: err}
	}
	defer os.Remove(data.Name())

	w := bufio.NewWriter(data)
	for i, p := range s.Cloud {
		fmt.Fprintf(w, "%g %g %g %d\n", p.X, p.Z, p.Y, PackRGB(s.Colors[i]))
	}
	if err := w.Flush(); err != nil {
		data.Close()
		return &RenderError{Op: "write point data file", Err: err}
	}
	if err := data.Close(); err != nil {
		return &RenderError{Op: "write point data file", Err: err}
	}

	script, err := os.CreateTemp("", "phaseviz-*.gp")
	if err != nil {
		return &RenderError{Op: "create gnuplot script", Err: err}
	}
	defer os.Remove(script.Name())

	if _, err := script.WriteString(g.Script(s, data.Name())); err != nil {
		script.Close()
		return &RenderError{Op: "write gnuplot script", Err: err}
	}
	if err := script.Close(); err != nil {
		return &RenderError{Op: "write gnuplot script", Err: err}
	}

	bin := g.Bin
	if bin == "" {
		bin = "gnuplot"
	}
	var stderr bytes.Buffer
	cmd := exec.Command(bin, script.Name())
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &RenderError{Op: "run " + bin, Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// Script builds the gnuplot command script for a scene. The data file's
// column order is x, z, y, rgb; the splot using-spec rearranges that to
// gnuplot's x:y:z:colour.
func (g *Gnuplot) Script(s *Scene, dataPath string) string {
	term := g.Terminal
	if term == "" {
		term = "pngcairo"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "set terminal %s size %d,%d\n", term, s.Width, s.Height)
	fmt.Fprintf(&b, "set output '%s'\n", s.OutputPath)
	fmt.Fprintf(&b, "set xrange %s\n", rangeSpec(s.X))
	fmt.Fprintf(&b, "set yrange %s\n", rangeSpec(s.Y))
	fmt.Fprintf(&b, "set zrange %s\n", rangeSpec(s.Z))
	fmt.Fprintf(&b, "set xlabel 'x (px)'\n")
	fmt.Fprintf(&b, "set ylabel 'y (px)'\n")
	fmt.Fprintf(&b, "set zlabel 'residual'\n")
	fmt.Fprintf(&b, "splot '%s' using 1:3:2:4 with points pt 7 ps 1 lc rgb variable notitle\n", dataPath)
	return b.String()
}

// rangeSpec formats an axis range for gnuplot, swapping the endpoints
// when the axis is reversed so gnuplot mirrors it.
func rangeSpec(r models.AxisRange) string {
	if r.Reversed {
		return fmt.Sprintf("[%g:%g]", r.Max, r.Min)
	}
	return fmt.Sprintf("[%g:%g]", r.Min, r.Max)
}

// PackRGB packs a colour into the 0xRRGGBB integer form gnuplot's
// "lc rgb variable" expects.
func PackRGB(c color.RGBA) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}
