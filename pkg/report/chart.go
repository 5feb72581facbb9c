package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"BERSim/internel/utils"
	"BERSim/pkg/sim"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ChartWriter renders BER against SNR with a logarithmic BER axis. The image
// format follows the extension of Path (png, svg, pdf, ...).
type ChartWriter struct {
	Path  string
	Title string

	Width, Height vg.Length
}

func (w ChartWriter) Name() string { return w.Path }

func (w ChartWriter) Write(result *sim.Result) error {
	p := plot.New()
	p.Title.Text = w.Title
	if p.Title.Text == "" {
		p.Title.Text = "BER x SNR"
	}
	p.X.Label.Text = "SNR (dB)"
	p.Y.Label.Text = "BER"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	// A log axis cannot show BER = 0, so those points are left out.
	var lines []interface{}
	for c, curve := range result.Curves {
		points := make(plotter.XYs, 0, len(result.Sweep))
		for s, snr := range result.Sweep {
			if ber := result.BER[c][s]; ber > 0 {
				points = append(points, plotter.XY{X: snr, Y: ber})
			}
		}
		if len(points) > 0 {
			lines = append(lines, curve.Name, points)
		}
	}
	if len(lines) > 0 {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return fmt.Errorf("plot curves: %w", err)
		}
	}

	width, height := w.Width, w.Height
	if width == 0 {
		width = 6 * vg.Inch
	}
	if height == 0 {
		height = 4 * vg.Inch
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(w.Path), "."))
	image, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	file, err := utils.CreateFile(w.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := image.WriteTo(file); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return file.Close()
}
