package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func ns(f float64) time.Duration {
	return time.Duration(f).Round(time.Microsecond)
}

// Print writes r as a table, one variant per line.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "run %s: %d×%d grid, %d threads, %d iterations, GOMAXPROCS=%d\n",
		r.RunID, r.Size, r.Size, r.Threads, r.Iterations, r.GOMAXPROCS); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "variant\tcount\tmean\tstddev\tmin\tmax\t"); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%v\t%v\t\n",
			res.Variant, res.Count, ns(res.MeanNs), ns(res.StdDevNs), ns(res.MinNs), ns(res.MaxNs)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteJSON writes r as indented JSON to path.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Plot saves a bar chart of the mean duration of every variant to path.
// The image format is chosen by the file extension (png, svg, pdf, ...).
func (r *Report) Plot(path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("odd count, %d×%d grid, %d threads", r.Size, r.Size, r.Threads)
	p.Y.Label.Text = "mean time (ms)"

	means := make(plotter.Values, len(r.Results))
	errs := make(plotter.YErrors, len(r.Results))
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		means[i] = res.MeanNs / float64(time.Millisecond)
		sd := res.StdDevNs / float64(time.Millisecond)
		errs[i].Low, errs[i].High = sd, sd
		names[i] = res.Variant
	}
	bars, err := plotter.NewBarChart(means, vg.Points(20))
	if err != nil {
		return fmt.Errorf("failed to create bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	if len(r.Results) > 0 {
		xys := make(plotter.XYs, len(r.Results))
		for i := range xys {
			xys[i].X, xys[i].Y = float64(i), means[i]
		}
		yerrs, err := plotter.NewYErrorBars(struct {
			plotter.XYs
			plotter.YErrors
		}{xys, errs})
		if err != nil {
			return fmt.Errorf("failed to create error bars: %w", err)
		}
		p.Add(yerrs)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
