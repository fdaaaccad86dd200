package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteText prints results as an aligned table.
func WriteText(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tCATEGORY\tBASELINE\tCOMPILER\tSPEEDUP\tCORRECT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2fx\t%t\n",
			r.Case.Name,
			r.Case.Category,
			formatTiming(r.Baseline),
			formatTiming(r.Compiler),
			r.Speedup,
			r.Correct,
		)
	}
	return tw.Flush()
}

func formatTiming(t Timing) string {
	switch t.Status {
	case StatusTimeout:
		return fmt.Sprintf("TIMEOUT (%s)", t.Elapsed)
	case StatusError:
		return "ERROR: " + t.Err.Error()
	}
	return fmt.Sprintf("%.4fs", t.Elapsed.Seconds())
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// WriteChart renders an HTML bar chart of baseline and compiler time per
// case, in milliseconds.
func WriteChart(w io.Writer, results []Result) error {
	names := make([]string, len(results))
	baseline := make([]opts.BarData, len(results))
	compiled := make([]opts.BarData, len(results))
	for i, r := range results {
		names[i] = r.Case.Name
		baseline[i] = opts.BarData{Value: millis(r.Baseline.Elapsed)}
		compiled[i] = opts.BarData{Value: millis(r.Compiler.Elapsed)}
	}

	title := "NeuralSutra benchmark"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "wall time per case (ms)"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("baseline", baseline).
		AddSeries("compiler", compiled).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
