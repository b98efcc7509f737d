package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

func withTitle(title, subtitle string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:    title,
		Subtitle: subtitle,
	})
}

func withToolbox() charts.GlobalOpts {
	return charts.WithToolboxOpts(opts.Toolbox{
		Show: true,
		Feature: &opts.ToolBoxFeature{
			SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
				Show:  true,
				Title: "Save",
			},
			DataZoom: &opts.ToolBoxFeatureDataZoom{
				Show: true,
			},
		},
	})
}

func withAxes(x, y string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{
			Name: x,
			AxisLabel: &opts.AxisLabel{
				Show:         true,
				ShowMinLabel: true,
				ShowMaxLabel: true,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: y,
			SplitLine: &opts.SplitLine{
				Show: true,
			},
		}),
	}
}

// HistogramChart builds a bar chart of the normalised outcome frequencies.
func HistogramChart(title, xLabel string, h *sim.Histogram, iterations int) *charts.Bar {
	freqs := h.Frequencies(iterations)
	x := make([]int, len(freqs))
	y := make([]opts.BarData, len(freqs))
	for i, f := range freqs {
		x[i] = i
		y[i] = opts.BarData{Value: f}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		withTitle(title, fmt.Sprintf("%d runs, %d binned, %d dropped", iterations, h.Sum(), h.Dropped())),
		withToolbox(),
	)
	bar.SetGlobalOptions(withAxes(xLabel, "frequency")...)
	bar.SetXAxis(x).AddSeries("frequency", y)
	return bar
}

// TrajectoryChart builds a line chart of the average S, I and R per
// timestep. When reference is non-empty its curves are overlaid as
// [time, value] pairs.
func TrajectoryChart(title string, mean, reference sim.PopulationSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		withTitle(title, fmt.Sprintf("%d timesteps", mean.Len())),
		withToolbox(),
	)
	line.SetGlobalOptions(append(withAxes("timestep", "individuals"), charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)

	line.AddSeries("S (mean)", lineData(mean.Time, mean.Susceptibles)).
		AddSeries("I (mean)", lineData(mean.Time, mean.Infectives)).
		AddSeries("R (mean)", lineData(mean.Time, mean.Removed))
	if reference.Len() > 0 {
		line.AddSeries("S (mean-field)", lineData(reference.Time, reference.Susceptibles)).
			AddSeries("I (mean-field)", lineData(reference.Time, reference.Infectives)).
			AddSeries("R (mean-field)", lineData(reference.Time, reference.Removed))
	}
	return line
}

func lineData(x, y []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(x))
	for i := range x {
		items = append(items, opts.LineData{Value: [2]float64{x[i], y[i]}})
	}
	return items
}

// RenderHistogramChart writes an HTML page holding the histogram chart.
func RenderHistogramChart(w io.Writer, title, xLabel string, h *sim.Histogram, iterations int) error {
	page := components.NewPage()
	page.AddCharts(HistogramChart(title, xLabel, h, iterations))
	return page.Render(w)
}

// RenderTrajectoryChart writes an HTML page holding the trajectory chart.
func RenderTrajectoryChart(w io.Writer, title string, mean, reference sim.PopulationSeries) error {
	page := components.NewPage()
	page.AddCharts(TrajectoryChart(title, mean, reference))
	return page.Render(w)
}
