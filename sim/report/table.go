package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

// PrintHistogram renders the non-empty bins of h as an outcome/count/frequency table.
func PrintHistogram(w io.Writer, h *sim.Histogram, iterations int) {
	freqs := h.Frequencies(iterations)
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Outcome", "Count", "Frequency"})
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i := 0; i < h.Len(); i++ {
		if h.Count(i) == 0 {
			continue
		}
		tbl.Append([]string{fmt.Sprint(i), fmt.Sprint(h.Count(i)), fmt.Sprintf("%.4f", freqs[i])})
	}
	tbl.SetFooter([]string{"Total", fmt.Sprint(h.Sum()), fmt.Sprintf("dropped %d", h.Dropped())})
	tbl.Render()
}

// PrintSummary renders a Summary as a two-column table.
func PrintSummary(w io.Writer, s Summary) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Statistic", "Value"})
	tbl.SetBorder(true)
	rows := [][]string{
		{"Runs binned", fmt.Sprint(s.Count)},
		{"Mean", fmt.Sprintf("%.4f", s.Mean)},
		{"Std dev", fmt.Sprintf("%.4f", s.StdDev)},
		{"Median", fmt.Sprintf("%.0f", s.Median)},
		{"Mode", fmt.Sprintf("%.0f", s.Mode)},
		{"Min", fmt.Sprint(s.Min)},
		{"Max", fmt.Sprint(s.Max)},
	}
	tbl.AppendBulk(rows)
	tbl.Render()
}
