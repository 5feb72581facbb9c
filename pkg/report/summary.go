package report

import (
	"fmt"
	"io"

	"BERSim/pkg/sim"

	"github.com/olekukonko/tablewriter"
)

// SummaryWriter prints the averaged curves with their spread across trials.
type SummaryWriter struct {
	Out io.Writer
}

func (w SummaryWriter) Name() string { return "summary" }

func (w SummaryWriter) Write(result *sim.Result) error {
	table := tablewriter.NewWriter(w.Out)

	header := []string{"SNR (dB)"}
	for _, c := range result.Curves {
		header = append(header, c.Name+" BER", c.Name+" σ", c.Name+" errors")
	}
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for s, snr := range result.Sweep {
		row := []string{fmt.Sprintf("%.1f", snr)}
		for c := range result.Curves {
			row = append(row,
				fmt.Sprintf("%.6f", result.BER[c][s]),
				fmt.Sprintf("%.6f", result.StdDev[c][s]),
				fmt.Sprintf("%d/%d", result.Errors[c][s], result.Compared[c][s]))
		}
		table.Append(row)
	}
	table.SetCaption(true, fmt.Sprintf("%d trials, seed %d", result.Trials, result.Seed))
	table.Render()
	return nil
}
