package report

import (
	"fmt"
	"strings"

	"BERSim/internel/utils"
	"BERSim/pkg/sim"
)

// TableWriter writes a tab-separated table: the SNR column, one BER column
// per curve, then one percentage column per curve.
type TableWriter struct {
	Path string
}

func (w TableWriter) Name() string { return w.Path }

func (w TableWriter) Write(result *sim.Result) error {
	return utils.WriteTxt(w.Path, Rows(result), func(row []string) string {
		return strings.Join(row, "\t")
	})
}

// Rows renders result as table rows, header first.
func Rows(result *sim.Result) [][]string {
	header := []string{"SNR (dB)"}
	for _, c := range result.Curves {
		header = append(header, "BER_"+c.Name)
	}
	for _, c := range result.Curves {
		header = append(header, "BER_"+c.Name+" (%)")
	}

	rows := [][]string{header}
	for s, snr := range result.Sweep {
		row := []string{fmt.Sprintf("%.1f", snr)}
		for c := range result.Curves {
			row = append(row, fmt.Sprintf("%.6f", result.BER[c][s]))
		}
		for c := range result.Curves {
			row = append(row, fmt.Sprintf("%.2f%%", result.BER[c][s]*100))
		}
		rows = append(rows, row)
	}
	return rows
}
