package treeio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/treesim/treesim/sim"
)

// WriteSummary writes a one-row CSV log of the generating parameters and
// the realized outcome. The model is the one governing the final skyline
// interval; notification columns are zero for plain models.
func WriteSummary(w io.Writer, m sim.Model, s sim.Summary) error {
	upsilon, phi := 0.0, 0.0
	if n, ok := m.(sim.Notifier); ok {
		upsilon = n.NotificationProb()
		phi = n.NotifiedRemovalRate()
	}

	cw := csv.NewWriter(w)
	header := []string{"lambda", "psi", "p", "upsilon", "phi", "tips", "unsampled", "time"}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := []string{
		formatFloat(m.BirthRate()),
		formatFloat(m.RemovalRate()),
		formatFloat(m.SamplingProb()),
		formatFloat(upsilon),
		formatFloat(phi),
		strconv.Itoa(s.Tips),
		strconv.Itoa(s.Unsampled),
		formatFloat(s.Time),
	}
	if err := cw.Write(row); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
