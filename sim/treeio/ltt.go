package treeio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/treesim/treesim/sim"
)

// WriteLTT writes the full and observed lineage-through-time trajectories
// as CSV with columns time, lineages, observed_lineages. Rows are emitted
// on the union of both time axes; each column holds its step-function value
// at that time.
func WriteLTT(w io.Writer, full, observed []sim.LTTPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "lineages", "observed_lineages"}); err != nil {
		return err
	}

	fi, oi := 0, 0
	fv, ov := 0, 0
	for fi < len(full) || oi < len(observed) {
		var t float64
		switch {
		case oi >= len(observed):
			t = full[fi].Time
		case fi >= len(full):
			t = observed[oi].Time
		case full[fi].Time <= observed[oi].Time:
			t = full[fi].Time
		default:
			t = observed[oi].Time
		}
		for fi < len(full) && full[fi].Time == t {
			fv = full[fi].Lineages
			fi++
		}
		for oi < len(observed) && observed[oi].Time == t {
			ov = observed[oi].Lineages
			oi++
		}
		row := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.Itoa(fv),
			strconv.Itoa(ov),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
