// Package treeio serializes simulation output: Newick forests, LTT curves
// and run-summary logs. It depends on sim/ types only and performs no
// simulation itself.
package treeio

import (
	"fmt"
	"io"
	"strings"

	"github.com/treesim/treesim/sim"
)

// Newick renders an observed (or full) tree rooted at root as a Newick
// string without the trailing semicolon. A lineage with several children
// attached along its edge is expanded into nested bifurcations in birth
// order, so root-to-tip path lengths equal tip end time minus root birth
// time. Sampled tips are named tN, pruned-at-limit tips pN.
func Newick(root *sim.Lineage) string {
	var b strings.Builder
	writeClade(&b, root, root.BirthTime, root.Children)
	return b.String()
}

// WriteForest writes one Newick line per observed tree in the forest.
// Trees with no observed lineage are skipped.
func WriteForest(w io.Writer, f *sim.Forest) error {
	for _, t := range f.Trees {
		root := t.Observed()
		if root == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s;\n", Newick(root)); err != nil {
			return err
		}
	}
	return nil
}

// writeClade emits the subtree of lineage l starting at branch time from,
// with pending the children of l not yet placed. The earliest pending
// child splits the edge into a bifurcation; with no children left, the
// remainder of the edge is a labelled tip. An unobserved tail segment
// followed by a single child is collapsed into that child's branch so no
// phantom tip appears.
func writeClade(b *strings.Builder, l *sim.Lineage, from float64, pending []*sim.Lineage) {
	if len(pending) == 0 {
		fmt.Fprintf(b, "%s:%g", label(l), l.EndTime-from)
		return
	}
	tip := l.State == sim.StateSampled || l.State == sim.StatePrunedAtTimeLimit
	c := pending[0]
	if !tip && len(pending) == 1 {
		writeClade(b, c, from, c.Children)
		return
	}
	b.WriteByte('(')
	writeClade(b, c, c.BirthTime, c.Children)
	b.WriteByte(',')
	writeClade(b, l, c.BirthTime, pending[1:])
	b.WriteByte(')')
	fmt.Fprintf(b, ":%g", c.BirthTime-from)
}

func label(l *sim.Lineage) string {
	switch l.State {
	case sim.StateSampled:
		return fmt.Sprintf("t%d", l.ID)
	case sim.StatePrunedAtTimeLimit:
		return fmt.Sprintf("p%d", l.ID)
	default:
		return ""
	}
}
