package sim

// Tree is one connected genealogy rooted at a simulation start event. It
// owns all descendant lineages transitively.
type Tree struct {
	Root *Lineage
	// Sampled is the number of observed tips.
	Sampled int
	// Unsampled is the number of unobserved (removed-unsampled) terminations.
	Unsampled int
	// EndTime is the clock value when the tree finished.
	EndTime float64

	events []lttEvent
}

// Observed returns the root of the tree restricted to lineages with a
// sampled or pruned-at-limit descendant, with unobserved pass-through
// branches collapsed. Returns nil when nothing in the tree was observed.
func (t *Tree) Observed() *Lineage {
	if t.Root == nil {
		return nil
	}
	return t.Root.observed()
}

// Tips returns the childless terminal lineages of the full tree.
func (t *Tree) Tips() []*Lineage {
	var tips []*Lineage
	t.Root.Walk(func(l *Lineage) {
		if len(l.Children) == 0 {
			tips = append(tips, l)
		}
	})
	return tips
}

// Forest is an ordered sequence of finished trees plus aggregate counters.
// It is mutated only by appending completed trees; a failed assembly
// attempt discards the whole forest.
type Forest struct {
	Trees []*Tree
	// Tips is the total observed (sampled) tip count.
	Tips int
	// Unsampled is the total count of unobserved terminations.
	Unsampled int
	// Time is the realized simulated time: the horizon T in forest mode,
	// the last event's clock in single-tree mode.
	Time float64
}

// Append adds a finished tree and folds its counters into the forest.
func (f *Forest) Append(t *Tree) {
	f.Trees = append(f.Trees, t)
	f.Tips += t.Sampled
	f.Unsampled += t.Unsampled
}

// HiddenTrees counts trees with no observed lineage at all; they exist in
// the forest but serialize to nothing.
func (f *Forest) HiddenTrees() int {
	hidden := 0
	for _, t := range f.Trees {
		if t.Observed() == nil {
			hidden++
		}
	}
	return hidden
}

// LTT compiles the full forest's lineage-through-time trajectory, including
// lineages that never made it into the observed trees.
func (f *Forest) LTT() []LTTPoint {
	var events []lttEvent
	for _, t := range f.Trees {
		events = append(events, t.events...)
	}
	return compileLTT(events)
}

// ObservedLTT compiles the trajectory of the observed (pruned) forest only.
func (f *Forest) ObservedLTT() []LTTPoint {
	var events []lttEvent
	for _, t := range f.Trees {
		if root := t.Observed(); root != nil {
			events = lineageSpans(root, events)
		}
	}
	return compileLTT(events)
}

// Summary is the aggregate triple reported alongside a generated forest.
type Summary struct {
	// Tips is the total observed tip count.
	Tips int
	// Unsampled is the total count of unobserved terminations.
	Unsampled int
	// Time is the realized simulated time.
	Time float64
}
