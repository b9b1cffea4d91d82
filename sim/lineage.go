package sim

import "math"

// LineageState is the state-machine state of a lineage. StateAlive and
// StateNotifiedAlive are the racing states; everything else is terminal
// and fixed exactly once, at the lineage's end event.
type LineageState int

const (
	// StateAlive is the initial state: racing birth against removal.
	StateAlive LineageState = iota
	// StateNotifiedAlive is an alive contact lineage spawned by a
	// notification: it races with the notified removal rate φ instead
	// of ψ and never notifies further contacts itself.
	StateNotifiedAlive
	// StateSampled is an observed removal: a tip of the output tree.
	StateSampled
	// StateRemovedUnsampled is an unobserved removal: the branch exists
	// but does not appear as an observed tip.
	StateRemovedUnsampled
	// StatePrunedAtTimeLimit marks a lineage still alive when the time
	// horizon or the tip goal was reached.
	StatePrunedAtTimeLimit
)

var lineageStateNames = map[LineageState]string{
	StateAlive:             "alive",
	StateNotifiedAlive:     "notified",
	StateSampled:           "sampled",
	StateRemovedUnsampled:  "removed-unsampled",
	StatePrunedAtTimeLimit: "pruned-at-time-limit",
}

func (s LineageState) String() string {
	if name, ok := lineageStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state ends a lineage.
func (s LineageState) Terminal() bool {
	return s != StateAlive && s != StateNotifiedAlive
}

// Lineage is one edge of the genealogy, from its birth event to its end
// event. Children are owned exclusively by their parent; Parent and
// NotifiedBy are non-owning back-references for traversal.
type Lineage struct {
	ID        int
	BirthTime float64
	// EndTime is NaN while the lineage is alive and set exactly once at
	// termination.
	EndTime float64
	// BirthModelIdx is the skyline interval governing the lineage at its
	// birth instant; immutable.
	BirthModelIdx int
	// ModelIdx is the skyline interval currently governing the lineage;
	// advanced by rate-shift events as the lineage crosses boundaries.
	ModelIdx int
	State    LineageState
	// Notified is set for contact lineages spawned by a notification and
	// survives the transition into a terminal state.
	Notified   bool
	Parent     *Lineage
	NotifiedBy *Lineage
	Children   []*Lineage
}

func newLineage(id int, parent *Lineage, t float64, modelIdx int) *Lineage {
	l := &Lineage{
		ID:            id,
		BirthTime:     t,
		EndTime:       math.NaN(),
		BirthModelIdx: modelIdx,
		ModelIdx:      modelIdx,
		State:         StateAlive,
		Parent:        parent,
	}
	if parent != nil {
		parent.Children = append(parent.Children, l)
	}
	return l
}

// end fixes the lineage's terminal state and end time. It must only be
// called once; the outcome is never revised afterwards.
func (l *Lineage) end(state LineageState, t float64) {
	l.State = state
	l.EndTime = t
}

// Walk visits the lineage and all its descendants in depth-first order.
func (l *Lineage) Walk(visit func(*Lineage)) {
	visit(l)
	for _, c := range l.Children {
		c.Walk(visit)
	}
}

// observed returns a copy of the subtree restricted to lineages with a
// sampled or pruned-at-limit tip among their descendants (or themselves),
// or nil if there is none. Unobserved pass-through lineages with a single
// observed child are collapsed by extending the child's branch back to the
// pass-through's birth, so root-to-tip path lengths are preserved.
func (l *Lineage) observed() *Lineage {
	var kept []*Lineage
	for _, c := range l.Children {
		if oc := c.observed(); oc != nil {
			kept = append(kept, oc)
		}
	}
	tip := l.State == StateSampled || l.State == StatePrunedAtTimeLimit
	if !tip && len(kept) == 0 {
		return nil
	}
	if !tip && len(kept) == 1 {
		kept[0].BirthTime = l.BirthTime
		return kept[0]
	}
	cp := &Lineage{
		ID:            l.ID,
		BirthTime:     l.BirthTime,
		EndTime:       l.EndTime,
		BirthModelIdx: l.BirthModelIdx,
		ModelIdx:      l.ModelIdx,
		State:         l.State,
		Notified:      l.Notified,
		Children:      kept,
	}
	for _, c := range kept {
		c.Parent = cp
	}
	return cp
}
