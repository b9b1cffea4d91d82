package sim

import "sort"

// lttEvent is a lineage creation (+1) or termination (-1) at a point in time.
type lttEvent struct {
	time  float64
	delta int
}

// LTTPoint is one sample of the lineage-through-time trajectory: the number
// of concurrently alive lineages from Time until the next point.
type LTTPoint struct {
	Time     float64
	Lineages int
}

// compileLTT replays creation/termination events in time order into a step
// trajectory, one point per distinct event time. Deltas at identical times
// are applied together, so a transmission instant contributes a single jump.
func compileLTT(events []lttEvent) []LTTPoint {
	if len(events) == 0 {
		return nil
	}
	sorted := make([]lttEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].time < sorted[j].time })

	points := make([]LTTPoint, 0, len(sorted))
	alive := 0
	for i, ev := range sorted {
		alive += ev.delta
		if i+1 < len(sorted) && sorted[i+1].time == ev.time {
			continue
		}
		points = append(points, LTTPoint{Time: ev.time, Lineages: alive})
	}
	return points
}

// lineageSpans collects creation/termination events for every lineage in a
// (sub)tree, used to rebuild the trajectory of an observed forest.
func lineageSpans(root *Lineage, events []lttEvent) []lttEvent {
	root.Walk(func(l *Lineage) {
		events = append(events, lttEvent{time: l.BirthTime, delta: 1})
		events = append(events, lttEvent{time: l.EndTime, delta: -1})
	})
	return events
}
