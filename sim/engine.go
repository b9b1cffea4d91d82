// sim/engine.go
package sim

import (
	"container/heap"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int           { return len(eq) }
func (eq EventQueue) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq EventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Engine is the continuous-time stochastic simulator for a single tree.
// It owns all lineage state for the duration of a run; every alive lineage
// has exactly one pending event in the queue at any time.
type Engine struct {
	schedule *Skyline
	// horizon is the absolute time limit T; +Inf for single-tree mode.
	horizon float64
	// tipGoal stops the run once that many sampled tips exist; 0 disables
	// the goal and the run ends when no lineage is left alive.
	tipGoal int
	// maxNotified caps the contact lineages spawned per sampling event.
	maxNotified int
	rng         *rand.Rand

	clock     float64
	queue     EventQueue
	nextID    int
	sampled   int
	unsampled int
	events    []lttEvent
}

// NewEngine prepares an engine for one tree simulation. The rng is the
// single pseudo-random stream threaded through the whole run.
func NewEngine(schedule *Skyline, horizon float64, tipGoal, maxNotifiedContacts int, rng *rand.Rand) *Engine {
	return &Engine{
		schedule:    schedule,
		horizon:     horizon,
		tipGoal:     tipGoal,
		maxNotified: maxNotifiedContacts,
		rng:         rng,
		queue:       make(EventQueue, 0),
	}
}

// Run simulates one complete tree rooted at time zero. The tree is done
// when no lineage remains in a non-terminal state, or earlier when the tip
// goal is reached, in which case lineages still alive are pruned at the
// current clock.
func (e *Engine) Run() *Tree {
	root := e.spawn(nil, 0)
	e.scheduleNext(root, 0)

	for e.queue.Len() > 0 {
		ev := heap.Pop(&e.queue).(Event)
		e.clock = ev.Timestamp()
		ev.Execute(e)
		if e.tipGoal > 0 && e.sampled >= e.tipGoal {
			e.pruneRemaining(e.clock)
			break
		}
	}

	logrus.Debugf("[t=%.4f] tree complete: %d sampled, %d unsampled", e.clock, e.sampled, e.unsampled)
	return &Tree{
		Root:      root,
		Sampled:   e.sampled,
		Unsampled: e.unsampled,
		EndTime:   e.clock,
		events:    e.events,
	}
}

// spawn creates an alive lineage at time t and records its creation for
// the lineage-through-time trajectory.
func (e *Engine) spawn(parent *Lineage, t float64) *Lineage {
	l := newLineage(e.nextID, parent, t, e.schedule.IndexAt(t))
	e.nextID++
	e.events = append(e.events, lttEvent{time: t, delta: 1})
	return l
}

// end fixes a lineage's outcome and records its termination.
func (e *Engine) end(l *Lineage, state LineageState, t float64) {
	l.end(state, t)
	e.events = append(e.events, lttEvent{time: t, delta: -1})
}

// scheduleNext draws the competing exponential waiting times for birth and
// removal under the lineage's current model and pushes the winning event —
// unless the winner falls beyond the next skyline boundary (rate shift) or
// the horizon (prune).
func (e *Engine) scheduleNext(l *Lineage, now float64) {
	m := e.schedule.Model(l.ModelIdx)
	removal := m.RemovalRate()
	if l.Notified {
		if n, ok := m.(Notifier); ok {
			removal = n.NotifiedRemovalRate()
		}
	}

	tBirth := now + expWait(e.rng, m.BirthRate())
	tRemoval := now + expWait(e.rng, removal)
	next, isBirth := tRemoval, false
	if tBirth < tRemoval {
		next, isBirth = tBirth, true
	}

	boundary := e.schedule.SwitchTime(l.ModelIdx)
	if next >= boundary && boundary < e.horizon {
		heap.Push(&e.queue, &rateShiftEvent{time: boundary, lineage: l})
		return
	}
	if next >= e.horizon {
		if math.IsInf(e.horizon, 1) {
			// Both rates are zero in a final, unbounded interval: no
			// event can ever fire again on this lineage.
			e.end(l, StatePrunedAtTimeLimit, now)
			return
		}
		heap.Push(&e.queue, &pruneEvent{time: e.horizon, lineage: l})
		return
	}
	if isBirth {
		heap.Push(&e.queue, &branchEvent{time: next, lineage: l})
	} else {
		heap.Push(&e.queue, &removalEvent{time: next, lineage: l})
	}
}

// branch spawns the drawn number of recipients; the transmitting lineage
// itself stays alive and keeps racing.
func (e *Engine) branch(l *Lineage, t float64) {
	m := e.schedule.Model(l.ModelIdx)
	k := m.Recipients().SampleRecipients(e.rng)
	logrus.Debugf("[t=%.4f] lineage %d transmits to %d recipient(s)", t, l.ID, k)
	for i := 0; i < k; i++ {
		c := e.spawn(l, t)
		e.scheduleNext(c, t)
	}
	e.scheduleNext(l, t)
}

// remove ends a lineage with a Bernoulli(p) sampling draw. A sampled,
// not-yet-notified lineage under a Notifier model additionally spawns up
// to maxNotified contact lineages, each racing with removal rate φ from
// here on and exempt from further notification.
func (e *Engine) remove(l *Lineage, t float64) {
	m := e.schedule.Model(l.ModelIdx)
	wasNotified := l.Notified
	if e.rng.Float64() < m.SamplingProb() {
		e.end(l, StateSampled, t)
		e.sampled++
		logrus.Debugf("[t=%.4f] lineage %d sampled (tip %d)", t, l.ID, e.sampled)
		if n, ok := m.(Notifier); ok && !wasNotified {
			if n.NotificationProb() > 0 && e.rng.Float64() < n.NotificationProb() {
				e.notifyContacts(l, t)
			}
		}
		return
	}
	e.end(l, StateRemovedUnsampled, t)
	e.unsampled++
}

// notifyContacts spawns the capped number of notified contact lineages at
// the sampling instant.
func (e *Engine) notifyContacts(l *Lineage, t float64) {
	for i := 0; i < e.maxNotified; i++ {
		c := e.spawn(l, t)
		c.State = StateNotifiedAlive
		c.Notified = true
		c.NotifiedBy = l
		e.scheduleNext(c, t)
	}
	if e.maxNotified > 0 {
		logrus.Debugf("[t=%.4f] lineage %d notified %d contact(s)", t, l.ID, e.maxNotified)
	}
}

// shift advances a lineage into the next skyline interval and restarts its
// competing-exponential race there.
func (e *Engine) shift(l *Lineage, t float64) {
	l.ModelIdx++
	e.scheduleNext(l, t)
}

// prune finalizes a lineage still alive at the horizon.
func (e *Engine) prune(l *Lineage, t float64) {
	e.end(l, StatePrunedAtTimeLimit, t)
}

// pruneRemaining drains the queue after a stop condition, finalizing every
// lineage with a pending event as pruned at time t.
func (e *Engine) pruneRemaining(t float64) {
	for e.queue.Len() > 0 {
		ev := heap.Pop(&e.queue).(Event)
		l := ev.(lineageEvent).subject()
		if !l.State.Terminal() {
			e.end(l, StatePrunedAtTimeLimit, t)
		}
	}
}

// expWait draws an exponential waiting time with the given rate.
// Rate zero means the event type never fires: an infinite wait.
func expWait(rng *rand.Rand, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return rng.ExpFloat64() / rate
}
