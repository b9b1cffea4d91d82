package sim

// Event defines the interface for all simulation events. Each event has an
// absolute Timestamp and an Execute method that advances engine state when
// invoked.
type Event interface {
	Timestamp() float64
	Execute(*Engine)
}

// lineageEvent is implemented by every event bound to one lineage; the
// engine uses it to prune pending lineages when a stop condition fires.
type lineageEvent interface {
	Event
	subject() *Lineage
}

// branchEvent is a transmission: the lineage spawns recipient lineages at
// the event time and keeps racing itself.
type branchEvent struct {
	time    float64
	lineage *Lineage
}

func (e *branchEvent) Timestamp() float64 { return e.time }
func (e *branchEvent) subject() *Lineage  { return e.lineage }

func (e *branchEvent) Execute(eng *Engine) {
	eng.branch(e.lineage, e.time)
}

// removalEvent ends a lineage: a Bernoulli(p) draw decides whether the
// removal is observed (sampled) or not.
type removalEvent struct {
	time    float64
	lineage *Lineage
}

func (e *removalEvent) Timestamp() float64 { return e.time }
func (e *removalEvent) subject() *Lineage  { return e.lineage }

func (e *removalEvent) Execute(eng *Engine) {
	eng.remove(e.lineage, e.time)
}

// rateShiftEvent advances a lineage across a skyline boundary. The
// competing-exponential race restarts at the boundary instant under the
// new model's rates (memoryless property); no waiting time is carried over.
type rateShiftEvent struct {
	time    float64
	lineage *Lineage
}

func (e *rateShiftEvent) Timestamp() float64 { return e.time }
func (e *rateShiftEvent) subject() *Lineage  { return e.lineage }

func (e *rateShiftEvent) Execute(eng *Engine) {
	eng.shift(e.lineage, e.time)
}

// pruneEvent finalizes a lineage still alive at the time horizon.
type pruneEvent struct {
	time    float64
	lineage *Lineage
}

func (e *pruneEvent) Timestamp() float64 { return e.time }
func (e *pruneEvent) subject() *Lineage  { return e.lineage }

func (e *pruneEvent) Execute(eng *Engine) {
	eng.prune(e.lineage, e.time)
}
