// Package sim provides the core continuous-time simulation engine for treesim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - lineage.go: Lineage lifecycle (alive → sampled/removed/pruned) and state machine
//   - event.go: Event types that drive the simulation (branch, removal, rate shift, prune)
//   - engine.go: The event loop, competing-exponential draws, and skyline boundary handling
//
// # Architecture
//
// The sim package simulates trees under a birth-death-sampling process whose
// rates change at fixed skyline interval boundaries, optionally extended with
// contact notification (sampled individuals flagging contacts that are then
// removed at a different rate). Supporting pieces:
//   - model.go: rate models and the notification decorator
//   - skyline.go: piecewise-constant rate schedule
//   - generator.go: forest assembly with rejection/retry against tip bounds
//   - forest.go: tree/forest aggregates and observed-tree pruning
//   - ltt.go: lineage-through-time trajectories
//   - sim/treeio/: Newick, LTT and summary-log serialization
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Model: per-interval birth/removal/sampling parameters
//   - Notifier: optional notification capability, discovered by type assertion
//   - RecipientSampler: number of recipients per transmission event
package sim
