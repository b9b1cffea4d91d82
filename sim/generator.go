package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Generator assembles a forest satisfying global tip-count and time bounds
// by repeated tree simulation with rejection. Attempts are fully
// independent draws; no state crosses a restart.
type Generator struct {
	Schedule *Skyline
	// MinTips/MaxTips bound the total observed tip count (both >= 1,
	// MaxTips >= MinTips).
	MinTips int
	MaxTips int
	// Horizon is the total simulation time T; +Inf switches to
	// single-tree mode.
	Horizon float64
	// MaxNotifiedContacts caps contacts spawned per sampling event.
	MaxNotifiedContacts int
	// MaxAttempts caps rejection retries; 0 retries forever.
	MaxAttempts int
}

// Generate runs the assembly loop and returns an accepted forest, its
// summary triple and the full lineage-through-time trajectory. The returned
// forest always satisfies MinTips <= Tips <= MaxTips. Only parameter and
// configuration errors are surfaced; rejected attempts are silent retries.
func (g *Generator) Generate(rng *PartitionedRNG) (*Forest, Summary, []LTTPoint, error) {
	if err := g.validate(); err != nil {
		return nil, Summary{}, nil, err
	}
	treeRNG := rng.ForSubsystem(SubsystemForest)
	if math.IsInf(g.Horizon, 1) {
		return g.generateTree(rng.ForSubsystem(SubsystemGoal), treeRNG)
	}
	return g.generateForest(treeRNG)
}

func (g *Generator) validate() error {
	if g.Schedule == nil {
		return fmt.Errorf("generator needs a skyline schedule: %w", ErrConfigurationMismatch)
	}
	if g.MinTips < 1 {
		return fmt.Errorf("min tips %d must be >= 1: %w", g.MinTips, ErrInvalidParameter)
	}
	if g.MaxTips < g.MinTips {
		return fmt.Errorf("max tips %d must be >= min tips %d: %w", g.MaxTips, g.MinTips, ErrInvalidParameter)
	}
	if math.IsNaN(g.Horizon) || g.Horizon <= 0 {
		return fmt.Errorf("total time %v must be positive: %w", g.Horizon, ErrInvalidParameter)
	}
	if g.MaxNotifiedContacts < 0 {
		return fmt.Errorf("max notified contacts %d must be >= 0: %w", g.MaxNotifiedContacts, ErrInvalidParameter)
	}
	return g.checkDegenerate()
}

// checkDegenerate fails fast on schedules that can never reach the tip
// bounds, instead of retrying forever.
func (g *Generator) checkDegenerate() error {
	canSample := false
	canBranch := false
	for i := 0; i < g.Schedule.Len(); i++ {
		m := g.Schedule.Model(i)
		if m.RemovalRate() > 0 && m.SamplingProb() > 0 {
			canSample = true
		}
		if m.BirthRate() > 0 {
			canBranch = true
		}
	}
	if !canSample {
		return fmt.Errorf("no interval with psi*p > 0, sampling is impossible: %w", ErrDegenerateProcess)
	}
	if math.IsInf(g.Horizon, 1) && g.MinTips > 1 && !canBranch {
		return fmt.Errorf("all transmission rates are zero, a single tree cannot reach %d tips: %w",
			g.MinTips, ErrDegenerateProcess)
	}
	return nil
}

// generateTree is the infinite-horizon mode: one tree, simulated from
// scratch until it reaches exactly the target tip count. The target is
// MinTips when the bounds are equal, otherwise drawn uniformly in
// [MinTips, MaxTips] once per Generate call.
func (g *Generator) generateTree(goalRNG, treeRNG *rand.Rand) (*Forest, Summary, []LTTPoint, error) {
	goal := g.MinTips
	if g.MaxTips > g.MinTips {
		goal += goalRNG.Intn(g.MaxTips - g.MinTips + 1)
	}
	logrus.Infof("simulating a tree with %d tips", goal)

	for attempt := 1; ; attempt++ {
		if g.MaxAttempts > 0 && attempt > g.MaxAttempts {
			return nil, Summary{}, nil, fmt.Errorf("no tree reached %d tips in %d attempts: %w",
				goal, g.MaxAttempts, ErrSimulationExhausted)
		}
		eng := NewEngine(g.Schedule, math.Inf(1), goal, g.MaxNotifiedContacts, treeRNG)
		tree := eng.Run()
		if tree.Sampled != goal {
			logrus.Debugf("attempt %d: tree died with %d/%d tips, restarting", attempt, tree.Sampled, goal)
			continue
		}
		f := &Forest{Time: tree.EndTime}
		f.Append(tree)
		logrus.Infof("tree accepted after %d attempt(s): %d tips, %d unsampled, time %.4f",
			attempt, f.Tips, f.Unsampled, f.Time)
		return f, Summary{Tips: f.Tips, Unsampled: f.Unsampled, Time: f.Time}, f.LTT(), nil
	}
}

// generateForest is the finite-horizon mode: independent trees, each rooted
// at time zero and simulated over [0, T], are appended until the total tip
// count reaches MinTips. A forest overshooting MaxTips after its last tree
// is discarded wholesale and rebuilt from empty.
func (g *Generator) generateForest(treeRNG *rand.Rand) (*Forest, Summary, []LTTPoint, error) {
	for attempt := 1; ; attempt++ {
		if g.MaxAttempts > 0 && attempt > g.MaxAttempts {
			return nil, Summary{}, nil, fmt.Errorf("no forest landed in [%d, %d] tips in %d attempts: %w",
				g.MinTips, g.MaxTips, g.MaxAttempts, ErrSimulationExhausted)
		}
		f := &Forest{Time: g.Horizon}
		for f.Tips < g.MinTips {
			eng := NewEngine(g.Schedule, g.Horizon, 0, g.MaxNotifiedContacts, treeRNG)
			f.Append(eng.Run())
		}
		if f.Tips > g.MaxTips {
			logrus.Debugf("attempt %d: forest of %d trees has %d tips, max is %d, restarting",
				attempt, len(f.Trees), f.Tips, g.MaxTips)
			continue
		}
		logrus.Infof("forest accepted after %d attempt(s): %d trees (%d hidden), %d tips, %d unsampled",
			attempt, len(f.Trees), f.HiddenTrees(), f.Tips, f.Unsampled)
		return f, Summary{Tips: f.Tips, Unsampled: f.Unsampled, Time: g.Horizon}, f.LTT(), nil
	}
}
