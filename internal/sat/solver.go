package sat

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a Solver, trimmed to the knobs this algorithm
// actually has: search isn't VSIDS-tuned, so there's no activity decay to
// expose.
type Options struct {
	// MaxConflicts stops the search and returns OutcomeUnknown once this
	// many conflicts have been found. Negative means unlimited.
	MaxConflicts int64
	// Timeout stops the search the same way, measured from the start of
	// each call to Solve. Negative means unlimited. It is only checked between loop
	// iterations — there is no preemption mid-propagation.
	Timeout time.Duration
	// InitialReduceLimit is the conflict count, since the last reduction,
	// that triggers the first clause-database reduction.
	InitialReduceLimit int64
	// ReduceGrowthFactor scales the limit up after every reduction so later
	// rounds happen less often relative to search depth.
	ReduceGrowthFactor float64
	// Logger receives Debug-level tracing of propagation, conflict analysis
	// and garbage collection. Defaults to a logger with discarded output.
	Logger *logrus.Logger
}

// DefaultOptions is a sensible, unbounded-search configuration.
var DefaultOptions = Options{
	MaxConflicts:       -1,
	Timeout:            -1,
	InitialReduceLimit: 3000,
	ReduceGrowthFactor: 1.05,
}

// Stats exposes the search counters a caller might want to report.
type Stats struct {
	Propagations         int64
	Conflicts            int64
	ConflictsSinceReduce int64
	Decisions            int64
}

// OutcomeKind distinguishes the three ways Solve can end.
type OutcomeKind uint8

const (
	// OutcomeUnknown means a configured stop condition (MaxConflicts,
	// Timeout) fired before the search could decide satisfiability. The
	// core algorithm never produces it when both limits are disabled.
	OutcomeUnknown OutcomeKind = iota
	OutcomeSat
	OutcomeUnsat
)

// Proof is an opaque token accompanying an Unsat result. It carries no
// structure today; a real proof format (e.g. DRAT) would hang off this.
type Proof struct{}

// Model is a satisfying assignment, one bool per declared variable.
type Model struct {
	values []bool // values[v-1] is the value of variable v.
}

// Lit reports the value assigned to variable v in this model.
func (m Model) Lit(v int) bool {
	return m.values[v-1]
}

// AsVec returns the model as signed DIMACS-style integers, one per
// variable in declaration order.
func (m Model) AsVec() []int32 {
	out := make([]int32, len(m.values))
	for i, b := range m.values {
		if b {
			out[i] = int32(i + 1)
		} else {
			out[i] = -int32(i + 1)
		}
	}
	return out
}

// Outcome is the result of Solve: exactly one of a Model (Sat) or a Proof
// (Unsat), or neither (Unknown).
type Outcome struct {
	kind  OutcomeKind
	model Model
	proof Proof
}

func (o Outcome) IsSat() bool     { return o.kind == OutcomeSat }
func (o Outcome) IsUnsat() bool   { return o.kind == OutcomeUnsat }
func (o Outcome) IsUnknown() bool { return o.kind == OutcomeUnknown }

// Model returns the satisfying assignment. It panics if the outcome isn't
// OutcomeSat.
func (o Outcome) Model() Model {
	if o.kind != OutcomeSat {
		panic("dissat: Model() called on a non-Sat outcome")
	}
	return o.model
}

// Proof returns the opaque unsatisfiability token. It panics if the
// outcome isn't OutcomeUnsat.
func (o Outcome) Proof() Proof {
	if o.kind != OutcomeUnsat {
		panic("dissat: Proof() called on a non-Unsat outcome")
	}
	return o.proof
}

// Solver is the CDCL engine: a clause arena, a trail, a watch index, the
// propagator and conflict analyzer built on top of them, and the driver
// loop that ties them together.
type Solver struct {
	clauses  *ClauseDB
	trail    *Trail
	watches  Watches
	prop     *Propagator
	analyzer *Analyzer

	numVars        int
	triviallyUnsat bool

	reduceLimit float64
	opts        Options
	log         *logrus.Logger

	stats     Stats
	startTime time.Time
}

// NewSolver returns an empty solver configured by opts.
func NewSolver(opts Options) *Solver {
	if opts.InitialReduceLimit <= 0 {
		opts.InitialReduceLimit = DefaultOptions.InitialReduceLimit
	}
	if opts.ReduceGrowthFactor <= 1 {
		opts.ReduceGrowthFactor = DefaultOptions.ReduceGrowthFactor
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(io.Discard)
	}

	clauses := NewClauseDB()
	trail := NewTrail()
	s := &Solver{
		clauses:     clauses,
		trail:       trail,
		watches:     NewWatches(),
		analyzer:    NewAnalyzer(clauses, trail),
		reduceLimit: float64(opts.InitialReduceLimit),
		opts:        opts,
		log:         opts.Logger,
	}
	s.prop = NewPropagator(trail, clauses, &s.watches)
	return s
}

// New returns an empty solver with DefaultOptions, equivalent to calling
// NewSolver(DefaultOptions).
func New() *Solver {
	return NewSolver(DefaultOptions)
}

// NumVars returns the number of declared variables.
func (s *Solver) NumVars() int {
	return s.numVars
}

// AddVariable introduces a fresh variable and returns its id. Variables are
// also introduced implicitly by AddClause; this exists for collaborators
// (e.g. the DIMACS loader) that need to pre-size the solver from a problem
// header.
func (s *Solver) AddVariable() Var {
	s.numVars++
	v := Var(s.numVars)
	s.trail.Expand(v)
	s.watches.Expand(v)
	s.analyzer.Expand(v)
	return v
}

func (s *Solver) expandTo(v Var) {
	for s.numVars < int(v) {
		s.AddVariable()
	}
}

// AddClause ingests a clause given as already-encoded literals. It
// normalizes (sorts, drops duplicate literals, drops tautologies), grows
// the variable space to cover any literal not yet declared, and dispatches
// by length: empty clauses and unit clauses that contradict an existing
// level-0 fact mark the solver trivially unsatisfiable; unit clauses assign
// their literal as a level-0 axiom; longer clauses go into the arena with
// watches on their first two literals. It returns an error if the solver
// isn't currently at decision level 0 — AddClause only mutates the formula
// at the root of the search. Solve always returns with the trail unwound
// back to level 0, so clauses can be added again afterward (the solve-all
// idiom: solve, block the model found by adding its negation, solve
// again).
func (s *Solver) AddClause(lits []Literal) error {
	if s.trail.CurrentLevel() != 0 {
		return fmt.Errorf("dissat: can only add clauses at the root level")
	}

	for _, l := range lits {
		s.expandTo(l.Var())
	}

	normalized, tautology := normalizeClause(lits)
	if tautology {
		return nil
	}

	switch len(normalized) {
	case 0:
		s.triviallyUnsat = true
	case 1:
		lit := normalized[0]
		switch {
		case s.trail.IsFalsified(lit):
			s.triviallyUnsat = true
		case s.trail.IsUnassigned(lit):
			s.trail.AssignLit(lit, axiomReason)
		}
	default:
		h := s.clauses.Insert(normalized, 0)
		s.prop.WatchClause(h)
	}
	return nil
}

// normalizeClause sorts lits (bringing a variable's two literals adjacent,
// since PositiveLiteral(v) == 2v and NegativeLiteral(v) == 2v+1), drops
// duplicates, and reports a tautology if both polarities of some variable
// appear.
func normalizeClause(lits []Literal) (out []Literal, tautology bool) {
	sorted := append([]Literal(nil), lits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out = make([]Literal, 0, len(sorted))
	for i, l := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if l == prev {
				continue // duplicate literal
			}
			if l.Var() == prev.Var() {
				return nil, true // x and ¬x both present
			}
		}
		out = append(out, l)
	}
	return out, false
}

// Stats returns the search counters accumulated so far.
func (s *Solver) Stats() Stats {
	s.stats.Propagations = s.prop.Propagations
	return s.stats
}

// Solve runs the CDCL main loop to completion: propagate; on conflict,
// analyze and backjump (or report Unsat if already at level 0); on a
// complete assignment, report Sat; otherwise, periodically reduce
// the clause database and make a decision. A MaxConflicts or Timeout
// configured via Options can end the search early with OutcomeUnknown.
// Regardless of outcome, the trail is unwound back to decision level 0
// before returning, so AddClause can be called again afterward.
func (s *Solver) Solve() Outcome {
	s.startTime = time.Now()
	outcome := s.search()
	s.resetToRoot()
	return outcome
}

func (s *Solver) search() Outcome {
	if s.triviallyUnsat {
		return Outcome{kind: OutcomeUnsat}
	}

	for {
		if conflict, found := s.prop.Propagate(); found {
			s.stats.Conflicts++
			s.stats.ConflictsSinceReduce++
			s.log.WithField("clause", s.trail.FormatClause(s.clauses, conflict)).
				Debug("conflict")

			result, ok := s.analyzer.Analyze(conflict)
			if !ok {
				return Outcome{kind: OutcomeUnsat}
			}
			s.applyAnalysis(result)

			s.log.WithField("trail", s.trail.FormatTrail()).Debug("backjumped")
			continue
		}

		if s.trail.Complete() {
			return Outcome{kind: OutcomeSat, model: s.extractModel()}
		}

		if s.stopRequested() {
			return Outcome{kind: OutcomeUnknown}
		}

		s.maybeReduceClauseDB()

		v, ok := s.trail.FindUnassigned()
		if !ok {
			return Outcome{kind: OutcomeSat, model: s.extractModel()}
		}
		s.stats.Decisions++
		s.prop.Enqueue(PositiveLiteral(v), decisionReason)
	}
}

// resetToRoot unwinds the trail to decision level 0, clearing is_reason on
// every clause vacated along the way, and rewinds the propagation cursor to
// the start of the trail so the next Solve re-examines the level-0
// assignments against any clause added in between.
func (s *Solver) resetToRoot() {
	s.trail.Backtrack(0, func(_ Literal, reason Reason) {
		if reason.Kind == ReasonPropagated {
			s.clauses.GetMut(reason.Clause).SetReason(false)
		}
	})
	s.prop.ResetQueue(0)
}

// applyAnalysis backtracks to the backjump level computed by conflict
// analysis, clearing is_reason on every clause vacated along the way, then
// installs the learned clause and assigns its asserting literal.
func (s *Solver) applyAnalysis(result AnalyzeResult) {
	s.trail.Backtrack(result.BackjumpLevel, func(_ Literal, reason Reason) {
		if reason.Kind == ReasonPropagated {
			s.clauses.GetMut(reason.Clause).SetReason(false)
		}
	})
	s.prop.ResetQueue(s.trail.NumAssigned())

	asserting := result.Learned[0]
	if len(result.Learned) == 1 {
		s.trail.AssignLit(asserting, axiomReason)
		return
	}

	h := s.clauses.Insert(result.Learned, result.LBD)
	s.clauses.GetMut(h).SetReason(true)
	s.prop.WatchClause(h)
	s.trail.AssignLit(asserting, propagatedReason(h))
}

// maybeReduceClauseDB triggers clause-database reduction once enough
// conflicts have accumulated since the last one, then rewrites every
// surviving handle held outside the arena (trail reasons, watch lists).
func (s *Solver) maybeReduceClauseDB() {
	if float64(s.stats.ConflictsSinceReduce) < s.reduceLimit {
		return
	}

	s.log.WithField("conflicts_since_reduce", s.stats.ConflictsSinceReduce).
		Debug("reducing clause database")

	s.clauses.CollectGarbage()
	s.trail.RewriteReasonHandles(s.clauses)
	s.watches.RewriteAll(s.clauses)

	s.stats.ConflictsSinceReduce = 0
	s.reduceLimit *= s.opts.ReduceGrowthFactor
}

func (s *Solver) stopRequested() bool {
	if s.opts.MaxConflicts >= 0 && s.stats.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

func (s *Solver) extractModel() Model {
	values := make([]bool, s.numVars)
	for v := 1; v <= s.numVars; v++ {
		values[v-1] = s.trail.ValueOfVar(Var(v)).Bool()
	}
	return Model{values: values}
}
