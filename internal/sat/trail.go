package sat

// Trail is the chronological assignment log: an ordered sequence of
// literals in the order they became true, plus the positions at which each
// decision began. Decision level 0 holds axioms and unit-clause
// assignments; level ℓ (ℓ>=1) covers trail positions
// [decisionPositions[ℓ-1], decisionPositions[ℓ]).
type Trail struct {
	literals          []Literal
	decisionPositions []int
	assignment        Assignment
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Expand grows the underlying assignment store to cover variable v.
func (t *Trail) Expand(v Var) {
	t.assignment.Expand(v)
}

// CurrentLevel returns the number of decisions made so far.
func (t *Trail) CurrentLevel() int {
	return len(t.decisionPositions)
}

// NumAssigned returns how many literals are on the trail.
func (t *Trail) NumAssigned() int {
	return len(t.literals)
}

// NumVars returns the number of declared variables.
func (t *Trail) NumVars() int {
	return t.assignment.NumVars()
}

// Complete reports whether every declared variable has been assigned.
func (t *Trail) Complete() bool {
	return t.assignment.Complete(len(t.literals))
}

// At returns the trail literal at position pos, or ok=false if pos is out
// of range.
func (t *Trail) At(pos int) (Literal, bool) {
	if pos >= len(t.literals) {
		return 0, false
	}
	return t.literals[pos], true
}

// Last returns the most recently assigned literal.
func (t *Trail) Last() Literal {
	return t.literals[len(t.literals)-1]
}

func (t *Trail) IsSatisfied(l Literal) bool   { return t.assignment.IsSatisfied(l) }
func (t *Trail) IsFalsified(l Literal) bool   { return t.assignment.IsFalsified(l) }
func (t *Trail) IsUnassigned(l Literal) bool  { return t.assignment.IsUnassigned(l) }
func (t *Trail) ValueOfLit(l Literal) LBool   { return t.assignment.ValueOfLit(l) }
func (t *Trail) ValueOfVar(v Var) LBool       { return t.assignment.ValueOfVar(v) }
func (t *Trail) LevelOfVar(v Var) int         { return t.assignment.LevelOfVar(v) }
func (t *Trail) ReasonOfVar(v Var) Reason     { return t.assignment.ReasonOfVar(v) }
func (t *Trail) FindUnassigned() (Var, bool)  { return t.assignment.FindUnassigned() }

// RewriteReasonHandles updates every live reason handle after a garbage
// collection cycle.
func (t *Trail) RewriteReasonHandles(db *ClauseDB) {
	t.assignment.RewriteReasonHandles(db)
}

// AssignLit appends lit to the trail with the given reason. The decision
// level recorded for lit is the number of decisions made up to and
// including this call — the decision count, not the raw trail position.
func (t *Trail) AssignLit(lit Literal, reason Reason) {
	t.literals = append(t.literals, lit)
	if reason.Kind == ReasonDecision {
		t.decisionPositions = append(t.decisionPositions, len(t.literals)-1)
	}
	level := len(t.decisionPositions)
	t.assignment.Assign(lit, level, reason)
}

// Backtrack undoes every assignment made at or after decision level
// targetLevel+1, invoking onPop for each one (in reverse chronological
// order) before it is unassigned — callers use this to clear is_reason on
// vacated reason clauses. It returns the trail length after truncation,
// which is also where propagation should resume.
func (t *Trail) Backtrack(targetLevel int, onPop func(lit Literal, reason Reason)) int {
	if targetLevel >= len(t.decisionPositions) {
		return len(t.literals)
	}
	cut := t.decisionPositions[targetLevel]

	for i := len(t.literals) - 1; i >= cut; i-- {
		lit := t.literals[i]
		v := lit.Var()
		reason := t.assignment.ReasonOfVar(v)
		onPop(lit, reason)
		t.assignment.Unassign(v)
	}

	t.literals = t.literals[:cut]
	t.decisionPositions = t.decisionPositions[:targetLevel]
	return cut
}
