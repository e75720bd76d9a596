package sat

// ReasonKind classifies why a variable was assigned.
type ReasonKind uint8

const (
	// ReasonDecision marks a branching choice made by the search.
	ReasonDecision ReasonKind = iota
	// ReasonAxiom marks a level-0 fact: a unit clause or a learned clause
	// that collapsed to a single literal.
	ReasonAxiom
	// ReasonPropagated marks a literal forced true by unit propagation;
	// Clause is the forcing clause's handle.
	ReasonPropagated
)

// Reason records why a trail entry's literal became true.
type Reason struct {
	Kind   ReasonKind
	Clause Handle
}

var decisionReason = Reason{Kind: ReasonDecision}
var axiomReason = Reason{Kind: ReasonAxiom}

func propagatedReason(h Handle) Reason {
	return Reason{Kind: ReasonPropagated, Clause: h}
}

type assignData struct {
	value  LBool
	level  int
	reason Reason
}

// Assignment is the per-variable assignment store backing the trail: for
// each declared variable, either unassigned or a (value, decision level,
// reason) triple.
type Assignment struct {
	vars VarVec[assignData]
}

// NewAssignment returns an empty assignment store.
func NewAssignment() Assignment {
	return Assignment{vars: NewVarVec[assignData]()}
}

// Expand grows the store to cover variable v.
func (a *Assignment) Expand(v Var) {
	a.vars.Expand(v)
}

// NumVars returns the number of declared variables.
func (a *Assignment) NumVars() int {
	return a.vars.Len()
}

// ValueOfVar returns the current value of v, or Unknown if unassigned.
func (a *Assignment) ValueOfVar(v Var) LBool {
	return a.vars.Get(v).value
}

// ValueOfLit returns the current truth value of l: True if l is satisfied,
// False if its negation is satisfied, Unknown otherwise.
func (a *Assignment) ValueOfLit(l Literal) LBool {
	val := a.ValueOfVar(l.Var())
	if val == Unknown {
		return Unknown
	}
	if l.IsPositive() {
		return val
	}
	return val.Negate()
}

// IsSatisfied reports whether l is currently true.
func (a *Assignment) IsSatisfied(l Literal) bool {
	return a.ValueOfLit(l) == True
}

// IsFalsified reports whether l is currently false.
func (a *Assignment) IsFalsified(l Literal) bool {
	return a.ValueOfLit(l) == False
}

// IsUnassigned reports whether l's variable carries no value yet.
func (a *Assignment) IsUnassigned(l Literal) bool {
	return a.ValueOfLit(l) == Unknown
}

// LevelOfVar returns the decision level at which v was assigned. The result
// is meaningless if v is unassigned.
func (a *Assignment) LevelOfVar(v Var) int {
	return a.vars.Get(v).level
}

// ReasonOfVar returns the reason v was assigned. The result is meaningless
// if v is unassigned.
func (a *Assignment) ReasonOfVar(v Var) Reason {
	return a.vars.Get(v).reason
}

// Assign records that l is now true at the given decision level for the
// given reason. l must currently be unassigned.
func (a *Assignment) Assign(l Literal, level int, reason Reason) {
	a.vars.Set(l.Var(), assignData{
		value:  Lift(l.IsPositive()),
		level:  level,
		reason: reason,
	})
}

// Unassign clears v back to Unknown.
func (a *Assignment) Unassign(v Var) {
	a.vars.Set(v, assignData{})
}

// FindUnassigned returns the first unassigned variable in declaration
// order, or ok=false if every variable is assigned. This is the solver's
// entire decision heuristic; it deliberately does not rank variables by
// activity.
func (a *Assignment) FindUnassigned() (v Var, ok bool) {
	return a.vars.Find(func(data assignData) bool {
		return data.value == Unknown
	})
}

// RewriteReasonHandles updates every ReasonPropagated handle still live on
// the assignment store after db.CollectGarbage, per the invariant that
// reason clauses are excluded from marking and so must always still exist.
func (a *Assignment) RewriteReasonHandles(db *ClauseDB) {
	a.vars.Each(func(v Var, data assignData) {
		if data.value == Unknown || data.reason.Kind != ReasonPropagated {
			return
		}
		h := data.reason.Clause
		if !db.Rewrite(&h) {
			panic("sat: garbage collection removed a clause still referenced as a reason")
		}
		data.reason.Clause = h
		a.vars.Set(v, data)
	})
}

// Complete reports whether every declared variable has a value.
func (a *Assignment) Complete(numAssigned int) bool {
	return numAssigned == a.NumVars()
}
