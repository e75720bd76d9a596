package sat

import "testing"

// newTestAnalyzer builds an empty ClauseDB and a Trail covering variables
// 1..numVars, returning both plus an Analyzer wired to them.
func newTestAnalyzer(numVars int) (*ClauseDB, *Trail, *Analyzer) {
	db := NewClauseDB()
	trail := NewTrail()
	for v := Var(1); int(v) <= numVars; v++ {
		trail.Expand(v)
	}
	a := NewAnalyzer(db, trail)
	for v := Var(1); int(v) <= numVars; v++ {
		a.Expand(v)
	}
	return db, trail, a
}

func TestAnalyzeConflictAlreadyAtUIP(t *testing.T) {
	// Three decisions, one per level, and a conflict clause mentioning all
	// three: the current-level literal is already the first UIP, so the
	// backward walk resolves nothing — it only needs to find it.
	db, trail, a := newTestAnalyzer(3)

	trail.AssignLit(PositiveLiteral(1), decisionReason) // level 1
	trail.AssignLit(PositiveLiteral(2), decisionReason) // level 2
	trail.AssignLit(PositiveLiteral(3), decisionReason) // level 3

	conflict := db.Insert(lits(-1, -2, -3), 0)

	result, ok := a.Analyze(conflict)
	if !ok {
		t.Fatalf("Analyze() reported unsat at decision level 3")
	}

	wantLearned := lits(-3, -2, -1)
	if !literalsEqual(result.Learned, wantLearned) {
		t.Errorf("Learned = %v, want %v", result.Learned, wantLearned)
	}
	if result.BackjumpLevel != 2 {
		t.Errorf("BackjumpLevel = %d, want 2", result.BackjumpLevel)
	}
	if result.LBD != 3 {
		t.Errorf("LBD = %d, want 3 (one literal per level)", result.LBD)
	}
}

func TestAnalyzeWalksThroughPropagatedReasons(t *testing.T) {
	// x1 (dec, L1) -> x2 (dec, L2) -> x3 := (¬x1 v ¬x2 v x3) -> x4 := (¬x3 v x4)
	// -> x5 (dec, L3) -> x6 := (¬x4 v ¬x5 v x6) -> x7 := (¬x5 v x7)
	// conflict: (¬x6 v ¬x7)
	//
	// First UIP should be x5 itself (the decision that opened level 3),
	// since both x6 and x7 were propagated from it within the same level.
	db, trail, a := newTestAnalyzer(7)

	trail.AssignLit(PositiveLiteral(1), decisionReason) // L1

	trail.AssignLit(PositiveLiteral(2), decisionReason) // L2
	r123 := propagatedReason(db.Insert(lits(-1, -2, 3), 0))
	trail.AssignLit(PositiveLiteral(3), r123)
	r34 := propagatedReason(db.Insert(lits(-3, 4), 0))
	trail.AssignLit(PositiveLiteral(4), r34)

	trail.AssignLit(PositiveLiteral(5), decisionReason) // L3
	r456 := propagatedReason(db.Insert(lits(-4, -5, 6), 0))
	trail.AssignLit(PositiveLiteral(6), r456)
	r57 := propagatedReason(db.Insert(lits(-5, 7), 0))
	trail.AssignLit(PositiveLiteral(7), r57)

	conflict := db.Insert(lits(-6, -7), 0)

	result, ok := a.Analyze(conflict)
	if !ok {
		t.Fatalf("Analyze() reported unsat at decision level 3")
	}

	wantLearned := lits(-5, -4)
	if !literalsEqual(result.Learned, wantLearned) {
		t.Errorf("Learned = %v, want %v", result.Learned, wantLearned)
	}
	if result.BackjumpLevel != 2 {
		t.Errorf("BackjumpLevel = %d, want 2", result.BackjumpLevel)
	}
	if result.LBD != 2 {
		t.Errorf("LBD = %d, want 2 (levels 2 and 3)", result.LBD)
	}
}

func TestAnalyzeAtRootLevelIsUnsat(t *testing.T) {
	db, trail, a := newTestAnalyzer(2)
	trail.AssignLit(PositiveLiteral(1), axiomReason)
	trail.AssignLit(NegativeLiteral(2), axiomReason)

	conflict := db.Insert(lits(1, 2), 0)

	if _, ok := a.Analyze(conflict); ok {
		t.Errorf("Analyze() at decision level 0 should report ok=false")
	}
}

func literalsEqual(a, b []Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
