package sat

// AnalyzeResult is a learned clause together with the level to backjump to
// and its LBD (glue). Learned[0] is always the literal the solver should
// assign once it backjumps; when len(Learned) > 1, Learned[1] is some
// literal at BackjumpLevel, so both arena watch slots land on live
// decision levels immediately.
type AnalyzeResult struct {
	Learned       []Literal
	BackjumpLevel int
	LBD           int
}

// Analyzer performs first-UIP conflict analysis: it walks the trail
// backward from a conflicting clause, resolving away every literal at the
// current decision level except one, and tracks the distinct decision
// levels touched along the way to compute the learned clause's LBD.
type Analyzer struct {
	seen    seenSet
	clauses *ClauseDB
	trail   *Trail
}

// NewAnalyzer ties an analyzer to the arena and trail it will walk.
func NewAnalyzer(clauses *ClauseDB, trail *Trail) *Analyzer {
	return &Analyzer{clauses: clauses, trail: trail}
}

// Expand grows the analyzer's scratch state to cover variable v.
func (a *Analyzer) Expand(v Var) {
	a.seen.expand(v)
}

// Analyze walks back from the conflicting clause conflict to the first
// unique implication point of the current decision level. It returns
// ok=false when the current decision level is 0 — there is nothing left to
// backjump to, and the formula is unsatisfiable.
func (a *Analyzer) Analyze(conflict Handle) (AnalyzeResult, bool) {
	currentLevel := a.trail.CurrentLevel()
	if currentLevel == 0 {
		return AnalyzeResult{}, false
	}

	a.seen.clear()
	open := 0
	var lowerLevelLits []Literal
	var uip Literal
	hasUIP := false

	clauseLits := a.clauses.Get(conflict).Literals()
	cursor := a.trail.NumAssigned()

	for {
		for _, m := range clauseLits {
			v := m.Var()
			if hasUIP && v == uip.Var() {
				continue
			}
			if a.seen.has(v) {
				continue
			}
			a.seen.add(v)

			if a.trail.LevelOfVar(v) < currentLevel {
				lowerLevelLits = append(lowerLevelLits, m)
			} else {
				open++
			}
		}

		// Walk the trail backward to the next seen literal at currentLevel.
		for {
			cursor--
			lit, _ := a.trail.At(cursor)
			v := lit.Var()
			if a.seen.has(v) && a.trail.LevelOfVar(v) == currentLevel {
				uip = lit
				hasUIP = true
				break
			}
		}

		if open == 1 {
			break
		}
		open--

		reason := a.trail.ReasonOfVar(uip.Var())
		if reason.Kind != ReasonPropagated {
			panic("sat: conflict analysis reached a non-propagated reason before the unique implication point")
		}
		clauseLits = a.clauses.Get(reason.Clause).Literals()
	}

	uipNeg := uip.Negate()

	backjumpLevel := 0
	for _, m := range lowerLevelLits {
		if lvl := a.trail.LevelOfVar(m.Var()); lvl > backjumpLevel {
			backjumpLevel = lvl
		}
	}

	levels := map[int]struct{}{currentLevel: {}}
	for _, m := range lowerLevelLits {
		levels[a.trail.LevelOfVar(m.Var())] = struct{}{}
	}

	learned := make([]Literal, 0, len(lowerLevelLits)+1)
	learned = append(learned, uipNeg)
	if len(lowerLevelLits) > 0 {
		// Put a backjump-level literal second so the two arena watch slots
		// (positions 0 and 1) both sit on literals that stay relevant after
		// backtracking.
		pivot := 0
		for i, m := range lowerLevelLits {
			if a.trail.LevelOfVar(m.Var()) == backjumpLevel {
				pivot = i
				break
			}
		}
		lowerLevelLits[0], lowerLevelLits[pivot] = lowerLevelLits[pivot], lowerLevelLits[0]
		learned = append(learned, lowerLevelLits...)
	}

	return AnalyzeResult{
		Learned:       learned,
		BackjumpLevel: backjumpLevel,
		LBD:           len(levels),
	}, true
}
