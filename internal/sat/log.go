package sat

import (
	"strconv"
	"strings"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiEnd   = "\x1b[0m"
)

// FormatLit renders a literal colored by its current truth value: green if
// satisfied, red if falsified, plain if unassigned.
func (t *Trail) FormatLit(l Literal) string {
	switch t.ValueOfLit(l) {
	case True:
		return ansiGreen + l.String() + ansiEnd
	case False:
		return ansiRed + l.String() + ansiEnd
	default:
		return l.String()
	}
}

// FormatClause renders every literal of a clause via FormatLit, comma
// separated.
func (t *Trail) FormatClause(db *ClauseDB, h Handle) string {
	c := db.Get(h)
	parts := make([]string, c.Len())
	for i := range parts {
		parts[i] = t.FormatLit(c.Lit(i))
	}
	return strings.Join(parts, ", ")
}

// FormatTrail renders the whole trail as "[lit0D, lit1P, lit2A, ...]", the
// trailing letter marking each literal's reason: D(ecision), P(ropagated),
// A(xiom).
func (t *Trail) FormatTrail() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, lit := range t.literals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(lit.String())
		switch t.ReasonOfVar(lit.Var()).Kind {
		case ReasonDecision:
			b.WriteByte('D')
		case ReasonPropagated:
			b.WriteByte('P')
		case ReasonAxiom:
			b.WriteByte('A')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// DebugDump renders the full live clause database, one clause per line, for
// attaching to a logrus field or printing during interactive debugging.
func (s *Solver) DebugDump() string {
	var b strings.Builder
	s.clauses.iterFunc(func(h Handle, c Clause) {
		if c.IsGarbage() {
			return
		}
		b.WriteString(strconv.Itoa(c.Len()))
		b.WriteString(": ")
		b.WriteString(s.trail.FormatClause(s.clauses, h))
		b.WriteByte('\n')
	})
	return b.String()
}
