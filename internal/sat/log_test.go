package sat

import "testing"

func TestFormatLit(t *testing.T) {
	trail := NewTrail()
	trail.Expand(1)
	trail.AssignLit(LiteralFromInt(1), decisionReason)

	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"satisfied", LiteralFromInt(1), ansiGreen + "1" + ansiEnd},
		{"falsified", LiteralFromInt(-1), ansiRed + "-1" + ansiEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trail.FormatLit(tt.lit); got != tt.want {
				t.Errorf("FormatLit(%v) = %q, want %q", tt.lit, got, tt.want)
			}
		})
	}

	trail.Expand(2)
	if got, want := trail.FormatLit(LiteralFromInt(2)), "2"; got != want {
		t.Errorf("FormatLit(unassigned) = %q, want %q", got, want)
	}
}

func TestFormatClause(t *testing.T) {
	trail := NewTrail()
	trail.Expand(1)
	trail.Expand(2)
	trail.Expand(3)
	trail.AssignLit(LiteralFromInt(1), decisionReason)
	trail.AssignLit(LiteralFromInt(2), propagatedReason(Handle{}))

	db := NewClauseDB()
	h := db.Insert(lits(1, -2, 3), 0)

	want := ansiGreen + "1" + ansiEnd + ", " + ansiRed + "-2" + ansiEnd + ", " + "3"
	if got := trail.FormatClause(db, h); got != want {
		t.Errorf("FormatClause() = %q, want %q", got, want)
	}
}

func TestFormatTrail(t *testing.T) {
	trail := NewTrail()
	trail.Expand(1)
	trail.Expand(2)
	trail.Expand(3)
	trail.AssignLit(LiteralFromInt(1), axiomReason)
	trail.AssignLit(LiteralFromInt(2), decisionReason)
	trail.AssignLit(LiteralFromInt(-3), propagatedReason(Handle{}))

	want := "[1A, 2D, -3P]"
	if got := trail.FormatTrail(); got != want {
		t.Errorf("FormatTrail() = %q, want %q", got, want)
	}
}

func TestSolverDebugDump(t *testing.T) {
	s := New()
	v1 := s.AddVariable()
	v2 := s.AddVariable()

	if err := s.AddClause([]Literal{PositiveLiteral(v1), NegativeLiteral(v2)}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}

	want := "2: 1, -2\n"
	if got := s.DebugDump(); got != want {
		t.Errorf("DebugDump() = %q, want %q", got, want)
	}
}
