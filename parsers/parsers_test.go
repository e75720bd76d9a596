package parsers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neuring/dissat/internal/sat"
)

// instance is a minimal SATSolver recording everything LoadDIMACS reports,
// so the parser can be tested without driving a real search.
type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() sat.Var {
	i.Variables++
	return sat.Var(i.Variables)
}

func (i *instance) AddClause(clause []sat.Literal) error {
	cp := make([]sat.Literal, len(clause))
	copy(cp, clause)
	i.Clauses = append(i.Clauses, cp)
	return nil
}

func lits(ints ...int32) []sat.Literal {
	out := make([]sat.Literal, len(ints))
	for i, v := range ints {
		out[i] = sat.LiteralFromInt(v)
	}
	return out
}

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		lits(1, 2),
		lits(-2, 3),
		lits(-1, -3),
	},
}

func TestLoadDIMACS(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", false, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACSGzip(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf.gz", true, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACSMissingFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/does_not_exist.cnf", false, &got); err == nil {
		t.Errorf("LoadDIMACS(): want error, got none")
	}
}

func TestLoadDIMACSNotGzip(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", true, &got); err == nil {
		t.Errorf("LoadDIMACS(): want error reading a plain file as gzip, got none")
	}
}

func TestReadModels(t *testing.T) {
	models, err := ReadModels("testdata/models.txt")
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}

	want := [][]bool{
		{true, false, true},
		{false, true, false},
	}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("ReadModels(): mismatch (-want +got):\n%s", diff)
	}
}
