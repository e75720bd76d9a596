package sat

import "testing"

func TestLitVecGetSet(t *testing.T) {
	lv := NewLitVec[string]()
	l := PositiveLiteral(3)
	lv.Expand(l)
	lv.Set(l, "hello")
	if got := lv.Get(l); got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}

func TestLitVecFocusExcludesFocusedSlot(t *testing.T) {
	lv := NewLitVec[int]()
	a := PositiveLiteral(1)
	b := NegativeLiteral(1)
	lv.Expand(a)
	lv.Expand(b)
	lv.Set(a, 1)
	lv.Set(b, 2)

	focus, rest := lv.Focus(a)
	if *focus != 1 {
		t.Fatalf("Focus(a) focus slot = %d, want 1", *focus)
	}
	*rest.At(b) = 42
	if lv.Get(b) != 42 {
		t.Errorf("mutation through Remaining.At did not propagate: Get(b) = %d, want 42", lv.Get(b))
	}
}

func TestLitVecRemainingAtPanicsOnFocusedLiteral(t *testing.T) {
	lv := NewLitVec[int]()
	a := PositiveLiteral(1)
	lv.Expand(a)

	_, rest := lv.Focus(a)

	defer func() {
		if recover() == nil {
			t.Errorf("Remaining.At(focused literal) did not panic")
		}
	}()
	rest.At(a)
}
