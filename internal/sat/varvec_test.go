package sat

import "testing"

func TestVarVecExpandAndGetSet(t *testing.T) {
	vv := NewVarVec[int]()
	vv.Expand(3)

	if got := vv.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for v := Var(1); v <= 3; v++ {
		if got := vv.Get(v); got != 0 {
			t.Errorf("Get(%d) = %d, want zero value 0", v, got)
		}
	}

	vv.Set(2, 99)
	if got := vv.Get(2); got != 99 {
		t.Errorf("Get(2) = %d, want 99", got)
	}
	if got := vv.Get(1); got != 0 {
		t.Errorf("Set(2, ...) disturbed Get(1): got %d, want 0", got)
	}
}

func TestVarVecExpandIsIdempotent(t *testing.T) {
	vv := NewVarVec[int]()
	vv.Expand(5)
	vv.Set(5, 7)
	vv.Expand(2) // smaller: must not shrink or clear existing data
	if got := vv.Get(5); got != 7 {
		t.Errorf("Expand(2) after Expand(5) clobbered data: Get(5) = %d, want 7", got)
	}
}

func TestVarVecFind(t *testing.T) {
	vv := NewVarVec[int]()
	vv.Expand(4)
	vv.Set(1, 1)
	vv.Set(2, 1)
	vv.Set(3, 0)
	vv.Set(4, 1)

	v, ok := vv.Find(func(x int) bool { return x == 0 })
	if !ok || v != 3 {
		t.Errorf("Find(==0) = (%v, %v), want (3, true)", v, ok)
	}

	_, ok = vv.Find(func(x int) bool { return x == 5 })
	if ok {
		t.Errorf("Find(==5) unexpectedly found a match")
	}
}

func TestVarVecEachOrder(t *testing.T) {
	vv := NewVarVec[int]()
	vv.Expand(3)
	vv.Set(1, 10)
	vv.Set(2, 20)
	vv.Set(3, 30)

	var seen []Var
	vv.Each(func(v Var, x int) {
		seen = append(seen, v)
		if int(v)*10 != x {
			t.Errorf("Each callback mismatch: v=%v x=%v", v, x)
		}
	})
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Errorf("Each visited %v, want [1 2 3] in order", seen)
	}
}
