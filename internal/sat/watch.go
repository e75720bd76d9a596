package sat

// Watcher records that some clause is watching a literal: when that literal
// is falsified, the propagator must inspect the clause. Blocker is a
// literal from the clause — usually its other watched literal — cached so
// the propagator can skip the clause entirely when Blocker is already
// satisfied, without touching the arena.
type Watcher struct {
	Clause  Handle
	Blocker Literal
}

// Watches is the two-watched-literal index: for every literal l, Watches[l]
// lists the clauses watching l.Negate(). A clause with literals lit0, lit1 (its two
// watched positions) appears in Watches[lit0.Negate()] and
// Watches[lit1.Negate()] — it is reexamined exactly when one of its watched
// literals is falsified.
type Watches struct {
	byLit LitVec[[]Watcher]
}

// NewWatches returns an empty watch index.
func NewWatches() Watches {
	return Watches{byLit: NewLitVec[[]Watcher]()}
}

// Expand grows the index to cover variable v (both polarities).
func (w *Watches) Expand(v Var) {
	w.byLit.Expand(PositiveLiteral(v))
	w.byLit.Expand(NegativeLiteral(v))
}

// Add appends clause h to the list kept under watched, with blocker as its
// cached satisfiability shortcut. Callers pass the negation of the literal
// the clause actually watches (see WatchClause).
func (w *Watches) Add(watched Literal, h Handle, blocker Literal) {
	list := w.byLit.Get(watched)
	list = append(list, Watcher{Clause: h, Blocker: blocker})
	w.byLit.Set(watched, list)
}

// List returns the watch list for literal l, read-only.
func (w *Watches) List(l Literal) []Watcher {
	return w.byLit.Get(l)
}

// Replace installs a new watch list for literal l, overwriting whatever was
// there. The propagator does not use it: it rebuilds a list in place through
// the pointer Focus returns.
func (w *Watches) Replace(l Literal, list []Watcher) {
	w.byLit.Set(l, list)
}

// RewriteAll updates every watch entry's clause handle after a garbage
// collection cycle, dropping any entry whose clause was collected.
func (w *Watches) RewriteAll(db *ClauseDB) {
	w.byLit.Each(func(l Literal, list []Watcher) {
		kept := list[:0]
		for _, wt := range list {
			h := wt.Clause
			if db.Rewrite(&h) {
				wt.Clause = h
				kept = append(kept, wt)
			}
		}
		w.byLit.Set(l, kept)
	})
}

// Focus hands out the watch list for l plus a split-borrow view over every
// other literal's list, so the propagator can move a watcher from l's list
// onto some other literal's list while still iterating l's list.
func (w *Watches) Focus(l Literal) (*[]Watcher, *Remaining[[]Watcher]) {
	return w.byLit.Focus(l)
}
