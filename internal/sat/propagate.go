package sat

// Propagator drives unit propagation over a trail, clause arena and watch
// index. It is grounded on the two-watched-literal loop in
// solver/propagate.rs: a literal becoming false is the only thing that can
// ever wake a clause up, so the main loop just drains newly falsified
// literals off the trail and re-checks their watch lists.
type Propagator struct {
	trail   *Trail
	clauses *ClauseDB
	watches *Watches

	// qhead is the trail position of the next literal whose watch list has
	// not yet been processed.
	qhead int

	// Propagations counts literals forced true by unit propagation, as
	// opposed to decisions.
	Propagations int64
}

// NewPropagator ties a trail, clause arena and watch index together.
func NewPropagator(trail *Trail, clauses *ClauseDB, watches *Watches) *Propagator {
	return &Propagator{trail: trail, clauses: clauses, watches: watches}
}

// ResetQueue rewinds the propagation cursor to pos, used after a backtrack
// truncates the trail to pos.
func (p *Propagator) ResetQueue(pos int) {
	if pos < p.qhead {
		p.qhead = pos
	}
}

// WatchClause registers a newly inserted (or freshly relocated) clause's two
// watched literals — positions 0 and 1 — in the watch index. A clause is
// filed under the *negation* of each watched literal: that negation is
// exactly the literal that, once it becomes true, falsifies the watched
// literal and makes the clause worth re-examining.
func (p *Propagator) WatchClause(h Handle) {
	c := p.clauses.Get(h)
	p.watches.Add(c.Lit(0).Negate(), h, c.Lit(1))
	if c.Len() > 1 {
		p.watches.Add(c.Lit(1).Negate(), h, c.Lit(0))
	}
}

// Enqueue assigns lit at the trail's current decision level for reason, then
// returns. It does not itself propagate; call Propagate to drain the queue.
func (p *Propagator) Enqueue(lit Literal, reason Reason) {
	p.trail.AssignLit(lit, reason)
}

// Propagate drains every not-yet-processed trail literal, checking its
// watch list for clauses that might now be unit or falsified. It returns
// the handle of a falsified clause on conflict, or ok=false if propagation
// ran to quiescence.
func (p *Propagator) Propagate() (conflict Handle, ok bool) {
	for p.qhead < p.trail.NumAssigned() {
		lit, _ := p.trail.At(p.qhead)
		p.qhead++

		if h, found := p.propagateLiteral(lit); found {
			return h, true
		}
	}
	return Handle{}, false
}

// propagateLiteral re-examines every clause watching truelit — the literal
// that was just assigned true — since truelit.Negate() is exactly the
// literal that just became falsified by that assignment. Surviving watchers
// are compacted in place; relocated watchers are appended to their new
// literal's list via the split-borrow Remaining view.
func (p *Propagator) propagateLiteral(truelit Literal) (Handle, bool) {
	falsified := truelit.Negate()
	list, others := p.watches.Focus(truelit)
	src := *list
	dst := src[:0]

	for i := 0; i < len(src); i++ {
		w := src[i]

		if p.trail.IsSatisfied(w.Blocker) {
			dst = append(dst, w)
			continue
		}

		c := p.clauses.GetMut(w.Clause)
		if c.Lit(0) == falsified {
			c.Swap(0, 1) // keep the falsified literal at position 1.
		}

		newBlocker := c.Lit(0)
		if newBlocker != w.Blocker && p.trail.IsSatisfied(newBlocker) {
			dst = append(dst, Watcher{Clause: w.Clause, Blocker: newBlocker})
			continue
		}

		relocated := false
		for k := 2; k < c.Len(); k++ {
			if !p.trail.IsFalsified(c.Lit(k)) {
				c.Swap(1, k)
				otherWatch := others.At(c.Lit(1).Negate())
				*otherWatch = append(*otherWatch, Watcher{Clause: w.Clause, Blocker: newBlocker})
				relocated = true
				break
			}
		}
		if relocated {
			continue
		}

		// No replacement literal found: the clause is unit on newBlocker, or
		// falsified if newBlocker is false too.
		dst = append(dst, w)
		if p.trail.IsFalsified(newBlocker) {
			// Conflict. Copy back the remaining, unexamined watchers before
			// returning so the list stays consistent for whoever inspects it
			// next (e.g. conflict analysis never touches watch lists, but a
			// future propagation pass must not lose them).
			dst = append(dst, src[i+1:]...)
			*list = dst
			return w.Clause, true
		}

		c.SetReason(true)
		p.Propagations++
		p.Enqueue(newBlocker, propagatedReason(w.Clause))
	}

	*list = dst
	return Handle{}, false
}
