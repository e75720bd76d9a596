package sat

import "sort"

// markCandidate pairs a clause handle with the metadata needed to rank it
// for collection, so sorting doesn't have to re-read the arena per compare.
type markCandidate struct {
	handle Handle
	glue   int
	length int
}

// markGarbage flags the bottom 75% of eligible learned clauses (sorted by
// LBD desc, then length desc) as garbage. A clause is eligible only if it
// isn't already garbage, isn't a current reason clause, and has an LBD
// greater than 2 — clauses that glue few decision levels together are kept
// regardless of age.
func (db *ClauseDB) markGarbage() {
	var candidates []markCandidate
	db.iterMutFunc(func(h Handle, c ClauseMut) {
		if c.IsGarbage() || c.IsReason() {
			return
		}
		if c.Glue() <= 2 {
			return
		}
		candidates = append(candidates, markCandidate{handle: h, glue: c.Glue(), length: c.Len()})
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].glue != candidates[j].glue {
			return candidates[i].glue > candidates[j].glue
		}
		return candidates[i].length > candidates[j].length
	})

	target := (len(candidates) * 75) / 100
	for _, cand := range candidates[:target] {
		db.GetMut(cand.handle).SetGarbage(true)
	}
}

// CollectGarbage marks and compacts the arena: candidates per markGarbage
// are dropped, surviving clauses are copied into a fresh buffer, and the
// vacated slot in the old buffer records either the clause's new offset or
// the removedSentinel. Handles must be rewritten afterward via Rewrite;
// until then they refer to the (retained, stale) old buffer.
func (db *ClauseDB) CollectGarbage() {
	db.markGarbage()

	old := db.old[:0]
	pos := 0
	for pos < len(db.data) {
		start, end := clauseRange(db.data, pos)
		length := end - start

		if db.data[start+offFlags]&flagGarbage != 0 {
			db.data[start+offLen] = removedSentinel
		} else {
			newOffset := uint32(len(old))
			old = append(old, db.data[start:end]...)
			db.data[start+offLen] = newOffset
		}

		pos += length
	}

	db.old = db.data
	db.data = old
	db.generation++
}

// Rewrite consults the (now-old) arena at h's offset to learn h's new
// position after CollectGarbage, or reports that the clause was removed.
// It returns ok=false exactly when the clause was collected, in which case
// the caller must drop its reference to h (e.g. remove the watch entry).
func (db *ClauseDB) Rewrite(h *Handle) (ok bool) {
	if h.generation+1 != db.generation {
		panic("sat: Rewrite called with a handle that is not exactly one GC behind")
	}

	newPos := db.old[h.offset+offLen]
	if newPos == removedSentinel {
		return false
	}

	h.offset = int(newPos)
	h.generation = db.generation
	return true
}
