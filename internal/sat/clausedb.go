package sat

// ClauseDB is the clause arena: every clause of length >= 2 lives
// contiguously in a single growable word buffer, each occupying
// 3+length words: [flags][length][lbdGlue][lit0 ... lit_{length-1}].
//
// Clauses are referenced by Handle, a stable offset into the arena that
// survives literal mutation (watch-list swaps) but is invalidated by garbage collection unless the holder calls
// Rewrite. The sentinel bit in the flags word lets a corrupted or stale
// handle be detected with a single branch; the generation counter catches
// the (rarer) case where an offset happens to still land on a clause
// beginning after a GC cycle.
type ClauseDB struct {
	data       []uint32
	old        []uint32
	generation uint32
}

const clauseBeginSentinel uint32 = 1 << 31

// clauseFlags bits, disjoint from the sentinel bit.
const (
	flagGarbage uint32 = 1 << 0
	flagReason  uint32 = 1 << 1
)

const (
	offFlags = 0
	offLen   = 1
	offGlue  = 2
	offLits  = 3
)

// removedSentinel marks a vacated slot's length word during compaction.
const removedSentinel uint32 = 1<<32 - 1

// Handle is an opaque, stable reference to a clause in the arena.
type Handle struct {
	offset     int
	generation uint32
}

// Clause is a read-only view over a live arena clause.
type Clause struct {
	words []uint32
}

// ClauseMut is a mutable view over a live arena clause.
type ClauseMut struct {
	words []uint32
}

// NewClauseDB returns an empty clause arena.
func NewClauseDB() *ClauseDB {
	return &ClauseDB{}
}

func wordsNeeded(length int) int {
	return offLits + length
}

// Insert copies lits into the arena and returns a handle to the new clause.
// glue is the clause's LBD at the time of learning; pass 0 for input
// clauses (§3: "empty for input clauses").
func (db *ClauseDB) Insert(lits []Literal, glue int) Handle {
	start := len(db.data)

	db.data = append(db.data, clauseBeginSentinel)
	db.data = append(db.data, uint32(len(lits)))
	db.data = append(db.data, uint32(glue))
	for _, l := range lits {
		db.data = append(db.data, uint32(l))
	}

	return Handle{offset: start, generation: db.generation}
}

func (db *ClauseDB) assertValid(h Handle) {
	if h.generation != db.generation {
		panic("sat: use of clause handle from a stale generation")
	}
	if db.data[h.offset+offFlags]&clauseBeginSentinel == 0 {
		panic("sat: clause handle does not point to a clause beginning")
	}
}

func clauseRange(data []uint32, offset int) (int, int) {
	length := int(data[offset+offLen])
	return offset, offset + wordsNeeded(length)
}

// Get returns a read-only view of the clause at h.
func (db *ClauseDB) Get(h Handle) Clause {
	db.assertValid(h)
	start, end := clauseRange(db.data, h.offset)
	return Clause{words: db.data[start:end]}
}

// GetMut returns a mutable view of the clause at h.
func (db *ClauseDB) GetMut(h Handle) ClauseMut {
	db.assertValid(h)
	start, end := clauseRange(db.data, h.offset)
	return ClauseMut{words: db.data[start:end]}
}

// Len returns the number of literals in the clause.
func (c Clause) Len() int { return int(c.words[offLen]) }

// Lit returns the i-th literal.
func (c Clause) Lit(i int) Literal { return Literal(c.words[offLits+i]) }

// Glue returns the clause's LBD, or 0 if it was never set (input clause).
func (c Clause) Glue() int { return int(c.words[offGlue]) }

// IsGarbage reports whether the clause is marked for collection.
func (c Clause) IsGarbage() bool { return c.words[offFlags]&flagGarbage != 0 }

// IsReason reports whether some trail entry currently points to this clause
// as its propagation reason.
func (c Clause) IsReason() bool { return c.words[offFlags]&flagReason != 0 }

// Literals copies out the clause's literals.
func (c Clause) Literals() []Literal {
	out := make([]Literal, c.Len())
	for i := range out {
		out[i] = c.Lit(i)
	}
	return out
}

func (c ClauseMut) Len() int         { return int(c.words[offLen]) }
func (c ClauseMut) Lit(i int) Literal { return Literal(c.words[offLits+i]) }
func (c ClauseMut) Glue() int        { return int(c.words[offGlue]) }
func (c ClauseMut) IsGarbage() bool  { return c.words[offFlags]&flagGarbage != 0 }
func (c ClauseMut) IsReason() bool   { return c.words[offFlags]&flagReason != 0 }

// SetLit overwrites the i-th literal.
func (c ClauseMut) SetLit(i int, l Literal) { c.words[offLits+i] = uint32(l) }

// Swap exchanges the literals at positions i and j. Used heavily by the
// propagator and conflict analyzer to keep the watched literals at
// positions 0 and 1.
func (c ClauseMut) Swap(i, j int) {
	c.words[offLits+i], c.words[offLits+j] = c.words[offLits+j], c.words[offLits+i]
}

// SetGarbage sets or clears the is_garbage flag.
func (c ClauseMut) SetGarbage(v bool) { c.setFlag(flagGarbage, v) }

// SetReason sets or clears the is_reason flag.
func (c ClauseMut) SetReason(v bool) { c.setFlag(flagReason, v) }

func (c ClauseMut) setFlag(bit uint32, v bool) {
	if v {
		c.words[offFlags] |= bit
	} else {
		c.words[offFlags] &^= bit
	}
}

// iterFunc walks every live clause (garbage or not) front to back, calling
// fn with each one's handle.
func (db *ClauseDB) iterFunc(fn func(Handle, Clause)) {
	pos := 0
	for pos < len(db.data) {
		start, end := clauseRange(db.data, pos)
		fn(Handle{offset: start, generation: db.generation}, Clause{words: db.data[start:end]})
		pos = end
	}
}

// iterMutFunc is iterFunc's mutable counterpart.
func (db *ClauseDB) iterMutFunc(fn func(Handle, ClauseMut)) {
	pos := 0
	for pos < len(db.data) {
		start, end := clauseRange(db.data, pos)
		fn(Handle{offset: start, generation: db.generation}, ClauseMut{words: db.data[start:end]})
		pos = end
	}
}
