package sat

import "fmt"

// Var is a propositional variable identity. Variables are introduced
// implicitly by AddClause; ids start at 1, matching the 1-indexed numbering
// DIMACS inputs use.
type Var uint32

// Literal packs a variable and its polarity into a single integer so that
// negation is a bit flip and the two literals of a variable occupy adjacent
// dense indices. The low bit is the sign (0 = positive); the remaining bits
// hold the variable id.
//
//	PositiveLiteral(v) == 2v
//	NegativeLiteral(v) == 2v+1
type Literal uint32

// PositiveLiteral returns the literal asserting that v is true.
func PositiveLiteral(v Var) Literal {
	return Literal(v) << 1
}

// NegativeLiteral returns the literal asserting that v is false.
func NegativeLiteral(v Var) Literal {
	return PositiveLiteral(v) ^ 1
}

// LiteralFromInt converts a signed, non-zero DIMACS-style integer into a
// Literal. Positive integers produce positive literals; negative integers
// produce negative literals of the corresponding variable.
func LiteralFromInt(i int32) Literal {
	if i == 0 {
		panic("sat: 0 is not a valid literal")
	}
	if i > 0 {
		return PositiveLiteral(Var(i))
	}
	return NegativeLiteral(Var(-i))
}

// Var returns the variable the literal refers to.
func (l Literal) Var() Var {
	return Var(l >> 1)
}

// IsPositive reports whether l asserts its variable rather than its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Negate returns the opposite literal of the same variable.
func (l Literal) Negate() Literal {
	return l ^ 1
}

// Int returns the DIMACS-style signed representation of the literal.
func (l Literal) Int() int32 {
	v := int32(l.Var())
	if l.IsPositive() {
		return v
	}
	return -v
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var())
	}
	return fmt.Sprintf("-%d", l.Var())
}
