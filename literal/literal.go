// Package literal extracts required leading literals from compiled programs
// for prefilter optimization.
//
// A literal extracted here must appear in the input for the pattern to match
// anywhere. The extraction is deliberately conservative: when a construct
// makes the leading text optional or unbounded, the extractor gives up and
// reports no requirement, which simply disables prefiltering.
package literal

import (
	"unicode/utf8"

	"github.com/coregx/retrack/program"
)

// Literal is one required byte sequence. Exact is true when the literal is
// the whole of what its pattern position can match, false when it is only a
// necessary prefix.
type Literal struct {
	Bytes []byte
	Exact bool
}

// Seq is a set of alternative required literals: any match of the pattern
// must start with one of them.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int { return len(s.literals) }

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence carries no requirement.
func (s *Seq) IsEmpty() bool { return len(s.literals) == 0 }

func (s *Seq) push(lit Literal) {
	s.literals = append(s.literals, lit)
}

// Config bounds extraction so pathological patterns cannot blow up the
// prefilter build.
type Config struct {
	// MaxLiterals limits how many alternative literals are collected before
	// extraction gives up. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates each literal; a truncated literal is still a
	// valid necessary prefix. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits which character classes are expanded into
	// single-character literals. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// ExtractPrefixes walks the head of prog and collects the literals one of
// which every match must start with. An empty sequence means no requirement
// could be established.
func ExtractPrefixes(prog *program.Program, cfg Config) *Seq {
	if prog == nil {
		return NewSeq()
	}
	e := &extractor{cfg: cfg}
	seq := e.node(prog.Head())
	if e.overflowed {
		return NewSeq()
	}
	return seq
}

type extractor struct {
	cfg        Config
	overflowed bool
}

func (e *extractor) node(n *program.Node) *Seq {
	if n == nil || e.overflowed {
		return NewSeq()
	}

	switch n.Kind() {
	case program.KindLiteral:
		lit := n.LiteralBytes()
		exact := n.Next() == nil
		if len(lit) > e.cfg.MaxLiteralLen {
			lit = lit[:e.cfg.MaxLiteralLen]
			exact = false
		}
		return NewSeq(Literal{Bytes: lit, Exact: exact})

	case program.KindLineStart:
		// Anchors consume nothing; the requirement comes from what follows,
		// though the anchor keeps it from being the whole match.
		return e.weaken(e.node(n.Next()))

	case program.KindGroup:
		return e.weaken(e.node(n.Body()))

	case program.KindAlt:
		left := e.node(n.Left())
		if left.IsEmpty() {
			return NewSeq()
		}
		right := e.node(n.Right())
		if right.IsEmpty() {
			return NewSeq()
		}
		out := NewSeq()
		for i := 0; i < left.Len(); i++ {
			e.add(out, left.Get(i))
		}
		for i := 0; i < right.Len(); i++ {
			e.add(out, right.Get(i))
		}
		return e.weaken(out)

	case program.KindCharClass:
		if n.Inverted() || n.Set().Len() == 0 || n.Set().Len() > e.cfg.MaxClassSize {
			return NewSeq()
		}
		out := NewSeq()
		var buf [utf8.UTFMax]byte
		for _, r := range n.Set().Runes() {
			size := utf8.EncodeRune(buf[:], r)
			b := make([]byte, size)
			copy(b, buf[:size])
			e.add(out, Literal{Bytes: b})
		}
		return out

	case program.KindPlus:
		// The body matches at least once, so its prefixes are required.
		return e.weaken(e.node(n.Body()))

	case program.KindRange:
		if min, _, _ := n.Bounds(); min >= 1 {
			return e.weaken(e.node(n.Body()))
		}
		return NewSeq()

	default:
		// Optional constructs, stars, end anchors: no leading requirement.
		return NewSeq()
	}
}

// add appends lit to out, tripping the overflow flag past MaxLiterals.
func (e *extractor) add(out *Seq, lit Literal) {
	if out.Len() >= e.cfg.MaxLiterals {
		e.overflowed = true
		return
	}
	out.push(lit)
}

// weaken clears the Exact flag: a literal lifted out of a sub-construct is
// at best a necessary prefix of the whole match.
func (e *extractor) weaken(seq *Seq) *Seq {
	for i := range seq.literals {
		seq.literals[i].Exact = false
	}
	return seq
}
