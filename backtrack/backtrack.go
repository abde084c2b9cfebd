// Package backtrack implements the executor of the retrack regex engine.
//
// The executor runs a compiled program against an input as a backtracking
// search. Pending explorations live on a LIFO frontier of
// (partial result, program pointer, cursor) states: branch points push the
// alternative they prefer less and continue synchronously down the one they
// prefer more. Greedy repetition is encoded in push order; lazy repetition
// tries the continuation synchronously after each iteration and returns the
// first completion. After the frontier drains, the completed match with the
// greatest end offset wins.
//
// Worst-case running time is exponential in the input length for pathological
// patterns (nested quantifiers over ambiguous alternations). The executor
// carries no fuel limit; callers wanting protection wrap the call in their
// own watchdog.
package backtrack

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/coregx/retrack/program"
	"github.com/coregx/retrack/simd"
)

// ErrPoisonedNode indicates the executor reached a sentinel node that should
// never survive transformation. It is an internal invariant violation, not a
// property of the input.
var ErrPoisonedNode = errors.New("internal: encountered poisoned node")

// Executor runs compiled programs. The zero value is ready to use; an
// Executor holds no state between calls and may be reused freely.
type Executor struct{}

// New returns a new Executor.
func New() *Executor {
	return &Executor{}
}

// Exec searches input for the pattern compiled into prog.
//
// It returns the match whose end offset is greatest, or nil if the pattern
// does not match. Ties on end keep the exploration completed first, which makes results
// deterministic for a given (program, input) pair. An empty program matches
// nothing.
func (e *Executor) Exec(prog *program.Program, input []byte) (*Match, error) {
	if prog == nil || prog.Head() == nil {
		return nil, nil
	}

	m := &machine{input: input, n: len(input)}
	m.push(nil, prog.Head(), 0)

	var best *Match
	for len(m.frontier) > 0 {
		st := m.pop()
		res, err := m.run(st.res, st.node, st.cur)
		if err != nil {
			return nil, err
		}
		if res != nil && (best == nil || res.end > best.end) {
			best = res
		}
	}
	return best, nil
}

// execState is one pending exploration: resume the walk at node with the
// given partial result and cursor.
type execState struct {
	res  *Match
	node *program.Node
	cur  int
}

type machine struct {
	input []byte
	n     int

	frontier []execState
}

func (m *machine) push(res *Match, node *program.Node, cur int) {
	m.frontier = append(m.frontier, execState{res: res, node: node, cur: cur})
}

func (m *machine) pop() execState {
	st := m.frontier[len(m.frontier)-1]
	m.frontier = m.frontier[:len(m.frontier)-1]
	return st
}

// run walks the program synchronously from node, pushing alternative futures
// onto the frontier at branch points. It returns the completed match for
// this exploration, or nil if it failed.
//
//nolint:gocyclo,cyclop // complexity is inherent to node dispatch
func (m *machine) run(res *Match, node *program.Node, cur int) (*Match, error) {
	for {
		if node == nil {
			// Fell off the end of the program: a set partial result is a
			// completed match ending at the last consumed byte.
			if res == nil {
				return nil, nil
			}
			res.end = cur - 1
			return res, nil
		}

		switch node.Kind() {
		case program.KindPoisoned:
			return nil, ErrPoisonedNode

		case program.KindAnyChar:
			if cur >= m.n {
				return nil, nil
			}
			if res == nil {
				res = newMatch(cur)
			}
			cur += m.runeWidth(cur)
			node = node.Next()

		case program.KindLineStart:
			if cur != 0 {
				return nil, nil
			}
			if res == nil {
				res = newMatch(cur)
			}
			node = node.Next()

		case program.KindLineEnd:
			if cur != m.n {
				return nil, nil
			}
			if res == nil {
				res = newMatch(cur)
			}
			node = node.Next()

		case program.KindLiteral:
			word := node.LiteralBytes()
			if cur >= m.n || cur+len(word) > m.n {
				return nil, nil
			}
			if res == nil {
				// No match started yet: slide forward to the first
				// occurrence and start there.
				idx := simd.Memmem(m.input[cur:], word)
				if idx < 0 {
					return nil, nil
				}
				res = newMatch(cur + idx)
				cur += idx + len(word)
			} else {
				// Mid-match the literal must sit exactly at the cursor.
				if !bytes.HasPrefix(m.input[cur:], word) {
					return nil, nil
				}
				cur += len(word)
			}
			node = node.Next()

		case program.KindCharClass:
			if cur >= m.n {
				return nil, nil
			}
			r, width := utf8.DecodeRune(m.input[cur:])
			if node.Set().Contains(r) == node.Inverted() {
				return nil, nil
			}
			if res == nil {
				res = newMatch(cur)
			}
			cur += width
			node = node.Next()

		case program.KindOptional:
			// Branch: skip the body entirely, or take it with the
			// continuation spliced on. The take path runs synchronously.
			m.push(res.clone(), node.Next(), cur)
			node = node.Body().WithTail(node.Next())

		case program.KindStar:
			m.push(res.clone(), node.Next(), cur)
			return m.repeat(res, node, cur, node.Greedy())

		case program.KindPlus:
			return m.repeat(res, node, cur, node.Greedy())

		case program.KindRange:
			return m.repeatRange(res, node, cur)

		case program.KindGroup:
			// Mark the group's end with a runtime node carrying the entry
			// cursor, so group extents survive frontier hops without a
			// nesting stack.
			end := program.GroupEnd(cur, node.Group(), node.Next())
			node = program.WrapGroup(node.Body(), end)

		case program.KindGroupEnd:
			cfg := node.Group()
			if res != nil && !cfg.NonCapturing && cfg.Name != "" {
				start := node.GroupStart()
				if start < res.start {
					// A literal inside the group slid the match forward past
					// the recorded entry offset; the group cannot begin
					// before the match does.
					start = res.start
				}
				res.groups.Set(cfg.Name, Span{Start: start, End: cur - 1})
			}
			node = node.Next()

		case program.KindAlt:
			m.push(res.clone(), node.Right().WithTail(node.Next()), cur)
			node = node.Left().WithTail(node.Next())

		default:
			return nil, ErrPoisonedNode
		}
	}
}

// runeWidth returns the byte width of the character at cur, treating invalid
// UTF-8 as a single byte.
func (m *machine) runeWidth(cur int) int {
	_, width := utf8.DecodeRune(m.input[cur:])
	if width <= 0 {
		return 1
	}
	return width
}

// repeat implements one-or-more matching for node's body; node's
// continuation follows the repetition. Star pushes its zero-iteration state
// before calling this.
//
// Each iteration matches the body synchronously. Greedy repetition pushes
// the "stop here" state and keeps consuming; lazy repetition tries the
// continuation first and only consumes more when that fails. A body
// iteration that does not advance the cursor ends the loop so empty-matching
// bodies cannot spin forever.
func (m *machine) repeat(res *Match, node *program.Node, cur int, greedy bool) (*Match, error) {
	body := node.Body()
	for {
		sub, err := m.run(res.clone(), body, cur)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, nil
		}
		res = res.merge(sub)

		next := sub.end + 1
		if next == cur {
			return m.run(res, node.Next(), cur)
		}
		cur = next

		if !greedy {
			out, err := m.run(res.clone(), node.Next(), cur)
			if err != nil || out != nil {
				return out, err
			}
		}

		m.push(res.clone(), node.Next(), cur)
	}
}

// repeatRange implements {m}, {m,} and {m,n} repetition. The minimum is
// matched synchronously; the remainder either continues as a lazy star
// ({m,}) or is rewritten into a residual {1,max-min} range with the "stop
// here" state pushed first, so the consuming path is explored first.
func (m *machine) repeatRange(res *Match, node *program.Node, cur int) (*Match, error) {
	body := node.Body()
	for {
		min, max, hasMax := node.Bounds()

		for i := uint32(0); i < min; i++ {
			sub, err := m.run(res.clone(), body, cur)
			if err != nil {
				return nil, err
			}
			if sub == nil {
				return nil, nil
			}
			res = res.merge(sub)
			cur = sub.end + 1
		}

		if !hasMax {
			// No upper bound: the rest behaves like a lazy star.
			m.push(res.clone(), node.Next(), cur)
			return m.repeat(res, node, cur, false)
		}
		if max == min {
			return m.run(res, node.Next(), cur)
		}

		m.push(res.clone(), node.Next(), cur)
		node = program.NewRange(1, max-min, true, body, node.Next())
	}
}
