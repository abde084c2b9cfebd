// Package program provides the immutable executable form of a parsed
// pattern.
//
// Lowering converts the parser's mutable AST chain into shared-reference
// nodes that never change after Compile returns. A compiled Program can
// therefore back any number of concurrent executions. The executor composes
// new control-flow futures out of existing subprograms with WithTail, which
// copies a node spine without touching the shared subtrees.
package program

import (
	"errors"

	"github.com/coregx/retrack/syntax"
)

// ErrParseGraphCycle indicates the parser produced a node graph that reaches
// itself. The parser cannot do this; seeing the error means memory corruption
// or a hand-built AST.
var ErrParseGraphCycle = errors.New("parse graph contains a cycle")

// Kind identifies the construct a program node encodes.
type Kind uint8

const (
	// KindPoisoned is a sentinel that must never be reachable at execution
	// time.
	KindPoisoned Kind = iota

	// KindLiteral matches a fixed byte sequence.
	KindLiteral

	// KindAnyChar matches any single character.
	KindAnyChar

	// KindLineStart asserts the cursor is at the start of the input.
	KindLineStart

	// KindLineEnd asserts the cursor is at the end of the input.
	KindLineEnd

	// KindCharClass matches one character against a member set.
	KindCharClass

	// KindGroup brackets a subprogram whose extent may be captured.
	KindGroup

	// KindGroupEnd marks where a group's subprogram finished. It exists only
	// at runtime: the executor splices one onto a group body when it enters
	// the group, carrying the cursor offset at which the group began.
	KindGroupEnd

	// KindAlt explores two alternative subprograms.
	KindAlt

	// KindOptional matches its body zero or one times.
	KindOptional

	// KindStar matches its body zero or more times.
	KindStar

	// KindPlus matches its body one or more times.
	KindPlus

	// KindRange matches its body a bounded number of times.
	KindRange
)

// Node is one unit of a compiled program. Nodes are immutable and shared by
// reference; nil continuations mean "fall through to the enclosing
// continuation".
type Node struct {
	kind Kind
	next *Node

	lit []byte

	set      *syntax.RuneSet
	inverted bool

	body        *Node
	left, right *Node

	greedy bool

	min, max uint32
	hasMax   bool

	group      syntax.GroupConfig
	groupStart int
}

// Kind returns the node's construct kind.
func (n *Node) Kind() Kind { return n.kind }

// Next returns the node's continuation, or nil at the end of a chain.
func (n *Node) Next() *Node { return n.next }

// LiteralBytes returns the byte sequence of a KindLiteral node. The slice is
// shared; callers must not modify it.
func (n *Node) LiteralBytes() []byte { return n.lit }

// Literal returns the literal as a string.
func (n *Node) Literal() string { return string(n.lit) }

// Set returns the member set of a KindCharClass node.
func (n *Node) Set() *syntax.RuneSet { return n.set }

// Inverted reports whether a KindCharClass node is negated.
func (n *Node) Inverted() bool { return n.inverted }

// Body returns the child subprogram of group and quantifier nodes.
func (n *Node) Body() *Node { return n.body }

// Left returns the first branch of a KindAlt node.
func (n *Node) Left() *Node { return n.left }

// Right returns the second branch of a KindAlt node.
func (n *Node) Right() *Node { return n.right }

// Greedy reports the repetition preference of KindStar and KindPlus nodes.
func (n *Node) Greedy() bool { return n.greedy }

// Bounds returns the repetition bounds of a KindRange node. max is
// meaningful only when hasMax is true.
func (n *Node) Bounds() (min, max uint32, hasMax bool) {
	return n.min, n.max, n.hasMax
}

// Group returns the capture configuration of KindGroup and KindGroupEnd
// nodes.
func (n *Node) Group() syntax.GroupConfig { return n.group }

// GroupStart returns the cursor offset at which a KindGroupEnd node's group
// began.
func (n *Node) GroupStart() int { return n.groupStart }

// Program is a compiled pattern. It is immutable and safe for concurrent
// use.
type Program struct {
	head *Node
}

// Head returns the program's first node, or nil for an empty pattern.
func (p *Program) Head() *Node { return p.head }

// Compile lowers a parsed AST chain into a Program. The AST must be a DAG;
// a graph that reaches itself is rejected with ErrParseGraphCycle.
func Compile(ast *syntax.Node) (*Program, error) {
	l := &lowerer{
		done:       make(map[*syntax.Node]*Node),
		inProgress: make(map[*syntax.Node]struct{}),
	}
	head, err := l.lower(ast)
	if err != nil {
		return nil, err
	}
	return &Program{head: head}, nil
}

type lowerer struct {
	done       map[*syntax.Node]*Node
	inProgress map[*syntax.Node]struct{}
}

func (l *lowerer) lower(ast *syntax.Node) (*Node, error) {
	if ast == nil {
		return nil, nil
	}
	if n, ok := l.done[ast]; ok {
		return n, nil
	}
	if _, ok := l.inProgress[ast]; ok {
		return nil, ErrParseGraphCycle
	}
	l.inProgress[ast] = struct{}{}
	defer delete(l.inProgress, ast)

	n := &Node{}
	switch ast.Op {
	case syntax.OpPoisoned:
		n.kind = KindPoisoned
	case syntax.OpLiteral:
		n.kind = KindLiteral
		n.lit = []byte(ast.Lit)
	case syntax.OpAnyChar:
		n.kind = KindAnyChar
	case syntax.OpLineStart:
		n.kind = KindLineStart
	case syntax.OpLineEnd:
		n.kind = KindLineEnd
	case syntax.OpCharClass:
		n.kind = KindCharClass
		n.set = ast.Set
		n.inverted = ast.Inverted
	case syntax.OpGroup:
		n.kind = KindGroup
		n.group = ast.Group
		body, err := l.lower(ast.Body)
		if err != nil {
			return nil, err
		}
		n.body = body
	case syntax.OpAlt:
		n.kind = KindAlt
		left, err := l.lower(ast.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.lower(ast.Right)
		if err != nil {
			return nil, err
		}
		n.left = left
		n.right = right
	case syntax.OpOptional:
		n.kind = KindOptional
		body, err := l.lower(ast.Body)
		if err != nil {
			return nil, err
		}
		n.body = body
	case syntax.OpStar, syntax.OpPlus:
		if ast.Op == syntax.OpStar {
			n.kind = KindStar
		} else {
			n.kind = KindPlus
		}
		n.greedy = ast.Greedy
		body, err := l.lower(ast.Body)
		if err != nil {
			return nil, err
		}
		n.body = body
	case syntax.OpRange:
		n.kind = KindRange
		n.min = ast.Min
		n.max = ast.Max
		n.hasMax = ast.HasMax
		body, err := l.lower(ast.Body)
		if err != nil {
			return nil, err
		}
		n.body = body
	}

	next, err := l.lower(ast.Next)
	if err != nil {
		return nil, err
	}
	n.next = next

	l.done[ast] = n
	return n, nil
}
