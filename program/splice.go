package program

import "github.com/coregx/retrack/syntax"

// WithTail produces a subprogram structurally equal to n but whose last
// node's continuation points at tail. The spine from n to its last node is
// copied; subtrees (group bodies, alternation branches, quantifier bodies)
// stay shared with the original. A nil tail returns n unchanged, and a nil n
// returns tail.
//
// The executor uses this to present "execute this body, then whatever was
// going to follow the enclosing node" as a single linear program, so a
// frontier entry never needs a separate continuation stack.
func (n *Node) WithTail(tail *Node) *Node {
	if n == nil {
		return tail
	}
	if tail == nil {
		return n
	}

	head := &Node{}
	*head = *n
	cur := head
	for cur.next != nil {
		next := &Node{}
		*next = *cur.next
		cur.next = next
		cur = next
	}
	cur.next = tail
	return head
}

// WrapGroup splices a group-end marker onto the tail of a group body. It is
// WithTail under a name that reads better at the call site.
func WrapGroup(body, groupEnd *Node) *Node {
	return body.WithTail(groupEnd)
}

// GroupEnd builds the runtime marker node recording that a group began at
// the given cursor offset. cfg decides whether the extent is captured when
// the marker is reached.
func GroupEnd(start int, cfg syntax.GroupConfig, next *Node) *Node {
	return &Node{kind: KindGroupEnd, group: cfg, groupStart: start, next: next}
}

// NewRange builds a repetition node at runtime. The executor rewrites a
// partially-consumed {m,n} quantifier into a smaller residual range with
// this.
func NewRange(min, max uint32, hasMax bool, body, next *Node) *Node {
	return &Node{kind: KindRange, min: min, max: max, hasMax: hasMax, body: body, next: next}
}

// Poisoned builds a sentinel node. No parsed pattern lowers to one; reaching
// one during execution is an internal error.
func Poisoned() *Node {
	return &Node{kind: KindPoisoned}
}
