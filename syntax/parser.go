package syntax

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/coregx/retrack/internal/conv"
)

// Metacharacters outside a character class. Everything else is literal.
var metachars = map[rune]struct{}{
	'(': {}, ')': {}, '{': {}, '}': {}, '[': {}, ']': {},
	'|': {}, '\\': {}, '^': {}, '$': {}, '.': {}, '*': {}, '?': {}, '+': {},
}

func isMetachar(r rune) bool {
	_, ok := metachars[r]
	return ok
}

// Parse parses a pattern into an AST chain. An empty pattern yields a nil
// chain. On failure the returned error is a *ParseError carrying the byte
// index at which parsing failed.
func Parse(pattern string) (*Node, error) {
	p := &parser{pattern: pattern}
	head, err := p.parseChain(false)
	if err != nil {
		return nil, err
	}
	return head, nil
}

type parser struct {
	pattern string
	pos     int

	// captures counts capturing groups in encounter order; the ordinal
	// doubles as the synthesized name for unnamed ones.
	captures int
}

func (p *parser) errorAt(kind ErrorKind, index int) *ParseError {
	return &ParseError{Kind: kind, Pattern: p.pattern, Index: index}
}

func (p *parser) errorChar(kind ErrorKind, index int, ch rune) *ParseError {
	return &ParseError{Kind: kind, Pattern: p.pattern, Index: index, Char: ch}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

// peek returns the next rune without consuming it.
func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.pattern[p.pos:])
	return r, true
}

// next consumes and returns the next rune along with its starting byte index.
func (p *parser) next() (rune, int, bool) {
	if p.eof() {
		return 0, p.pos, false
	}
	start := p.pos
	r, size := utf8.DecodeRuneInString(p.pattern[p.pos:])
	p.pos += size
	return r, start, true
}

// chain accumulates sibling nodes while tracking the predecessor of the tail
// so a trailing quantifier can splice its wrapper node in place.
type chain struct {
	head, tail, prev *Node
}

func (c *chain) append(n *Node) {
	if c.head == nil {
		c.head = n
		c.tail = n
		return
	}
	c.prev = c.tail
	c.tail.Next = n
	c.tail = n
}

// replaceTail swaps the current tail for n, keeping the rest of the chain.
func (c *chain) replaceTail(n *Node) {
	if c.prev == nil {
		c.head = n
	} else {
		c.prev.Next = n
	}
	c.tail = n
}

// parseChain parses sibling constructs until end of input or, when inGroup
// is true, the closing ')'. The terminator is consumed. A '|' hands the
// accumulated chain over as the left branch and parses the remainder of the
// group as the right branch.
func (p *parser) parseChain(inGroup bool) (*Node, error) {
	var c chain

	for {
		ch, start, ok := p.next()
		if !ok {
			if inGroup {
				return nil, p.errorAt(ErrUnexpectedEndOfInput, p.pos)
			}
			return c.head, nil
		}

		switch ch {
		case ')':
			if !inGroup {
				return nil, p.errorChar(ErrUnexpectedChar, start, ch)
			}
			return c.head, nil

		case '|':
			if c.head == nil {
				return nil, p.errorChar(ErrUnexpectedChar, start, ch)
			}
			rightStart := p.pos
			right, err := p.parseChain(inGroup)
			if err != nil {
				return nil, err
			}
			if right == nil {
				return nil, p.errorAt(ErrMissingAltRight, rightStart)
			}
			return &Node{Op: OpAlt, Left: c.head, Right: right}, nil

		case '(':
			group, err := p.parseGroup(start)
			if err != nil {
				return nil, err
			}
			c.append(group)

		case '[':
			class, err := p.parseClass(start)
			if err != nil {
				return nil, err
			}
			c.append(class)

		case '.':
			c.append(&Node{Op: OpAnyChar})

		case '^':
			c.append(&Node{Op: OpLineStart})

		case '$':
			c.append(&Node{Op: OpLineEnd})

		case '*', '+', '?', '{':
			if err := p.parseQuantifier(&c, ch, start); err != nil {
				return nil, err
			}

		case '}', ']':
			return nil, p.errorChar(ErrUnexpectedChar, start, ch)

		case '\\':
			esc, escPos, ok := p.next()
			if !ok {
				return nil, p.errorAt(ErrMissingEscapeChar, start)
			}
			if !isMetachar(esc) {
				return nil, p.errorChar(ErrUnexpectedEscape, escPos, esc)
			}
			c.appendLiteral(esc)

		default:
			c.appendLiteral(ch)
		}
	}
}

// appendLiteral extends the current literal run or starts a new one.
func (c *chain) appendLiteral(r rune) {
	if c.tail != nil && c.tail.Op == OpLiteral {
		c.tail.Lit += string(r)
		return
	}
	c.append(&Node{Op: OpLiteral, Lit: string(r)})
}

// parseQuantifier applies *, +, ?, or {m,n} to the preceding atom. A
// quantifier after a multi-character literal binds to the literal's final
// character only: the run is split so "abc*" parses as "ab" then "c*".
func (p *parser) parseQuantifier(c *chain, ch rune, start int) error {
	if c.tail == nil {
		return p.errorAt(ErrMissingQuantifierTarget, start)
	}

	target := c.tail
	if target.Op == OpLiteral {
		_, lastSize := utf8.DecodeLastRuneInString(target.Lit)
		if len(target.Lit) > lastSize {
			last := target.Lit[len(target.Lit)-lastSize:]
			target.Lit = target.Lit[:len(target.Lit)-lastSize]
			split := &Node{Op: OpLiteral, Lit: last}
			c.append(split)
			target = split
		}
	}

	var wrapper *Node
	switch ch {
	case '*':
		wrapper = &Node{Op: OpStar, Body: target, Greedy: !p.consumeLazyMarker()}
	case '+':
		wrapper = &Node{Op: OpPlus, Body: target, Greedy: !p.consumeLazyMarker()}
	case '?':
		wrapper = &Node{Op: OpOptional, Body: target}
	case '{':
		min, max, hasMax, err := p.parseRepetitionBounds(start)
		if err != nil {
			return err
		}
		wrapper = &Node{Op: OpRange, Body: target, Min: min, Max: max, HasMax: hasMax}
	}

	target.Next = nil
	c.replaceTail(wrapper)
	return nil
}

func (p *parser) consumeLazyMarker() bool {
	if r, ok := p.peek(); ok && r == '?' {
		p.next()
		return true
	}
	return false
}

// parseRepetitionBounds parses the interior of a '{...}' quantifier. The
// opening brace has been consumed; bracePos is its byte index.
func (p *parser) parseRepetitionBounds(bracePos int) (min, max uint32, hasMax bool, err error) {
	minVal, first, firstPos, err := p.parseRepetitionCount(true)
	if err != nil {
		return 0, 0, false, err
	}

	switch first {
	case '}':
		// {m}
		return minVal, minVal, true, nil
	case ',':
	default:
		return 0, 0, false, p.errorChar(ErrUnexpectedRepetitionChar, firstPos, first)
	}

	// A '}' directly after the comma means no upper bound.
	if r, ok := p.peek(); ok && r == '}' {
		p.next()
		return minVal, 0, false, nil
	}

	maxVal, closer, closerPos, err := p.parseRepetitionCount(false)
	if err != nil {
		return 0, 0, false, err
	}
	if closer != '}' {
		return 0, 0, false, p.errorChar(ErrUnexpectedRepetitionChar, closerPos, closer)
	}
	if maxVal < minVal {
		return 0, 0, false, p.errorAt(ErrInvalidRepetitionRange, bracePos)
	}
	return minVal, maxVal, true, nil
}

// parseRepetitionCount reads a digit run and the delimiter that follows it,
// returning the delimiter and its byte index. isMin selects the error kind
// for an absent digit run.
func (p *parser) parseRepetitionCount(isMin bool) (uint32, rune, int, error) {
	n := 0
	digits := 0
	for {
		ch, start, ok := p.next()
		if !ok {
			return 0, 0, 0, p.errorAt(ErrUnexpectedEndOfInput, p.pos)
		}
		if ch >= '0' && ch <= '9' {
			n = n*10 + int(ch-'0')
			if n > math.MaxUint32 {
				return 0, 0, 0, p.errorAt(ErrInvalidRepetitionRange, start)
			}
			digits++
			continue
		}
		if digits == 0 {
			if isMin && (ch == '}' || ch == ',') {
				return 0, 0, 0, p.errorAt(ErrMissingRepetitionMin, start)
			}
			return 0, 0, 0, p.errorChar(ErrUnexpectedRepetitionChar, start, ch)
		}
		return conv.IntToUint32(n), ch, start, nil
	}
}

// parseGroup parses a group whose '(' (at openPos) has been consumed.
func (p *parser) parseGroup(openPos int) (*Node, error) {
	cfg, err := p.parseGroupPrefix()
	if err != nil {
		return nil, err
	}

	body, err := p.parseChain(true)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, p.errorAt(ErrEmptyGroup, openPos)
	}

	return &Node{Op: OpGroup, Body: body, Group: cfg}, nil
}

// parseGroupPrefix handles '?:' and '?<name>'. A plain capturing group gets
// its positional ordinal as its name.
func (p *parser) parseGroupPrefix() (GroupConfig, error) {
	r, ok := p.peek()
	if !ok || r != '?' {
		p.captures++
		return GroupConfig{Name: strconv.Itoa(p.captures)}, nil
	}
	p.next()

	ch, start, ok := p.next()
	if !ok {
		return GroupConfig{}, p.errorAt(ErrUnexpectedEndOfInput, p.pos)
	}

	switch ch {
	case ':':
		return GroupConfig{NonCapturing: true}, nil
	case '<':
		name := ""
		for {
			nr, npos, ok := p.next()
			if !ok {
				return GroupConfig{}, p.errorAt(ErrUnexpectedEndOfInput, p.pos)
			}
			if nr == '>' {
				if name == "" {
					return GroupConfig{}, p.errorAt(ErrBadGroupPrefix, npos)
				}
				p.captures++
				return GroupConfig{Name: name}, nil
			}
			name += string(nr)
		}
	default:
		return GroupConfig{}, p.errorChar(ErrBadGroupPrefix, start, ch)
	}
}

// parseClass parses a '[...]' character class whose '[' (at openPos) has been
// consumed. Inside a class only ']' and '\' are special; '^' only as the
// first character.
func (p *parser) parseClass(openPos int) (*Node, error) {
	inverted := false
	if r, ok := p.peek(); ok && r == '^' {
		inverted = true
		p.next()
	}

	set := NewRuneSet()
	for {
		ch, start, ok := p.next()
		if !ok {
			return nil, p.errorAt(ErrUnterminatedClass, openPos)
		}

		switch ch {
		case ']':
			return &Node{Op: OpCharClass, Set: set, Inverted: inverted}, nil
		case '\\':
			esc, escPos, ok := p.next()
			if !ok {
				return nil, p.errorAt(ErrMissingEscapeChar, start)
			}
			if !isMetachar(esc) {
				return nil, p.errorChar(ErrUnexpectedEscape, escPos, esc)
			}
			set.Add(esc)
		default:
			set.Add(ch)
		}
	}
}
