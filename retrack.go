// Package retrack provides a backtracking regex engine with named capture
// groups and $N substitution templates.
//
// A pattern is compiled in two stages: the parser (package syntax) turns the
// pattern string into an AST, and lowering (package program) produces an
// immutable program that any number of executions can share. Matching
// (package backtrack) is a backtracking search over that program which
// returns at most one match: the one with the greatest end offset that any
// exploration completed.
//
// Basic usage:
//
//	re, err := retrack.Compile(`(?<user>[^ ]+)@(?<host>[^ ]+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := re.Exec([]byte("otacon@shadowmoses"))
//	if m != nil {
//	    span, _ := m.Groups().Get("user")
//	    fmt.Println(span.Start, span.End)
//	}
//
// Supported syntax: literal runs, '.', '^'/'$' input anchors, [abc] and
// [^abc] classes, (expr) / (?:expr) / (?<name>expr) groups, the quantifiers
// * + ? {m} {m,} {m,n} with lazy *? and +?, alternation, and \X escapes for
// metacharacters. Unnamed capturing groups are retrievable under positional
// names "1", "2", ... in encounter order.
//
// Patterns with required leading literals are prefiltered: when no candidate
// literal occurs in the input at all, the search returns without running the
// backtracker.
package retrack

import (
	"github.com/coregx/retrack/backtrack"
	"github.com/coregx/retrack/literal"
	"github.com/coregx/retrack/prefilter"
	"github.com/coregx/retrack/program"
	"github.com/coregx/retrack/replace"
	"github.com/coregx/retrack/syntax"
)

// Regex is a compiled regular expression. It is immutable and safe for
// concurrent use by multiple goroutines.
type Regex struct {
	pattern    string
	prog       *program.Program
	pf         prefilter.Prefilter
	groupNames []string
}

// Compile parses and lowers a pattern.
//
// On a malformed pattern the returned error is a *syntax.ParseError carrying
// the byte index of the failure; its Annotate method renders the pattern
// with a caret under that index.
func Compile(pattern string) (*Regex, error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	prog, err := program.Compile(ast)
	if err != nil {
		return nil, err
	}

	return &Regex{
		pattern:    pattern,
		prog:       prog,
		pf:         prefilter.FromSeq(literal.ExtractPrefixes(prog, literal.DefaultConfig())),
		groupNames: collectGroupNames(ast, nil),
	}, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("retrack: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source text the expression was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// GroupNames returns the capture names of the pattern in declaration order,
// including the synthesized positional names of unnamed capturing groups.
func (r *Regex) GroupNames() []string {
	return r.groupNames
}

// Exec searches input and returns the full match description, or nil if the
// pattern does not match. The error cases are internal invariant violations
// and never triggered by input text.
func (r *Regex) Exec(input []byte) (*backtrack.Match, error) {
	if r.pf != nil && r.pf.Find(input, 0) < 0 {
		return nil, nil
	}
	return backtrack.New().Exec(r.prog, input)
}

// ExecString is Exec for string input.
func (r *Regex) ExecString(input string) (*backtrack.Match, error) {
	return r.Exec([]byte(input))
}

// Match reports whether input contains a match of the pattern.
func (r *Regex) Match(input []byte) bool {
	m, err := r.Exec(input)
	return err == nil && m != nil
}

// MatchString reports whether input contains a match of the pattern.
func (r *Regex) MatchString(input string) bool {
	return r.Match([]byte(input))
}

// Find returns the matched portion of input, or nil if the pattern does not
// match.
func (r *Regex) Find(input []byte) []byte {
	m, err := r.Exec(input)
	if err != nil || m == nil {
		return nil
	}
	return m.Bytes(input)
}

// FindString returns the matched portion of input, or "" if the pattern does
// not match.
func (r *Regex) FindString(input string) string {
	return string(r.Find([]byte(input)))
}

// FindIndex returns a two-element slice holding the half-open [start, end)
// location of the match, or nil if the pattern does not match.
func (r *Regex) FindIndex(input []byte) []int {
	m, err := r.Exec(input)
	if err != nil || m == nil {
		return nil
	}
	return []int{m.Start(), m.End() + 1}
}

// Replace matches input and renders the substitution template against the
// result. ok is false when the pattern does not match or the template is
// empty.
func (r *Regex) Replace(input []byte, spec *replace.Spec) (out string, ok bool, err error) {
	m, err := r.Exec(input)
	if err != nil || m == nil {
		return "", false, err
	}
	out, ok = spec.Render(input, m)
	return out, ok, nil
}

// collectGroupNames walks the AST gathering capture names in declaration
// order.
func collectGroupNames(n *syntax.Node, names []string) []string {
	for ; n != nil; n = n.Next {
		switch n.Op {
		case syntax.OpGroup:
			if !n.Group.NonCapturing {
				names = append(names, n.Group.Name)
			}
			names = collectGroupNames(n.Body, names)
		case syntax.OpAlt:
			names = collectGroupNames(n.Left, names)
			names = collectGroupNames(n.Right, names)
		case syntax.OpOptional, syntax.OpStar, syntax.OpPlus, syntax.OpRange:
			names = collectGroupNames(n.Body, names)
		}
	}
	return names
}
