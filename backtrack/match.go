package backtrack

// Span is an inclusive byte range into the searched input.
type Span struct {
	Start int
	End   int
}

// Groups is an insertion-ordered map from capture name to span. Iteration
// and rendering follow first-insertion order; re-recording an existing name
// updates its span in place without moving it.
type Groups struct {
	names []string
	spans map[string]Span
}

// NewGroups returns an empty group table.
func NewGroups() *Groups {
	return &Groups{spans: make(map[string]Span)}
}

// Set records the span for name, preserving the name's original position if
// it was recorded before.
func (g *Groups) Set(name string, s Span) {
	if _, ok := g.spans[name]; !ok {
		g.names = append(g.names, name)
	}
	g.spans[name] = s
}

// Get returns the span recorded for name.
func (g *Groups) Get(name string) (Span, bool) {
	s, ok := g.spans[name]
	return s, ok
}

// Names returns the recorded names in first-insertion order. The slice is
// shared; callers must not modify it.
func (g *Groups) Names() []string {
	return g.names
}

// Len returns the number of recorded groups.
func (g *Groups) Len() int {
	return len(g.names)
}

// extend merges other's entries into g, in other's order.
func (g *Groups) extend(other *Groups) {
	for _, name := range other.names {
		g.Set(name, other.spans[name])
	}
}

func (g *Groups) clone() *Groups {
	c := &Groups{
		names: make([]string, len(g.names)),
		spans: make(map[string]Span, len(g.spans)),
	}
	copy(c.names, g.names)
	for k, v := range g.spans {
		c.spans[k] = v
	}
	return c
}

// Match describes where a pattern matched and which capture groups were
// bound. Offsets are inclusive byte offsets into the searched input, and
// always fall on character boundaries.
type Match struct {
	start  int
	end    int
	groups *Groups
}

func newMatch(start int) *Match {
	return &Match{start: start, groups: NewGroups()}
}

// Start returns the byte offset of the first matched byte.
func (m *Match) Start() int { return m.start }

// End returns the byte offset of the last matched byte.
func (m *Match) End() int { return m.end }

// Groups returns the capture table in first-recorded order.
func (m *Match) Groups() *Groups { return m.groups }

// Bytes returns the matched portion of input. The caller passes the same
// input the match was produced from.
func (m *Match) Bytes(input []byte) []byte {
	return input[m.start : m.end+1]
}

func (m *Match) clone() *Match {
	if m == nil {
		return nil
	}
	return &Match{start: m.start, end: m.end, groups: m.groups.clone()}
}

// merge keeps the earlier result's start and extends its groups with those
// discovered by a subprogram run. A nil receiver adopts the other result.
func (m *Match) merge(other *Match) *Match {
	if m == nil {
		return other
	}
	if other == nil {
		return m
	}
	m.groups.extend(other.groups)
	return m
}
