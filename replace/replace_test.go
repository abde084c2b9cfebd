package replace

import (
	"testing"

	"github.com/coregx/retrack/backtrack"
	"github.com/coregx/retrack/program"
	"github.com/coregx/retrack/syntax"
)

func matchFor(t *testing.T, pattern, input string) *backtrack.Match {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	prog, err := program.Compile(ast)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	m, err := backtrack.New().Exec(prog, []byte(input))
	if err != nil {
		t.Fatalf("Exec(%q, %q) failed: %v", pattern, input, err)
	}
	if m == nil {
		t.Fatalf("Exec(%q, %q) found no match", pattern, input)
	}
	return m
}

func TestRenderBasic(t *testing.T) {
	m := matchFor(t, "(he)llo wo(r)ld!", "hello world!")
	spec := Parse("$1llo $2ust!")

	got, ok := spec.Render([]byte("hello world!"), m)
	if !ok {
		t.Fatal("Render reported no output")
	}
	if want := "hello rust!"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderNamedGroups(t *testing.T) {
	m := matchFor(t, "(?<1>[^ ]+) (?<2>[^ ]+)", "spot runs")
	spec := Parse("$2 chases $1")

	got, ok := spec.Render([]byte("spot runs"), m)
	if !ok {
		t.Fatal("Render reported no output")
	}
	if want := "runs chases spot"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnknownGroupStaysLiteral(t *testing.T) {
	m := matchFor(t, "(a)", "a")
	spec := Parse("$1 and $9")

	got, ok := spec.Render([]byte("a"), m)
	if !ok {
		t.Fatal("Render reported no output")
	}
	if want := "a and $9"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderBareDollar(t *testing.T) {
	// '$' with no digit run references the empty name, which no match
	// binds, so it renders as a literal '$'.
	m := matchFor(t, "(a)", "a")
	spec := Parse("cost: $")

	got, ok := spec.Render([]byte("a"), m)
	if !ok {
		t.Fatal("Render reported no output")
	}
	if want := "cost: $"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEmptyTemplate(t *testing.T) {
	m := matchFor(t, "(a)", "a")
	spec := Parse("")

	if out, ok := spec.Render([]byte("a"), m); ok {
		t.Errorf("empty template should render nothing, got %q", out)
	}
}

func TestParseSplitsLiteralAndGroupParts(t *testing.T) {
	spec := Parse("a$12b$3")

	want := []part{
		{lit: "a"},
		{group: true, name: "12"},
		{lit: "b"},
		{group: true, name: "3"},
	}
	if len(spec.parts) != len(want) {
		t.Fatalf("parts = %+v, want %d parts", spec.parts, len(want))
	}
	for i := range want {
		if spec.parts[i] != want[i] {
			t.Errorf("part %d = %+v, want %+v", i, spec.parts[i], want[i])
		}
	}
}
