package literal

import (
	"testing"

	"github.com/coregx/retrack/program"
	"github.com/coregx/retrack/syntax"
)

func extract(t *testing.T, pattern string) *Seq {
	t.Helper()
	ast, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	prog, err := program.Compile(ast)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	return ExtractPrefixes(prog, DefaultConfig())
}

func literalStrings(seq *Seq) []string {
	out := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		out = append(out, string(seq.Get(i).Bytes))
	}
	return out
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"hello", []string{"hello"}},
		{"hello.*world", []string{"hello"}},
		{"^hello", []string{"hello"}},
		{"(foo)", []string{"foo"}},
		{"(?:foo)bar", []string{"foo"}},
		{"foo|bar", []string{"foo", "bar"}},
		{"(foo|bar)qux", []string{"foo", "bar"}},
		{"[abc]x", []string{"a", "b", "c"}},
		{"(ab)+x", []string{"ab"}},
		{"x{2,5}y", []string{"x"}},

		// No requirement can be established for these.
		{".*foo", nil},
		{"x*y", nil},
		{"a?b", nil},
		{"x{0,5}y", nil},
		{"[^ab]x", nil},
		{"foo|.*", nil},
		{".", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, tt.pattern)
			got := literalStrings(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("literals = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("literal %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractExactness(t *testing.T) {
	seq := extract(t, "hello")
	if seq.Len() != 1 || !seq.Get(0).Exact {
		t.Errorf("whole-pattern literal should be exact, got %+v", seq.Get(0))
	}

	seq = extract(t, "hello.*")
	if seq.Len() != 1 || seq.Get(0).Exact {
		t.Errorf("prefix literal should not be exact, got %+v", seq.Get(0))
	}

	seq = extract(t, "(hello)")
	if seq.Len() != 1 || seq.Get(0).Exact {
		t.Errorf("literal lifted from a group should not be exact, got %+v", seq.Get(0))
	}
}

func TestExtractTruncatesLongLiterals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLiteralLen = 4

	ast, err := syntax.Parse("abcdefgh")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := program.Compile(ast)
	if err != nil {
		t.Fatal(err)
	}

	seq := ExtractPrefixes(prog, cfg)
	if seq.Len() != 1 {
		t.Fatalf("literals = %v, want one", literalStrings(seq))
	}
	lit := seq.Get(0)
	if string(lit.Bytes) != "abcd" || lit.Exact {
		t.Errorf("literal = %+v, want inexact \"abcd\"", lit)
	}
}

func TestExtractGivesUpPastMaxLiterals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLiterals = 2

	ast, err := syntax.Parse("a|b|c")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := program.Compile(ast)
	if err != nil {
		t.Fatal(err)
	}

	if seq := ExtractPrefixes(prog, cfg); !seq.IsEmpty() {
		t.Errorf("expected empty sequence past the limit, got %v", literalStrings(seq))
	}
}

func TestExtractMultibyteClassMembers(t *testing.T) {
	seq := extract(t, "[éa]x")
	got := literalStrings(seq)
	if len(got) != 2 || got[0] != "é" || got[1] != "a" {
		t.Errorf("literals = %q, want [é a]", got)
	}
}
