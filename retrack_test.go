package retrack

import (
	"testing"

	"github.com/coregx/retrack/replace"
	"github.com/coregx/retrack/syntax"
)

func TestCompileInvalidPattern(t *testing.T) {
	_, err := Compile("fo[oa")
	if err == nil {
		t.Fatal("Compile should have failed")
	}
	perr, ok := err.(*syntax.ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *syntax.ParseError", err)
	}
	if perr.Kind != syntax.ErrUnterminatedClass {
		t.Errorf("kind = %v, want UnterminatedClass", perr.Kind)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on an invalid pattern")
		}
	}()
	MustCompile("(")
}

func TestMatchString(t *testing.T) {
	re := MustCompile("spot")

	if !re.MatchString("see spot run") {
		t.Error("expected a match")
	}
	if re.MatchString("see rover run") {
		t.Error("expected no match")
	}
}

func TestFindString(t *testing.T) {
	re := MustCompile("wo{2,5}rld")

	if got := re.FindString("hello woorld"); got != "woorld" {
		t.Errorf("FindString = %q, want %q", got, "woorld")
	}
	if got := re.FindString("hello world"); got != "" {
		t.Errorf("FindString = %q, want empty (needs two o's)", got)
	}
	if got := re.FindString("hello wrld"); got != "" {
		t.Errorf("FindString = %q, want empty", got)
	}
}

func TestFindIndex(t *testing.T) {
	re := MustCompile("bar")

	loc := re.FindIndex([]byte("foo bar baz"))
	if len(loc) != 2 || loc[0] != 4 || loc[1] != 7 {
		t.Errorf("FindIndex = %v, want [4 7]", loc)
	}
	if loc := re.FindIndex([]byte("foo")); loc != nil {
		t.Errorf("FindIndex = %v, want nil", loc)
	}
}

func TestExecGroups(t *testing.T) {
	re := MustCompile("(?<user>[^@ ]+)@(?<host>[^ ]+)")

	m, err := re.ExecString("otacon@shadowmoses rest")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}

	user, ok := m.Groups().Get("user")
	if !ok || user.Start != 0 || user.End != 5 {
		t.Errorf("user = %v (%v), want (0, 5)", user, ok)
	}
	host, ok := m.Groups().Get("host")
	if !ok || host.Start != 7 || host.End != 17 {
		t.Errorf("host = %v (%v), want (7, 17)", host, ok)
	}
}

func TestGroupNames(t *testing.T) {
	re := MustCompile("(a)(?<x>b)(?:c)(d|(e))")

	want := []string{"1", "x", "3", "4"}
	got := re.GroupNames()
	if len(got) != len(want) {
		t.Fatalf("GroupNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReplace(t *testing.T) {
	re := MustCompile("(he)llo wo(r)ld!")
	spec := replace.Parse("$1llo $2ust!")

	out, ok, err := re.Replace([]byte("hello world!"), spec)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if !ok || out != "hello rust!" {
		t.Errorf("Replace = (%q, %v), want (%q, true)", out, ok, "hello rust!")
	}

	_, ok, err = re.Replace([]byte("nothing here"), spec)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if ok {
		t.Error("Replace on a non-match should report ok=false")
	}
}

func TestPrefilterDoesNotChangeResults(t *testing.T) {
	// Patterns with and without extractable literals must agree on the
	// spans they report; the prefilter only skips doomed searches.
	tests := []struct {
		pattern, input string
		want           string
	}{
		{"foo|bar", "a bar b", "bar"},
		{"foo|bar", "nothing", ""},
		{"(hello)+ world", "say hello world", "hello world"},
		{".*always", "runs always", "runs always"},
		{".*always", "runs sometimes", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.FindString(tt.input); got != tt.want {
				t.Errorf("FindString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSharedRegexAcrossGoroutines(t *testing.T) {
	re := MustCompile("of (?<n>[0123456789]+) items")

	done := make(chan bool, 4)
	for i := 0; i < 4; i++ {
		go func() {
			done <- re.MatchString("order of 42 items shipped")
		}()
	}
	for i := 0; i < 4; i++ {
		if !<-done {
			t.Error("expected every goroutine to match")
		}
	}
}
