// Command retrack is a line-oriented grep-style front end for the retrack
// regex engine.
//
// Usage:
//
//	retrack PATTERN [PATH...]
//	retrack -e PATTERN [-e PATTERN...] [PATH...]
//
// Paths may be files or directories; directories are searched recursively.
// A '-' path reads stdin, which is also the default when no paths are given.
// With --replace TEMPLATE, each match renders the template (with $N group
// references) instead of the matched line.
//
// Exits 0 on success and 1 on any parse, execution or I/O error, with a
// diagnostic on stderr.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/coregx/retrack"
	"github.com/coregx/retrack/replace"
	"github.com/coregx/retrack/syntax"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var parseErr *syntax.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintln(os.Stderr, parseErr.Annotate())
		}
		os.Exit(1)
	}
}

func run() error {
	expressions := pflag.StringArrayP("expression", "e", nil, "pattern to search for (may be repeated)")
	replaceTpl := pflag.String("replace", "", "render this $N template for each match")
	pflag.Parse()

	patterns := *expressions
	paths := pflag.Args()
	if len(patterns) == 0 {
		// Without -e the first positional argument is the pattern.
		if len(paths) == 0 {
			return errors.New("no pattern given")
		}
		patterns = paths[:1]
		paths = paths[1:]
	}

	regexes := make([]*retrack.Regex, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := retrack.Compile(pattern)
		if err != nil {
			return fmt.Errorf("parsing expression: %w", err)
		}
		regexes = append(regexes, re)
	}

	var spec *replace.Spec
	if *replaceTpl != "" {
		spec = replace.Parse(*replaceTpl)
	}

	files, readStdin, err := resolvePaths(paths)
	if err != nil {
		return err
	}

	m := &matcher{
		printer:     newPrinter(os.Stdout),
		expressions: regexes,
		replaceSpec: spec,
	}
	return m.run(files, readStdin)
}

// resolvePaths expands the path arguments into concrete files, recursing
// into directories. A '-' selects stdin and may appear at most once; with no
// paths at all stdin is searched by default.
func resolvePaths(paths []string) (files []string, readStdin bool, err error) {
	for _, path := range paths {
		if path == "-" {
			if readStdin {
				return nil, false, errors.New("cannot supply '-' as filename more than once")
			}
			readStdin = true
			continue
		}
		if err := collectFiles(path, &files); err != nil {
			return nil, false, err
		}
	}
	if len(files) == 0 && !readStdin {
		readStdin = true
	}
	return files, readStdin, nil
}

func collectFiles(path string, files *[]string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		*files = append(*files, path)
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := collectFiles(filepath.Join(path, entry.Name()), files); err != nil {
			return err
		}
	}
	return nil
}
