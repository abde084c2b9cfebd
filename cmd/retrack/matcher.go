package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/coregx/retrack"
	"github.com/coregx/retrack/replace"
)

// matcher applies the compiled expressions to every line of every input and
// hands results to the printer.
type matcher struct {
	printer     *printer
	expressions []*retrack.Regex
	replaceSpec *replace.Spec
}

func (m *matcher) run(files []string, readStdin bool) error {
	numInputs := len(files)
	if readStdin {
		numInputs++
	}
	multiple := numInputs > 1

	for i, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = m.searchFile(name, f, false, multiple, i < numInputs-1)
		f.Close()
		if err != nil {
			return err
		}
	}

	if readStdin {
		return m.searchFile("stdin", os.Stdin, true, multiple, false)
	}
	return nil
}

// searchFile scans one input line by line. The filename header appears once,
// before the first matching line, and only when several inputs are searched.
// Line numbers are omitted for a lone stdin search.
func (m *matcher) searchFile(name string, r io.Reader, isStdin, multiple, hasMore bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	printedHeader := false
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		for _, re := range m.expressions {
			res, err := re.Exec(line)
			if err != nil {
				return fmt.Errorf("executing expression: %w", err)
			}
			if res == nil {
				continue
			}

			if multiple && !printedHeader {
				m.printer.fileStart(name)
				printedHeader = true
			}
			if multiple || !isStdin {
				m.printer.lineNum(lineNum)
			}

			if m.replaceSpec != nil {
				if replaced, ok := m.replaceSpec.Render(line, res); ok {
					m.printer.replacement(replaced)
				}
				continue
			}
			m.printer.match(line, res)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Finish this file's block before the next header.
	if printedHeader && hasMore {
		m.printer.fileEnd()
	}
	return nil
}
