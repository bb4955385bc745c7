package resolve

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Choice is the outcome of a name-mismatch prompt.
type Choice int

const (
	// ChoiceSkip leaves the field undocumented and continues the run.
	ChoiceSkip Choice = iota
	// ChoiceSelect picks one of the offered candidate names.
	ChoiceSelect
	// ChoiceAbort terminates the whole run.
	ChoiceAbort
)

// Prompter resolves a parameter or type-parameter name that exists on the
// target but not in the candidate source's list. Implementations block
// until the operator decides; the engine is otherwise headless.
type Prompter interface {
	// ResolveName returns the choice and, for ChoiceSelect, the index
	// into candidates.
	ResolveName(targetID, kind, name string, candidates []string) (Choice, int, error)
}

// ConsolePrompter implements the line-based prompt protocol: the operator
// answers with a candidate number, "s" to skip, or "a" to abort.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

func (p *ConsolePrompter) ResolveName(targetID, kind, name string, candidates []string) (Choice, int, error) {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}

	fmt.Fprintf(p.Out, "%s %q of %s not found in source. Candidates:\n", kind, name, targetID)
	for i, c := range candidates {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, c)
	}
	for {
		fmt.Fprintf(p.Out, "Pick 1-%d, (s)kip, or (a)bort: ", len(candidates))
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return ChoiceAbort, 0, err
			}
			return ChoiceAbort, 0, io.EOF
		}
		answer := strings.TrimSpace(strings.ToLower(p.scanner.Text()))
		switch answer {
		case "s", "skip":
			return ChoiceSkip, 0, nil
		case "a", "abort":
			return ChoiceAbort, 0, nil
		default:
			if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(candidates) {
				return ChoiceSelect, n - 1, nil
			}
		}
	}
}

// scriptedPrompter replays a fixed sequence of decisions; used in tests.
type scriptedPrompter struct {
	choices []scriptedChoice
	calls   int
}

type scriptedChoice struct {
	choice Choice
	index  int
}

func (p *scriptedPrompter) ResolveName(string, string, string, []string) (Choice, int, error) {
	if p.calls >= len(p.choices) {
		return ChoiceSkip, 0, nil
	}
	c := p.choices[p.calls]
	p.calls++
	return c.choice, c.index, nil
}
