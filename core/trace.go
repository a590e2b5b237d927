package slight

import (
	"fmt"
	"strings"
)

// Trace captures a single top-level evaluation: the input, its outcome, and
// optionally every reduction step taken on the way.
type Trace struct {
	Entry     string // source text of the evaluated expression
	Result    string // rendered result, empty on error
	Error     string // non-empty on error
	Timestamp string // ISO 8601
	StepCount int    // number of reductions, kept even when Steps is not
	Steps     []Step
	CountOnly bool // count reductions without recording Steps
}

// Step is one reduction performed by the evaluator.
type Step struct {
	Depth int    // Eval nesting depth when the step was taken
	Rule  string // var, literal, form:<symbol>, nested, apply-var
	Node  string // rendered node being reduced
}

// Summary renders the trace as an indented listing, one step per line.
func (t *Trace) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Entry)
	for _, s := range t.Steps {
		indent := s.Depth - 1
		if indent < 0 {
			indent = 0
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", strings.Repeat("  ", indent), s.Rule, s.Node)
	}
	if t.Error != "" {
		fmt.Fprintf(&b, "=> error: %s\n", t.Error)
	} else {
		fmt.Fprintf(&b, "=> %s\n", t.Result)
	}
	return b.String()
}

// ToMap converts a Trace to a JSON-friendly map for wire responses.
func (t *Trace) ToMap() map[string]any {
	m := map[string]any{
		"entry":     t.Entry,
		"timestamp": t.Timestamp,
		"steps":     t.StepCount,
	}
	if t.Error != "" {
		m["error"] = t.Error
		m["result"] = nil
	} else {
		m["error"] = nil
		m["result"] = t.Result
	}
	return m
}
