package slight

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Session is the host loop around one evaluator: it understands the exit
// and load commands and evaluates everything else.
type Session struct {
	Eval      *Evaluator
	History   *History // optional
	KeepSteps bool     // keep every reduction step in returned traces
	ShowSteps bool     // print the step listing instead of just the result
	out       io.Writer
	loading   map[string]bool
}

func NewSession(ev *Evaluator, out io.Writer) *Session {
	return &Session{Eval: ev, out: out, loading: map[string]bool{}}
}

// Process handles one line of input and writes any output. It returns false
// once the session should end.
func (s *Session) Process(line string) bool {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return true
	case input == "exit":
		return false
	case strings.HasPrefix(input, "load "):
		return s.load(strings.TrimSpace(input[len("load "):]))
	}
	for _, t := range s.Run(input) {
		s.print(t)
	}
	return true
}

func (s *Session) load(path string) bool {
	if s.loading[path] {
		fmt.Fprintf(s.out, "[error] load %s: already being loaded\n", path)
		return true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.out, "[error] %v\n", err)
		return true
	}
	if s.loading == nil {
		s.loading = map[string]bool{}
	}
	s.loading[path] = true
	defer delete(s.loading, path)
	return s.Process(string(data))
}

// Run parses src into top-level expressions and evaluates each in turn.
// A parse failure yields a single failed trace.
func (s *Session) Run(src string) []*Trace {
	nodes, err := ParseAll(src)
	if err != nil {
		t := &Trace{Entry: src, Error: err.Error(), Timestamp: now()}
		s.record(t)
		return []*Trace{t}
	}
	traces := make([]*Trace, 0, len(nodes))
	for _, n := range nodes {
		traces = append(traces, s.EvalNode(n))
	}
	return traces
}

// EvalNode evaluates one parsed expression and returns its trace.
func (s *Session) EvalNode(node *Node) *Trace {
	t := &Trace{Entry: node.String(), Timestamp: now(), CountOnly: !s.KeepSteps && !s.ShowSteps}
	s.Eval.Trace = t
	val, err := s.Eval.Eval(node)
	s.Eval.Trace = nil
	if err != nil {
		t.Error = err.Error()
	} else {
		t.Result = val.String()
	}
	s.record(t)
	return t
}

func (s *Session) record(t *Trace) {
	if s.History == nil {
		return
	}
	if err := s.History.Record(t); err != nil {
		fmt.Fprintf(s.out, "[warn] %v\n", err)
	}
}

func (s *Session) print(t *Trace) {
	if s.ShowSteps {
		fmt.Fprint(s.out, t.Summary())
		return
	}
	if t.Error != "" {
		fmt.Fprintf(s.out, "[error] %s\n", t.Error)
		return
	}
	fmt.Fprintln(s.out, t.Result)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
