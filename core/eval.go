package slight

import (
	"fmt"
)

// DefaultMaxDepth bounds nested Eval calls for evaluators built by NewEvaluator.
const DefaultMaxDepth = 10000

// Evaluator reduces AST nodes. It owns its frame stack and is not safe for
// concurrent use.
type Evaluator struct {
	MaxDepth int    // 0 disables the limit
	Trace    *Trace // when set, every reduction step is recorded
	stack    Stack
	depth    int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{MaxDepth: DefaultMaxDepth}
}

// Frames reports the current frame stack depth.
func (e *Evaluator) Frames() int { return e.stack.Depth() }

// Lookup resolves a name against the current frame stack.
func (e *Evaluator) Lookup(name string) (*Node, bool) { return e.stack.Lookup(name) }

// Reset drops every binding.
func (e *Evaluator) Reset() {
	e.stack.Reset()
	e.depth = 0
}

// EvalString parses one expression and evaluates it.
func (e *Evaluator) EvalString(input string) (*Node, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return e.Eval(node)
}

// Eval reduces node until a value form is reached.
func (e *Evaluator) Eval(node *Node) (*Node, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.MaxDepth > 0 && e.depth > e.MaxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrDepthExceeded, e.MaxDepth)
	}

	switch node.Kind {
	case NodeVar:
		e.step("var", node)
		val, ok := e.stack.Lookup(node.Name)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUndefined, node.Name)
		}
		return e.Eval(val)
	case NodeLiteral:
		e.step("literal", node)
		return node, nil
	case NodeApply:
		return e.evalApply(node)
	}
	return nil, fmt.Errorf("%w %s", ErrCannotEvaluate, node)
}

func (e *Evaluator) evalApply(app *Node) (*Node, error) {
	op := app.Operator
	switch op.Kind {
	case NodeForm:
		e.step("form:"+op.Form.String(), app)
		return e.evalForm(app)
	case NodeApply:
		e.step("nested", app)
		return e.Eval(splice(op.Operator, op.Operands, app.Operands))
	case NodeVar:
		e.step("apply-var", app)
		val, err := e.Eval(op)
		if err != nil {
			return nil, err
		}
		if val.Kind == NodeApply {
			return e.Eval(splice(val.Operator, val.Operands, app.Operands))
		}
		return e.Eval(Apply(val, app.Operands...))
	}
	return nil, fmt.Errorf("%w %s: %s is not applicable", ErrCannotEvaluate, app, op)
}

// applyTo evaluates operator and applies the result to operands. A bare
// special form is already an operator and is used as is.
func (e *Evaluator) applyTo(operator *Node, operands []*Node) (*Node, error) {
	op := operator
	if op.Kind != NodeForm {
		var err error
		if op, err = e.Eval(operator); err != nil {
			return nil, err
		}
	}
	return e.Eval(Apply(op, operands...))
}

func (e *Evaluator) step(rule string, node *Node) {
	if e.Trace == nil {
		return
	}
	e.Trace.StepCount++
	if e.Trace.CountOnly {
		return
	}
	e.Trace.Steps = append(e.Trace.Steps, Step{Depth: e.depth, Rule: rule, Node: node.String()})
}
