package slight

import (
	"fmt"
)

func (e *Evaluator) evalForm(app *Node) (*Node, error) {
	args := app.Operands
	switch form := app.Operator.Form; form {
	case FormDef:
		return e.evalDef(args)
	case FormLambda:
		return e.evalLambda(app)
	case FormId:
		return e.evalId(app)
	case FormIgnore:
		return e.evalIgnore(app)
	case FormNil:
		return Nil(), nil
	case FormArrow, FormExternal:
		return nil, fmt.Errorf("%s: %w", form, ErrNotImplemented)
	default:
		return nil, fmt.Errorf("%w %s: unknown special form", ErrCannotEvaluate, app)
	}
}

// evalDef: (δ name value body) binds name for body in a new frame.
// (δ name value op args...) binds name in the current frame for the
// duration of (op args...).
func (e *Evaluator) evalDef(args []*Node) (*Node, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: δ: 3 arguments expected, %d provided. Example usage: (δ x 5 (ι x))", ErrArity, len(args))
	}
	if args[0].Kind != NodeVar {
		return nil, fmt.Errorf("%w: δ: invalid variable name %s", ErrInvalidBinder, args[0])
	}
	name := args[0].Name
	value, err := e.Eval(args[1])
	if err != nil {
		return nil, err
	}

	if len(args) == 3 {
		e.stack.Push(name, value)
		defer e.stack.Pop()
		return e.Eval(ReplaceFree(name, value, args[2]))
	}

	restore := e.stack.Bind(name, value)
	defer restore()
	op := args[2]
	if op.Kind == NodeApply {
		op = ReplaceFree(name, value, op)
	}
	return e.Eval(ReplaceFree(name, value, Apply(op, args[3:]...)))
}

// evalLambda: (λ p body) is a value; (λ p body arg) applies it;
// (λ p body arg rest...) applies the result of the first application to rest.
func (e *Evaluator) evalLambda(app *Node) (*Node, error) {
	args := app.Operands
	switch {
	case len(args) < 2:
		return nil, fmt.Errorf("%w: λ: at least 2 arguments expected, %d provided. Example usage: (λ x (ι x) 5)", ErrArity, len(args))
	case len(args) == 2:
		return app, nil
	}

	body, release, err := e.bindParam(args[0], args[1], args[2])
	if err != nil {
		return nil, err
	}
	defer release()
	if len(args) == 3 {
		return e.Eval(body)
	}
	return e.applyTo(body, args[3:])
}

// bindParam matches arg against a λ parameter and returns the body to
// evaluate along with the func that undoes any binding.
func (e *Evaluator) bindParam(param, body, arg *Node) (*Node, func(), error) {
	noop := func() {}
	switch {
	case param.Kind == NodeVar:
		val, err := e.Eval(arg)
		if err != nil {
			return nil, nil, err
		}
		e.stack.Push(param.Name, val)
		return ReplaceFree(param.Name, val, body), e.stack.Pop, nil
	case param.Kind == NodeLiteral:
		val, err := e.Eval(arg)
		if err != nil {
			return nil, nil, err
		}
		if val.Kind != NodeLiteral || !val.Lit.Equal(param.Lit) {
			return nil, nil, fmt.Errorf("%w: λ expected %s but received %s", ErrPatternMismatch, param, val)
		}
		return body, noop, nil
	case param.IsForm(FormIgnore):
		if _, err := e.Eval(arg); err != nil {
			return nil, nil, err
		}
		return body, noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: λ: invalid parameter %s", ErrInvalidBinder, param)
	}
}

// evalId: (ι) is a value, (ι x) is x, (ι f args...) applies f to args.
func (e *Evaluator) evalId(app *Node) (*Node, error) {
	args := app.Operands
	switch len(args) {
	case 0:
		return app, nil
	case 1:
		return e.Eval(args[0])
	default:
		return e.applyTo(args[0], args[1:])
	}
}

// evalIgnore: (_ skipped f args...) applies f to args without touching the
// first operand. One or two operands give nil.
func (e *Evaluator) evalIgnore(app *Node) (*Node, error) {
	args := app.Operands
	switch len(args) {
	case 0:
		return app, nil
	case 1, 2:
		return Nil(), nil
	default:
		return e.applyTo(args[1], args[2:])
	}
}
