package slight

import (
	"strings"
)

// Form is one of the seven special forms.
type Form int

const (
	FormDef Form = iota
	FormLambda
	FormArrow
	FormExternal
	FormId
	FormIgnore
	FormNil
)

var formSymbols = [...]string{
	FormDef:      "δ",
	FormLambda:   "λ",
	FormArrow:    "->",
	FormExternal: "ε",
	FormId:       "ι",
	FormIgnore:   "_",
	FormNil:      "Ω",
}

// formSpellings maps every accepted spelling, symbol or ASCII alias, to its form.
var formSpellings = map[string]Form{
	"δ":        FormDef,
	"def":      FormDef,
	"ε":        FormExternal,
	"external": FormExternal,
	"λ":        FormLambda,
	"lambda":   FormLambda,
	"->":       FormArrow,
	"ι":        FormId,
	"id":       FormId,
	"_":        FormIgnore,
	"Ω":        FormNil,
	"nih":      FormNil,
}

func (f Form) String() string {
	if f < 0 || int(f) >= len(formSymbols) {
		return "<unknown form>"
	}
	return formSymbols[f]
}

type NodeKind int

const (
	NodeApply NodeKind = iota
	NodeVar
	NodeLiteral
	NodeForm
)

// Node is an immutable AST node. Only the fields for its Kind are set.
// Rewrites always build new nodes; an untouched subtree may be shared.
type Node struct {
	Kind     NodeKind
	Name     string  // NodeVar
	Lit      Literal // NodeLiteral
	Form     Form    // NodeForm
	Operator *Node   // NodeApply
	Operands []*Node // NodeApply
}

func Var(name string) *Node { return &Node{Kind: NodeVar, Name: name} }
func Lit(l Literal) *Node { return &Node{Kind: NodeLiteral, Lit: l} }
func Num(f float64) *Node { return Lit(NumLit(f)) }
func Text(s string) *Node { return Lit(TextLit(s)) }
func Nil() *Node { return Lit(NilLit()) }
func FormNode(f Form) *Node { return &Node{Kind: NodeForm, Form: f} }

// Apply builds an application. The operand slice is copied.
func Apply(op *Node, operands ...*Node) *Node {
	ops := make([]*Node, len(operands))
	copy(ops, operands)
	return &Node{Kind: NodeApply, Operator: op, Operands: ops}
}

// splice builds (op inner... outer...) without aliasing either slice.
func splice(op *Node, inner, outer []*Node) *Node {
	ops := make([]*Node, 0, len(inner)+len(outer))
	ops = append(ops, inner...)
	ops = append(ops, outer...)
	return &Node{Kind: NodeApply, Operator: op, Operands: ops}
}

// IsForm reports whether n is the bare special form f.
func (n *Node) IsForm(f Form) bool {
	return n.Kind == NodeForm && n.Form == f
}

// IsVar reports whether n is a reference to name.
func (n *Node) IsVar(name string) bool {
	return n.Kind == NodeVar && n.Name == name
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case NodeVar:
		b.WriteString(n.Name)
	case NodeLiteral:
		b.WriteString(n.Lit.String())
	case NodeForm:
		b.WriteString(n.Form.String())
	case NodeApply:
		b.WriteByte('(')
		n.Operator.write(b)
		for _, o := range n.Operands {
			b.WriteByte(' ')
			o.write(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("<unknown>")
	}
}

// NodesEqual compares two trees structurally.
func NodesEqual(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NodeVar:
		return a.Name == b.Name
	case NodeLiteral:
		return a.Lit.Equal(b.Lit)
	case NodeForm:
		return a.Form == b.Form
	case NodeApply:
		if len(a.Operands) != len(b.Operands) || !NodesEqual(a.Operator, b.Operator) {
			return false
		}
		for i := range a.Operands {
			if !NodesEqual(a.Operands[i], b.Operands[i]) {
				return false
			}
		}
		return true
	}
	return false
}
