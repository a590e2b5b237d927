package slight

// ReplaceFree returns node with every free occurrence of name replaced by
// value. Binders δ, λ and ε whose first operand is name shadow it, so their
// whole application is left alone. The operator of an application is only
// replaced when it is the variable itself. Unchanged subtrees are returned
// as is.
func ReplaceFree(name string, value, node *Node) *Node {
	switch node.Kind {
	case NodeVar:
		if node.Name == name {
			return value
		}
		return node
	case NodeApply:
		op := node.Operator
		switch {
		case op.IsVar(name):
			op = value
		case binds(node, name):
			return node
		}
		operands, changed := replaceAll(name, value, node.Operands)
		if !changed && op == node.Operator {
			return node
		}
		return &Node{Kind: NodeApply, Operator: op, Operands: operands}
	default:
		return node
	}
}

// binds reports whether app is a δ, λ or ε application binding name.
func binds(app *Node, name string) bool {
	op := app.Operator
	if op.Kind != NodeForm {
		return false
	}
	switch op.Form {
	case FormDef, FormLambda, FormExternal:
		return len(app.Operands) > 0 && app.Operands[0].IsVar(name)
	}
	return false
}

func replaceAll(name string, value *Node, nodes []*Node) ([]*Node, bool) {
	out := make([]*Node, len(nodes))
	changed := false
	for i, n := range nodes {
		out[i] = ReplaceFree(name, value, n)
		if out[i] != n {
			changed = true
		}
	}
	if !changed {
		return nodes, false
	}
	return out, true
}
