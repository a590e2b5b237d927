package slight

type parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses exactly one expression. Empty input yields the
// nil literal.
func Parse(input string) (*Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses exactly one expression from a token stream.
func ParseTokens(tokens []Token) (*Node, error) {
	if len(tokens) == 0 {
		return Nil(), nil
	}
	p := &parser{tokens: tokens}
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "unexpected " + tok.String() + " after expression"}
	}
	return node, nil
}

// ParseAll parses a sequence of top-level expressions.
func ParseAll(input string) ([]*Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	var nodes []*Node
	for p.pos < len(p.tokens) {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *parser) parseNode() (*Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, &SyntaxError{Msg: "unexpected end of input", incomplete: true}
	}
	tok := p.tokens[p.pos]
	switch tok.Kind {
	case TokForm:
		p.pos++
		return FormNode(tok.Form), nil
	case TokLiteral:
		p.pos++
		return Lit(tok.Lit), nil
	case TokIdent:
		p.pos++
		return Var(tok.Text), nil
	case TokOpen:
		return p.parseExpression()
	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "unexpected " + tok.String()}
	}
}

// parseExpression parses '(' operator operand* ')'. An application-valued
// operator is flattened into the result. A list that starts with a literal
// gets an implicit ι head.
func (p *parser) parseExpression() (*Node, error) {
	open := p.tokens[p.pos]
	p.pos++
	if p.pos >= len(p.tokens) {
		return nil, unclosed(open)
	}

	head := p.tokens[p.pos]
	switch head.Kind {
	case TokClose:
		return nil, &SyntaxError{Pos: head.Pos, Msg: "unexpected ')': empty application"}
	case TokLiteral:
		operands, err := p.parseOperands(open)
		if err != nil {
			return nil, err
		}
		return Apply(FormNode(FormId), operands...), nil
	}

	operator, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	operands, err := p.parseOperands(open)
	if err != nil {
		return nil, err
	}
	if operator.Kind == NodeApply {
		return splice(operator.Operator, operator.Operands, operands), nil
	}
	return Apply(operator, operands...), nil
}

func (p *parser) parseOperands(open Token) ([]*Node, error) {
	var operands []*Node
	for {
		if p.pos >= len(p.tokens) {
			return nil, unclosed(open)
		}
		if p.tokens[p.pos].Kind == TokClose {
			p.pos++
			return operands, nil
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		operands = append(operands, node)
	}
}

func unclosed(open Token) error {
	return &SyntaxError{Pos: open.Pos, Msg: "unexpected end of input: '(' is never closed", incomplete: true}
}
