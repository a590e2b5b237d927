package slight

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenKind int

const (
	TokOpen TokenKind = iota
	TokClose
	TokForm
	TokLiteral
	TokIdent
)

// Token is one lexeme with the position of its first rune.
type Token struct {
	Kind TokenKind
	Form Form    // TokForm
	Lit  Literal // TokLiteral
	Text string  // source spelling
	Pos  Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokOpen:
		return "'('"
	case TokClose:
		return "')'"
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

type lexer struct {
	buf      strings.Builder
	bufStart Position
	pos      Position // position of the next rune
	inString bool
	tokens   []Token
}

// Tokenize splits source text into tokens.
func Tokenize(src string) ([]Token, error) {
	lx := &lexer{pos: Position{Line: 1, Col: 1}}
	for _, ch := range src {
		if err := lx.step(ch); err != nil {
			return nil, err
		}
	}
	if err := lx.flush(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func (lx *lexer) step(ch rune) error {
	at := lx.pos
	if ch == '\n' {
		lx.pos.Line++
		lx.pos.Col = 1
	} else {
		lx.pos.Col++
	}

	switch {
	case unicode.IsSpace(ch) && !lx.inString:
		return lx.flush()
	case ch == '(' || ch == ')':
		if err := lx.flush(); err != nil {
			return err
		}
		kind := TokOpen
		if ch == ')' {
			kind = TokClose
		}
		lx.tokens = append(lx.tokens, Token{Kind: kind, Text: string(ch), Pos: at})
		return nil
	}

	if ch == '"' {
		lx.inString = !lx.inString
	}
	if lx.buf.Len() == 0 {
		lx.bufStart = at
	}
	lx.buf.WriteRune(ch)
	return nil
}

// flush classifies the buffer: form, then literal, then identifier.
func (lx *lexer) flush() error {
	text := lx.buf.String()
	lx.buf.Reset()
	if text == "" {
		return nil
	}
	tok := Token{Text: text, Pos: lx.bufStart}
	if f, ok := formSpellings[text]; ok {
		tok.Kind = TokForm
		tok.Form = f
	} else if lit, ok := classifyLiteral(text); ok {
		tok.Kind = TokLiteral
		tok.Lit = lit
	} else if !strings.Contains(text, `"`) {
		tok.Kind = TokIdent
	} else {
		return &LexError{Pos: lx.bufStart, Text: text}
	}
	lx.tokens = append(lx.tokens, tok)
	return nil
}
