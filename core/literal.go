package slight

import (
	"errors"
	"strconv"
)

type LiteralKind int

const (
	LitNum LiteralKind = iota
	LitText
	LitNil
)

// Literal is a self-evaluating value: a float64, a text, or nil.
type Literal struct {
	Kind LiteralKind
	Num  float64
	Text string // raw interior of the quoted spelling, escapes undecoded
}

func NumLit(f float64) Literal { return Literal{Kind: LitNum, Num: f} }
func TextLit(s string) Literal { return Literal{Kind: LitText, Text: s} }
func NilLit() Literal { return Literal{Kind: LitNil} }

// Equal compares literals structurally. Numbers use exact float equality.
func (l Literal) Equal(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LitNum:
		return l.Num == o.Num
	case LitText:
		return l.Text == o.Text
	default:
		return true
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case LitNum:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LitText:
		return `"` + l.Text + `"`
	default:
		return "Φ"
	}
}

// KindName names the literal kind for diagnostics.
func (l Literal) KindName() string {
	switch l.Kind {
	case LitNum:
		return "Number"
	case LitText:
		return "Text"
	default:
		return "Nil"
	}
}

// classifyLiteral tries number, string and nil spellings in that order.
func classifyLiteral(s string) (Literal, bool) {
	if lit, ok := numLiteral(s); ok {
		return lit, true
	}
	if lit, ok := textLiteral(s); ok {
		return lit, true
	}
	return nilLiteral(s)
}

func numLiteral(s string) (Literal, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Literal{}, false
	}
	return NumLit(f), true
}

// textLiteral accepts a buffer bounded by double quotes. A backslash escapes
// the following byte; an unescaped interior quote or a trailing lone
// backslash rejects the buffer.
func textLiteral(s string) (Literal, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return Literal{}, false
	}
	last := len(s) - 1
	for i := 1; i < last; i++ {
		switch s[i] {
		case '"':
			return Literal{}, false
		case '\\':
			if i+1 >= last {
				return Literal{}, false
			}
			i++
		}
	}
	return TextLit(s[1:last]), true
}

func nilLiteral(s string) (Literal, bool) {
	if s == "Φ" || s == "nil" {
		return NilLit(), true
	}
	return Literal{}, false
}
