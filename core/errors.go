package slight

import (
	"errors"
	"fmt"
)

// Evaluation failures wrap one of these so callers can match with errors.Is.
var (
	ErrUndefined       = errors.New("undefined variable")
	ErrArity           = errors.New("arity mismatch")
	ErrPatternMismatch = errors.New("pattern mismatch")
	ErrNotImplemented  = errors.New("not implemented")
	ErrInvalidBinder   = errors.New("invalid binder")
	ErrCannotEvaluate  = errors.New("cannot evaluate")
	ErrDepthExceeded   = errors.New("maximum evaluation depth exceeded")
)

// Position is a 1-based source location.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// LexError is returned when a token buffer fits no token class.
type LexError struct {
	Pos  Position
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: cannot tokenize %s", e.Pos, e.Text)
}

// SyntaxError is returned by the parser.
type SyntaxError struct {
	Pos        Position
	Msg        string
	incomplete bool
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// Incomplete reports whether the input ended inside an open application.
func (e *SyntaxError) Incomplete() bool { return e.incomplete }

// IsIncomplete reports whether err means more input could complete the parse.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.incomplete
}
