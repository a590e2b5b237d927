package slight

import (
	"errors"
	"testing"
)

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("(δ x\n  5)")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind TokenKind
		pos  Position
	}{
		{TokOpen, Position{1, 1}},
		{TokForm, Position{1, 2}},
		{TokIdent, Position{1, 4}},
		{TokLiteral, Position{2, 3}},
		{TokClose, Position{2, 4}},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Pos != w.pos {
			t.Fatalf("token %d: expected kind %d at %s, got kind %d at %s", i, w.kind, w.pos, tokens[i].Kind, tokens[i].Pos)
		}
	}
}

func TestTokenizeFormAliases(t *testing.T) {
	for _, tc := range []struct {
		input string
		form  Form
	}{
		{"δ", FormDef},
		{"def", FormDef},
		{"λ", FormLambda},
		{"lambda", FormLambda},
		{"->", FormArrow},
		{"ε", FormExternal},
		{"external", FormExternal},
		{"ι", FormId},
		{"id", FormId},
		{"_", FormIgnore},
		{"Ω", FormNil},
		{"nih", FormNil},
	} {
		tokens, err := Tokenize(tc.input)
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}
		if len(tokens) != 1 || tokens[0].Kind != TokForm || tokens[0].Form != tc.form {
			t.Fatalf("%q: expected form %s, got %v", tc.input, tc.form, tokens)
		}
	}
}

func TestTokenizeLiterals(t *testing.T) {
	for _, tc := range []struct {
		input string
		lit   Literal
	}{
		{"42", NumLit(42)},
		{"-7", NumLit(-7)},
		{"3.25", NumLit(3.25)},
		{"1e3", NumLit(1000)},
		{`"hello"`, TextLit("hello")},
		{`""`, TextLit("")},
		{`"a b  c"`, TextLit("a b  c")},
		{`"say \"hi\""`, TextLit(`say \"hi\"`)},
		{"nil", NilLit()},
		{"Φ", NilLit()},
	} {
		tokens, err := Tokenize(tc.input)
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}
		if len(tokens) != 1 || tokens[0].Kind != TokLiteral {
			t.Fatalf("%q: expected one literal, got %v", tc.input, tokens)
		}
		if !tokens[0].Lit.Equal(tc.lit) {
			t.Fatalf("%q: expected %s, got %s", tc.input, tc.lit, tokens[0].Lit)
		}
	}
}

func TestTokenizeIdentifiers(t *testing.T) {
	tokens, err := Tokenize("foo bar-baz x1 +")
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"foo", "bar-baz", "x1", "+"}
	if len(tokens) != len(names) {
		t.Fatalf("expected %d tokens, got %v", len(names), tokens)
	}
	for i, name := range names {
		if tokens[i].Kind != TokIdent || tokens[i].Text != name {
			t.Fatalf("token %d: expected identifier %s, got %v", i, name, tokens[i])
		}
	}
}

func TestTokenizeStringKeepsParensAndSpaces(t *testing.T) {
	tokens, err := Tokenize(`(f "a b" c)`)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %v", tokens)
	}
	if tokens[2].Kind != TokLiteral || tokens[2].Lit.Text != "a b" {
		t.Fatalf("expected text literal \"a b\", got %v", tokens[2])
	}
}

func TestTokenizeLexErrors(t *testing.T) {
	for _, input := range []string{
		`a"b`,
		`"ab\"`,
		`"a"b"`,
		`"open`,
	} {
		_, err := Tokenize(input)
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: expected LexError, got %v", input, err)
		}
		if lexErr.Text != input {
			t.Fatalf("%q: error should name the buffer, got %q", input, lexErr.Text)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := Tokenize("  \n\t ")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", tokens)
	}
}
