package slight

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	n, err := Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return n
}

func TestParseAtoms(t *testing.T) {
	if n := mustParse(t, "42"); n.Kind != NodeLiteral || n.Lit.Num != 42 {
		t.Fatalf("expected number 42, got %v", n)
	}
	if n := mustParse(t, "foo"); !n.IsVar("foo") {
		t.Fatalf("expected variable foo, got %v", n)
	}
	if n := mustParse(t, "λ"); !n.IsForm(FormLambda) {
		t.Fatalf("expected bare λ, got %v", n)
	}
}

func TestParseEmptyIsNil(t *testing.T) {
	for _, input := range []string{"", "   ", "\n"} {
		n := mustParse(t, input)
		if n.Kind != NodeLiteral || n.Lit.Kind != LitNil {
			t.Fatalf("%q: expected nil literal, got %v", input, n)
		}
	}
}

func TestParseCurryFlattening(t *testing.T) {
	for _, tc := range []struct {
		nested, flat string
	}{
		{"((f a) b)", "(f a b)"},
		{"(((f a) b) c)", "(f a b c)"},
		{"((λ x x) 7)", "(λ x x 7)"},
		{"((f) a)", "(f a)"},
	} {
		a, b := mustParse(t, tc.nested), mustParse(t, tc.flat)
		if !NodesEqual(a, b) {
			t.Fatalf("expected %s to parse like %s, got %s", tc.nested, tc.flat, a)
		}
	}
}

func TestParseLiteralHeadGetsId(t *testing.T) {
	n := mustParse(t, `(5 "x" y)`)
	want := Apply(FormNode(FormId), Num(5), Text("x"), Var("y"))
	if !NodesEqual(n, want) {
		t.Fatalf("expected %s, got %s", want, n)
	}
}

func TestParseRender(t *testing.T) {
	for _, tc := range []struct {
		input, want string
	}{
		{"(δ x 5 (ι x))", "(δ x 5 (ι x))"},
		{"(def x 5 (id x))", "(δ x 5 (ι x))"},
		{"(lambda _ nil 1)", "(λ _ Φ 1)"},
		{`(f "a b" 2.5)`, `(f "a b" 2.5)`},
		{"(nih)", "(Ω)"},
	} {
		if got := mustParse(t, tc.input).String(); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestParseIncomplete(t *testing.T) {
	for _, input := range []string{"(", "(f a", "(f (g x)", "(δ x\n5"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("%q: expected error", input)
		}
		if !IsIncomplete(err) {
			t.Fatalf("%q: expected incomplete error, got %v", input, err)
		}
	}
}

func TestParseUnclosedNamesOpenParen(t *testing.T) {
	_, err := Parse("(f\n  (g x)")
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Pos != (Position{1, 1}) {
		t.Fatalf("expected position 1:1, got %s", se.Pos)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		input, contains string
	}{
		{")", "unexpected ')'"},
		{"()", "empty application"},
		{"(f ())", "empty application"},
		{"a b", `unexpected "b" after expression`},
		{"(f a))", "unexpected ')' after expression"},
	} {
		_, err := Parse(tc.input)
		if err == nil {
			t.Fatalf("%q: expected error", tc.input)
		}
		if IsIncomplete(err) {
			t.Fatalf("%q: error should not be incomplete: %v", tc.input, err)
		}
		if !strings.Contains(err.Error(), tc.contains) {
			t.Fatalf("%q: expected error containing %q, got %v", tc.input, tc.contains, err)
		}
	}
}

func TestParseAll(t *testing.T) {
	nodes, err := ParseAll("(δ x 1 x)\n42 foo\n(f\n  a)")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"(δ x 1 x)", "42", "foo", "(f a)"}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, w := range want {
		if nodes[i].String() != w {
			t.Fatalf("node %d: expected %s, got %s", i, w, nodes[i])
		}
	}

	nodes, err = ParseAll("  ")
	if err != nil || len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %v, %v", nodes, err)
	}
	if _, err := ParseAll("1 (f"); !IsIncomplete(err) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
}
