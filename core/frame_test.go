package slight

import "testing"

func lookupNum(t *testing.T, s *Stack, name string) float64 {
	t.Helper()
	v, ok := s.Lookup(name)
	if !ok {
		t.Fatalf("%s is not bound", name)
	}
	return v.Lit.Num
}

func TestStackInnermostWins(t *testing.T) {
	var s Stack
	s.Push("x", Num(1))
	s.Push("y", Num(2))
	s.Push("x", Num(3))
	if got := lookupNum(t, &s, "x"); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	s.Pop()
	if got := lookupNum(t, &s, "x"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := lookupNum(t, &s, "y"); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestStackBindEmpty(t *testing.T) {
	var s Stack
	restore := s.Bind("x", Num(1))
	if s.Depth() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Depth())
	}
	restore()
	if s.Depth() != 0 {
		t.Fatalf("expected 0 frames, got %d", s.Depth())
	}
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("x should be unbound")
	}
}

func TestStackBindMergesAndRestores(t *testing.T) {
	var s Stack
	s.Push("x", Num(1))

	restoreX := s.Bind("x", Num(2))
	restoreY := s.Bind("y", Num(3))
	if s.Depth() != 1 {
		t.Fatalf("Bind should not push, got %d frames", s.Depth())
	}
	if got := lookupNum(t, &s, "x"); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}

	// a frame left behind by a failed call is dropped on restore
	s.Push("z", Num(4))
	restoreY()
	if s.Depth() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Depth())
	}
	if _, ok := s.Lookup("y"); ok {
		t.Fatal("y should be unbound")
	}
	restoreX()
	if got := lookupNum(t, &s, "x"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestStackReset(t *testing.T) {
	var s Stack
	s.Push("a", Num(1))
	s.Push("b", Num(2))
	s.Reset()
	if s.Depth() != 0 {
		t.Fatalf("expected empty stack, got %d", s.Depth())
	}
}
