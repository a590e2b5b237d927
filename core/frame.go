package slight

// Frame is one scope's bindings.
type Frame map[string]*Node

// Stack is the evaluator's scope chain. The last frame is the innermost.
type Stack struct {
	frames []Frame
}

// Push enters a new scope holding a single binding.
func (s *Stack) Push(name string, value *Node) {
	s.frames = append(s.frames, Frame{name: value})
}

// Pop leaves the innermost scope.
func (s *Stack) Pop() {
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Bind merges a binding into the innermost frame, creating one on an empty
// stack. The returned func restores the state from before the call.
func (s *Stack) Bind(name string, value *Node) (restore func()) {
	if len(s.frames) == 0 {
		s.Push(name, value)
		depth := len(s.frames)
		return func() { s.truncate(depth - 1) }
	}
	depth := len(s.frames)
	frame := s.frames[depth-1]
	prev, had := frame[name]
	frame[name] = value
	return func() {
		s.truncate(depth)
		if had {
			frame[name] = prev
		} else {
			delete(frame, name)
		}
	}
}

// Lookup resolves name in the innermost frame that binds it.
func (s *Stack) Lookup(name string) (*Node, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Depth is the number of frames.
func (s *Stack) Depth() int { return len(s.frames) }

// Reset drops every frame.
func (s *Stack) Reset() { s.truncate(0) }

func (s *Stack) truncate(depth int) {
	for i := depth; i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	if depth < len(s.frames) {
		s.frames = s.frames[:depth]
	}
}
