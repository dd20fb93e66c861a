package scanner

import "strings"

type frame struct {
	ctx    Context
	parent *frame
	depth  int
}

// Stack is an immutable context stack. Push, Pop and Replace return new
// stacks that share their tail with the receiver, so keeping a copy of a
// Stack value is a complete snapshot.
type Stack struct {
	top *frame
}

func NewStack(bottom Context) Stack {
	return Stack{top: &frame{ctx: bottom, depth: 1}}
}

// Top returns the innermost context, or AtFirstLevel for the zero Stack.
func (s Stack) Top() Context {
	if s.top == nil {
		return ctx(AtFirstLevel)
	}
	return s.top.ctx
}

func (s Stack) Depth() int {
	if s.top == nil {
		return 0
	}
	return s.top.depth
}

func (s Stack) Push(c Context) Stack {
	return Stack{top: &frame{ctx: c, parent: s.top, depth: s.Depth() + 1}}
}

// Pop removes the top context. It refuses to remove the bottom entry and
// reports false instead.
func (s Stack) Pop() (Stack, bool) {
	if s.top == nil || s.top.parent == nil {
		return s, false
	}
	return Stack{top: s.top.parent}, true
}

func (s Stack) Replace(c Context) Stack {
	if s.top == nil {
		return NewStack(c)
	}
	return Stack{top: &frame{ctx: c, parent: s.top.parent, depth: s.top.depth}}
}

// Contexts lists the stack from bottom to top.
func (s Stack) Contexts() []Context {
	out := make([]Context, s.Depth())
	for f := s.top; f != nil; f = f.parent {
		out[f.depth-1] = f.ctx
	}
	return out
}

func (s Stack) Kinds() []Kind {
	ctxs := s.Contexts()
	out := make([]Kind, len(ctxs))
	for i, c := range ctxs {
		out[i] = c.Kind
	}
	return out
}

func (s Stack) Equal(o Stack) bool {
	a, b := s.top, o.top
	for a != nil && b != nil {
		if a == b {
			return true
		}
		if a.ctx != b.ctx || a.depth != b.depth {
			return false
		}
		a, b = a.parent, b.parent
	}
	return a == nil && b == nil
}

func (s Stack) String() string {
	ctxs := s.Contexts()
	parts := make([]string, len(ctxs))
	for i, c := range ctxs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " > ")
}
