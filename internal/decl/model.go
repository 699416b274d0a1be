package decl

import (
	"provcheck/internal/syntax"
	"provcheck/internal/token"
)

type Visibility uint8

const (
	VisUnspecified Visibility = iota
	VisPublic
	VisProtected
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisProtected:
		return "protected"
	case VisPrivate:
		return "private"
	default:
		return "unspecified"
	}
}

type Binding uint8

const (
	BindInstance Binding = iota
	BindStatic
)

func (b Binding) String() string {
	if b == BindStatic {
		return "static"
	}
	return "instance"
}

// ReturnShape classifies what a method returns.
type ReturnShape uint8

const (
	// ShapeAbsent: no declared type, but the body returns or yields a value.
	ShapeAbsent ReturnShape = iota
	ShapeArray
	ShapeIterable
	ShapeOther
	// ShapeNone: no declared type and nothing in the body produces a value.
	ShapeNone
)

func (s ReturnShape) String() string {
	switch s {
	case ShapeAbsent:
		return "absent"
	case ShapeArray:
		return "array"
	case ShapeIterable:
		return "iterable"
	case ShapeOther:
		return "other"
	case ShapeNone:
		return "none"
	}
	return "unknown"
}

// Accepted reports whether a provider may have this shape.
func (s ReturnShape) Accepted() bool {
	return s == ShapeAbsent || s == ShapeArray || s == ShapeIterable
}

// ThisUse summarises how a method body refers to $this.
type ThisUse uint8

const (
	ThisNone ThisUse = iota
	// ThisCallsOnly: every use has the form $this->name(...).
	ThisCallsOnly
	// ThisState: $this is read as a value or its properties are accessed.
	ThisState
)

func (u ThisUse) String() string {
	switch u {
	case ThisCallsOnly:
		return "calls"
	case ThisState:
		return "state"
	default:
		return "none"
	}
}

// Method is one method declaration. Token indices refer to File.Stream.
type Method struct {
	Name       string
	Line       uint32 // line of the "function" keyword
	StartLine  uint32
	EndLine    uint32
	Visibility Visibility
	Binding    Binding
	Abstract   bool
	ReturnType string // declared type as written, "" when absent
	Shape      ReturnShape
	HasReturn  bool
	This       ThisUse
	Doc        token.Trivia
	HasDoc     bool

	First     int // first token of the declaration: attribute, modifier or "function"
	Function  int
	NameTok   int
	VisTok    int // -1 without a visibility modifier
	Body      int // "{" of the body, -1 when there is none
	End       int // "}" of the body or the terminating ";"
	ThisCalls []int
}

// ClassScope is a class, interface, trait or enum with its methods in source order.
type ClassScope struct {
	Name      string
	Kind      token.Kind
	Line      uint32
	StartLine uint32
	EndLine   uint32
	Open      int
	Close     int
	Methods   []*Method
}

// Lookup returns the first method named exactly name. PHP rejects duplicate
// method names, so on invalid input the earliest declaration wins.
func (c *ClassScope) Lookup(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// File is the declaration index of one source file.
type File struct {
	Stream  *syntax.Stream
	Classes []*ClassScope
}

// Enclosing returns the innermost class and, if any, the method that contain
// token idx.
func (f *File) Enclosing(idx int) (*ClassScope, *Method) {
	var best *ClassScope
	for _, c := range f.Classes {
		if c.Open < idx && idx < c.Close && (best == nil || c.Open > best.Open) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	for _, m := range best.Methods {
		if m.First <= idx && idx <= m.End {
			return best, m
		}
	}
	return best, nil
}

// ClassOf returns the scope that declares m.
func (f *File) ClassOf(m *Method) *ClassScope {
	for _, c := range f.Classes {
		for _, cm := range c.Methods {
			if cm == m {
				return c
			}
		}
	}
	return nil
}
