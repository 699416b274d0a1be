// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"provcheck/internal/annot"
	"provcheck/internal/decl"
	"provcheck/internal/token"
)

// CheckIndexInvariants verifies that a declaration index is consistent with
// its token stream:
//  1. class and method line ranges are ordered and nested;
//  2. every method lies between the braces of its class, in source order;
//  3. the name token follows "function" and a body "{" matches End.
func CheckIndexInvariants(f *decl.File) error {
	if f == nil || f.Stream == nil {
		return fmt.Errorf("nil index or stream")
	}
	s := f.Stream
	n := s.Len()
	for _, c := range f.Classes {
		if c.Name == "" {
			return fmt.Errorf("class at line %d has no name", c.Line)
		}
		if !(c.StartLine <= c.Line && c.Line <= c.EndLine) {
			return fmt.Errorf("class %s: lines %d <= %d <= %d do not hold", c.Name, c.StartLine, c.Line, c.EndLine)
		}
		if c.Open < 0 || c.Close >= n || c.Open >= c.Close {
			return fmt.Errorf("class %s: bad braces %d..%d", c.Name, c.Open, c.Close)
		}
		if s.Match(c.Open) != c.Close {
			return fmt.Errorf("class %s: brace %d does not match %d", c.Name, c.Open, c.Close)
		}

		prev := c.Open
		for _, m := range c.Methods {
			if m.First <= prev || m.End >= c.Close {
				return fmt.Errorf("%s::%s: tokens %d..%d outside or out of order in %d..%d", c.Name, m.Name, m.First, m.End, prev, c.Close)
			}
			prev = m.End
			if !(c.StartLine <= m.StartLine && m.StartLine <= m.Line && m.Line <= m.EndLine && m.EndLine <= c.EndLine) {
				return fmt.Errorf("%s::%s: lines %d/%d/%d not within %d..%d", c.Name, m.Name, m.StartLine, m.Line, m.EndLine, c.StartLine, c.EndLine)
			}
			if s.Kind(m.Function) != token.KwFunction || s.Line(m.Function) != m.Line {
				return fmt.Errorf("%s::%s: declaration line %d is not the function keyword", c.Name, m.Name, m.Line)
			}
			if m.NameTok <= m.Function || s.At(m.NameTok).Text != m.Name {
				return fmt.Errorf("%s::%s: name token %d is wrong", c.Name, m.Name, m.NameTok)
			}
			if m.Body >= 0 && s.Match(m.Body) != m.End {
				return fmt.Errorf("%s::%s: body %d does not end at %d", c.Name, m.Name, m.Body, m.End)
			}
			if m.Body < 0 && m.HasReturn {
				return fmt.Errorf("%s::%s: bodiless method has a return statement", c.Name, m.Name)
			}
		}
	}
	return nil
}

// CheckTagInvariants verifies that every tag belongs to a test method that
// carries a doc block, and that its line lies before the declaration.
func CheckTagInvariants(f *decl.File, tags []annot.Tag) error {
	for i, t := range tags {
		if t.Test == nil || t.Class == nil {
			return fmt.Errorf("tag %d has no owner", i)
		}
		if !t.Test.HasDoc {
			return fmt.Errorf("tag %d on %s has no doc block", i, t.Test.Name)
		}
		if f.ClassOf(t.Test) != t.Class {
			return fmt.Errorf("tag %d: %s is not declared in %s", i, t.Test.Name, t.Class.Name)
		}
		if t.Line == 0 || t.Line > t.Test.Line {
			return fmt.Errorf("tag %d at line %d is not above %s (line %d)", i, t.Line, t.Test.Name, t.Test.Line)
		}
		if t.Malformed && t.Reference != "" {
			return fmt.Errorf("tag %d is malformed but has reference %q", i, t.Reference)
		}
	}
	return nil
}
