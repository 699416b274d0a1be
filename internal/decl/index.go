package decl

import (
	"strings"

	"provcheck/internal/syntax"
	"provcheck/internal/token"
)

// Options carries the type names that count as array-like or iterable-like
// return types. Matching is case-insensitive.
type Options struct {
	ArrayTypes    []string
	IterableTypes []string
}

type indexer struct {
	s    *syntax.Stream
	opts Options
	out  *File
}

// Index walks s once and builds the class scopes in source order. Anonymous
// classes get the name "class@anonymous".
func Index(s *syntax.Stream, opts Options) *File {
	ix := &indexer{s: s, opts: opts, out: &File{Stream: s}}
	for i := 0; i < s.Len(); i++ {
		if !s.Kind(i).IsClassLike() || !ix.startsDeclaration(i) {
			continue
		}
		if c := ix.classAt(i); c != nil {
			ix.out.Classes = append(ix.out.Classes, c)
		}
	}
	return ix.out
}

// startsDeclaration filters out Foo::class, $x->class and methods named
// like class keywords.
func (ix *indexer) startsDeclaration(i int) bool {
	switch ix.s.Kind(i - 1) {
	case token.DoubleColon, token.Arrow, token.NullsafeArrow, token.KwFunction, token.KwConst:
		return false
	}
	if ix.s.Kind(i) == token.KwEnum && !ix.s.At(i+1).IsName() {
		return false
	}
	return true
}

func (ix *indexer) classAt(i int) *ClassScope {
	s := ix.s
	c := &ClassScope{Kind: s.Kind(i), Line: s.Line(i), StartLine: s.Line(i)}
	if isAnonymousClass(s, i) {
		c.Name = "class@anonymous"
	} else if next := s.At(i + 1); next.IsName() {
		c.Name = next.Text
	} else {
		return nil
	}

	open := ix.findBodyOpen(i)
	if open < 0 {
		return nil
	}
	c.Open, c.Close = open, s.Match(open)
	c.EndLine = s.Line(c.Close)

	for j := open + 1; j < c.Close; j = s.Skip(j) {
		if s.Kind(j) != token.KwFunction {
			continue
		}
		if m := ix.methodAt(j); m != nil {
			c.Methods = append(c.Methods, m)
			j = m.End
		}
	}
	return c
}

// isAnonymousClass reports whether the class keyword at i belongs to a
// "new class" expression. Attribute groups and the readonly and final
// modifiers may stand between the two.
func isAnonymousClass(s *syntax.Stream, i int) bool {
	for b := i - 1; b >= 0; b-- {
		switch s.Kind(b) {
		case token.KwNew:
			return true
		case token.KwReadonly, token.KwFinal:
		case token.RBracket:
			open := s.Match(b)
			if open < 0 || s.Kind(open) != token.AttrOpen {
				return false
			}
			b = open
		default:
			return false
		}
	}
	return false
}

// findBodyOpen returns the first "{" after i outside any bracket group, or -1
// when a ";" or the end of input comes first.
func (ix *indexer) findBodyOpen(i int) int {
	s := ix.s
	for j := i + 1; j < s.Len(); j = s.Skip(j) {
		switch s.Kind(j) {
		case token.LBrace:
			return j
		case token.Semicolon, token.RBrace, token.EOF:
			return -1
		}
	}
	return -1
}

func (ix *indexer) methodAt(fn int) *Method {
	s := ix.s
	m := &Method{Function: fn, Line: s.Line(fn), VisTok: -1, Body: -1}

	k := fn + 1
	if s.Kind(k) == token.Amp {
		k++
	}
	if !s.At(k).IsName() || s.Kind(k+1) != token.LParen {
		return nil
	}
	m.Name, m.NameTok = s.At(k).Text, k

	ix.readModifiers(m)

	t := s.Skip(k + 1)
	if s.Kind(t) == token.Colon {
		var b strings.Builder
		for t++; t < s.Len(); t++ {
			kind := s.Kind(t)
			if kind == token.LBrace || kind == token.Semicolon || kind == token.RBrace || kind == token.EOF {
				break
			}
			b.WriteString(s.At(t).Text)
		}
		m.ReturnType = b.String()
	}

	switch s.Kind(t) {
	case token.LBrace:
		m.Body, m.End = t, s.Match(t)
		ix.scanBody(m)
	case token.Semicolon:
		m.End = t
	default:
		return nil
	}
	m.StartLine, m.EndLine = s.Line(m.First), s.Line(m.End)

	if m.ReturnType != "" {
		m.Shape = ix.classify(m.ReturnType)
	} else if m.HasReturn {
		m.Shape = ShapeAbsent
	} else {
		m.Shape = ShapeNone
	}
	return m
}

// readModifiers walks back from "function" over modifiers and attribute
// groups, and picks up the doc block.
func (ix *indexer) readModifiers(m *Method) {
	s := ix.s
	b := m.Function - 1
	for ; b >= 0 && s.Kind(b).IsModifier(); b-- {
		switch s.Kind(b) {
		case token.KwPublic:
			m.Visibility, m.VisTok = VisPublic, b
		case token.KwProtected:
			m.Visibility, m.VisTok = VisProtected, b
		case token.KwPrivate:
			m.Visibility, m.VisTok = VisPrivate, b
		case token.KwStatic:
			m.Binding = BindStatic
		case token.KwAbstract:
			m.Abstract = true
		}
	}
	for b >= 0 && s.Kind(b) == token.RBracket {
		open := s.Match(b)
		if open < 0 || s.Kind(open) != token.AttrOpen {
			break
		}
		b = open - 1
	}
	m.First = b + 1

	for t := m.First; t <= m.Function; t++ {
		if doc, ok := s.At(t).DocBlock(); ok {
			m.Doc, m.HasDoc = doc, true
		}
	}
}

// scanBody records returns, yields and $this uses. Returns inside nested
// closures belong to the closure; $this inside them still refers to the
// method's object. Anonymous class bodies are skipped entirely.
func (ix *indexer) scanBody(m *Method) {
	s := ix.s
	nestedUntil := -1
	calls, state := false, false

	for t := m.Body + 1; t < m.End; t++ {
		tok := s.At(t)
		switch tok.Kind {
		case token.KwFunction:
			if open := ix.findBodyOpen(t); open > 0 && s.Match(open) > nestedUntil {
				nestedUntil = s.Match(open)
			}
		case token.KwClass:
			if isAnonymousClass(s, t) {
				if open := ix.findBodyOpen(t); open > 0 {
					t = s.Match(open)
				}
			}
		case token.KwReturn:
			if t > nestedUntil && s.Kind(t+1) != token.Semicolon {
				m.HasReturn = true
			}
		case token.KwYield:
			if t > nestedUntil {
				m.HasReturn = true
			}
		case token.Variable:
			if tok.Text != "$this" {
				continue
			}
			if isCallOnThis(s, t) {
				calls = true
				m.ThisCalls = append(m.ThisCalls, t)
			} else {
				state = true
			}
		case token.StringLit:
			if interpolates(tok.Text) && strings.Contains(tok.Text, "$this") {
				state = true
			}
		}
	}

	switch {
	case state:
		m.This = ThisState
	case calls:
		m.This = ThisCallsOnly
	}
}

// isCallOnThis matches $this->name( and $this?->name(.
func isCallOnThis(s *syntax.Stream, t int) bool {
	arrow := s.Kind(t + 1)
	return (arrow == token.Arrow || arrow == token.NullsafeArrow) &&
		s.At(t+2).IsName() &&
		s.Kind(t+3) == token.LParen
}

// interpolates reports whether a string literal expands variables:
// double-quoted, backtick and heredoc literals do, single-quoted and nowdoc
// literals do not.
func interpolates(lit string) bool {
	lit = strings.TrimPrefix(strings.TrimPrefix(lit, "b"), "B")
	switch {
	case strings.HasPrefix(lit, "<<<"):
		return !strings.HasPrefix(strings.TrimLeft(lit[3:], " \t"), "'")
	case strings.HasPrefix(lit, "'"):
		return false
	}
	return true
}

// classify maps a declared return type onto a ReturnShape. A leading "?" and
// "null" union members are ignored; a union is array-like or iterable-like
// only if every member is.
func (ix *indexer) classify(typ string) ReturnShape {
	typ = strings.TrimPrefix(typ, "?")
	if strings.Contains(typ, "&") {
		return ShapeOther
	}
	shape := ShapeNone
	for _, member := range strings.Split(typ, "|") {
		member = strings.Trim(member, "()")
		if strings.EqualFold(member, "null") {
			continue
		}
		var ms ReturnShape
		switch {
		case containsFold(ix.opts.ArrayTypes, member):
			ms = ShapeArray
		case containsFold(ix.opts.IterableTypes, member):
			ms = ShapeIterable
		default:
			return ShapeOther
		}
		if shape == ShapeNone || (shape == ShapeArray && ms == ShapeIterable) {
			shape = ms
		}
	}
	if shape == ShapeNone {
		return ShapeOther
	}
	return shape
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
