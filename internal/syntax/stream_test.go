package syntax

import (
	"errors"
	"testing"

	"provcheck/internal/source"
	"provcheck/internal/token"
)

func build(t *testing.T, src string) (*Stream, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	return Build(fs.Get(id))
}

func mustBuild(t *testing.T, src string) *Stream {
	t.Helper()
	s, err := build(t, src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

func indexOf(s *Stream, kind token.Kind, text string) int {
	for i, tok := range s.Tokens {
		if tok.Kind == kind && (text == "" || tok.Text == text) {
			return i
		}
	}
	return -1
}

func TestBuildMatchesBrackets(t *testing.T) {
	s := mustBuild(t, "<?php\nclass a {\n    function f($x = [1, 2]) { return ($x); }\n}\n")
	open := indexOf(s, token.LBrace, "")
	if open < 0 {
		t.Fatal("no brace")
	}
	closeIdx := s.Match(open)
	if s.Kind(closeIdx) != token.RBrace || s.Match(closeIdx) != open {
		t.Fatalf("class braces are not paired: %d -> %d", open, closeIdx)
	}
	if s.Line(closeIdx) != 4 {
		t.Fatalf("closing brace line = %d, want 4", s.Line(closeIdx))
	}
	lb := indexOf(s, token.LBracket, "")
	if s.Kind(s.Match(lb)) != token.RBracket {
		t.Fatal("array brackets are not paired")
	}
	if s.Kind(s.Len()-1) != token.EOF {
		t.Fatal("stream must end with EOF")
	}
}

func TestBuildRejectsUnbalancedInput(t *testing.T) {
	cases := map[string]string{
		"unclosed brace":  "<?php\nclass a {\n",
		"stray closer":    "<?php\n}\n",
		"mismatched pair": "<?php\nf(];\n",
		"unclosed string": "<?php\n$a = 'abc;\n",
		"unclosed doc":    "<?php\n/** abc\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := build(t, src)
			if !errors.Is(err, ErrUnparsable) {
				t.Fatalf("expected ErrUnparsable, got %v", err)
			}
			var se *Error
			if !errors.As(err, &se) {
				t.Fatalf("expected *Error, got %T", err)
			}
		})
	}
}

func TestBuildToleratesStrayBytes(t *testing.T) {
	if _, err := build(t, "<?php\n$a = 0x;\n$b = \x01;\n"); err != nil {
		t.Fatalf("stray bytes must not make a file unparsable: %v", err)
	}
}

func TestAttributeGroupClosesWithBracket(t *testing.T) {
	s := mustBuild(t, "<?php\n#[Attr([1])]\nfunction f() {}\n")
	attr := indexOf(s, token.AttrOpen, "")
	if attr < 0 {
		t.Fatal("no attribute opener")
	}
	if s.Kind(s.Match(attr)) != token.RBracket {
		t.Fatal("attribute group must close with ]")
	}
}

func TestEnclosingAndSkip(t *testing.T) {
	s := mustBuild(t, "<?php\nclass a {\n    function f() { $x = (1); }\n    function g() {}\n}\n")
	classOpen := indexOf(s, token.LBrace, "")
	x := indexOf(s, token.Variable, "$x")
	inner := s.Enclosing(x)
	if inner <= classOpen || s.Kind(inner) != token.LBrace {
		t.Fatalf("innermost brace of $x = %d", inner)
	}
	if s.Enclosing(inner) != classOpen {
		t.Fatalf("method body should be inside the class body")
	}
	g := indexOf(s, token.Ident, "g")
	if s.Enclosing(g) != classOpen {
		t.Fatalf("g is directly inside the class body")
	}
	if s.Enclosing(classOpen) != -1 {
		t.Fatal("class body is at file level")
	}
	if s.Skip(inner) != s.Match(inner)+1 {
		t.Fatal("Skip must jump over the whole group")
	}
	if s.Skip(x) != x+1 {
		t.Fatal("Skip on a plain token advances by one")
	}
}

func TestAtOutOfRangeIsEOF(t *testing.T) {
	s := mustBuild(t, "<?php\n")
	if s.At(-1).Kind != token.EOF || s.At(1000).Kind != token.EOF {
		t.Fatal("out of range access must yield EOF")
	}
	if s.Match(1000) != -1 || s.Line(1000) != 0 {
		t.Fatal("out of range Match/Line")
	}
}
