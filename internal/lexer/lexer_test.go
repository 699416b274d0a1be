package lexer_test

import (
	"strings"
	"testing"

	"provcheck/internal/lexer"
	"provcheck/internal/source"
	"provcheck/internal/token"
)

type report struct {
	kind string
	span source.Span
	msg  string
}

// testReporter collects everything the lexer reports.
type testReporter struct {
	reports []report
}

func (r *testReporter) Report(kind string, span source.Span, msg string) {
	r.reports = append(r.reports, report{kind: kind, span: span, msg: msg})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(input))
	file := fs.Get(id)
	rep := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: rep}), rep
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v (%q), want %v", input, i, got[i], toks[i].Text, want[i])
		}
	}
	if len(rep.reports) != 0 {
		t.Fatalf("%q: unexpected reports %+v", input, rep.reports)
	}
	return toks
}

func TestOpenTagAndInlineHTML(t *testing.T) {
	toks := expectKinds(t, "<html>\n<?php echo 1; ?>\nrest",
		token.InlineHTML, token.OpenTag, token.Ident, token.IntLit, token.Semicolon, token.CloseTag, token.InlineHTML)
	if toks[0].Text != "<html>\n" {
		t.Fatalf("inline html text %q", toks[0].Text)
	}
	if toks[5].Text != "?>\n" {
		t.Fatalf("close tag should own one newline, got %q", toks[5].Text)
	}
}

func TestOpenTagCaseInsensitive(t *testing.T) {
	expectKinds(t, "<?PHP $a;", token.OpenTag, token.Variable, token.Semicolon)
}

func TestClassSkeleton(t *testing.T) {
	src := `<?php
final class FooTest extends TestCase
{
    public static function provideData(): iterable
    {
        yield [1];
    }
}`
	expectKinds(t, src,
		token.OpenTag,
		token.KwFinal, token.KwClass, token.Ident, token.KwExtends, token.Ident,
		token.LBrace,
		token.KwPublic, token.KwStatic, token.KwFunction, token.Ident, token.LParen, token.RParen, token.Colon, token.Ident,
		token.LBrace,
		token.KwYield, token.LBracket, token.IntLit, token.RBracket, token.Semicolon,
		token.RBrace,
		token.RBrace,
	)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks := expectKinds(t, "<?php PUBLIC Function", token.OpenTag, token.KwPublic, token.KwFunction)
	if toks[1].Text != "PUBLIC" {
		t.Fatalf("text must keep source casing, got %q", toks[1].Text)
	}
}

func TestQualifiedNames(t *testing.T) {
	toks := expectKinds(t, `<?php \Generator Foo\Bar\Baz \`,
		token.OpenTag, token.Ident, token.Ident, token.Backslash)
	if toks[1].Text != `\Generator` || toks[2].Text != `Foo\Bar\Baz` {
		t.Fatalf("unexpected names %q %q", toks[1].Text, toks[2].Text)
	}
}

func TestVariablesAndThis(t *testing.T) {
	toks := expectKinds(t, "<?php $this->foo(); static::bar(); $x?->y;",
		token.OpenTag,
		token.Variable, token.Arrow, token.Ident, token.LParen, token.RParen, token.Semicolon,
		token.KwStatic, token.DoubleColon, token.Ident, token.LParen, token.RParen, token.Semicolon,
		token.Variable, token.NullsafeArrow, token.Ident, token.Semicolon,
	)
	if toks[1].Text != "$this" {
		t.Fatalf("got %q", toks[1].Text)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0x1F", token.IntLit},
		{"0b101", token.IntLit},
		{"0o17", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
	}
	for _, tc := range cases {
		toks := expectKinds(t, "<?php "+tc.in, token.OpenTag, tc.kind)
		if toks[1].Text != tc.in {
			t.Errorf("%q: text %q", tc.in, toks[1].Text)
		}
	}
}

func TestBadNumberPrefix(t *testing.T) {
	lx, rep := makeTestLexer("<?php 0x;")
	toks := lx.All()
	if toks[1].Kind != token.Invalid {
		t.Fatalf("want Invalid, got %v", toks[1].Kind)
	}
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindBadNumber {
		t.Fatalf("reports: %+v", rep.reports)
	}
}

func TestStrings(t *testing.T) {
	toks := expectKinds(t, `<?php 'it\'s' "a {$this->x}
b" b'bin' `+"`ls`",
		token.OpenTag, token.StringLit, token.StringLit, token.StringLit, token.StringLit)
	if toks[2].Text != "\"a {$this->x}\nb\"" {
		t.Fatalf("double quoted text %q", toks[2].Text)
	}
	if toks[3].Text != "b'bin'" {
		t.Fatalf("binary string text %q", toks[3].Text)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`<?php "abc`)
	toks := lx.All()
	if toks[1].Kind != token.Invalid {
		t.Fatalf("want Invalid, got %v", toks[1].Kind)
	}
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnterminatedString {
		t.Fatalf("reports: %+v", rep.reports)
	}
}

func TestHeredocAndNowdoc(t *testing.T) {
	src := "<?php $a = <<<EOT\n  text }\n  EOT;\n$b = <<<'RAW'\n{ raw\nRAW;\n"
	toks := expectKinds(t, src,
		token.OpenTag,
		token.Variable, token.Assign, token.StringLit, token.Semicolon,
		token.Variable, token.Assign, token.StringLit, token.Semicolon,
	)
	if !strings.HasSuffix(toks[3].Text, "EOT") {
		t.Fatalf("heredoc text %q", toks[3].Text)
	}
}

func TestUnterminatedHeredoc(t *testing.T) {
	lx, rep := makeTestLexer("<?php <<<EOT\nbody\n")
	lx.All()
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnterminatedHeredoc {
		t.Fatalf("reports: %+v", rep.reports)
	}
}

func TestShiftIsNotHeredoc(t *testing.T) {
	expectKinds(t, "<?php $a <<< 1;", token.OpenTag, token.Variable, token.Op, token.Op, token.IntLit, token.Semicolon)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "<?php => ... :: ? | & = === ?? #[",
		token.OpenTag, token.FatArrow, token.Ellipsis, token.DoubleColon, token.Question,
		token.Pipe, token.Amp, token.Assign, token.Op, token.Op, token.AttrOpen)
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("<?php €")
	toks := lx.All()
	if toks[1].Kind != token.Invalid || toks[1].Text != "€" {
		t.Fatalf("got %v %q", toks[1].Kind, toks[1].Text)
	}
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnknownChar {
		t.Fatalf("reports: %+v", rep.reports)
	}
}

func TestTriviaAndDocBlock(t *testing.T) {
	src := "<?php\n// line\n# hash\n/* block */\n/**\n * @dataProvider foo\n */\npublic function"
	lx, _ := makeTestLexer(src)
	toks := lx.All()
	pub := toks[1]
	if pub.Kind != token.KwPublic {
		t.Fatalf("want public, got %v", pub.Kind)
	}
	var got []token.TriviaKind
	for _, tr := range pub.Leading {
		if tr.Kind != token.TriviaSpace && tr.Kind != token.TriviaNewline {
			got = append(got, tr.Kind)
		}
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaLineComment, token.TriviaBlockComment, token.TriviaDocBlock}
	if len(got) != len(want) {
		t.Fatalf("trivia %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trivia %v, want %v", got, want)
		}
	}
	doc, ok := pub.DocBlock()
	if !ok || !strings.Contains(doc.Text, "@dataProvider foo") {
		t.Fatalf("doc block not attached: %+v", doc)
	}
}

func TestEmptyBlockCommentIsNotDoc(t *testing.T) {
	lx, _ := makeTestLexer("<?php /**/ $a")
	toks := lx.All()
	if _, ok := toks[1].DocBlock(); ok {
		t.Fatal("/**/ must not count as a doc block")
	}
}

func TestUnterminatedComment(t *testing.T) {
	lx, rep := makeTestLexer("<?php /** never closed")
	lx.All()
	if len(rep.reports) != 1 || rep.reports[0].kind != lexer.KindUnterminatedComment {
		t.Fatalf("reports: %+v", rep.reports)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("<?php a b")
	lx.Next()
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Fatalf("peek %q next %q", p.Text, n.Text)
	}
	if lx.Next().Text != "b" {
		t.Fatal("expected b")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must repeat")
	}
}

func TestSpansCoverText(t *testing.T) {
	src := "<?php\nclass A { function b() {} }"
	lx, _ := makeTestLexer(src)
	for _, tok := range lx.All() {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span text %q != token text %q", got, tok.Text)
		}
	}
}
