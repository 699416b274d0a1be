// Package annot finds data provider tags in the doc blocks of test methods.
package annot

import (
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/cases"

	"provcheck/internal/config"
	"provcheck/internal/decl"
	"provcheck/internal/source"
)

// Tag is one occurrence of the provider keyword in a test method's doc block.
type Tag struct {
	Test  *decl.Method
	Class *decl.ClassScope
	Line  uint32

	// Keyword is the tag as written, e.g. "@dataprovider".
	Keyword string
	// Reference is the raw text after the keyword, including any "()" or
	// class qualifier. Empty when Malformed.
	Reference string

	CaseMismatch bool
	Malformed    bool

	Span    source.Span // the keyword
	RefSpan source.Span // the reference, empty when Malformed
}

// Extract returns the tags of every test method, in source order.
func Extract(f *decl.File, rules config.Rules) []Tag {
	fold := cases.Fold()
	canonical := strings.TrimPrefix(rules.TagKeyword, "@")
	folded := fold.String(canonical)

	var tags []Tag
	for _, c := range f.Classes {
		for _, m := range c.Methods {
			if !m.HasDoc || !IsTest(m, rules) {
				continue
			}
			for _, occ := range findTags(m.Doc.Text, canonical, folded, fold) {
				span, ok := within(m.Doc.Span, occ.at, len(occ.word)+1)
				if !ok {
					continue
				}
				tag := Tag{
					Test:         m,
					Class:        c,
					Line:         f.Stream.File.LineOf(span.Start),
					Keyword:      "@" + occ.word,
					Reference:    occ.ref,
					CaseMismatch: occ.word != canonical,
					Malformed:    occ.ref == "",
					Span:         span,
				}
				if !tag.Malformed {
					tag.RefSpan, _ = within(m.Doc.Span, occ.refAt, len(occ.ref))
				}
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// within returns the n bytes at offset off of the doc block span.
func within(doc source.Span, off, n int) (source.Span, bool) {
	o, err := safecast.Conv[uint32](off)
	if err != nil {
		return source.Span{}, false
	}
	size, err := safecast.Conv[uint32](n)
	if err != nil {
		return source.Span{}, false
	}
	start := doc.Start + o
	return source.Span{File: doc.File, Start: start, End: start + size}, true
}

// IsTest reports whether m is a test method: its name has the test prefix or
// its doc block carries the explicit test tag.
func IsTest(m *decl.Method, rules config.Rules) bool {
	if strings.HasPrefix(m.Name, rules.TestPrefix) {
		return true
	}
	if !m.HasDoc || rules.TestTag == "" {
		return false
	}
	word := strings.TrimPrefix(rules.TestTag, "@")
	for _, at := range atSigns(m.Doc.Text) {
		if w := wordAt(m.Doc.Text, at+1); w == word {
			return true
		}
	}
	return false
}

type occurrence struct {
	at    int // offset of '@' in the doc text
	word  string
	ref   string
	refAt int
}

func findTags(doc, canonical, folded string, fold cases.Caser) []occurrence {
	var out []occurrence
	for _, at := range atSigns(doc) {
		word := wordAt(doc, at+1)
		if word == "" || (word != canonical && fold.String(word) != folded) {
			continue
		}
		occ := occurrence{at: at, word: word}
		occ.ref, occ.refAt = referenceAfter(doc, at+1+len(word))
		out = append(out, occ)
	}
	return out
}

// atSigns lists the offsets of '@' characters that start a tag: the first
// non-blank, non-'*' character of a line, or any '@' preceded by whitespace.
func atSigns(doc string) []int {
	var out []int
	for i := 0; i < len(doc); i++ {
		if doc[i] != '@' {
			continue
		}
		if i == 0 || isBlank(doc[i-1]) || doc[i-1] == '\n' || doc[i-1] == '*' {
			out = append(out, i)
		}
	}
	return out
}

func wordAt(s string, i int) string {
	j := i
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	return s[i:j]
}

// referenceAfter reads exactly one whitespace run after the keyword and then
// the reference token up to the next whitespace or the closing "*/".
// A keyword followed directly by anything other than whitespace, or by
// whitespace and then the end of the line, has no reference.
func referenceAfter(doc string, i int) (string, int) {
	j := i
	for j < len(doc) && isBlank(doc[j]) {
		j++
	}
	if j == i {
		return "", 0
	}
	start := j
	for j < len(doc) && !isBlank(doc[j]) && doc[j] != '\n' && doc[j] != '\r' {
		if strings.HasPrefix(doc[j:], "*/") {
			break
		}
		j++
	}
	return doc[start:j], start
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isWordByte(b byte) bool {
	return b == '_' || b == '-' || b == '\\' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
