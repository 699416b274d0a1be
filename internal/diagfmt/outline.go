package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"provcheck/internal/decl"
	"provcheck/internal/resolve"
)

type MethodOutline struct {
	Name       string `json:"name"`
	Line       uint32 `json:"line"`
	EndLine    uint32 `json:"end_line"`
	Visibility string `json:"visibility"`
	Binding    string `json:"binding"`
	Abstract   bool   `json:"abstract,omitempty"`
	ReturnType string `json:"return_type,omitempty"`
	Shape      string `json:"shape"`
	This       string `json:"this"`
}

type TagOutline struct {
	Line      uint32 `json:"line"`
	Test      string `json:"test"`
	Keyword   string `json:"keyword"`
	Reference string `json:"reference,omitempty"`
	Outcome   string `json:"outcome"`
	Provider  string `json:"provider,omitempty"`
}

type ClassOutline struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Line    uint32          `json:"line"`
	EndLine uint32          `json:"end_line"`
	Methods []MethodOutline `json:"methods"`
	Tags    []TagOutline    `json:"tags,omitempty"`
}

// BuildOutline summarises the declaration index and the resolved tags of
// one file, class by class.
func BuildOutline(f *decl.File, resolutions []resolve.Resolution) []ClassOutline {
	out := make([]ClassOutline, 0, len(f.Classes))
	pos := make(map[*decl.ClassScope]int, len(f.Classes))
	for _, c := range f.Classes {
		co := ClassOutline{
			Name:    c.Name,
			Kind:    strings.TrimPrefix(strings.ToLower(c.Kind.String()), "kw"),
			Line:    c.Line,
			EndLine: c.EndLine,
			Methods: make([]MethodOutline, 0, len(c.Methods)),
		}
		for _, m := range c.Methods {
			co.Methods = append(co.Methods, MethodOutline{
				Name:       m.Name,
				Line:       m.Line,
				EndLine:    m.EndLine,
				Visibility: m.Visibility.String(),
				Binding:    m.Binding.String(),
				Abstract:   m.Abstract,
				ReturnType: m.ReturnType,
				Shape:      m.Shape.String(),
				This:       m.This.String(),
			})
		}
		pos[c] = len(out)
		out = append(out, co)
	}
	for _, r := range resolutions {
		idx, ok := pos[r.Tag.Class]
		if !ok {
			continue
		}
		tag := TagOutline{
			Line:      r.Tag.Line,
			Test:      r.Tag.Test.Name,
			Keyword:   r.Tag.Keyword,
			Reference: r.Tag.Reference,
			Outcome:   r.Outcome.String(),
		}
		if r.Provider != nil {
			tag.Provider = fmt.Sprintf("%s:%d", r.Provider.Name, r.Provider.Line)
		}
		out[idx].Tags = append(out[idx].Tags, tag)
	}
	return out
}

// FormatOutlinePretty prints an indented tree of classes, methods and tags.
func FormatOutlinePretty(w io.Writer, classes []ClassOutline) error {
	for _, c := range classes {
		if _, err := fmt.Fprintf(w, "%s %s (lines %d-%d)\n", c.Kind, c.Name, c.Line, c.EndLine); err != nil {
			return err
		}
		for _, m := range c.Methods {
			fmt.Fprintf(w, "  %-4d %s %s %s()", m.Line, m.Visibility, m.Binding, m.Name)
			if m.ReturnType != "" {
				fmt.Fprintf(w, ": %s", m.ReturnType)
			}
			fmt.Fprintf(w, " shape=%s this=%s", m.Shape, m.This)
			if m.Abstract {
				fmt.Fprint(w, " abstract")
			}
			fmt.Fprintln(w)
		}
		for _, t := range c.Tags {
			fmt.Fprintf(w, "  tag %d %s %s -> %s", t.Line, t.Keyword, t.Reference, t.Outcome)
			if t.Provider != "" {
				fmt.Fprintf(w, " (%s)", t.Provider)
			}
			fmt.Fprintf(w, " in %s\n", t.Test)
		}
	}
	return nil
}

// FormatOutlineJSON writes the outline as JSON.
func FormatOutlineJSON(w io.Writer, classes []ClassOutline) error {
	return EncodeJSON(w, classes)
}
