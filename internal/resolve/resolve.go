// Package resolve binds provider tags to method declarations in the tag's
// own class scope.
package resolve

import (
	"strings"

	"provcheck/internal/annot"
	"provcheck/internal/decl"
)

type Outcome uint8

const (
	Found Outcome = iota
	NotFound
	Malformed
	// Skipped: the reference names another class, which lives in another
	// file and is not checked.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	case Malformed:
		return "malformed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Resolution is the outcome for one tag. Name is the reference with any
// qualifier and trailing "()" removed; Provider is set only when Found and
// always belongs to Tag.Class.
type Resolution struct {
	Tag      annot.Tag
	Outcome  Outcome
	Name     string
	HasParen bool
	Provider *decl.Method
}

// Resolve resolves every tag independently.
func Resolve(tags []annot.Tag) []Resolution {
	out := make([]Resolution, 0, len(tags))
	for _, tag := range tags {
		out = append(out, resolveOne(tag))
	}
	return out
}

func resolveOne(tag annot.Tag) Resolution {
	r := Resolution{Tag: tag}
	if tag.Malformed {
		r.Outcome = Malformed
		return r
	}

	name := tag.Reference
	if trimmed, ok := strings.CutSuffix(name, "()"); ok {
		name, r.HasParen = trimmed, true
	}
	if qualifier, method, ok := strings.Cut(name, "::"); ok {
		if !isOwnClass(qualifier, tag.Class) {
			r.Outcome, r.Name = Skipped, method
			return r
		}
		name = method
	}
	r.Name = name

	if m := tag.Class.Lookup(name); m != nil {
		r.Outcome, r.Provider = Found, m
		return r
	}
	r.Outcome = NotFound
	return r
}

// isOwnClass accepts self, static and the class's own name, optionally
// namespace-qualified. Class names compare case-insensitively as in PHP.
func isOwnClass(qualifier string, c *decl.ClassScope) bool {
	switch strings.ToLower(qualifier) {
	case "self", "static":
		return true
	}
	if i := strings.LastIndexByte(qualifier, '\\'); i >= 0 {
		qualifier = qualifier[i+1:]
	}
	return strings.EqualFold(qualifier, c.Name)
}
