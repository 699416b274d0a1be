package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Tag-shaped problems, reported at the tag line.
	TagInfo           Code = 1000
	TagWrongCase      Code = 1001
	TagParenthesis    Code = 1002
	TagMalformed      Code = 1003
	TagTargetNotFound Code = 1004

	// Provider-shaped problems, reported at the provider declaration line.
	ProvInfo          Code = 2000
	ProvNotPublic     Code = 2001
	ProvNoVisibility  Code = 2002
	ProvTestPrefix    Code = 2003
	ProvNotStatic     Code = 2004
	ProvBadReturnType Code = 2005
)

var (
	codeDescription = map[Code]string{
		UnknownCode:       "Unknown error",
		TagInfo:           "Tag information",
		TagWrongCase:      "Tag keyword has wrong letter case",
		TagParenthesis:    "Provider reference ends with ()",
		TagMalformed:      "Tag is not followed by a method name",
		TagTargetNotFound: "Provider method not found",
		ProvInfo:          "Provider information",
		ProvNotPublic:     "Provider method is not public",
		ProvNoVisibility:  "Provider method has no visibility",
		ProvTestPrefix:    "Provider method uses the test prefix",
		ProvNotStatic:     "Provider method is not static",
		ProvBadReturnType: "Provider method has an unsupported return type",
	}

	codeByID = func() map[string]Code {
		m := make(map[string]Code, len(codeDescription))
		for c := range codeDescription {
			m[c.ID()] = c
		}
		return m
	}()
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TAG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps an ID such as "PRV2004" back to its Code.
func ParseCode(id string) (Code, bool) {
	c, ok := codeByID[id]
	return c, ok
}

// Codes lists every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
