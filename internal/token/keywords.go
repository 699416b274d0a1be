package token

import "strings"

var keywords = map[string]Kind{
	"abstract":   KwAbstract,
	"class":      KwClass,
	"const":      KwConst,
	"enum":       KwEnum,
	"extends":    KwExtends,
	"final":      KwFinal,
	"fn":         KwFn,
	"function":   KwFunction,
	"implements": KwImplements,
	"interface":  KwInterface,
	"namespace":  KwNamespace,
	"new":        KwNew,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"public":     KwPublic,
	"readonly":   KwReadonly,
	"return":     KwReturn,
	"static":     KwStatic,
	"trait":      KwTrait,
	"use":        KwUse,
	"var":        KwVar,
	"yield":      KwYield,
}

// LookupKeyword reports the keyword kind for ident. PHP keywords are
// case-insensitive, so "Public" and "FUNCTION" are keywords too.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
