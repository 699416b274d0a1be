package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// InlineHTML is text outside PHP tags.
	InlineHTML
	// OpenTag is "<?php" or "<?=".
	OpenTag
	// CloseTag is "?>".
	CloseTag

	// Ident represents an identifier or a name (including type names).
	Ident
	// Variable represents a "$name" token.
	Variable

	KwAbstract
	KwClass
	KwConst
	KwEnum
	KwExtends
	KwFinal
	KwFn
	KwFunction
	KwImplements
	KwInterface
	KwNamespace
	KwNew
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwReturn
	KwStatic
	KwTrait
	KwUse
	KwVar
	KwYield

	IntLit
	FloatLit
	// StringLit covers single-quoted, double-quoted, heredoc and nowdoc strings.
	StringLit

	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Semicolon     // ;
	Comma         // ,
	Colon         // :
	DoubleColon   // ::
	Arrow         // ->
	NullsafeArrow // ?->
	FatArrow      // =>
	Question      // ?
	Pipe          // |
	Amp           // &
	Backslash     // \
	Assign        // =
	Ellipsis      // ...
	AttrOpen      // #[
	Dollar        // $ (variable-variables)
	// Op is any other operator; Text carries the spelling.
	Op
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	InlineHTML:    "InlineHTML",
	OpenTag:       "OpenTag",
	CloseTag:      "CloseTag",
	Ident:         "Ident",
	Variable:      "Variable",
	KwAbstract:    "KwAbstract",
	KwClass:       "KwClass",
	KwConst:       "KwConst",
	KwEnum:        "KwEnum",
	KwExtends:     "KwExtends",
	KwFinal:       "KwFinal",
	KwFn:          "KwFn",
	KwFunction:    "KwFunction",
	KwImplements:  "KwImplements",
	KwInterface:   "KwInterface",
	KwNamespace:   "KwNamespace",
	KwNew:         "KwNew",
	KwPrivate:     "KwPrivate",
	KwProtected:   "KwProtected",
	KwPublic:      "KwPublic",
	KwReadonly:    "KwReadonly",
	KwReturn:      "KwReturn",
	KwStatic:      "KwStatic",
	KwTrait:       "KwTrait",
	KwUse:         "KwUse",
	KwVar:         "KwVar",
	KwYield:       "KwYield",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Semicolon:     "Semicolon",
	Comma:         "Comma",
	Colon:         "Colon",
	DoubleColon:   "DoubleColon",
	Arrow:         "Arrow",
	NullsafeArrow: "NullsafeArrow",
	FatArrow:      "FatArrow",
	Question:      "Question",
	Pipe:          "Pipe",
	Amp:           "Amp",
	Backslash:     "Backslash",
	Assign:        "Assign",
	Ellipsis:      "Ellipsis",
	AttrOpen:      "AttrOpen",
	Dollar:        "Dollar",
	Op:            "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsModifier reports whether k may appear among a member's modifiers.
func (k Kind) IsModifier() bool {
	switch k {
	case KwAbstract, KwFinal, KwPrivate, KwProtected, KwPublic, KwReadonly, KwStatic, KwVar:
		return true
	default:
		return false
	}
}

// IsClassLike reports whether k opens a class-like declaration.
func (k Kind) IsClassLike() bool {
	switch k {
	case KwClass, KwInterface, KwTrait, KwEnum:
		return true
	default:
		return false
	}
}
