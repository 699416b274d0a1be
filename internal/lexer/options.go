package lexer

import (
	"provcheck/internal/source"
)

// Error kinds passed to Reporter.Report.
const (
	KindUnterminatedComment = "UnterminatedComment"
	KindUnterminatedString  = "UnterminatedString"
	KindUnterminatedHeredoc = "UnterminatedHeredoc"
	KindBadNumber           = "BadNumber"
	KindUnknownChar         = "UnknownChar"
)

// Reporter is kept narrow so the lexer does not depend on diag.
// The lexer only calls it; formatting belongs to the caller.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil; errors are then ignored and lexing continues
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
