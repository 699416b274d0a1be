package driver

import (
	"provcheck/internal/lexer"
	"provcheck/internal/source"
	"provcheck/internal/token"
)

// LexProblem is something the lexer reported while tokenizing.
type LexProblem struct {
	Kind string
	Span source.Span
	Msg  string
}

type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Problems []LexProblem
}

type problemCollector struct {
	out []LexProblem
}

func (c *problemCollector) Report(kind string, span source.Span, msg string) {
	c.out = append(c.out, LexProblem{Kind: kind, Span: span, Msg: msg})
}

// Tokenize loads path and returns its full token stream, EOF included.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	rep := &problemCollector{}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	tokens := lx.All()

	return &TokenizeResult{
		FileSet:  fs,
		File:     file,
		Tokens:   tokens,
		Problems: rep.out,
	}, nil
}
