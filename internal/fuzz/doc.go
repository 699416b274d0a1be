// Package fuzztests houses Go fuzz harnesses for the checking pipeline
// (source -> lexer -> syntax -> analysis). They guard against panics, hangs
// and broken index invariants on arbitrary input.
package fuzztests
