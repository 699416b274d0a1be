// Package syntax turns a lexed PHP file into a Stream: the significant
// tokens plus a bracket-matching table. Everything downstream (declaration
// indexing, tag extraction, fix planning) works on a Stream instead of a
// full syntax tree.
package syntax
