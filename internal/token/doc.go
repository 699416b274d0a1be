// Package token defines lexical token kinds and trivia for PHP sources.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Keywords are matched case-insensitively, as PHP does; Text keeps the
//     original spelling.
//   - Comments and doc blocks never appear in the main token stream; they are
//     attached as leading Trivia to the next significant token.
//   - Everything outside <?php ... ?> is a single InlineHTML token.
package token
