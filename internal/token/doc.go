// Package token defines the classified form of a source line.
// Invariants:
//   - Line-backed tokens own their original line text; every span they carry
//     resolves against that line and is never stored apart from it.
//   - Block tokens own no line; they hold the module name and the tokens of
//     the inlined file in their original order.
//   - Tokens are immutable once built. The tree nests only through
//     Block.Children.
package token
