// Package lexer classifies single source lines.
//
// Classification is lexical: each line is matched against precompiled
// patterns in a fixed precedence order (submodule declaration, single import,
// multi import) and anything else degrades to a plain line. The lexer never
// fails and never looks at more than one line, so braces or terminators inside
// string literals and comments may be misread; that is accepted.
//
// Spans returned in tokens are byte offsets into the classified line.
package lexer
