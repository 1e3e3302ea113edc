// Package diagfmt renders token listings and module trees for the CLI.
//
// Pretty output is meant for terminals; JSON output is stable and meant for
// tools. Neither is used when writing a bundle.
package diagfmt
