// Package project locates module sources and reads bundle.toml manifests.
package project

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNotFound reports that no candidate location holds the requested module.
var ErrNotFound = errors.New("module not found")

// Resolver maps a module name declared in the file at relPath to readable content.
// relPath is "" for the entry module and grows by "/name" per nesting level.
// Calls are strictly sequential; implementations need not be goroutine-safe.
type Resolver interface {
	OpenSubmodule(relPath, name string) (io.ReadCloser, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(relPath, name string) (io.ReadCloser, error)

func (f ResolverFunc) OpenSubmodule(relPath, name string) (io.ReadCloser, error) {
	return f(relPath, name)
}

// NotFoundError lists where a module was looked for.
type NotFoundError struct {
	RelPath string
	Name    string
	Tried   []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("module %q not found", ModulePath(e.RelPath, e.Name))
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ModulePath joins a resolution context and a module name into a logical
// path: ("", "game") -> "game", ("/game", "inner") -> "game/inner".
func ModulePath(relPath, name string) string {
	rel := strings.Trim(relPath, "/")
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// IsValidModuleIdent reports whether name is an ASCII identifier.
func IsValidModuleIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
