package project

import (
	"io"
	"sort"
	"strings"
)

// MemResolver serves modules from memory, keyed by logical module path
// ("main", "game", "game/inner"). Useful for tests and generated sources.
type MemResolver struct {
	files map[string]string
	opens []string
}

func NewMemResolver() *MemResolver {
	return &MemResolver{files: make(map[string]string)}
}

// Add registers content under a logical module path. Later calls replace earlier ones.
func (m *MemResolver) Add(path, content string) *MemResolver {
	m.files[strings.Trim(path, "/")] = content
	return m
}

// OpenSubmodule implements Resolver.
func (m *MemResolver) OpenSubmodule(relPath, name string) (io.ReadCloser, error) {
	key := ModulePath(relPath, name)
	content, ok := m.files[key]
	if !ok {
		return nil, &NotFoundError{RelPath: relPath, Name: name, Tried: []string{key}}
	}
	m.opens = append(m.opens, key)
	return io.NopCloser(strings.NewReader(content)), nil
}

// Opened returns the module paths served so far, in request order.
func (m *MemResolver) Opened() []string {
	return append([]string(nil), m.opens...)
}

// Paths returns every registered module path, sorted.
func (m *MemResolver) Paths() []string {
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
