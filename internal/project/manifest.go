package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"modbundle/internal/lexer"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "bundle.toml"

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrNoBundles indicates that the manifest declares no [[bundle]] targets.
	ErrNoBundles = errors.New("no [[bundle]] targets declared")
)

// Manifest is a parsed bundle.toml.
type Manifest struct {
	Path    string // absolute path of the manifest file
	Root    string // directory containing the manifest
	Package PackageConfig
	Resolve ResolveConfig
	Syntax  lexer.Syntax
	Bundles []Target
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// ResolveConfig overrides DirResolver file naming.
type ResolveConfig struct {
	Ext   string `toml:"ext"`
	Index string `toml:"index"`
}

// Target describes one bundle to produce.
type Target struct {
	Name               string   `toml:"name"`
	Entry              string   `toml:"entry"`
	Roots              []string `toml:"roots"`
	Output             string   `toml:"output"`
	PreserveVisibility bool     `toml:"preserve_visibility"`
}

type manifestFile struct {
	Package PackageConfig `toml:"package"`
	Resolve ResolveConfig `toml:"resolve"`
	Syntax  lexer.Syntax  `toml:"syntax"`
	Bundles []Target      `toml:"bundle"`
}

// FindManifest walks up from startDir to locate bundle.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses and validates a bundle.toml.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg manifestFile
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", abs, undecoded[0].String())
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", abs, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", abs)
	}
	if len(cfg.Bundles) == 0 {
		return nil, fmt.Errorf("%s: %w", abs, ErrNoBundles)
	}

	syntax := cfg.Syntax.WithDefaults()
	if err := syntax.Validate(); err != nil {
		return nil, fmt.Errorf("%s: [syntax]: %w", abs, err)
	}

	seen := make(map[string]struct{}, len(cfg.Bundles))
	for i := range cfg.Bundles {
		t := &cfg.Bundles[i]
		t.Entry = strings.TrimSpace(t.Entry)
		if !IsValidModuleIdent(t.Entry) {
			return nil, fmt.Errorf("%s: bundle #%d: invalid entry module %q", abs, i+1, t.Entry)
		}
		if strings.TrimSpace(t.Name) == "" {
			t.Name = t.Entry
		}
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate bundle name %q", abs, t.Name)
		}
		seen[t.Name] = struct{}{}
		if len(t.Roots) == 0 {
			return nil, fmt.Errorf("%s: bundle %q: roots must not be empty", abs, t.Name)
		}
		for _, root := range t.Roots {
			if strings.TrimSpace(root) == "" {
				return nil, fmt.Errorf("%s: bundle %q: empty root", abs, t.Name)
			}
		}
	}

	return &Manifest{
		Path:    abs,
		Root:    filepath.Dir(abs),
		Package: cfg.Package,
		Resolve: cfg.Resolve,
		Syntax:  syntax,
		Bundles: cfg.Bundles,
	}, nil
}

// Target returns the bundle with the given name.
func (m *Manifest) Target(name string) (Target, bool) {
	for _, t := range m.Bundles {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Resolver builds a DirResolver for t with roots anchored at the manifest directory.
func (m *Manifest) Resolver(t Target) *DirResolver {
	r := NewDirResolver()
	for _, root := range t.Roots {
		r.Roots = append(r.Roots, m.abs(root))
	}
	if m.Resolve.Ext != "" {
		r.Ext = m.Resolve.Ext
	}
	if m.Resolve.Index != "" {
		r.IndexFile = m.Resolve.Index
	}
	return r
}

// OutputPath returns where t should be written, or "" for stdout.
func (m *Manifest) OutputPath(t Target) string {
	if strings.TrimSpace(t.Output) == "" || t.Output == "-" {
		return ""
	}
	return m.abs(t.Output)
}

func (m *Manifest) abs(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}
