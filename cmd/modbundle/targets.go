package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modbundle/internal/lexer"
	"modbundle/internal/project"
)

const noManifestMessage = "no " + project.ManifestName + " found\nplease name the entry module and its roots explicitly, e.g.:\n  modbundle build main --root src\n  modbundle build src/main.rs"

// buildTarget is one bundle to produce, from the command line or a manifest.
type buildTarget struct {
	Name               string
	Entry              string
	Resolver           *project.DirResolver
	Syntax             lexer.Syntax
	Output             string // "" means stdout
	PreserveVisibility bool
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("root", nil, "module search root (repeatable, searched in order)")
	cmd.Flags().String("toml", "", "path to "+project.ManifestName+" (default: search upwards from the working directory)")
	cmd.Flags().Bool("preserve-visibility", false, "keep declared visibility instead of making inlined modules public")
}

type sourceFlags struct {
	roots    []string
	toml     string
	preserve bool
}

func readSourceFlags(cmd *cobra.Command) (sourceFlags, error) {
	var sf sourceFlags
	var err error
	if sf.roots, err = cmd.Flags().GetStringArray("root"); err != nil {
		return sf, fmt.Errorf("failed to get root flag: %w", err)
	}
	if sf.toml, err = cmd.Flags().GetString("toml"); err != nil {
		return sf, fmt.Errorf("failed to get toml flag: %w", err)
	}
	if sf.preserve, err = cmd.Flags().GetBool("preserve-visibility"); err != nil {
		return sf, fmt.Errorf("failed to get preserve-visibility flag: %w", err)
	}
	return sf, nil
}

// resolveTargets decides what to bundle:
//
//	build main --root src     ad-hoc target, manifest only supplies [syntax]/[resolve] if given via --toml
//	build src/main.rs         ad-hoc target rooted at the file's directory
//	build solution            the [[bundle]] named solution of the nearest manifest
//	build                     every [[bundle]] of the nearest manifest
func resolveTargets(cmd *cobra.Command, args []string) ([]buildTarget, error) {
	sf, err := readSourceFlags(cmd)
	if err != nil {
		return nil, err
	}

	var manifest *project.Manifest
	if sf.toml != "" {
		if manifest, err = project.LoadManifest(sf.toml); err != nil {
			return nil, err
		}
	}

	if len(args) == 1 {
		entry, roots, ok := adHocEntry(args[0], sf.roots)
		if ok {
			t := adHocTarget(manifest, entry, roots)
			t.PreserveVisibility = sf.preserve
			return []buildTarget{t}, nil
		}
	} else if len(sf.roots) > 0 {
		return nil, errors.New("--root requires an entry module argument")
	}

	if manifest == nil {
		path, found, err := project.FindManifest(".")
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.New(noManifestMessage)
		}
		if manifest, err = project.LoadManifest(path); err != nil {
			return nil, err
		}
	}

	var selected []project.Target
	if len(args) == 1 {
		t, ok := manifest.Target(args[0])
		if !ok {
			return nil, fmt.Errorf("%s: no bundle target %q (have %s)", manifest.Path, args[0], targetNames(manifest))
		}
		selected = []project.Target{t}
	} else {
		selected = manifest.Bundles
	}

	out := make([]buildTarget, 0, len(selected))
	for _, t := range selected {
		out = append(out, buildTarget{
			Name:               t.Name,
			Entry:              t.Entry,
			Resolver:           manifest.Resolver(t),
			Syntax:             manifest.Syntax,
			Output:             manifest.OutputPath(t),
			PreserveVisibility: t.PreserveVisibility || sf.preserve,
		})
	}
	return out, nil
}

// adHocEntry interprets arg as an entry module. With explicit roots arg must
// be a module name; without roots a path to an existing file is accepted and
// its directory becomes the only root.
func adHocEntry(arg string, roots []string) (entry string, outRoots []string, ok bool) {
	if len(roots) > 0 {
		return arg, roots, true
	}
	if !strings.ContainsRune(arg, filepath.Separator) && !strings.ContainsRune(arg, '/') && filepath.Ext(arg) == "" {
		return "", nil, false
	}
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return "", nil, false
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base)), []string{filepath.Dir(arg)}, true
}

func adHocTarget(manifest *project.Manifest, entry string, roots []string) buildTarget {
	t := buildTarget{
		Name:     entry,
		Entry:    entry,
		Resolver: project.NewDirResolver(roots...),
		Syntax:   lexer.DefaultSyntax(),
	}
	if manifest != nil {
		t.Syntax = manifest.Syntax
		if manifest.Resolve.Ext != "" {
			t.Resolver.Ext = manifest.Resolve.Ext
		}
		if manifest.Resolve.Index != "" {
			t.Resolver.IndexFile = manifest.Resolve.Index
		}
	}
	if ext := t.Resolver.Ext; ext != "" && strings.HasSuffix(entry, ext) {
		t.Entry = strings.TrimSuffix(entry, ext)
		t.Name = t.Entry
	}
	return t
}

func targetNames(m *project.Manifest) string {
	names := make([]string, 0, len(m.Bundles))
	for _, t := range m.Bundles {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// singleTarget is resolveTargets for commands that work on one bundle.
func singleTarget(cmd *cobra.Command, args []string) (buildTarget, error) {
	targets, err := resolveTargets(cmd, args)
	if err != nil {
		return buildTarget{}, err
	}
	if len(targets) != 1 {
		return buildTarget{}, fmt.Errorf("manifest declares %d bundle targets; name one of them", len(targets))
	}
	return targets[0], nil
}
