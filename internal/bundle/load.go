package bundle

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"modbundle/internal/project"
	"modbundle/internal/source"
	"modbundle/internal/token"
	"modbundle/internal/trace"
)

// Load resolves the entry module and all modules it transitively declares,
// replacing any previously loaded tree. On failure no tree is retained and the
// returned error is a *LoadError.
//
// ctx carries the tracer; loading is not cancellable.
func (b *Bundle) Load(ctx context.Context) error {
	b.tokens, b.loaded = nil, false

	ctx, span := trace.Start(ctx, trace.ScopePass, "load "+b.entry)

	tokens, err := b.loadModule(ctx, "", b.entry, "")
	if err != nil {
		span.End("failed")
		return err
	}
	b.tokens, b.loaded = tokens, true

	st := token.Collect(tokens)
	span.WithExtra("blocks", strconv.Itoa(st.Blocks)).
		WithExtra("lines", strconv.Itoa(st.Lines)).
		End("")
	if b.opts.Logger != nil {
		b.opts.Logger.Debug("bundle loaded", "entry", b.entry, "blocks", st.Blocks, "lines", st.Lines)
	}
	return nil
}

// loadModule opens name in the context relPath and tokenizes it. Modules it
// declares are opened in the context scope, which is "" for the entry module
// and relPath + "/" + name below it.
func (b *Bundle) loadModule(ctx context.Context, relPath, name, scope string) ([]token.Token, error) {
	ctx, span := trace.Start(ctx, trace.ScopeModule, project.ModulePath(relPath, name))

	lines, err := b.readModule(relPath, name)
	if err != nil {
		span.End("failed")
		return nil, err
	}

	out := make([]token.Token, 0, len(lines))
	for _, line := range lines {
		tok := b.opts.Classifier.Classify(line)
		if tok.Kind != token.SubmoduleDecl {
			out = append(out, tok)
			continue
		}
		child := tok.NameText()
		children, err := b.loadModule(ctx, scope, child, scope+"/"+child)
		if err != nil {
			span.End("failed")
			return nil, err
		}
		public := true
		if b.opts.PreserveVisibility {
			public = tok.Public
		}
		out = append(out, token.NewBlock(child, public, children))
	}

	span.WithExtra("lines", strconv.Itoa(len(lines))).End("")
	return out, nil
}

// readModule resolves and drains one module source, always closing the stream.
func (b *Bundle) readModule(relPath, name string) ([]string, error) {
	if b.opts.Logger != nil {
		b.opts.Logger.Debug("loading module", "module", project.ModulePath(relPath, name))
	}
	if b.resolver == nil {
		return nil, &LoadError{Kind: ErrIOFailure, RelPath: relPath, Module: name, Err: ErrNoResolver}
	}
	rc, err := b.resolver.OpenSubmodule(relPath, name)
	if err != nil {
		kind := ErrIOFailure
		if errors.Is(err, project.ErrNotFound) {
			kind = ErrResolutionNotFound
		}
		return nil, &LoadError{Kind: kind, RelPath: relPath, Module: name, Err: err}
	}
	lines, err := source.ReadLines(rc)
	closeErr := rc.Close()
	if err != nil {
		return nil, &LoadError{Kind: ErrIOFailure, RelPath: relPath, Module: name, Err: fmt.Errorf("read: %w", err)}
	}
	if closeErr != nil {
		return nil, &LoadError{Kind: ErrIOFailure, RelPath: relPath, Module: name, Err: fmt.Errorf("close: %w", closeErr)}
	}
	return lines, nil
}
