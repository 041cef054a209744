// Package generate is the orchestration action behind the gen command: scan
// a module tree, assemble builder definitions, and write one file per
// annotated type.
package generate

import (
	"fmt"
	"log/slog"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/emit"
	gen "github.com/bldgen/bldgen/internal/generate"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
)

// Options configures one generation run.
type Options struct {
	// Dir is the root of the tree to scan for annotated types.
	Dir string
	// ProcessWide holds flat option overrides (the bldgen.* configuration
	// keys), lowest-precedence above the built-in defaults.
	ProcessWide map[string]string
	// Templates holds named option sets referenced by template= directives.
	Templates map[string]map[string]string
}

// Result reports what one run produced.
type Result struct {
	// Files lists every builder file written, in processing order.
	Files []string
	// Errors holds per-type failures. A failed type never stops its
	// siblings.
	Errors map[string]error
	// Diagnostics are the non-fatal warnings the pipeline raised.
	Diagnostics []diag.Diagnostic
}

// Run executes a full generation round over opts.Dir.
func Run(opts Options) (*Result, error) {
	log := slog.Default()
	rep := diag.NewReporter(log)

	pw, err := config.FromMap(opts.ProcessWide)
	if err != nil {
		return nil, fmt.Errorf("process-wide options: %w", err)
	}
	tpls := make(map[string]config.Options, len(opts.Templates))
	for name, body := range opts.Templates {
		t, err := config.FromMap(body)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		tpls[name] = t
	}

	mod, root, err := source.ModulePath(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("%s is not inside a Go module: %w", opts.Dir, err)
	}
	log.Info("generating builders", "module", mod, "root", root)

	targets, index, err := source.Load(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Dir, err)
	}
	log.Info("scanned for annotated types", "dir", opts.Dir, "types", len(targets))

	asm := &gen.Assembler{
		Resolver: &config.Resolver{ProcessWide: pw, Templates: tpls, Reporter: rep},
		Registry: source.NewRegistry(),
		Index:    index,
		Reporter: rep,
	}
	defs, errs := asm.AssembleAll(targets)
	for name, terr := range errs {
		log.Error("type skipped", "type", name, "error", terr)
	}

	dirs := make(map[string]string, len(targets))
	for _, t := range targets {
		dirs[t.Ref().Key()] = t.Dir
	}
	files, err := emit.NewWriter().WriteAll(defs, func(d *model.BuilderDefinition) string {
		return dirs[d.Target().Key()]
	})
	if err != nil {
		return nil, err
	}
	log.Info("builders written", "files", len(files))

	return &Result{Files: files, Errors: errs, Diagnostics: rep.Diagnostics()}, nil
}
