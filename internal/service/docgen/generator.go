package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leonardocandio/cargos/internal/catalog"
	"github.com/leonardocandio/cargos/internal/model"
)

const defaultWorkers = 4

// Generator drives one generation run: filter sheets, build contexts,
// render per-person documents, optionally merge per location, and report.
// A Generator is stateless between runs.
type Generator struct {
	renderer  Renderer
	merger    Merger
	templates map[model.DocumentKind]string
	workers   int
	log       *zap.Logger
}

// NewGenerator creates a generator with the injected renderer and merger.
// templates maps each document kind to its template reference.
func NewGenerator(renderer Renderer, merger Merger, templates map[model.DocumentKind]string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		renderer:  renderer,
		merger:    merger,
		templates: templates,
		workers:   defaultWorkers,
		log:       log,
	}
}

// SetWorkers bounds the render worker pool.
func (g *Generator) SetWorkers(n int) {
	if n > 0 {
		g.workers = n
	}
}

// personJob is one person's render work within a location.
type personJob struct {
	dir        string
	name       string
	occupation string
	contexts   map[model.DocumentKind]model.DocumentContext
}

// Generate runs the full pipeline. Preconditions are checked before any
// write; past that point individual failures reduce the file count without
// flipping Success.
func (g *Generator) Generate(ctx context.Context, wb *model.ParsedWorkbook, cat catalog.Catalog, opts model.GenerationOptions) model.GenerationResult {
	res := model.GenerationResult{}

	if wb == nil || len(wb.Sheets) == 0 {
		res.Message = "no sheets parsed; nothing to generate"
		return res
	}
	if len(opts.Kinds) == 0 {
		res.Message = "no templates selected; nothing to generate"
		return res
	}
	if problems := ValidateTemplates(g.templates, opts.Kinds); len(problems) > 0 {
		res.Errors = append(res.Errors, problems...)
		res.Message = "template validation failed"
		return res
	}
	if strings.TrimSpace(opts.DestinationRoot) == "" {
		res.Message = "destination root not set"
		return res
	}
	if err := os.MkdirAll(opts.DestinationRoot, 0755); err != nil {
		res.Message = fmt.Sprintf("cannot create destination root: %v", err)
		return res
	}

	// Preconditions passed; per-person failures no longer flip Success.
	res.Success = true

	builder := NewContextBuilder(&cat, g.log)
	now := time.Now()

	var locations []string
	jobsByLoc := make(map[string][]personJob)

	for _, sheet := range wb.Sheets {
		res.Warnings = append(res.Warnings, sheet.Warnings...)
		if len(sheet.Errors) > 0 {
			res.Errors = append(res.Errors, sheet.Errors...)
			res.Errors = append(res.Errors,
				fmt.Sprintf("sheet %q excluded from generation", sheet.Metadata.SheetName))
			continue
		}
		tienda := strings.TrimSpace(sheet.Metadata.Tienda)
		if tienda == "" {
			res.Errors = append(res.Errors,
				fmt.Sprintf("sheet %q has no tienda; excluded from generation", sheet.Metadata.SheetName))
			continue
		}
		if !opts.SelectsLocation(tienda) {
			continue
		}

		for i, person := range sheet.People {
			contexts, err := builder.Build(BuildInput{
				Person:   person,
				Garments: sheet.GarmentFor(i),
				Metadata: sheet.Metadata,
				Kinds:    opts.Kinds,
				Now:      now,
			})
			if err != nil || len(contexts) == 0 {
				res.PeopleSkipped++
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("sheet %q row %d skipped: no usable document context", sheet.Metadata.SheetName, i+1))
				continue
			}

			name, occupation := jobIdentity(opts.Kinds, contexts)
			if _, ok := jobsByLoc[tienda]; !ok {
				locations = append(locations, tienda)
			}
			jobsByLoc[tienda] = append(jobsByLoc[tienda], personJob{
				name:       name,
				occupation: occupation,
				contexts:   contexts,
			})
		}
	}

	peopleCount := 0
	for _, jobs := range jobsByLoc {
		peopleCount += len(jobs)
	}

	// One folder per location, one subfolder per person. MkdirAll is
	// idempotent, which also covers two workers racing on a location dir.
	for _, loc := range locations {
		locDir := filepath.Join(opts.DestinationRoot, sanitizeName(loc))
		jobs := jobsByLoc[loc]
		for ji := range jobs {
			jobs[ji].dir = filepath.Join(locDir, sanitizeName(jobs[ji].name))
			if err := os.MkdirAll(jobs[ji].dir, 0755); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("cannot create folder for %s: %v", jobs[ji].name, err))
				jobs[ji].dir = ""
			}
		}
	}

	rendered := g.renderAll(ctx, locations, jobsByLoc, opts, &res)

	if opts.CombinePerLocation {
		g.mergeAll(locations, rendered, opts, &res)
	}

	res.Message = fmt.Sprintf("generated %d files for %d people across %d locations (%d people skipped)",
		res.FilesGenerated, peopleCount, len(locations), res.PeopleSkipped)
	g.log.Info("generation finished",
		zap.Int("files", res.FilesGenerated),
		zap.Int("people", peopleCount),
		zap.Int("locations", len(locations)),
		zap.Int("errors", len(res.Errors)))
	return res
}

// renderAll renders every (person, kind) document through a bounded worker
// pool. Render failures are recorded, never propagated beyond the run.
// Returns the rendered bytes per location and kind, in person order, for
// the merge step.
func (g *Generator) renderAll(ctx context.Context, locations []string, jobsByLoc map[string][]personJob, opts model.GenerationOptions, res *model.GenerationResult) map[string]map[model.DocumentKind][][]byte {
	rendered := make(map[string]map[model.DocumentKind][][]byte, len(locations))
	for _, loc := range locations {
		rendered[loc] = make(map[model.DocumentKind][][]byte, len(opts.Kinds))
		for _, kind := range opts.Kinds {
			rendered[loc][kind] = make([][]byte, len(jobsByLoc[loc]))
		}
	}

	var mu sync.Mutex
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.workers)

	for _, loc := range locations {
		for ji, job := range jobsByLoc[loc] {
			if job.dir == "" {
				continue
			}
			loc, ji, job := loc, ji, job
			for _, kind := range opts.Kinds {
				kind := kind
				docCtx, ok := job.contexts[kind]
				if !ok {
					continue
				}
				grp.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					data, err := g.renderer.Render(g.templates[kind], docCtx)
					if err != nil {
						mu.Lock()
						res.Errors = append(res.Errors,
							fmt.Sprintf("render %s for %s failed: %v", kind, job.name, err))
						mu.Unlock()
						return nil
					}
					path := filepath.Join(job.dir, documentFileName(kind, job, g.renderer.Ext()))
					if err := os.WriteFile(path, data, 0644); err != nil {
						mu.Lock()
						res.Errors = append(res.Errors,
							fmt.Sprintf("write %s for %s failed: %v", kind, job.name, err))
						mu.Unlock()
						return nil
					}
					mu.Lock()
					res.FilesGenerated++
					rendered[loc][kind][ji] = data
					mu.Unlock()
					return nil
				})
			}
		}
	}

	if err := grp.Wait(); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("generation interrupted: %v", err))
	}
	return rendered
}

// mergeAll combines each location's rendered documents per kind. A merge
// failure is isolated to its (location, kind) and never invalidates the
// individual files already on disk.
func (g *Generator) mergeAll(locations []string, rendered map[string]map[model.DocumentKind][][]byte, opts model.GenerationOptions, res *model.GenerationResult) {
	for _, loc := range locations {
		locDir := filepath.Join(opts.DestinationRoot, sanitizeName(loc))
		for _, kind := range opts.Kinds {
			var docs [][]byte
			for _, d := range rendered[loc][kind] {
				if d != nil {
					docs = append(docs, d)
				}
			}
			if len(docs) == 0 {
				continue
			}
			merged, err := g.merger.Merge(docs)
			if err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("merge %s for %s failed: %v", kind, loc, err))
				continue
			}
			path := filepath.Join(locDir,
				fmt.Sprintf("%s_COMBINED_%s%s", kind, sanitizeName(loc), g.renderer.Ext()))
			if err := os.WriteFile(path, merged, 0644); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("write combined %s for %s failed: %v", kind, loc, err))
				continue
			}
			res.FilesGenerated++
		}
	}
}

// jobIdentity pulls the shared name and occupation label out of the built
// contexts, checking kinds in render order.
func jobIdentity(kinds []model.DocumentKind, contexts map[model.DocumentKind]model.DocumentContext) (string, string) {
	for _, kind := range kinds {
		if ctx, ok := contexts[kind]; ok {
			return ctx["NOMBRE"], ctx["CARGO"]
		}
	}
	return "", ""
}

func documentFileName(kind model.DocumentKind, job personJob, ext string) string {
	occupation := sanitizeName(job.occupation)
	if occupation == "" {
		occupation = "SIN_CARGO"
	}
	return fmt.Sprintf("%s_%s_%s%s", kind, sanitizeName(job.name), occupation, ext)
}

// sanitizeName keeps letters, digits, spaces, hyphens and underscores, then
// turns spaces into underscores for filesystem-safe folder and file names.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
