// Package infer runs the whole pipeline: catalog rows in, formatted
// declaration text out.
package infer

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/koustreak/schemats/internal/catalog"
	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/format"
	"github.com/koustreak/schemats/internal/logger"
	"github.com/koustreak/schemats/internal/render"
	"github.com/koustreak/schemats/internal/schema"
)

// DefaultConcurrency bounds in-flight table fetches when Options leaves it unset.
const DefaultConcurrency = 4

// Options configures one inference run.
type Options struct {
	// Schema overrides the provider's default schema.
	Schema string

	Render render.Options
	Map    schema.MapOptions

	// Concurrency bounds parallel table fetches in Schema and SchemaModel.
	Concurrency int

	// Printer formats the rendered text. Nil means format.Standard.
	Printer format.Printer
}

// Result is the formatted output of a run plus any non-fatal defects.
type Result struct {
	Code     string
	Warnings []schema.Warning
}

// Banner is the header comment naming the generator.
func Banner(version string) string {
	return "Schema Generated with schemats " + version
}

// schemaName is the override or the provider's default. MySQL has no
// default when the connection URL names no database.
func (o Options) schemaName(p catalog.Provider) (string, error) {
	if o.Schema != "" {
		return o.Schema, nil
	}
	if s := p.DefaultSchema(); s != "" {
		return s, nil
	}
	return "", errs.New(errs.ErrKindInvalidInput, "no schema selected: name a database in the connection URL or set a schema")
}

func (o Options) printer() format.Printer {
	if o.Printer == nil {
		return format.Standard{}
	}
	return o.Printer
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return o.Concurrency
}

// ListTables returns the table names of the selected schema.
func ListTables(ctx context.Context, p catalog.Provider, opts Options) ([]string, error) {
	schemaName, err := opts.schemaName(p)
	if err != nil {
		return nil, err
	}
	return p.ListTables(ctx, schemaName)
}

// TableModel fetches and builds one table without rendering it.
// A table with no columns is reported as not found.
func TableModel(ctx context.Context, p catalog.Provider, table string, opts Options) (*schema.Table, error) {
	schemaName, err := opts.schemaName(p)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	rows, err := p.ListColumns(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "table %s.%s not found or has no columns", schemaName, table)
	}

	enumRows, err := p.ListEnumColumns(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}

	log.Debugf("fetched %s.%s: %d columns, %d enum columns", schemaName, table, len(rows), len(enumRows))

	t := schema.Assemble(table, rows, enumRows, opts.Map)
	return &t, nil
}

// SchemaModel fetches and builds every table of the schema, sorted by name.
// Fetches run concurrently up to opts.Concurrency; the first error cancels
// the rest.
func SchemaModel(ctx context.Context, p catalog.Provider, opts Options) (*schema.SchemaSet, error) {
	schemaName, err := opts.schemaName(p)
	if err != nil {
		return nil, err
	}

	names, err := p.ListTables(ctx, schemaName)
	if err != nil {
		return nil, err
	}

	tables := make([]schema.Table, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i, name := range names {
		g.Go(func() error {
			t, err := TableModel(gctx, p, name, opts)
			if err != nil {
				return err
			}
			tables[i] = *t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return &schema.SchemaSet{Name: schemaName, Tables: tables}, nil
}

// Table renders one table.
func Table(ctx context.Context, p catalog.Provider, table string, opts Options) (*Result, error) {
	t, err := TableModel(ctx, p, table, opts)
	if err != nil {
		return nil, err
	}
	code, warnings := render.RenderTable(t, opts.Render)
	return finish(ctx, code, warnings, opts)
}

// Schema renders every table of the schema.
func Schema(ctx context.Context, p catalog.Provider, opts Options) (*Result, error) {
	set, err := SchemaModel(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	code, warnings := render.RenderSchema(set, opts.Render)
	return finish(ctx, code, warnings, opts)
}

func finish(ctx context.Context, code string, warnings []schema.Warning, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	for _, w := range warnings {
		log.WarnWith(w.Message, map[string]any{"table": w.Table, "column": w.Column})
	}

	formatted, err := opts.printer().Format(ctx, code)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindFormatFailed, fmt.Sprintf("format output (%d bytes)", len(code)), err)
	}
	return &Result{Code: formatted, Warnings: warnings}, nil
}
