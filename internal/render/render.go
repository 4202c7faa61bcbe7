package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/koustreak/schemats/internal/schema"
)

// Options controls declaration naming and which declarations are emitted.
type Options struct {
	// Prefix is prepended to every table identifier.
	Prefix string

	// OmitInsertable suppresses the <Table>WithDefaults companion declaration.
	OmitInsertable bool

	// Aggregate adds a schema-wide declaration listing every table.
	// Only schema renders honour it.
	Aggregate bool

	// Banner is printed as a leading doc comment when non-empty.
	Banner string
}

// view selects which optionality rule a declaration follows.
type view int

const (
	strictView     view = iota // optional iff nullable
	insertableView             // optional iff nullable or defaulted
)

type column struct {
	col  schema.Column
	typ  TypeExpr
	doc  string
	name string
}

// TableDecls returns the declarations of one table: the strict view and,
// unless suppressed, the insertable view. Warnings include the table's own
// build warnings.
func TableDecls(t *schema.Table, opts Options) ([]Decl, []schema.Warning) {
	warnings := append([]schema.Warning(nil), t.Warnings...)

	cols := make([]column, 0, len(t.Columns))
	for _, c := range t.Columns {
		typ, warn := fieldType(t, c)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		cols = append(cols, column{col: c, typ: typ, doc: fieldDoc(c), name: Normalize(c.Name)})
	}

	decls := []Decl{Interface{Name: TypeName(opts.Prefix, t.Name), Fields: fields(cols, strictView)}}
	if !opts.OmitInsertable {
		decls = append(decls, Interface{Name: InsertableName(opts.Prefix, t.Name), Fields: fields(cols, insertableView)})
	}
	return decls, warnings
}

func fields(cols []column, v view) []Field {
	out := make([]Field, 0, len(cols))
	for _, c := range cols {
		optional := c.col.IsNullable
		if v == insertableView {
			optional = optional || c.col.HasDefault
		}
		out = append(out, Field{Name: c.name, Optional: optional, Type: c.typ, Doc: c.doc})
	}
	return out
}

// fieldType is the member type of c, including the null alternative for
// nullable columns.
func fieldType(t *schema.Table, c schema.Column) (TypeExpr, *schema.Warning) {
	var (
		base TypeExpr
		warn *schema.Warning
	)

	switch c.Type.Kind {
	case schema.KindInt, schema.KindFloat:
		base = Ref("number")
	case schema.KindBool:
		base = Ref("boolean")
	case schema.KindString:
		base = Ref("string")
	case schema.KindBytes:
		base = Ref("Buffer")
	case schema.KindDateTime:
		base = Ref("Date")
	case schema.KindJSON:
		base = Ref(JSONValue)
	case schema.KindEnum:
		values := t.EnumValues(c.Type)
		if len(values) == 0 {
			base = Ref("never")
			warn = &schema.Warning{
				Table:   t.Name,
				Column:  c.Name,
				Message: fmt.Sprintf("enum %s has no values, rendered as never", c.Type.EnumKey),
			}
			break
		}
		u := make(Union, len(values))
		for i, v := range values {
			u[i] = Literal(v)
		}
		base = u
	default:
		base = Ref("any")
	}

	if !c.IsNullable {
		return base, warn
	}
	if u, ok := base.(Union); ok {
		return append(u[:len(u):len(u)], Ref("null")), warn
	}
	return Union{base, Ref("null")}, warn
}

func fieldDoc(c schema.Column) string {
	var parts []string
	if comment := strings.TrimSpace(c.Comment); comment != "" {
		parts = append(parts, comment)
	}
	if c.HasDefault && c.DefaultValue != nil {
		parts = append(parts, "Defaults to: "+*c.DefaultValue+".")
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// TableFile builds the output unit for a single table.
func TableFile(t *schema.Table, opts Options) (File, []schema.Warning) {
	var decls []Decl
	if t.UsesJSON() {
		decls = append(decls, jsonFamily()...)
	}
	tableDecls, warnings := TableDecls(t, opts)
	return File{Banner: opts.Banner, Decls: append(decls, tableDecls...)}, warnings
}

// SchemaFile builds the output unit for a whole schema: tables in name
// order, the JSON family at most once, and the aggregate when requested.
func SchemaFile(set *schema.SchemaSet, opts Options) (File, []schema.Warning) {
	tables := make([]*schema.Table, len(set.Tables))
	for i := range set.Tables {
		tables[i] = &set.Tables[i]
	}
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })

	var (
		decls    []Decl
		warnings []schema.Warning
	)
	for _, t := range tables {
		if t.UsesJSON() {
			decls = append(decls, jsonFamily()...)
			break
		}
	}

	owners := make(map[string]string, len(tables))
	for _, t := range tables {
		name := TypeName(opts.Prefix, t.Name)
		if other, dup := owners[name]; dup {
			warnings = append(warnings, schema.Warning{
				Table:   t.Name,
				Message: fmt.Sprintf("identifier %s is also generated for table %s", name, other),
			})
		}
		owners[name] = t.Name

		tableDecls, tableWarnings := TableDecls(t, opts)
		decls = append(decls, tableDecls...)
		warnings = append(warnings, tableWarnings...)
	}

	if opts.Aggregate {
		decls = append(decls, aggregate(set.Name, tables, opts))
	}
	return File{Banner: opts.Banner, Decls: decls}, warnings
}

func aggregate(schemaName string, tables []*schema.Table, opts Options) Interface {
	members := make([]Field, 0, len(tables))
	for _, t := range tables {
		views := Object{{Name: "select", Type: Ref(TypeName(opts.Prefix, t.Name))}}
		if !opts.OmitInsertable {
			views = append(views, Field{Name: "insert", Type: Ref(InsertableName(opts.Prefix, t.Name))})
		}
		members = append(members, Field{Name: t.Name, Type: views})
	}
	return Interface{Name: AggregateName(opts.Prefix, schemaName), Fields: members}
}

// RenderTable renders one table's declarations.
func RenderTable(t *schema.Table, opts Options) (string, []schema.Warning) {
	f, warnings := TableFile(t, opts)
	return Print(f), warnings
}

// RenderSchema renders every table of set.
func RenderSchema(set *schema.SchemaSet, opts Options) (string, []schema.Warning) {
	f, warnings := SchemaFile(set, opts)
	return Print(f), warnings
}
