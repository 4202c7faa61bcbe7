// Package schema holds the catalog-independent table model and the pure
// functions that build it: native type mapping, enum synthesis and table
// assembly. Nothing here performs I/O.
package schema

import "fmt"

// ColumnDescriptor is one raw column row as reported by a catalog provider.
type ColumnDescriptor struct {
	Name            string
	NativeType      string // mysql data_type / postgres udt_name: varchar, int, enum, ...
	OrdinalPosition int
	IsNullable      bool
	DefaultValue    *string // nil if the catalog reports no default
	Comment         string
	IsAutoGenerated bool // auto_increment, identity, serial
}

// HasExplicitDefault reports whether the catalog carried a default literal.
func (d ColumnDescriptor) HasExplicitDefault() bool {
	return d.DefaultValue != nil
}

// EnumColumn is a raw enum/set definition row, e.g.
// {ColumnName: "status", NativeType: "enum", Definition: "enum('a','b')"}.
type EnumColumn struct {
	ColumnName string
	NativeType string
	Definition string
}

// EnumCatalog maps an enum key (see EnumKey) to its labels in declared order.
type EnumCatalog map[string][]string

// Kind is the abstract type tag assigned to a column.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindBytes
	KindDateTime
	KindEnum
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDateTime:
		return "datetime"
	case KindEnum:
		return "enum"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Type is the abstract type of a column. EnumKey is set only for KindEnum.
type Type struct {
	Kind    Kind
	EnumKey string
}

func (t Type) String() string {
	if t.Kind == KindEnum {
		return fmt.Sprintf("enum(%s)", t.EnumKey)
	}
	return t.Kind.String()
}

// Column is a derived, read-only view of one column.
type Column struct {
	Name         string
	Position     int
	Type         Type
	IsNullable   bool
	HasDefault   bool
	DefaultValue *string
	Comment      string
}

// Table is one table's columns in catalog position order.
type Table struct {
	Name     string
	Columns  []Column
	Enums    EnumCatalog
	Warnings []Warning
}

// Column returns the column with the given raw name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// EnumValues returns the labels behind an enum column type.
func (t *Table) EnumValues(typ Type) []string {
	return t.Enums[typ.EnumKey]
}

// UsesJSON reports whether any column is semi-structured.
func (t *Table) UsesJSON() bool {
	for _, c := range t.Columns {
		if c.Type.Kind == KindJSON {
			return true
		}
	}
	return false
}

// SchemaSet is every table of one schema. Order is not significant.
type SchemaSet struct {
	Name   string
	Tables []Table
}

// Warnings collects the warnings of every table.
func (s *SchemaSet) Warnings() []Warning {
	var out []Warning
	for _, t := range s.Tables {
		out = append(out, t.Warnings...)
	}
	return out
}

// Warning reports a catalog defect that was tolerated while building or
// rendering a table.
type Warning struct {
	Table   string
	Column  string
	Message string
}

func (w Warning) String() string {
	if w.Column == "" {
		return fmt.Sprintf("%s: %s", w.Table, w.Message)
	}
	return fmt.Sprintf("%s.%s: %s", w.Table, w.Column, w.Message)
}
