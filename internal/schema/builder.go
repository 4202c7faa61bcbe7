package schema

import (
	"fmt"
	"sort"
)

// BuildTable assembles one table from its catalog rows. Columns are ordered
// by ordinal position; enum/set columns resolve to their literal union when
// the catalog has labels for them and fall back to MapType otherwise.
func BuildTable(name string, rows []ColumnDescriptor, enums EnumCatalog, opts MapOptions) Table {
	if enums == nil {
		enums = EnumCatalog{}
	}
	t := Table{
		Name:    name,
		Columns: make([]Column, 0, len(rows)),
		Enums:   enums,
	}

	for _, d := range rows {
		t.Columns = append(t.Columns, Column{
			Name:         d.Name,
			Position:     d.OrdinalPosition,
			Type:         resolveType(d, enums, opts),
			IsNullable:   d.IsNullable,
			HasDefault:   d.HasExplicitDefault() || d.IsAutoGenerated,
			DefaultValue: d.DefaultValue,
			Comment:      d.Comment,
		})
	}

	sort.SliceStable(t.Columns, func(i, j int) bool {
		return t.Columns[i].Position < t.Columns[j].Position
	})

	for i := 1; i < len(t.Columns); i++ {
		prev, cur := t.Columns[i-1], t.Columns[i]
		if prev.Position == cur.Position {
			t.Warnings = append(t.Warnings, Warning{
				Table:   name,
				Column:  cur.Name,
				Message: fmt.Sprintf("duplicate ordinal position %d (shared with %s)", cur.Position, prev.Name),
			})
		}
	}
	return t
}

func resolveType(d ColumnDescriptor, enums EnumCatalog, opts MapOptions) Type {
	if IsEnumType(d.NativeType) {
		key := EnumKey(d.NativeType, d.Name)
		if _, ok := enums[key]; ok {
			return Type{Kind: KindEnum, EnumKey: key}
		}
	}
	return MapType(d.NativeType, opts)
}

// Assemble synthesizes the enum catalog from enumRows and builds the table.
func Assemble(name string, rows []ColumnDescriptor, enumRows []EnumColumn, opts MapOptions) Table {
	return BuildTable(name, rows, SynthesizeEnums(enumRows), opts)
}
