package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestParseEnum(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"enum('a','b')", []string{"a", "b"}},
		{"set('x','y','z')", []string{"x", "y", "z"}},
		{"ENUM('source','destination')", []string{"source", "destination"}},
		{"enum('only')", []string{"only"}},
		{"enum('')", []string{""}},
		{"enum('with space','a,b')", []string{"with space", "a,b"}},
		{"enum()", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEnum(tt.in))
		})
	}
}

func TestParseEnum_PreservesDeclaredOrder(t *testing.T) {
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ParseEnum("enum('zeta','alpha','mid')"))
}

func TestSynthesizeEnums(t *testing.T) {
	enums := SynthesizeEnums([]EnumColumn{
		{ColumnName: "integration_type", NativeType: "enum", Definition: "enum('source','destination')"},
		{ColumnName: "flags", NativeType: "set", Definition: "set('a','b')"},
		{ColumnName: "broken", NativeType: "enum", Definition: "enum()"},
	})

	assert.Equal(t, []string{"source", "destination"}, enums["enum_integration_type"])
	assert.Equal(t, []string{"a", "b"}, enums["set_flags"])
	values, ok := enums["enum_broken"]
	assert.True(t, ok, "empty definitions stay in the catalog")
	assert.Empty(t, values)
}

func TestAssemble_EmptyEnumLeftToRenderer(t *testing.T) {
	table := Assemble("requests", []ColumnDescriptor{
		{Name: "state", NativeType: "enum", OrdinalPosition: 1},
	}, []EnumColumn{
		{ColumnName: "state", NativeType: "enum", Definition: "enum()"},
	}, MapOptions{})

	require.Len(t, table.Columns, 1)
	assert.Equal(t, Type{Kind: KindEnum, EnumKey: "enum_state"}, table.Columns[0].Type)
	assert.Empty(t, table.Warnings)
}

func TestBuildTable_HasDefault(t *testing.T) {
	tests := []struct {
		name string
		desc ColumnDescriptor
		want bool
	}{
		{"no default", ColumnDescriptor{Name: "a", NativeType: "int"}, false},
		{"literal default", ColumnDescriptor{Name: "a", NativeType: "int", DefaultValue: ptr("0")}, true},
		{"empty literal default", ColumnDescriptor{Name: "a", NativeType: "varchar", DefaultValue: ptr("")}, true},
		{"auto increment", ColumnDescriptor{Name: "a", NativeType: "int", IsAutoGenerated: true}, true},
		{"nullable without default", ColumnDescriptor{Name: "a", NativeType: "int", IsNullable: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildTable("t", []ColumnDescriptor{tt.desc}, nil, MapOptions{})
			require.Len(t, table.Columns, 1)
			assert.Equal(t, tt.want, table.Columns[0].HasDefault)
			assert.Equal(t, tt.desc.HasExplicitDefault() || tt.desc.IsAutoGenerated, table.Columns[0].HasDefault)
		})
	}
}

func TestBuildTable_OrdersByPosition(t *testing.T) {
	table := BuildTable("t", []ColumnDescriptor{
		{Name: "c", NativeType: "int", OrdinalPosition: 3},
		{Name: "a", NativeType: "int", OrdinalPosition: 1},
		{Name: "b", NativeType: "int", OrdinalPosition: 2},
	}, nil, MapOptions{})

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Empty(t, table.Warnings)
}

func TestBuildTable_DuplicatePositionWarns(t *testing.T) {
	table := BuildTable("t", []ColumnDescriptor{
		{Name: "a", NativeType: "int", OrdinalPosition: 1},
		{Name: "b", NativeType: "int", OrdinalPosition: 1},
	}, nil, MapOptions{})

	require.Len(t, table.Warnings, 1)
	assert.Equal(t, "b", table.Warnings[0].Column)
	assert.Equal(t, "a", table.Columns[0].Name, "stable order")
}

func TestBuildTable_EnumResolution(t *testing.T) {
	enums := EnumCatalog{"enum_status": {"active", "closed"}}
	table := BuildTable("t", []ColumnDescriptor{
		{Name: "status", NativeType: "enum", OrdinalPosition: 1},
		{Name: "kind", NativeType: "enum", OrdinalPosition: 2},
	}, enums, MapOptions{})

	status, ok := table.Column("status")
	require.True(t, ok)
	assert.Equal(t, Type{Kind: KindEnum, EnumKey: "enum_status"}, status.Type)
	assert.Equal(t, []string{"active", "closed"}, table.EnumValues(status.Type))

	kind, ok := table.Column("kind")
	require.True(t, ok)
	assert.Equal(t, KindString, kind.Type.Kind, "enum without catalog entry falls back to string")

	_, ok = table.Column("missing")
	assert.False(t, ok)
}

func TestAssemble(t *testing.T) {
	table := Assemble("t",
		[]ColumnDescriptor{
			{Name: "state", NativeType: "enum", OrdinalPosition: 1},
			{Name: "data", NativeType: "json", OrdinalPosition: 2},
		},
		[]EnumColumn{{ColumnName: "state", NativeType: "enum", Definition: "enum('on','off')"}},
		MapOptions{},
	)

	assert.Empty(t, table.Warnings)
	assert.Equal(t, []string{"on", "off"}, table.EnumValues(table.Columns[0].Type))
	assert.True(t, table.UsesJSON())
	assert.Equal(t, KindEnum, table.Columns[0].Type.Kind)
	assert.Equal(t, "enum(enum_state)", table.Columns[0].Type.String())
}

func TestWarning_String(t *testing.T) {
	assert.Equal(t, "t.c: bad", Warning{Table: "t", Column: "c", Message: "bad"}.String())
	assert.Equal(t, "t: bad", Warning{Table: "t", Message: "bad"}.String())
}
