package schema

import "strings"

// EnumKey names the literal union of an enum/set column within its table.
func EnumKey(nativeType, column string) string {
	return baseType(nativeType) + "_" + column
}

// ParseEnum splits a catalog column_type such as enum('a','b') or
// set('x','y') into its labels, in declared order. Labels are split on the
// literal ',' sequence; embedded quotes are not unescaped. A definition
// without labels yields an empty slice.
func ParseEnum(definition string) []string {
	body := strings.TrimSpace(definition)
	lower := strings.ToLower(body)
	for _, kw := range []string{"enum", "set"} {
		if strings.HasPrefix(lower, kw) {
			body = strings.TrimSpace(body[len(kw):])
			break
		}
	}
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")
	if body == "" {
		return []string{}
	}
	body = strings.TrimPrefix(body, "'")
	body = strings.TrimSuffix(body, "'")
	return strings.Split(body, "','")
}

// SynthesizeEnums builds the enum catalog of one table. Definitions without
// labels are kept with an empty value list; the renderer reports them.
func SynthesizeEnums(rows []EnumColumn) EnumCatalog {
	enums := make(EnumCatalog, len(rows))
	for _, r := range rows {
		enums[EnumKey(r.NativeType, r.ColumnName)] = ParseEnum(r.Definition)
	}
	return enums
}
