package schema

import "strings"

// MapOptions carries the mapping policies that differ between projects.
type MapOptions struct {
	// BinaryAsBuffer maps blob/binary/bit columns to KindBytes instead of KindString.
	BinaryAsBuffer bool

	// TinyIntAsBoolean maps tinyint to KindBool instead of KindInt.
	TinyIntAsBoolean bool
}

// MapType maps a native catalog type to its abstract kind. Unrecognised
// types map to KindUnknown; MapType never fails.
func MapType(nativeType string, opts MapOptions) Type {
	switch baseType(nativeType) {
	case "char", "varchar", "text", "tinytext", "mediumtext", "longtext",
		"time", "geometry", "set", "enum",
		// postgres
		"bpchar", "character", "character varying", "citext", "name",
		"uuid", "inet", "cidr", "macaddr", "interval", "timetz",
		"time with time zone", "time without time zone", "xml":
		return Type{Kind: KindString}

	case "integer", "int", "smallint", "mediumint", "bigint", "year",
		// postgres
		"int2", "int4", "int8", "serial", "bigserial", "smallserial", "oid":
		return Type{Kind: KindInt}

	case "double", "decimal", "numeric", "float",
		// postgres
		"real", "float4", "float8", "double precision", "money":
		return Type{Kind: KindFloat}

	case "tinyint":
		if opts.TinyIntAsBoolean {
			return Type{Kind: KindBool}
		}
		return Type{Kind: KindInt}

	case "bool", "boolean":
		return Type{Kind: KindBool}

	case "json", "jsonb":
		return Type{Kind: KindJSON}

	case "date", "datetime", "timestamp",
		// postgres
		"timestamptz", "timestamp with time zone", "timestamp without time zone":
		return Type{Kind: KindDateTime}

	case "tinyblob", "mediumblob", "longblob", "blob", "binary", "varbinary", "bit",
		// postgres
		"bytea", "varbit", "bit varying":
		if opts.BinaryAsBuffer {
			return Type{Kind: KindBytes}
		}
		return Type{Kind: KindString}

	default:
		return Type{Kind: KindUnknown}
	}
}

// baseType lowercases t and drops a length/precision suffix and an
// "unsigned"/"zerofill" modifier: "INT(11) UNSIGNED" becomes "int".
func baseType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimSuffix(t, " zerofill")
	t = strings.TrimSuffix(t, " unsigned")
	return t
}

// IsEnumType reports whether nativeType is an enum or set keyword.
func IsEnumType(nativeType string) bool {
	switch baseType(nativeType) {
	case "enum", "set":
		return true
	}
	return false
}
