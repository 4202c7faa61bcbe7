package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reserved names get a trailing underscore so a column or table cannot
// shadow a scalar type reference.
var reserved = map[string]bool{
	"string":  true,
	"number":  true,
	"package": true,
}

// Normalize appends "_" to reserved names and returns others unchanged.
func Normalize(name string) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}

// PascalCase joins the alphanumeric runs of name with their first letter
// upper-cased: "billing_plans" becomes "BillingPlans". A trailing underscore
// is kept, and a leading digit gets an underscore prefix.
func PascalCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(w[size:])
	}
	out := sb.String()

	if out == "" {
		return "_"
	}
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		out = "_" + out
	}
	if strings.HasSuffix(name, "_") {
		out += "_"
	}
	return out
}

// referenced are the global and generated type names declarations refer
// to; a table identifier equal to one of them would shadow it.
var referenced = map[string]bool{
	"Date":        true,
	"Buffer":      true,
	"Array":       true,
	"Object":      true,
	"String":      true,
	"Number":      true,
	"Boolean":     true,
	JSONPrimitive: true,
	JSONValue:     true,
	JSONObject:    true,
	JSONArray:     true,
}

// unshadowed appends "_" to an identifier that collides with a referenced
// type name.
func unshadowed(ident string) string {
	if referenced[ident] {
		return ident + "_"
	}
	return ident
}

// TypeName is the identifier of a table's strict declaration.
func TypeName(prefix, table string) string {
	return unshadowed(prefix + PascalCase(Normalize(table)))
}

// InsertableName is the identifier of a table's insertable declaration.
func InsertableName(prefix, table string) string {
	return TypeName(prefix, table) + "WithDefaults"
}

// AggregateName is the identifier of the schema-wide umbrella declaration.
func AggregateName(prefix, schemaName string) string {
	if schemaName == "" {
		return prefix + "Schema"
	}
	return unshadowed(prefix + PascalCase(Normalize(schemaName)) + "Schema")
}
