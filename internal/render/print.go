package render

import (
	"regexp"
	"strings"
)

const indentUnit = "  "

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Print writes f as TypeScript source. Output ends with a single newline.
func Print(f File) string {
	var sb strings.Builder
	if f.Banner != "" {
		sb.WriteString("/**\n ")
		sb.WriteString(f.Banner)
		sb.WriteString("\n */\n")
	}
	for i, d := range f.Decls {
		if i > 0 || f.Banner != "" {
			sb.WriteString("\n")
		}
		printDecl(&sb, d)
	}
	return sb.String()
}

func printDecl(sb *strings.Builder, d Decl) {
	switch d := d.(type) {
	case Alias:
		sb.WriteString("export type ")
		sb.WriteString(d.Name)
		sb.WriteString(" = ")
		printType(sb, d.Type, 0)
		sb.WriteString("\n")

	case Interface:
		sb.WriteString("export interface ")
		sb.WriteString(d.Name)
		if d.Extends != "" {
			sb.WriteString(" extends ")
			sb.WriteString(d.Extends)
		}
		if len(d.Fields) == 0 {
			sb.WriteString(" {}\n")
			return
		}
		sb.WriteString(" {\n")
		printFields(sb, d.Fields, 1)
		sb.WriteString("}\n")
	}
}

func printFields(sb *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for _, f := range fields {
		printDoc(sb, f.Doc, indent)
		sb.WriteString(indent)
		sb.WriteString(PropertyName(f.Name))
		if f.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		printType(sb, f.Type, depth)
		sb.WriteString("\n")
	}
}

func printDoc(sb *strings.Builder, doc, indent string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	doc = strings.ReplaceAll(doc, "*/", `*\/`)
	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		sb.WriteString(indent + "/** " + lines[0] + " */\n")
		return
	}
	sb.WriteString(indent + "/**\n")
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			sb.WriteString(indent + " *\n")
			continue
		}
		sb.WriteString(indent + " * " + l + "\n")
	}
	sb.WriteString(indent + " */\n")
}

func printType(sb *strings.Builder, t TypeExpr, depth int) {
	switch t := t.(type) {
	case Ref:
		sb.WriteString(string(t))
	case Literal:
		sb.WriteString(quote(string(t)))
	case Union:
		if len(t) == 0 {
			sb.WriteString("never")
			return
		}
		for i, alt := range t {
			if i > 0 {
				sb.WriteString(" | ")
			}
			printType(sb, alt, depth)
		}
	case Index:
		sb.WriteString("{ [")
		sb.WriteString(t.Key)
		sb.WriteString(": string]: ")
		printType(sb, t.Value, depth)
		sb.WriteString(" }")
	case Object:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		printFields(sb, t, depth+1)
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteString("}")
	}
}

// PropertyName returns name as written in a member position: bare when it
// is an identifier, single-quoted otherwise.
func PropertyName(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return quote(name)
}

// literalEscaper escapes what may not appear raw in a single-quoted
// literal: the quote, the backslash and every line terminator.
var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

func quote(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}
