// Package render turns table models into TypeScript declarations.
//
// Rendering happens in two steps: the table model is converted into a small
// typed declaration tree (File, Interface, Alias, Field and type
// expressions), and Print writes that tree as text. Which declarations exist
// is decided while building the tree, never by inspecting printed text.
package render

// TypeExpr is a TypeScript type expression.
type TypeExpr interface {
	typeExpr()
}

// Ref names a type: string, Date, JSONValue, Agreements, ...
type Ref string

// Literal is a string literal type, printed single-quoted.
type Literal string

// Union is an ordered union of alternatives. An empty union prints as never.
type Union []TypeExpr

// Object is an inline object type with named members.
type Object []Field

// Index is an index signature object: { [Key: string]: Value }.
type Index struct {
	Key   string
	Value TypeExpr
}

func (Ref) typeExpr()     {}
func (Literal) typeExpr() {}
func (Union) typeExpr()   {}
func (Object) typeExpr()  {}
func (Index) typeExpr()   {}

// Field is a member of an interface or inline object.
type Field struct {
	Name     string // raw property name; quoted on print when not an identifier
	Optional bool
	Type     TypeExpr
	Doc      string
}

// Decl is a top-level exported declaration.
type Decl interface {
	DeclName() string
}

// Interface is `export interface Name extends Extends { fields }`.
type Interface struct {
	Name    string
	Extends string
	Fields  []Field
}

// Alias is `export type Name = Type`.
type Alias struct {
	Name string
	Type TypeExpr
}

func (i Interface) DeclName() string { return i.Name }
func (a Alias) DeclName() string     { return a.Name }

// File is one rendered output unit.
type File struct {
	Banner string
	Decls  []Decl
}

// Names of the shared semi-structured value family.
const (
	JSONPrimitive = "JSONPrimitive"
	JSONValue     = "JSONValue"
	JSONObject    = "JSONObject"
	JSONArray     = "JSONArray"
)

// jsonFamily is the recursive value type referenced by json columns.
func jsonFamily() []Decl {
	return []Decl{
		Alias{Name: JSONPrimitive, Type: Union{Ref("string"), Ref("number"), Ref("boolean"), Ref("null")}},
		Alias{Name: JSONValue, Type: Union{Ref(JSONPrimitive), Ref(JSONObject), Ref(JSONArray)}},
		Alias{Name: JSONObject, Type: Index{Key: "member", Value: Ref(JSONValue)}},
		Interface{Name: JSONArray, Extends: "Array<" + JSONValue + ">"},
	}
}
