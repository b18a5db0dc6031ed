package ast

// Slot declares one field or attribute of a node kind. A nil Default means
// the slot has no declared default; Absent means it defaults to "never set".
type Slot struct {
	Name    string
	Default Value
}

// Required declares a slot without a default.
func Required(name string) Slot {
	return Slot{Name: name}
}

// Optional declares a slot whose default is Absent.
func Optional(name string) Slot {
	return Slot{Name: name, Default: Absent}
}

// DefaultsToAbsent reports whether the declared default is the "never set"
// marker. A slot without a declared default does not.
func (s Slot) DefaultsToAbsent() bool {
	return s.Default != nil && IsAbsent(s.Default)
}

// Schema lists the fields and attributes of one node kind in declaration
// order.
type Schema struct {
	Kind       string
	Fields     []Slot
	Attributes []Slot
}

// SchemaSource resolves a node kind to its schema.
type SchemaSource interface {
	Schema(kind string) (*Schema, bool)
}

// Table is a SchemaSource backed by a map.
type Table map[string]*Schema

func (t Table) Schema(kind string) (*Schema, bool) {
	s, ok := t[kind]
	return s, ok
}

func NewTable(schemas ...*Schema) Table {
	t := make(Table, len(schemas))
	for _, s := range schemas {
		t[s.Kind] = s
	}
	return t
}

var positionAttributes = []Slot{
	Required("lineno"),
	Required("col_offset"),
	Optional("end_lineno"),
	Optional("end_col_offset"),
}

func kind(name string, fields ...Slot) *Schema {
	return &Schema{Kind: name, Fields: fields}
}

func positioned(name string, fields ...Slot) *Schema {
	return &Schema{Kind: name, Fields: fields, Attributes: positionAttributes}
}

// Python is the schema table of the Python grammar this module parses.
var Python = NewTable(
	// mod
	kind("Module", Required("body"), Required("type_ignores")),
	kind("Expression", Required("body")),

	// stmt
	positioned("FunctionDef", Required("name"), Required("args"), Required("body"), Required("decorator_list"), Optional("returns"), Optional("type_comment")),
	positioned("AsyncFunctionDef", Required("name"), Required("args"), Required("body"), Required("decorator_list"), Optional("returns"), Optional("type_comment")),
	positioned("ClassDef", Required("name"), Required("bases"), Required("keywords"), Required("body"), Required("decorator_list")),
	positioned("Return", Optional("value")),
	positioned("Delete", Required("targets")),
	positioned("Assign", Required("targets"), Required("value"), Optional("type_comment")),
	positioned("AugAssign", Required("target"), Required("op"), Required("value")),
	positioned("AnnAssign", Required("target"), Required("annotation"), Optional("value"), Required("simple")),
	positioned("For", Required("target"), Required("iter"), Required("body"), Required("orelse"), Optional("type_comment")),
	positioned("AsyncFor", Required("target"), Required("iter"), Required("body"), Required("orelse"), Optional("type_comment")),
	positioned("While", Required("test"), Required("body"), Required("orelse")),
	positioned("If", Required("test"), Required("body"), Required("orelse")),
	positioned("With", Required("items"), Required("body"), Optional("type_comment")),
	positioned("AsyncWith", Required("items"), Required("body"), Optional("type_comment")),
	positioned("Raise", Optional("exc"), Optional("cause")),
	positioned("Try", Required("body"), Required("handlers"), Required("orelse"), Required("finalbody")),
	positioned("Assert", Required("test"), Optional("msg")),
	positioned("Import", Required("names")),
	positioned("ImportFrom", Optional("module"), Required("names"), Optional("level")),
	positioned("Global", Required("names")),
	positioned("Nonlocal", Required("names")),
	positioned("Expr", Required("value")),
	positioned("Pass"),
	positioned("Break"),
	positioned("Continue"),

	// expr
	positioned("BoolOp", Required("op"), Required("values")),
	positioned("NamedExpr", Required("target"), Required("value")),
	positioned("BinOp", Required("left"), Required("op"), Required("right")),
	positioned("UnaryOp", Required("op"), Required("operand")),
	positioned("Lambda", Required("args"), Required("body")),
	positioned("IfExp", Required("test"), Required("body"), Required("orelse")),
	positioned("Dict", Required("keys"), Required("values")),
	positioned("Set", Required("elts")),
	positioned("ListComp", Required("elt"), Required("generators")),
	positioned("SetComp", Required("elt"), Required("generators")),
	positioned("DictComp", Required("key"), Required("value"), Required("generators")),
	positioned("GeneratorExp", Required("elt"), Required("generators")),
	positioned("Await", Required("value")),
	positioned("Yield", Optional("value")),
	positioned("YieldFrom", Required("value")),
	positioned("Compare", Required("left"), Required("ops"), Required("comparators")),
	positioned("Call", Required("func"), Required("args"), Required("keywords")),
	positioned("FormattedValue", Required("value"), Required("conversion"), Optional("format_spec")),
	positioned("JoinedStr", Required("values")),
	positioned("Constant", Required("value"), Optional("kind")),
	positioned("Attribute", Required("value"), Required("attr"), Required("ctx")),
	positioned("Subscript", Required("value"), Required("slice"), Required("ctx")),
	positioned("Starred", Required("value"), Required("ctx")),
	positioned("Name", Required("id"), Required("ctx")),
	positioned("List", Required("elts"), Required("ctx")),
	positioned("Tuple", Required("elts"), Required("ctx")),
	positioned("Slice", Optional("lower"), Optional("upper"), Optional("step")),

	// expr_context
	kind("Load"), kind("Store"), kind("Del"),

	// boolop
	kind("And"), kind("Or"),

	// operator
	kind("Add"), kind("Sub"), kind("Mult"), kind("MatMult"), kind("Div"), kind("Mod"), kind("Pow"),
	kind("LShift"), kind("RShift"), kind("BitOr"), kind("BitXor"), kind("BitAnd"), kind("FloorDiv"),

	// unaryop
	kind("Invert"), kind("Not"), kind("UAdd"), kind("USub"),

	// cmpop
	kind("Eq"), kind("NotEq"), kind("Lt"), kind("LtE"), kind("Gt"), kind("GtE"),
	kind("Is"), kind("IsNot"), kind("In"), kind("NotIn"),

	kind("comprehension", Required("target"), Required("iter"), Required("ifs"), Required("is_async")),
	positioned("ExceptHandler", Optional("type"), Optional("name"), Required("body")),
	kind("arguments", Required("posonlyargs"), Required("args"), Optional("vararg"), Required("kwonlyargs"), Required("kw_defaults"), Optional("kwarg"), Required("defaults")),
	positioned("arg", Required("arg"), Optional("annotation"), Optional("type_comment")),
	positioned("keyword", Optional("arg"), Required("value")),
	positioned("alias", Required("name"), Optional("asname")),
	kind("withitem", Required("context_expr"), Optional("optional_vars")),
	kind("TypeIgnore", Required("lineno"), Required("tag")),
)
