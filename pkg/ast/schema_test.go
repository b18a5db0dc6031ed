package ast

import (
	"testing"
)

func TestSlotDefaults(t *testing.T) {
	if Required("body").DefaultsToAbsent() {
		t.Errorf("Expected a required slot not to default to absent")
	}
	if !Optional("returns").DefaultsToAbsent() {
		t.Errorf("Expected an optional slot to default to absent")
	}
	if (Slot{Name: "simple", Default: Int(0)}).DefaultsToAbsent() {
		t.Errorf("Expected a slot with a concrete default not to default to absent")
	}
}

func TestIsAbsent(t *testing.T) {
	if !IsAbsent(nil) || !IsAbsent(Absent) {
		t.Errorf("Expected nil and Absent to be absent")
	}
	for _, v := range []Value{Seq{}, Int(0), Str(""), Bool(false), NoneConst{}} {
		if IsAbsent(v) {
			t.Errorf("Expected %#v not to be absent", v)
		}
	}
}

// Every node type must answer for every slot its schema declares.
func TestNodesMatchSchemas(t *testing.T) {
	nodes := []Node{
		&Module{}, &Expression{},
		&FunctionDef{}, &FunctionDef{Async: true}, &ClassDef{}, &Return{}, &Delete{},
		&Assign{}, &AugAssign{}, &AnnAssign{}, &For{}, &For{Async: true}, &While{}, &If{},
		&With{}, &With{Async: true}, &Raise{}, &Try{}, &Assert{}, &Import{}, &ImportFrom{},
		&Global{}, &Nonlocal{}, &ExprStmt{}, &Pass{}, &Break{}, &Continue{},
		&BoolOp{}, &NamedExpr{}, &BinOp{}, &UnaryOp{}, &Lambda{}, &IfExp{}, &Dict{}, &Set{},
		&Comp{CompKind: ListCompKind}, &Comp{CompKind: SetCompKind}, &Comp{CompKind: GeneratorExpKind},
		&DictComp{}, &Await{}, &Yield{}, &YieldFrom{}, &Compare{}, &Call{}, &FormattedValue{},
		&JoinedStr{}, &Constant{}, &Attribute{}, &Subscript{}, &Starred{}, &Name{}, &List{},
		&Tuple{}, &Slice{},
		&Comprehension{}, &ExceptHandler{}, &Arguments{}, &Arg{}, &Keyword{}, &Alias{},
		&WithItem{}, &TypeIgnore{},
		Load, Store, Del, And, Or, Add, Not, Eq, NotIn,
	}
	seen := map[string]bool{}
	for _, n := range nodes {
		schema, ok := Python.Schema(n.Kind())
		if !ok {
			t.Errorf("No schema for %s", n.Kind())
			continue
		}
		seen[n.Kind()] = true
		for _, slot := range append(append([]Slot{}, schema.Fields...), schema.Attributes...) {
			if _, ok := n.Slot(slot.Name); !ok {
				t.Errorf("%s cannot read %s", n.Kind(), slot.Name)
			}
		}
		if _, ok := n.Slot("no_such_slot"); ok {
			t.Errorf("%s answered for an undeclared slot", n.Kind())
		}
	}
	for _, kind := range []string{"Module", "AsyncFunctionDef", "AsyncFor", "AsyncWith", "GeneratorExp"} {
		if !seen[kind] {
			t.Errorf("Kind %s was not exercised", kind)
		}
	}
}

func TestUnsetFieldsReadAsAbsentOrEmpty(t *testing.T) {
	def := &FunctionDef{}
	if v, _ := def.Slot("returns"); !IsAbsent(v) {
		t.Errorf("Expected returns to be absent, got %#v", v)
	}
	if v, _ := def.Slot("body"); v == nil || IsAbsent(v) {
		t.Errorf("Expected body to be an empty sequence, got %#v", v)
	}
	if v, _ := def.Slot("end_lineno"); !IsAbsent(v) {
		t.Errorf("Expected end_lineno to be absent, got %#v", v)
	}

	args := &Arguments{KwOnlyArgs: []*Arg{{Arg: "a"}}, KwDefaults: []Expr{nil}}
	v, _ := args.Slot("kw_defaults")
	defaults, ok := v.(Seq)
	if !ok || len(defaults) != 1 || !IsAbsent(defaults[0]) {
		t.Errorf("Expected kw_defaults [Absent], got %#v", v)
	}
}

func TestSchemaLookup(t *testing.T) {
	for _, kind := range []string{"Constant", "TypeIgnore", "Module"} {
		schema, ok := Python.Schema(kind)
		if !ok {
			t.Errorf("Expected a schema for %s", kind)
			continue
		}
		if schema.Kind != kind {
			t.Errorf("Expected kind %s, got %s", kind, schema.Kind)
		}
	}
	if _, ok := Python.Schema("Match"); ok {
		t.Errorf("Expected no schema for Match")
	}
}
