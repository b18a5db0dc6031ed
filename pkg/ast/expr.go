package ast

// expr embeds the position attributes and the expression marker.
type expr struct {
	Pos
}

func (*expr) isValue()  {}
func (*expr) exprNode() {}

type BoolOp struct {
	expr
	Op     BoolOperator
	Values []Expr
}

func (*BoolOp) Kind() string { return "BoolOp" }

func (n *BoolOp) Slot(name string) (Value, bool) {
	switch name {
	case "op":
		return n.Op, true
	case "values":
		return seq(n.Values), true
	}
	return n.slot(name)
}

type NamedExpr struct {
	expr
	Target Expr
	Value  Expr
}

func (*NamedExpr) Kind() string { return "NamedExpr" }

func (n *NamedExpr) Slot(name string) (Value, bool) {
	switch name {
	case "target":
		return opt(n.Target), true
	case "value":
		return opt(n.Value), true
	}
	return n.slot(name)
}

type BinOp struct {
	expr
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) Kind() string { return "BinOp" }

func (n *BinOp) Slot(name string) (Value, bool) {
	switch name {
	case "left":
		return opt(n.Left), true
	case "op":
		return n.Op, true
	case "right":
		return opt(n.Right), true
	}
	return n.slot(name)
}

type UnaryOp struct {
	expr
	Op      UnaryOperator
	Operand Expr
}

func (*UnaryOp) Kind() string { return "UnaryOp" }

func (n *UnaryOp) Slot(name string) (Value, bool) {
	switch name {
	case "op":
		return n.Op, true
	case "operand":
		return opt(n.Operand), true
	}
	return n.slot(name)
}

type Lambda struct {
	expr
	Args *Arguments
	Body Expr
}

func (*Lambda) Kind() string { return "Lambda" }

func (n *Lambda) Slot(name string) (Value, bool) {
	switch name {
	case "args":
		return optArguments(n.Args), true
	case "body":
		return opt(n.Body), true
	}
	return n.slot(name)
}

type IfExp struct {
	expr
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (*IfExp) Kind() string { return "IfExp" }

func (n *IfExp) Slot(name string) (Value, bool) {
	switch name {
	case "test":
		return opt(n.Test), true
	case "body":
		return opt(n.Body), true
	case "orelse":
		return opt(n.Orelse), true
	}
	return n.slot(name)
}

// Dict is a dict display. A nil key marks a ** unpacking.
type Dict struct {
	expr
	Keys   []Expr
	Values []Expr
}

func (*Dict) Kind() string { return "Dict" }

func (n *Dict) Slot(name string) (Value, bool) {
	switch name {
	case "keys":
		return seq(n.Keys), true
	case "values":
		return seq(n.Values), true
	}
	return n.slot(name)
}

type Set struct {
	expr
	Elts []Expr
}

func (*Set) Kind() string { return "Set" }

func (n *Set) Slot(name string) (Value, bool) {
	if name == "elts" {
		return seq(n.Elts), true
	}
	return n.slot(name)
}

// Comp is a list, set or generator comprehension; CompKind selects which.
type Comp struct {
	expr
	CompKind   string
	Elt        Expr
	Generators []*Comprehension
}

const (
	ListCompKind     = "ListComp"
	SetCompKind      = "SetComp"
	GeneratorExpKind = "GeneratorExp"
)

func (n *Comp) Kind() string { return n.CompKind }

func (n *Comp) Slot(name string) (Value, bool) {
	switch name {
	case "elt":
		return opt(n.Elt), true
	case "generators":
		return seq(n.Generators), true
	}
	return n.slot(name)
}

type DictComp struct {
	expr
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

func (*DictComp) Kind() string { return "DictComp" }

func (n *DictComp) Slot(name string) (Value, bool) {
	switch name {
	case "key":
		return opt(n.Key), true
	case "value":
		return opt(n.Value), true
	case "generators":
		return seq(n.Generators), true
	}
	return n.slot(name)
}

type Await struct {
	expr
	Value Expr
}

func (*Await) Kind() string { return "Await" }

func (n *Await) Slot(name string) (Value, bool) {
	if name == "value" {
		return opt(n.Value), true
	}
	return n.slot(name)
}

type Yield struct {
	expr
	Value Expr
}

func (*Yield) Kind() string { return "Yield" }

func (n *Yield) Slot(name string) (Value, bool) {
	if name == "value" {
		return opt(n.Value), true
	}
	return n.slot(name)
}

type YieldFrom struct {
	expr
	Value Expr
}

func (*YieldFrom) Kind() string { return "YieldFrom" }

func (n *YieldFrom) Slot(name string) (Value, bool) {
	if name == "value" {
		return opt(n.Value), true
	}
	return n.slot(name)
}

type Compare struct {
	expr
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

func (*Compare) Kind() string { return "Compare" }

func (n *Compare) Slot(name string) (Value, bool) {
	switch name {
	case "left":
		return opt(n.Left), true
	case "ops":
		return seq(n.Ops), true
	case "comparators":
		return seq(n.Comparators), true
	}
	return n.slot(name)
}

type Call struct {
	expr
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (*Call) Kind() string { return "Call" }

func (n *Call) Slot(name string) (Value, bool) {
	switch name {
	case "func":
		return opt(n.Func), true
	case "args":
		return seq(n.Args), true
	case "keywords":
		return seq(n.Keywords), true
	}
	return n.slot(name)
}

// Conversion codes of FormattedValue: none, !s, !r and !a.
const (
	ConversionNone  int = -1
	ConversionStr   int = 's'
	ConversionRepr  int = 'r'
	ConversionASCII int = 'a'
)

type FormattedValue struct {
	expr
	Value      Expr
	Conversion int
	FormatSpec Expr
}

func (*FormattedValue) Kind() string { return "FormattedValue" }

func (n *FormattedValue) Slot(name string) (Value, bool) {
	switch name {
	case "value":
		return opt(n.Value), true
	case "conversion":
		return Int(n.Conversion), true
	case "format_spec":
		return opt(n.FormatSpec), true
	}
	return n.slot(name)
}

type JoinedStr struct {
	expr
	Values []Expr
}

func (*JoinedStr) Kind() string { return "JoinedStr" }

func (n *JoinedStr) Slot(name string) (Value, bool) {
	if name == "values" {
		return seq(n.Values), true
	}
	return n.slot(name)
}

// Constant is a literal. Value is one of the scalar types; ConstKind is "u"
// for u-prefixed strings.
type Constant struct {
	expr
	Value     Scalar
	ConstKind *string
}

func (*Constant) Kind() string { return "Constant" }

func (n *Constant) Slot(name string) (Value, bool) {
	switch name {
	case "value":
		return opt(n.Value), true
	case "kind":
		return optString(n.ConstKind), true
	}
	return n.slot(name)
}

type Attribute struct {
	expr
	Value Expr
	Attr  Identifier
	Ctx   ExprContext
}

func (*Attribute) Kind() string { return "Attribute" }

func (n *Attribute) Slot(name string) (Value, bool) {
	switch name {
	case "value":
		return opt(n.Value), true
	case "attr":
		return n.Attr, true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type Subscript struct {
	expr
	Value Expr
	Index Expr
	Ctx   ExprContext
}

func (*Subscript) Kind() string { return "Subscript" }

func (n *Subscript) Slot(name string) (Value, bool) {
	switch name {
	case "value":
		return opt(n.Value), true
	case "slice":
		return opt(n.Index), true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type Starred struct {
	expr
	Value Expr
	Ctx   ExprContext
}

func (*Starred) Kind() string { return "Starred" }

func (n *Starred) Slot(name string) (Value, bool) {
	switch name {
	case "value":
		return opt(n.Value), true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type Name struct {
	expr
	Id  Identifier
	Ctx ExprContext
}

func (*Name) Kind() string { return "Name" }

func (n *Name) Slot(name string) (Value, bool) {
	switch name {
	case "id":
		return n.Id, true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type List struct {
	expr
	Elts []Expr
	Ctx  ExprContext
}

func (*List) Kind() string { return "List" }

func (n *List) Slot(name string) (Value, bool) {
	switch name {
	case "elts":
		return seq(n.Elts), true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type Tuple struct {
	expr
	Elts []Expr
	Ctx  ExprContext
}

func (*Tuple) Kind() string { return "Tuple" }

func (n *Tuple) Slot(name string) (Value, bool) {
	switch name {
	case "elts":
		return seq(n.Elts), true
	case "ctx":
		return n.Ctx, true
	}
	return n.slot(name)
}

type Slice struct {
	expr
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) Kind() string { return "Slice" }

func (n *Slice) Slot(name string) (Value, bool) {
	switch name {
	case "lower":
		return opt(n.Lower), true
	case "upper":
		return opt(n.Upper), true
	case "step":
		return opt(n.Step), true
	}
	return n.slot(name)
}
