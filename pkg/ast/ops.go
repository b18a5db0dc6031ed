package ast

// Operator and context kinds carry no fields. Each is a named constant whose
// value is its kind.

type ExprContext string

const (
	Load  ExprContext = "Load"
	Store ExprContext = "Store"
	Del   ExprContext = "Del"
)

type BoolOperator string

const (
	And BoolOperator = "And"
	Or  BoolOperator = "Or"
)

type Operator string

const (
	Add      Operator = "Add"
	Sub      Operator = "Sub"
	Mult     Operator = "Mult"
	MatMult  Operator = "MatMult"
	Div      Operator = "Div"
	Mod      Operator = "Mod"
	Pow      Operator = "Pow"
	LShift   Operator = "LShift"
	RShift   Operator = "RShift"
	BitOr    Operator = "BitOr"
	BitXor   Operator = "BitXor"
	BitAnd   Operator = "BitAnd"
	FloorDiv Operator = "FloorDiv"
)

type UnaryOperator string

const (
	Invert UnaryOperator = "Invert"
	Not    UnaryOperator = "Not"
	UAdd   UnaryOperator = "UAdd"
	USub   UnaryOperator = "USub"
)

type CmpOperator string

const (
	Eq    CmpOperator = "Eq"
	NotEq CmpOperator = "NotEq"
	Lt    CmpOperator = "Lt"
	LtE   CmpOperator = "LtE"
	Gt    CmpOperator = "Gt"
	GtE   CmpOperator = "GtE"
	Is    CmpOperator = "Is"
	IsNot CmpOperator = "IsNot"
	In    CmpOperator = "In"
	NotIn CmpOperator = "NotIn"
)

func (ExprContext) isValue()   {}
func (BoolOperator) isValue()  {}
func (Operator) isValue()      {}
func (UnaryOperator) isValue() {}
func (CmpOperator) isValue()   {}

func (k ExprContext) Kind() string   { return string(k) }
func (k BoolOperator) Kind() string  { return string(k) }
func (k Operator) Kind() string      { return string(k) }
func (k UnaryOperator) Kind() string { return string(k) }
func (k CmpOperator) Kind() string   { return string(k) }

func (ExprContext) Slot(string) (Value, bool)   { return nil, false }
func (BoolOperator) Slot(string) (Value, bool)  { return nil, false }
func (Operator) Slot(string) (Value, bool)      { return nil, false }
func (UnaryOperator) Slot(string) (Value, bool) { return nil, false }
func (CmpOperator) Slot(string) (Value, bool)   { return nil, false }

// BinaryOperators maps operator text to its kind, for both plain and
// augmented (text without "=") forms.
var BinaryOperators = map[string]Operator{
	"+":  Add,
	"-":  Sub,
	"*":  Mult,
	"@":  MatMult,
	"/":  Div,
	"%":  Mod,
	"**": Pow,
	"<<": LShift,
	">>": RShift,
	"|":  BitOr,
	"^":  BitXor,
	"&":  BitAnd,
	"//": FloorDiv,
}
