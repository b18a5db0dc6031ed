package ast

// Module is the result of parsing a file.
type Module struct {
	Body        []Stmt
	TypeIgnores []*TypeIgnore
}

func (*Module) isValue()     {}
func (*Module) rootNode()    {}
func (*Module) Kind() string { return "Module" }

func (n *Module) Slot(name string) (Value, bool) {
	switch name {
	case "body":
		return seq(n.Body), true
	case "type_ignores":
		return seq(n.TypeIgnores), true
	}
	return nil, false
}

// Expression is the result of parsing in eval mode.
type Expression struct {
	Body Expr
}

func (*Expression) isValue()     {}
func (*Expression) rootNode()    {}
func (*Expression) Kind() string { return "Expression" }

func (n *Expression) Slot(name string) (Value, bool) {
	if name == "body" {
		return opt(n.Body), true
	}
	return nil, false
}

// stmt embeds the position attributes and the statement marker.
type stmt struct {
	Pos
}

func (*stmt) isValue()  {}
func (*stmt) stmtNode() {}

// FunctionDef is a def or async def statement.
type FunctionDef struct {
	stmt
	Async         bool
	Name          Identifier
	Args          *Arguments
	Body          []Stmt
	DecoratorList []Expr
	Returns       Expr
	TypeComment   *string
}

func (n *FunctionDef) Kind() string {
	if n.Async {
		return "AsyncFunctionDef"
	}
	return "FunctionDef"
}

func (n *FunctionDef) Slot(name string) (Value, bool) {
	switch name {
	case "name":
		return n.Name, true
	case "args":
		return optArguments(n.Args), true
	case "body":
		return seq(n.Body), true
	case "decorator_list":
		return seq(n.DecoratorList), true
	case "returns":
		return opt(n.Returns), true
	case "type_comment":
		return optString(n.TypeComment), true
	}
	return n.slot(name)
}

type ClassDef struct {
	stmt
	Name          Identifier
	Bases         []Expr
	Keywords      []*Keyword
	Body          []Stmt
	DecoratorList []Expr
}

func (*ClassDef) Kind() string { return "ClassDef" }

func (n *ClassDef) Slot(name string) (Value, bool) {
	switch name {
	case "name":
		return n.Name, true
	case "bases":
		return seq(n.Bases), true
	case "keywords":
		return seq(n.Keywords), true
	case "body":
		return seq(n.Body), true
	case "decorator_list":
		return seq(n.DecoratorList), true
	}
	return n.slot(name)
}

type Return struct {
	stmt
	Value Expr
}

func (*Return) Kind() string { return "Return" }

func (n *Return) Slot(name string) (Value, bool) {
	if name == "value" {
		return opt(n.Value), true
	}
	return n.slot(name)
}

type Delete struct {
	stmt
	Targets []Expr
}

func (*Delete) Kind() string { return "Delete" }

func (n *Delete) Slot(name string) (Value, bool) {
	if name == "targets" {
		return seq(n.Targets), true
	}
	return n.slot(name)
}

type Assign struct {
	stmt
	Targets     []Expr
	Value       Expr
	TypeComment *string
}

func (*Assign) Kind() string { return "Assign" }

func (n *Assign) Slot(name string) (Value, bool) {
	switch name {
	case "targets":
		return seq(n.Targets), true
	case "value":
		return opt(n.Value), true
	case "type_comment":
		return optString(n.TypeComment), true
	}
	return n.slot(name)
}

type AugAssign struct {
	stmt
	Target Expr
	Op     Operator
	Value  Expr
}

func (*AugAssign) Kind() string { return "AugAssign" }

func (n *AugAssign) Slot(name string) (Value, bool) {
	switch name {
	case "target":
		return opt(n.Target), true
	case "op":
		return n.Op, true
	case "value":
		return opt(n.Value), true
	}
	return n.slot(name)
}

type AnnAssign struct {
	stmt
	Target     Expr
	Annotation Expr
	Value      Expr
	Simple     int
}

func (*AnnAssign) Kind() string { return "AnnAssign" }

func (n *AnnAssign) Slot(name string) (Value, bool) {
	switch name {
	case "target":
		return opt(n.Target), true
	case "annotation":
		return opt(n.Annotation), true
	case "value":
		return opt(n.Value), true
	case "simple":
		return Int(n.Simple), true
	}
	return n.slot(name)
}

// For is a for or async for statement.
type For struct {
	stmt
	Async       bool
	Target      Expr
	Iter        Expr
	Body        []Stmt
	Orelse      []Stmt
	TypeComment *string
}

func (n *For) Kind() string {
	if n.Async {
		return "AsyncFor"
	}
	return "For"
}

func (n *For) Slot(name string) (Value, bool) {
	switch name {
	case "target":
		return opt(n.Target), true
	case "iter":
		return opt(n.Iter), true
	case "body":
		return seq(n.Body), true
	case "orelse":
		return seq(n.Orelse), true
	case "type_comment":
		return optString(n.TypeComment), true
	}
	return n.slot(name)
}

type While struct {
	stmt
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*While) Kind() string { return "While" }

func (n *While) Slot(name string) (Value, bool) {
	switch name {
	case "test":
		return opt(n.Test), true
	case "body":
		return seq(n.Body), true
	case "orelse":
		return seq(n.Orelse), true
	}
	return n.slot(name)
}

type If struct {
	stmt
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*If) Kind() string { return "If" }

func (n *If) Slot(name string) (Value, bool) {
	switch name {
	case "test":
		return opt(n.Test), true
	case "body":
		return seq(n.Body), true
	case "orelse":
		return seq(n.Orelse), true
	}
	return n.slot(name)
}

// With is a with or async with statement.
type With struct {
	stmt
	Async       bool
	Items       []*WithItem
	Body        []Stmt
	TypeComment *string
}

func (n *With) Kind() string {
	if n.Async {
		return "AsyncWith"
	}
	return "With"
}

func (n *With) Slot(name string) (Value, bool) {
	switch name {
	case "items":
		return seq(n.Items), true
	case "body":
		return seq(n.Body), true
	case "type_comment":
		return optString(n.TypeComment), true
	}
	return n.slot(name)
}

type Raise struct {
	stmt
	Exc   Expr
	Cause Expr
}

func (*Raise) Kind() string { return "Raise" }

func (n *Raise) Slot(name string) (Value, bool) {
	switch name {
	case "exc":
		return opt(n.Exc), true
	case "cause":
		return opt(n.Cause), true
	}
	return n.slot(name)
}

type Try struct {
	stmt
	Body      []Stmt
	Handlers  []*ExceptHandler
	Orelse    []Stmt
	Finalbody []Stmt
}

func (*Try) Kind() string { return "Try" }

func (n *Try) Slot(name string) (Value, bool) {
	switch name {
	case "body":
		return seq(n.Body), true
	case "handlers":
		return seq(n.Handlers), true
	case "orelse":
		return seq(n.Orelse), true
	case "finalbody":
		return seq(n.Finalbody), true
	}
	return n.slot(name)
}

type Assert struct {
	stmt
	Test Expr
	Msg  Expr
}

func (*Assert) Kind() string { return "Assert" }

func (n *Assert) Slot(name string) (Value, bool) {
	switch name {
	case "test":
		return opt(n.Test), true
	case "msg":
		return opt(n.Msg), true
	}
	return n.slot(name)
}

type Import struct {
	stmt
	Names []*Alias
}

func (*Import) Kind() string { return "Import" }

func (n *Import) Slot(name string) (Value, bool) {
	if name == "names" {
		return seq(n.Names), true
	}
	return n.slot(name)
}

type ImportFrom struct {
	stmt
	Module *Identifier
	Names  []*Alias
	Level  *int
}

func (*ImportFrom) Kind() string { return "ImportFrom" }

func (n *ImportFrom) Slot(name string) (Value, bool) {
	switch name {
	case "module":
		return optIdentifier(n.Module), true
	case "names":
		return seq(n.Names), true
	case "level":
		return optInt(n.Level), true
	}
	return n.slot(name)
}

type Global struct {
	stmt
	Names []Identifier
}

func (*Global) Kind() string { return "Global" }

func (n *Global) Slot(name string) (Value, bool) {
	if name == "names" {
		return seq(n.Names), true
	}
	return n.slot(name)
}

type Nonlocal struct {
	stmt
	Names []Identifier
}

func (*Nonlocal) Kind() string { return "Nonlocal" }

func (n *Nonlocal) Slot(name string) (Value, bool) {
	if name == "names" {
		return seq(n.Names), true
	}
	return n.slot(name)
}

// ExprStmt is an expression used as a statement; its kind is "Expr".
type ExprStmt struct {
	stmt
	Value Expr
}

func (*ExprStmt) Kind() string { return "Expr" }

func (n *ExprStmt) Slot(name string) (Value, bool) {
	if name == "value" {
		return opt(n.Value), true
	}
	return n.slot(name)
}

type Pass struct{ stmt }

func (*Pass) Kind() string                     { return "Pass" }
func (n *Pass) Slot(name string) (Value, bool) { return n.slot(name) }

type Break struct{ stmt }

func (*Break) Kind() string                     { return "Break" }
func (n *Break) Slot(name string) (Value, bool) { return n.slot(name) }

type Continue struct{ stmt }

func (*Continue) Kind() string                     { return "Continue" }
func (n *Continue) Slot(name string) (Value, bool) { return n.slot(name) }
