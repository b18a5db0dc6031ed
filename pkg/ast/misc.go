package ast

// Comprehension is one "for ... in ... if ..." clause; its kind is
// "comprehension".
type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync int
}

func (*Comprehension) isValue()     {}
func (*Comprehension) Kind() string { return "comprehension" }

func (n *Comprehension) Slot(name string) (Value, bool) {
	switch name {
	case "target":
		return opt(n.Target), true
	case "iter":
		return opt(n.Iter), true
	case "ifs":
		return seq(n.Ifs), true
	case "is_async":
		return Int(n.IsAsync), true
	}
	return nil, false
}

type ExceptHandler struct {
	Pos
	Type Expr
	Name *Identifier
	Body []Stmt
}

func (*ExceptHandler) isValue()     {}
func (*ExceptHandler) Kind() string { return "ExceptHandler" }

func (n *ExceptHandler) Slot(name string) (Value, bool) {
	switch name {
	case "type":
		return opt(n.Type), true
	case "name":
		return optIdentifier(n.Name), true
	case "body":
		return seq(n.Body), true
	}
	return n.slot(name)
}

// Arguments is a parameter list; its kind is "arguments". KwDefaults has one
// entry per keyword-only argument, nil where there is no default.
type Arguments struct {
	PosOnlyArgs []*Arg
	Args        []*Arg
	Vararg      *Arg
	KwOnlyArgs  []*Arg
	KwDefaults  []Expr
	Kwarg       *Arg
	Defaults    []Expr
}

func (*Arguments) isValue()     {}
func (*Arguments) Kind() string { return "arguments" }

func (n *Arguments) Slot(name string) (Value, bool) {
	switch name {
	case "posonlyargs":
		return seq(n.PosOnlyArgs), true
	case "args":
		return seq(n.Args), true
	case "vararg":
		return optArg(n.Vararg), true
	case "kwonlyargs":
		return seq(n.KwOnlyArgs), true
	case "kw_defaults":
		return seq(n.KwDefaults), true
	case "kwarg":
		return optArg(n.Kwarg), true
	case "defaults":
		return seq(n.Defaults), true
	}
	return nil, false
}

// Arg is one parameter; its kind is "arg".
type Arg struct {
	Pos
	Arg         Identifier
	Annotation  Expr
	TypeComment *string
}

func (*Arg) isValue()     {}
func (*Arg) Kind() string { return "arg" }

func (n *Arg) Slot(name string) (Value, bool) {
	switch name {
	case "arg":
		return n.Arg, true
	case "annotation":
		return opt(n.Annotation), true
	case "type_comment":
		return optString(n.TypeComment), true
	}
	return n.slot(name)
}

// Keyword is a keyword argument of a call or class definition; a nil Arg
// marks ** unpacking. Its kind is "keyword".
type Keyword struct {
	Pos
	Arg   *Identifier
	Value Expr
}

func (*Keyword) isValue()     {}
func (*Keyword) Kind() string { return "keyword" }

func (n *Keyword) Slot(name string) (Value, bool) {
	switch name {
	case "arg":
		return optIdentifier(n.Arg), true
	case "value":
		return opt(n.Value), true
	}
	return n.slot(name)
}

// Alias is one imported name; its kind is "alias".
type Alias struct {
	Pos
	Name   Identifier
	Asname *Identifier
}

func (*Alias) isValue()     {}
func (*Alias) Kind() string { return "alias" }

func (n *Alias) Slot(name string) (Value, bool) {
	switch name {
	case "name":
		return n.Name, true
	case "asname":
		return optIdentifier(n.Asname), true
	}
	return n.slot(name)
}

// WithItem is one context manager of a with statement; its kind is
// "withitem".
type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr
}

func (*WithItem) isValue()     {}
func (*WithItem) Kind() string { return "withitem" }

func (n *WithItem) Slot(name string) (Value, bool) {
	switch name {
	case "context_expr":
		return opt(n.ContextExpr), true
	case "optional_vars":
		return opt(n.OptionalVars), true
	}
	return nil, false
}

// TypeIgnore records a "# type: ignore" comment.
type TypeIgnore struct {
	Lineno int
	Tag    string
}

func (*TypeIgnore) isValue()     {}
func (*TypeIgnore) Kind() string { return "TypeIgnore" }

func (n *TypeIgnore) Slot(name string) (Value, bool) {
	switch name {
	case "lineno":
		return Int(n.Lineno), true
	case "tag":
		return Str(n.Tag), true
	}
	return nil, false
}

func optArg(a *Arg) Value {
	if a == nil {
		return Absent
	}
	return a
}

func optArguments(a *Arguments) Value {
	if a == nil {
		return Absent
	}
	return a
}
