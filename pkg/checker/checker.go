package checker

import (
	"fmt"
	"io"
	"os"

	"github.com/spicery/pyast-json/pkg/ast"
	"github.com/spicery/pyast-json/pkg/common"
)

type Bug struct {
	Message string
	Node    ast.Node
	Span    common.Span
}

type Issue struct {
	Message string
	Node    ast.Node
	Span    common.Span
}

// Checker validates a Python syntax tree: that every node agrees with its
// schema, and the rules the compiler enforces after parsing.
type Checker struct {
	Bugs    []Bug   // Accumulated internal errors (bugs).
	Issues  []Issue // Accumulated validation errors.
	schemas ast.SchemaSource
}

// scope describes where a node sits: what encloses it determines which
// statements are allowed.
type scope struct {
	function      bool
	async         bool
	loop          bool
	class         bool
	comprehension string
	span          common.Span // Position of the nearest positioned ancestor
}

func (c *Checker) ReportErrors() {
	c.ReportErrorsTo(os.Stderr)
}

func (c *Checker) ReportErrorsTo(w io.Writer) {
	// First report any bugs and then move onto issues.
	if len(c.Bugs) > 0 {
		fmt.Fprintln(w, "Bug in parser detected; the output of the parser is faulty:")
		count := 0
		for _, bug := range c.Bugs {
			count++
			fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", count, bug.Message, bug.Span.StartLine, bug.Span.StartColumn)
		}
	}
	if len(c.Issues) > 0 {
		fmt.Fprintln(w, "Errors found in the source code:")
		count := 0
		for _, issue := range c.Issues {
			count++
			fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", count, issue.Message, issue.Span.StartLine, issue.Span.StartColumn)
		}
	}
}

// NewChecker creates a new checker over the Python schema table.
func NewChecker() *Checker {
	return NewCheckerWithSchemas(ast.Python)
}

func NewCheckerWithSchemas(schemas ast.SchemaSource) *Checker {
	return &Checker{
		Bugs:    []Bug{},
		Issues:  []Issue{},
		schemas: schemas,
	}
}

// Check validates the tree rooted at root and reports whether it is free
// of bugs and issues.
func (c *Checker) Check(root ast.Node) bool {
	if root == nil {
		c.addBug("invalid node: nil", nil, common.Span{})
		return false
	}
	if _, ok := root.(ast.Root); !ok {
		c.addIssue("expected Module or Expression as root", root, common.Span{})
		return false
	}
	c.validate(root, scope{})
	return len(c.Issues) == 0 && len(c.Bugs) == 0
}

func (c *Checker) validate(node ast.Node, s scope) {
	if positioned, ok := node.(ast.Positioned); ok {
		s.span = positioned.Position().Span()
	}
	schema, ok := c.schemas.Schema(node.Kind())
	if !ok {
		c.addBug(fmt.Sprintf("no schema for node kind %s", node.Kind()), node, s.span)
		return
	}
	for _, slot := range schema.Attributes {
		if _, ok := node.Slot(slot.Name); !ok {
			c.addBug(fmt.Sprintf("%s node cannot read attribute '%s'", node.Kind(), slot.Name), node, s.span)
		}
	}
	c.validateNode(node, s)
	for _, slot := range schema.Fields {
		value, ok := node.Slot(slot.Name)
		if !ok {
			c.addBug(fmt.Sprintf("%s node cannot read field '%s'", node.Kind(), slot.Name), node, s.span)
			continue
		}
		c.validateValue(value, fieldScope(node, slot.Name, s))
	}
}

func (c *Checker) validateValue(value ast.Value, s scope) {
	switch v := value.(type) {
	case ast.Node:
		c.validate(v, s)
	case ast.Seq:
		for _, item := range v {
			c.validateValue(item, s)
		}
	}
}

// fieldScope returns the scope for the children held in one field of node.
func fieldScope(node ast.Node, field string, s scope) scope {
	switch n := node.(type) {
	case *ast.FunctionDef:
		if field == "body" {
			return scope{function: true, async: n.Async, span: s.span}
		}
	case *ast.Lambda:
		if field == "body" {
			return scope{function: true, span: s.span}
		}
	case *ast.ClassDef:
		if field == "body" {
			return scope{class: true, span: s.span}
		}
	case *ast.For, *ast.While:
		if field == "body" {
			s.loop = true
		}
	case *ast.Comp:
		s.comprehension = describeComprehension(n.CompKind)
	case *ast.DictComp:
		s.comprehension = "dict comprehension"
	}
	return s
}

func describeComprehension(kind string) string {
	switch kind {
	case ast.ListCompKind:
		return "list comprehension"
	case ast.SetCompKind:
		return "set comprehension"
	}
	return "generator expression"
}

// validateNode applies the rules specific to one kind of node.
func (c *Checker) validateNode(node ast.Node, s scope) {
	switch n := node.(type) {
	case *ast.Return:
		if !s.function {
			c.addIssue("'return' outside function", node, s.span)
		}
	case *ast.Yield, *ast.YieldFrom:
		switch {
		case s.comprehension != "":
			c.addIssue(fmt.Sprintf("'yield' inside %s", s.comprehension), node, s.span)
		case !s.function:
			c.addIssue("'yield' outside function", node, s.span)
		}
	case *ast.Await:
		if !s.async {
			c.addIssue("'await' outside async function", node, s.span)
		}
	case *ast.Break:
		if !s.loop {
			c.addIssue("'break' outside loop", node, s.span)
		}
	case *ast.Continue:
		if !s.loop {
			c.addIssue("'continue' not properly in loop", node, s.span)
		}
	case *ast.Nonlocal:
		if !s.function && !s.class {
			c.addIssue("nonlocal declaration not allowed at module level", node, s.span)
		}
	case *ast.FunctionDef:
		c.validateArguments(n.Args, node, s)
	case *ast.Lambda:
		c.validateArguments(n.Args, node, s)
	case *ast.Tuple:
		c.validateStarredTargets(n.Elts, n.Ctx, node, s)
	case *ast.List:
		c.validateStarredTargets(n.Elts, n.Ctx, node, s)
	}
}

func (c *Checker) validateArguments(args *ast.Arguments, node ast.Node, s scope) {
	if args == nil {
		c.addBug(fmt.Sprintf("%s node has no arguments", node.Kind()), node, s.span)
		return
	}
	seen := map[ast.Identifier]bool{}
	check := func(arg *ast.Arg) {
		if arg == nil {
			return
		}
		if seen[arg.Arg] {
			c.addIssue(fmt.Sprintf("duplicate argument '%s' in function definition", arg.Arg), arg, arg.Span())
		}
		seen[arg.Arg] = true
	}
	for _, group := range [][]*ast.Arg{args.PosOnlyArgs, args.Args, {args.Vararg}, args.KwOnlyArgs, {args.Kwarg}} {
		for _, arg := range group {
			check(arg)
		}
	}
	if len(args.KwDefaults) != len(args.KwOnlyArgs) {
		c.addBug("kw_defaults and kwonlyargs differ in length", node, s.span)
	}
	if len(args.Defaults) > len(args.PosOnlyArgs)+len(args.Args) {
		c.addBug("more defaults than positional arguments", node, s.span)
	}
}

func (c *Checker) validateStarredTargets(elts []ast.Expr, ctx ast.ExprContext, node ast.Node, s scope) {
	if ctx != ast.Store {
		return
	}
	starred := 0
	for _, elt := range elts {
		if _, ok := elt.(*ast.Starred); ok {
			starred++
		}
	}
	if starred > 1 {
		c.addIssue("multiple starred expressions in assignment", node, s.span)
	}
}

// We add a bug if the parser is supposed to guarantee the condition
// but it is violated.
func (c *Checker) addBug(message string, node ast.Node, span common.Span) {
	c.Bugs = append(c.Bugs, Bug{Message: message, Node: node, Span: span})
}

// We add an issue if the user can write code that the parser accepts
// but that code is invalid according to our rules.
func (c *Checker) addIssue(message string, node ast.Node, span common.Span) {
	c.Issues = append(c.Issues, Issue{Message: message, Node: node, Span: span})
}
