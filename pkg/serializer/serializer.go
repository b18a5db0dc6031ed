// Package serializer renders a syntax tree as a canonical JSON document.
//
// Every node becomes an object whose first member names its kind, followed
// by the kind's fields and then its attributes, in schema order. A slot is
// left out only when it holds no value and its declared default is also "no
// value"; falsy values such as 0, '' or [] are always written. Sequences
// become arrays and every other leaf becomes the string returned by its
// Repr method.
//
// A Serializer holds no mutable state and may be shared between goroutines.
package serializer

import (
	"fmt"

	"github.com/spicery/pyast-json/pkg/ast"
	"github.com/spicery/pyast-json/pkg/common"
)

// Options adjusts the document. The zero value produces the canonical form.
type Options struct {
	TypeKey           string // Discriminator member name; "$type" when empty
	ExcludeAttributes bool   // Leave out position attributes
}

type Serializer struct {
	schemas ast.SchemaSource
	options Options
}

// InvalidRootError is returned when the value handed to Serialize is not a
// node.
type InvalidRootError struct {
	Got string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("cannot serialize %s: root is not a syntax tree node", e.Got)
}

// New creates a Serializer over the given schema table.
func New(schemas ast.SchemaSource, options Options) *Serializer {
	if options.TypeKey == "" {
		options.TypeKey = common.DefaultTypeKey
	}
	return &Serializer{schemas: schemas, options: options}
}

var canonical = New(ast.Python, Options{})

// Serialize renders root with the Python schema table and default options.
func Serialize(root any) (*common.Object, error) {
	return canonical.Serialize(root)
}

// Serialize renders the tree rooted at root.
func (s *Serializer) Serialize(root any) (*common.Object, error) {
	node, ok := root.(ast.Node)
	if !ok || node == nil {
		return nil, &InvalidRootError{Got: fmt.Sprintf("%T", root)}
	}
	return s.node(node), nil
}

// Value renders any slot value: a node, a sequence or a scalar.
func (s *Serializer) Value(v ast.Value) common.Value {
	switch v := v.(type) {
	case ast.Node:
		return s.node(v)
	case ast.Seq:
		items := make(common.Array, len(v))
		for i, item := range v {
			items[i] = s.Value(item)
		}
		return items
	case ast.Scalar:
		return common.String(v.Repr())
	}
	return common.String(ast.Absent.Repr())
}

func (s *Serializer) node(n ast.Node) *common.Object {
	schema, ok := s.schemas.Schema(n.Kind())
	if !ok {
		schema = &ast.Schema{Kind: n.Kind()}
	}
	capacity := 1 + len(schema.Fields)
	if !s.options.ExcludeAttributes {
		capacity += len(schema.Attributes)
	}
	obj := common.NewObject(capacity)
	obj.Set(s.options.TypeKey, common.String(n.Kind()))
	s.slots(obj, n, schema.Fields)
	if !s.options.ExcludeAttributes {
		s.slots(obj, n, schema.Attributes)
	}
	return obj
}

func (s *Serializer) slots(obj *common.Object, n ast.Node, slots []ast.Slot) {
	for _, slot := range slots {
		value, ok := n.Slot(slot.Name)
		if !ok {
			// Declared but unreadable on this instance: treat as absent.
			continue
		}
		if ast.IsAbsent(value) && slot.DefaultsToAbsent() {
			continue
		}
		obj.Set(slot.Name, s.Value(value))
	}
}
