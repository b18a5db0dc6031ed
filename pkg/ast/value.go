// Package ast holds the Python syntax tree: one Go type per node kind, the
// scalar leaf types, and the per-kind schema table that drives
// serialization.
package ast

// Value is anything that can occupy a field or attribute slot: a Node, a
// Seq, a Scalar or Absent.
type Value interface {
	isValue()
}

// Node is one syntax construct. Slot returns the current value of a
// declared field or attribute; ok is false when this node cannot answer for
// the name at all.
type Node interface {
	Value
	Kind() string
	Slot(name string) (value Value, ok bool)
}

// Seq is an ordered sequence of values. A nil Seq is an empty sequence,
// never an absent one.
type Seq []Value

func (Seq) isValue() {}

// NoValue is the type of Absent.
type NoValue struct{}

// Absent marks a slot that was never set.
var Absent = NoValue{}

func (NoValue) isValue() {}

// Repr renders Absent the way Python renders None.
func (NoValue) Repr() string { return "None" }

// IsAbsent reports whether v denotes "never set". A nil Value counts.
func IsAbsent(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NoValue)
	return ok
}

func seq[T Value](items []T) Seq {
	out := make(Seq, len(items))
	for i, item := range items {
		if any(item) == nil {
			out[i] = Absent
			continue
		}
		out[i] = item
	}
	return out
}

func opt[T Value](v T) Value {
	if any(v) == nil {
		return Absent
	}
	return v
}

func optIdentifier(s *Identifier) Value {
	if s == nil {
		return Absent
	}
	return *s
}

func optString(s *string) Value {
	if s == nil {
		return Absent
	}
	return Str(*s)
}

func optInt(i *int) Value {
	if i == nil {
		return Absent
	}
	return Int(*i)
}
