package common

import "strings"

// Value is a JSON document produced by the serializer. Only the three shapes
// the serializer emits exist: objects with ordered members, arrays and
// strings.
type Value interface {
	isJSON()
}

type String string

type Array []Value

type Member struct {
	Key   string
	Value Value
}

// Object keeps its members in insertion order.
type Object struct {
	Members []Member
}

func (String) isJSON()  {}
func (Array) isJSON()   {}
func (*Object) isJSON() {}

func NewObject(capacity int) *Object {
	return &Object{Members: make([]Member, 0, capacity)}
}

// Set appends a member, or replaces the value of an existing one in place.
func (o *Object) Set(key string, value Value) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

func (o *Object) Len() int {
	return len(o.Members)
}

// MarshalJSON renders the object compactly, preserving member order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	appendJSON(&sb, o, CompactStyle)
	return []byte(sb.String()), nil
}

// MarshalJSON renders the array compactly.
func (a Array) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	appendJSON(&sb, a, CompactStyle)
	return []byte(sb.String()), nil
}
