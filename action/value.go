// Package action models exchange actions as ordered trees of plain values
// and serializes them into the canonical msgpack form the remote verifier
// hashes. Map entry order is part of the signed bytes: the verifier
// recomputes the hash from the same logical action, so reordering keys
// produces a signature that fails verification.
package action

// Kind discriminates the closed set of value variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// Value is one node of an action tree. The zero Value is invalid and
// fails to encode; build trees with the constructors below.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	m    []Entry
}

// Entry is one ordered key/value pair of a map value.
type Entry struct {
	Key   string
	Value Value
}

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func String(s string) Value { return Value{kind: KindString, s: s} }

func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

func Map(entries ...Entry) Value { return Value{kind: KindMap, m: entries} }

// Pair builds a map entry; sugar for Map(Pair("type", String("order"))).
func Pair(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }
