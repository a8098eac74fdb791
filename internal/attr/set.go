// Package attr implements attribute sets:
// the mappings used to describe credential records
// and the queries that address them.
package attr

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Attr is a single key-value pair.
type Attr struct {
	Key   Key
	Value Value
}

// Set is an immutable mapping from attribute key to value.
//
// Adding an attribute returns a new Set
// and leaves the original untouched,
// so Sets may be shared freely between goroutines.
// The zero value is an empty set.
type Set struct {
	head *node
}

// node is one binding in a persistent overlay chain.
// Newer bindings shadow older ones with the same key.
type node struct {
	attr Attr
	next *node
}

// New builds a set from the given attributes.
// Later attributes win over earlier ones with the same key.
func New(attrs ...Attr) Set {
	var s Set
	for _, a := range attrs {
		s = s.With(a.Key, a.Value)
	}
	return s
}

// With returns a set identical to s except that key maps to value.
func (s Set) With(key Key, value Value) Set {
	return Set{head: &node{
		attr: Attr{Key: key, Value: value},
		next: s.head,
	}}
}

// Merge returns s overlaid with the attributes of other.
// Keys present in both take the value from other.
func (s Set) Merge(other Set) Set {
	for k, v := range other.All() {
		s = s.With(k, v)
	}
	return s
}

// Get returns the value bound to key.
func (s Set) Get(key Key) (Value, bool) {
	for n := s.head; n != nil; n = n.next {
		if n.attr.Key == key {
			return n.attr.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is bound in s.
func (s Set) Has(key Key) bool {
	_, ok := s.Get(key)
	return ok
}

func (s Set) bindings() map[Key]Value {
	m := make(map[Key]Value)
	for n := s.head; n != nil; n = n.next {
		if _, ok := m[n.attr.Key]; !ok {
			m[n.attr.Key] = n.attr.Value
		}
	}
	return m
}

// Len reports the number of distinct keys in s.
func (s Set) Len() int {
	return len(s.bindings())
}

// Keys returns the keys of s in sorted order.
func (s Set) Keys() []Key {
	return slices.Sorted(maps.Keys(s.bindings()))
}

// All iterates over the bindings of s in sorted key order.
func (s Set) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		m := s.bindings()
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// Equal reports whether s and other bind the same keys to equal values.
func (s Set) Equal(other Set) bool {
	a, b := s.bindings(), other.bindings()
	return maps.EqualFunc(a, b, Value.Equal)
}

// String renders the set in sorted key order.
// Byte values are reported by size only.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for k, v := range s.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(string(k))
		sb.WriteByte('=')
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON implements [json.Marshaler].
// The set is encoded as an object keyed by attribute name.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.bindings())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (s *Set) UnmarshalJSON(data []byte) error {
	var m map[Key]Value
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out Set
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = out.With(k, m[k])
	}
	*s = out
	return nil
}
