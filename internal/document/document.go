// Package document holds the generic tree shape that decoded regulatory
// documents are searched over. A node is one of:
//
//   - *Object: an element/object with insertion-ordered string keys
//   - []any:   repeated elements
//   - string:  text
//
// The search primitive knows nothing about the CFR schema; callers decide
// which key names to look for.
package document

import (
	"strings"
)

// Object is a key/value node that preserves insertion order, so search
// results come back in document order instead of Go map order.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

func (o *Object) Set(key string, value any) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetString returns the value under key coerced to text, or "" when absent.
func (o *Object) GetString(key string) string {
	v, ok := o.values[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Search walks the tree depth-first in pre-order collecting every value
// stored under a key equal to name, compared case-insensitively. A matched
// value terminates descent into that branch; a matched array is spliced into
// the result element by element. Array nodes are iterated so each element is
// scanned with the same rules. Scalars contribute nothing.
func Search(node any, name string) []any {
	return search(node, strings.ToLower(name), nil)
}

func search(node any, lowered string, acc []any) []any {
	switch n := node.(type) {
	case *Object:
		for _, key := range n.keys {
			value := n.values[key]
			if strings.ToLower(key) == lowered {
				if arr, ok := value.([]any); ok {
					acc = append(acc, arr...)
				} else {
					acc = append(acc, value)
				}
				continue
			}
			acc = search(value, lowered, acc)
		}
	case []any:
		for _, elem := range n {
			acc = search(elem, lowered, acc)
		}
	}
	return acc
}

// FlattenText recovers the text of a node. Plain strings pass through. An
// object's immediate member values are joined with single spaces, which
// reassembles paragraph text split across inline markup children; nested
// members are flattened the same way.
func FlattenText(node any) string {
	switch n := node.(type) {
	case string:
		return n
	case *Object:
		parts := make([]string, 0, len(n.keys))
		for _, key := range n.keys {
			parts = append(parts, FlattenText(n.values[key]))
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(n))
		for _, elem := range n {
			parts = append(parts, FlattenText(elem))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
