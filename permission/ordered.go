package permission

import "iter"

// Ordered maps unique keys to values and remembers insertion order.
//
// Ordered values are built once and then only read; a zero Ordered is empty and
// ready to use.
type Ordered[K comparable, V any] struct {
	keys []K
	vals []V
	pos  map[K]int
}

// Put appends key with value. It reports false, leaving the map unchanged, when key
// is already present.
func (o *Ordered[K, V]) Put(key K, value V) bool {
	if o.pos == nil {
		o.pos = make(map[K]int)
	}
	if _, exists := o.pos[key]; exists {
		return false
	}
	o.pos[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, value)
	return true
}

// Get returns the value stored under key.
func (o *Ordered[K, V]) Get(key K) (V, bool) {
	i, ok := o.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return o.vals[i], true
}

// Has reports whether key is present.
func (o *Ordered[K, V]) Has(key K) bool {
	_, ok := o.pos[key]
	return ok
}

// Len returns the number of entries.
func (o *Ordered[K, V]) Len() int {
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Ordered[K, V]) Keys() []K {
	out := make([]K, len(o.keys))
	copy(out, o.keys)
	return out
}

// All iterates over entries in insertion order.
func (o *Ordered[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}
