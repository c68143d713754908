// Package hashmap provides a fixed-bucket separate-chaining hash map with
// caller-supplied hash and equality callbacks. The bucket array never
// grows; chains absorb additional load. Collisions between distinct keys
// with equal hashes are resolved by the equality callback, never assumed
// away.
package hashmap

import "errors"

// HashFunc maps a key to a 64-bit hash.
type HashFunc[K any] func(K) uint64

// EqualFunc reports whether two keys are the same key.
type EqualFunc[K any] func(K, K) bool

// ErrMissingCallback is returned by New when either callback is nil.
var ErrMissingCallback = errors.New("hashmap: hash and equality callbacks are required")

// DefaultBuckets is a reasonable bucket count when the caller has no
// better estimate.
const DefaultBuckets = 1 << 16

type node[K, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

// Map is a separate-chaining hash map. It is not safe for concurrent use;
// chain traversal and insertion are not atomic.
type Map[K, V any] struct {
	buckets []*node[K, V]
	hash    HashFunc[K]
	eq      EqualFunc[K]
	length  int
}

// New creates a map with the given bucket count. A non-positive count
// falls back to DefaultBuckets. Both callbacks are required.
func New[K, V any](buckets int, hash HashFunc[K], eq EqualFunc[K]) (*Map[K, V], error) {
	if hash == nil || eq == nil {
		return nil, ErrMissingCallback
	}
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Map[K, V]{
		buckets: make([]*node[K, V], buckets),
		hash:    hash,
		eq:      eq,
	}, nil
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return m.length
}

func (m *Map[K, V]) bucketFor(key K) int {
	return int(m.hash(key) % uint64(len(m.buckets)))
}

// Store inserts or replaces the value for key. When an equal key already
// sits in the bucket chain its value is replaced; otherwise a new entry
// is prepended to the chain.
func (m *Map[K, V]) Store(key K, value V) {
	idx := m.bucketFor(key)
	for n := m.buckets[idx]; n != nil; n = n.next {
		if m.eq(n.key, key) {
			n.value = value
			return
		}
	}
	m.buckets[idx] = &node[K, V]{key: key, value: value, next: m.buckets[idx]}
	m.length++
}

// Lookup returns the value stored for key, if any.
func (m *Map[K, V]) Lookup(key K) (V, bool) {
	idx := m.bucketFor(key)
	for n := m.buckets[idx]; n != nil; n = n.next {
		if m.eq(n.key, key) {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the entry for key, reporting whether one existed.
func (m *Map[K, V]) Delete(key K) bool {
	idx := m.bucketFor(key)
	prev := &m.buckets[idx]
	for n := *prev; n != nil; n = n.next {
		if m.eq(n.key, key) {
			*prev = n.next
			m.length--
			return true
		}
		prev = &n.next
	}
	return false
}

// Clear drops every entry, keeping the bucket array.
func (m *Map[K, V]) Clear() {
	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.length = 0
}

// Range calls fn for each entry until fn returns false. Enumeration order
// is unspecified.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	for _, n := range m.buckets {
		for ; n != nil; n = n.next {
			if !fn(n.key, n.value) {
				return
			}
		}
	}
}

// Iterator is a pull-style cursor over the map: a bucket index plus the
// current chain node, advancing bucket by bucket as chains run out. The
// map must not be mutated while an iterator is live.
type Iterator[K, V any] struct {
	m      *Map[K, V]
	bucket int
	node   *node[K, V]
}

// Iterate returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iterate() *Iterator[K, V] {
	return &Iterator[K, V]{m: m}
}

// Next advances and returns the next entry, with ok=false once the map is
// exhausted.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.node != nil {
		it.node = it.node.next
	}
	for it.node == nil {
		if it.bucket >= len(it.m.buckets) {
			var zk K
			var zv V
			return zk, zv, false
		}
		it.node = it.m.buckets[it.bucket]
		it.bucket++
	}
	return it.node.key, it.node.value, true
}
