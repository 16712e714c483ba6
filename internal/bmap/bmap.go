// Package bmap implements a read-mostly map with []byte keys.
// Lexer uses it as a keyword table, so lexeme bytes can be looked up without string allocation.
package bmap

import (
	"unsafe"
)

// BMap stores values by []byte keys. Keys cannot be deleted.
// Added keys are copied into internal byte slice, so callers may reuse their buffers.
// Concurrent reads are safe when there are no concurrent writes.
type BMap[T any] struct {
	keys []byte
	smap map[string]T
}

// New creates a map, size is a capacity hint.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
	}
}

func asString(key []byte) string {
	if len(key) == 0 {
		return ""
	}

	return unsafe.String(&key[0], len(key))
}

// Get returns stored value and true or zero value and false if the key is not present.
func (m *BMap[T]) Get(key []byte) (T, bool) {
	result, has := m.smap[asString(key)]
	return result, has
}

// GetString is Get for string keys.
func (m *BMap[T]) GetString(key string) (T, bool) {
	result, has := m.smap[key]
	return result, has
}

// Set adds or rewrites value for given key.
func (m *BMap[T]) Set(key []byte, value T) {
	skey := asString(key)
	if _, has := m.smap[skey]; !has && len(key) != 0 {
		ofs := len(m.keys)
		m.keys = append(m.keys, key...)
		skey = asString(m.keys[ofs : ofs+len(key)])
	}
	m.smap[skey] = value
}

// SetString is Set for string keys.
func (m *BMap[T]) SetString(key string, value T) {
	m.smap[key] = value
}

func (m *BMap[T]) Len() int {
	return len(m.smap)
}
