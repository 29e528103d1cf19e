package bptree

import "fmt"

// Delete is not supported. It leaves the tree untouched and always returns an
// error wrapping ErrUnsupported (and therefore errors.ErrUnsupported).
//
// TODO implement leaf merge/redistribution and removal of routing keys.
func (t *Tree[K, V]) Delete(key K) (V, error) {
	var zero V
	return zero, fmt.Errorf("%w: delete of key %v", ErrUnsupported, key)
}
