// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package registry provides a generic, concurrent-safe registry, which is used
// as the foundation for the various API client registries.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrKeyAlreadyRegistered is an error, which is returned when attempting to
// register a key, which already exists in the registry.
var ErrKeyAlreadyRegistered = errors.New("key is already registered")

// ErrStopIteration is an error, which is used to stop iterating over the
// registry items.
var ErrStopIteration = errors.New("stop iteration")

// ErrContinue is a no-op error, which signals [Registry.Range] to proceed with
// the next item.
var ErrContinue = errors.New("continue iteration")

// Registry is a concurrent-safe mapping from keys to values.
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// Register registers the given key and value. It returns an error wrapping
// [ErrKeyAlreadyRegistered], if the key is already present.
func (r *Registry[K, V]) Register(key K, val V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: %v", ErrKeyAlreadyRegistered, key)
	}
	r.items[key] = val

	return nil
}

// MustRegister registers the given key and value, or panics in case of errors.
func (r *Registry[K, V]) MustRegister(key K, val V) {
	if err := r.Register(key, val); err != nil {
		panic(err)
	}
}

// Overwrite sets the value for the given key, replacing any previously
// registered value.
func (r *Registry[K, V]) Overwrite(key K, val V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = val
}

// Unregister removes the given key from the registry, if present.
func (r *Registry[K, V]) Unregister(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
}

// Get returns the value associated with the given key and a boolean
// indicating whether the key exists in the registry.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	val, ok := r.items[key]

	return val, ok
}

// Exists returns a boolean indicating whether the given key exists in the
// registry.
func (r *Registry[K, V]) Exists(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]

	return exists
}

// Length returns the number of items in the registry.
func (r *Registry[K, V]) Length() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// RangeFunc is the function invoked for each registry item during
// [Registry.Range]. Returning [ErrStopIteration] stops the iteration without
// propagating an error.
type RangeFunc[K comparable, V any] func(key K, val V) error

// Range calls f for each item in the registry. Iteration stops at the first
// error returned by f, which is then returned to the caller.
func (r *Registry[K, V]) Range(f RangeFunc[K, V]) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for k, v := range r.items {
		err := f(k, v)
		switch {
		case err == nil, errors.Is(err, ErrContinue):
			continue
		case errors.Is(err, ErrStopIteration):
			return nil
		default:
			return err
		}
	}

	return nil
}
