// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"testing"
)

func TestNewRegistryIsEmpty(t *testing.T) {
	reg := New[string, int]()

	if reg.Length() != 0 {
		t.Fatalf("new registry must have a length of 0, got %d", reg.Length())
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := New[string, int]()

	const key = "answer"
	const value = 42

	if err := reg.Register(key, value); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, exists := reg.Get(key)
	if !exists {
		t.Fatalf("no value found for registered key %q", key)
	}

	if got != value {
		t.Fatalf("registry returned %v, expected %v", got, value)
	}

	if !reg.Exists(key) {
		t.Fatalf("Exists returned false for registered key %q", key)
	}
}

func TestRegisterDuplicateKey(t *testing.T) {
	reg := New[string, int]()

	if err := reg.Register("key", 1); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := reg.Register("key", 2)
	if !errors.Is(err, ErrKeyAlreadyRegistered) {
		t.Fatalf("expected ErrKeyAlreadyRegistered, got %v", err)
	}
}

func TestOverwriteReplacesValue(t *testing.T) {
	reg := New[string, int]()

	reg.Overwrite("key", 1)
	reg.Overwrite("key", 2)

	got, exists := reg.Get("key")
	if !exists {
		t.Fatalf("no value found for overwritten key")
	}

	if got != 2 {
		t.Fatalf("expected overwritten value 2, got %v", got)
	}

	if reg.Length() != 1 {
		t.Fatalf("expected registry length 1, got %d", reg.Length())
	}
}

func TestUnregisterRemovesKey(t *testing.T) {
	reg := New[string, int]()

	reg.Overwrite("key", 1)
	reg.Unregister("key")

	if reg.Exists("key") {
		t.Fatalf("key still present after Unregister")
	}
}

func TestMustRegisterPanicsOnDuplicateKey(t *testing.T) {
	reg := New[string, int]()
	reg.MustRegister("key", 1)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustRegister did not panic when registering a duplicate key")
		}
	}()

	reg.MustRegister("key", 1)
}

func TestRangeStopsOnStopIteration(t *testing.T) {
	reg := New[string, int]()
	reg.Overwrite("key", 1)

	err := reg.Range(func(_ string, _ int) error {
		return ErrStopIteration
	})

	if err != nil {
		t.Fatalf("Range did not treat ErrStopIteration as a clean stop: %v", err)
	}
}

func TestRangePropagatesError(t *testing.T) {
	reg := New[string, int]()
	reg.Overwrite("key", 1)

	wanted := errors.New("boom")
	err := reg.Range(func(_ string, _ int) error {
		return wanted
	})

	if !errors.Is(err, wanted) {
		t.Fatalf("Range did not propagate the error, got %v", err)
	}
}

func TestRangeVisitsAllItems(t *testing.T) {
	reg := New[string, int]()
	reg.Overwrite("a", 1)
	reg.Overwrite("b", 2)

	seen := make(map[string]int)
	err := reg.Range(func(key string, val int) error {
		seen[key] = val

		return ErrContinue
	})

	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}

	if len(seen) != 2 || seen["a"] != 1 || seen["b"] != 2 {
		t.Fatalf("Range did not visit all items, seen %v", seen)
	}
}
