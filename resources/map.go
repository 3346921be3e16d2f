// Package resources implements the shared resource map (C1): a type-keyed
// registry of process-wide singletons — focus state, cursor state, and
// app-defined values — with lazy, single-winner initialization. It is the
// only object the spec allows code outside the coordinator's thread to
// read (§5): a driver may query focus/cursor state to render.
package resources

import (
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Map is a type-keyed registry: exactly one value is stored per type tag.
// It is owned by a single runtime (§9 "Global state") and scoped to that
// runtime's lifetime, not a process-wide singleton.
type Map struct {
	mu       sync.RWMutex
	values   map[reflect.Type]any
	poisoned bool
	group    singleflight.Group
}

// New creates an empty shared resource map.
func New() *Map {
	return &Map{values: make(map[reflect.Type]any)}
}

func tagOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Insert stores value under T's type tag. It fails with ErrAlreadyExists if
// the tag is already present.
func Insert[T any](m *Map, value T) (err error) {
	m.mu.Lock()
	defer func() {
		if r := recover(); r != nil {
			m.poisoned = true
			m.mu.Unlock()
			panic(r)
		}
		m.mu.Unlock()
	}()

	if m.poisoned {
		return ErrPoisoned
	}
	tag := tagOf[T]()
	if _, exists := m.values[tag]; exists {
		return ErrAlreadyExists
	}
	m.values[tag] = value
	return nil
}

// Get retrieves the value stored under T's type tag, failing with
// ErrMissing or ErrTypeMismatch as appropriate.
func Get[T any](m *Map) (T, error) {
	var zero T
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.poisoned {
		return zero, ErrPoisoned
	}
	tag := tagOf[T]()
	v, ok := m.values[tag]
	if !ok {
		return zero, ErrMissing
	}
	tv, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return tv, nil
}

// GetOrInsertWith returns the value stored under T's type tag, lazily
// running init to produce it if absent. init runs at most once even under
// concurrent callers racing for the same tag — golang.org/x/sync/singleflight
// collapses concurrent first-callers into a single initializer invocation,
// which is exactly the "single-winner lazy init" contract §4.1 documents.
func GetOrInsertWith[T any](m *Map, init func() T) (T, error) {
	var zero T
	tag := tagOf[T]()

	m.mu.RLock()
	if m.poisoned {
		m.mu.RUnlock()
		return zero, ErrPoisoned
	}
	if v, ok := m.values[tag]; ok {
		m.mu.RUnlock()
		tv, ok := v.(T)
		if !ok {
			return zero, ErrTypeMismatch
		}
		return tv, nil
	}
	m.mu.RUnlock()

	viface, err, _ := m.group.Do(tag.String(), func() (any, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.poisoned {
			return nil, ErrPoisoned
		}
		if v, ok := m.values[tag]; ok {
			return v, nil
		}
		val := init()
		m.values[tag] = val
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	tv, ok := viface.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return tv, nil
}

// MustGet is Get, panicking on error. Intended for call sites that have
// already established (e.g. via a prior GetOrInsertWith in bootstrap) that
// the value must be present.
func MustGet[T any](m *Map) T {
	v, err := Get[T](m)
	if err != nil {
		panic(err)
	}
	return v
}
