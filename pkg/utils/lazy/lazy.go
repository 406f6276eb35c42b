package lazy

import "sync"

func Must[T any](get func() (T, error)) *MustValue[T] {
	return &MustValue[T]{get: get}
}

// MustValue panics on first Get if the loader fails. Use it for values built
// from embedded data, where failure is a programming error.
type MustValue[T any] struct {
	once  sync.Once
	value T
	get   func() (T, error)
}

func (m *MustValue[T]) Get() T {
	m.once.Do(func() {
		var err error
		m.value, err = m.get()
		if err != nil {
			panic(err)
		}
	})
	return m.value
}
