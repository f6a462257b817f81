// Package observable holds a single value and pushes every change to its
// subscribers.
package observable

import (
	"context"
	"sync"
)

type Option[T any] func(*Value[T])

// WithClone makes Get, Update and subscribers work on copies, so callers
// never share memory with the held value.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(v *Value[T]) {
		v.clone = clone
	}
}

// Value is a mutex guarded state holder. Subscribers receive the current
// value first and then the latest value after each change; intermediate
// values are dropped if a subscriber falls behind.
type Value[T any] struct {
	mu    sync.Mutex
	v     T
	clone func(T) T
	subs  map[uint64]chan T
	next  uint64
}

func New[T any](initial T, opts ...Option[T]) *Value[T] {
	v := &Value[T]{
		v:     initial,
		clone: func(t T) T { return t },
		subs:  make(map[uint64]chan T),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clone(v.v)
}

func (v *Value[T]) Set(t T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.v = t
	v.publish()
}

// Update replaces the value with the result of fn. When fn fails the value
// is left untouched and nobody is notified. fn runs under the lock and must
// not call back into v.
func (v *Value[T]) Update(fn func(T) (T, error)) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next, err := fn(v.clone(v.v))
	if err != nil {
		return err
	}
	v.v = next
	v.publish()
	return nil
}

// Subscribe returns a channel that is closed once ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = ch
	ch <- v.clone(v.v)
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, id)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// publish must be called with v.mu held.
func (v *Value[T]) publish() {
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v.clone(v.v)
	}
}
