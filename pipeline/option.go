// Package pipeline is the runtime support imported by code generated with
// pipelinegen. It provides the Option type that annotated structs wrap and
// the helpers the generated Process methods call.
package pipeline

import (
	"fmt"
	"reflect"
)

// Option holds a value of type T, or nothing. The zero Option is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Step is a single fallible transformation in a chain.
type Step[T any] func(T) Option[T]

// Cloner is implemented by values that need more than a shallow copy to be
// duplicated, such as types holding slices or maps.
type Cloner[T any] interface {
	Clone() T
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPointer returns None for a nil pointer and Some(*p) otherwise.
func FromPointer[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the held value and whether there was one.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// MustGet returns the held value and panics on None.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("pipeline: MustGet called on None")
	}
	return o.value
}

// OrElse returns the held value, or def when the Option is None.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// Cloned returns a duplicate of the Option. If T implements Cloner[T] the held
// value is duplicated with Clone, otherwise it is copied.
func (o Option[T]) Cloned() Option[T] {
	if !o.ok {
		return o
	}
	if c, ok := any(o.value).(Cloner[T]); ok {
		if rv := reflect.ValueOf(c); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return o
		}
		return Some(c.Clone())
	}
	return o
}

// AndThen applies step to the held value. On None, step is not called and
// None is returned.
func (o Option[T]) AndThen(step func(T) Option[T]) Option[T] {
	if !o.ok {
		return o
	}
	return step(o.value)
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Chain applies steps to start from left to right and stops at the first
// step that returns None.
func Chain[T any](start Option[T], steps ...Step[T]) Option[T] {
	cur := start
	for _, step := range steps {
		if cur.IsNone() {
			return cur
		}
		cur = step(cur.value)
	}
	return cur
}
