package test

import (
	"fmt"

	"go.uber.org/mock/gomock"
)

type predicate[T any] struct {
	match func(val T) bool
	last  any
}

func (p *predicate[T]) Matches(val any) bool {
	p.last = val
	v, ok := val.(T)
	return ok && p.match(v)
}

func (p *predicate[T]) String() string {
	var zero T
	if p.last == nil {
		return fmt.Sprintf("a %T matching the predicate", zero)
	}
	return fmt.Sprintf("a %T matching the predicate, last got %+v", zero, p.last)
}

// Match builds a gomock matcher from a typed predicate. Values of another type never match.
func Match[T any](m func(v T) bool) gomock.Matcher {
	return &predicate[T]{match: m}
}
