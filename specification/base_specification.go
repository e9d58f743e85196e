package specification

import (
	"github.com/go-leo/specification/expr"
	"github.com/go-leo/specification/wire"
)

// base carries the behaviour shared by every variant. self points back at
// the embedding specification.
type base[T any] struct {
	self Specification[T]
}

func (spec base[T]) IsSatisfiedBy(t T) bool {
	return spec.self.ToExpression().Compile()(t)
}

func (spec base[T]) Equal(other any) bool {
	return Equal(spec.self, other)
}

func (spec base[T]) Hash() uint64 {
	return spec.self.ToExpression().Hash()
}

func (spec base[T]) String() string {
	return string(spec.self.Kind()) + "(" + spec.self.ToExpression().String() + ")"
}

// And panics with ErrNilSpecification if another is nil.
func (spec base[T]) And(another Specification[T]) Specification[T] {
	return Must(And(spec.self, another))
}

// Or panics with ErrNilSpecification if another is nil.
func (spec base[T]) Or(another Specification[T]) Specification[T] {
	return Must(Or(spec.self, another))
}

func (spec base[T]) Not() Specification[T] {
	return Must(Not(spec.self))
}

// AndPredicate panics with ErrNilPredicate if predicate is nil.
func (spec base[T]) AndPredicate(predicate *expr.Predicate[T]) Specification[T] {
	return Must(AndPredicate(spec.self, predicate))
}

// OrPredicate panics with ErrNilPredicate if predicate is nil.
func (spec base[T]) OrPredicate(predicate *expr.Predicate[T]) Specification[T] {
	return Must(OrPredicate(spec.self, predicate))
}

func (spec base[T]) MarshalJSON() ([]byte, error) {
	return Marshal(wire.JSON, spec.self)
}

func (base[T]) specification() {}
