package specification

import (
	"github.com/go-leo/specification/expr"
)

// AdHocSpecification is a leaf specification wrapping a single predicate.
type AdHocSpecification[T any] struct {
	base[T]
	predicate *expr.Predicate[T]
}

var _ Specification[any] = (*AdHocSpecification[any])(nil)

// New creates a leaf specification from predicate.
func New[T any](predicate *expr.Predicate[T]) (*AdHocSpecification[T], error) {
	if predicate == nil {
		return nil, ErrNilPredicate
	}
	spec := &AdHocSpecification[T]{predicate: predicate}
	spec.base = base[T]{self: spec}
	return spec, nil
}

// NewAdHocSpecification is an alias of New.
func NewAdHocSpecification[T any](predicate *expr.Predicate[T]) (*AdHocSpecification[T], error) {
	return New(predicate)
}

// Where builds the predicate `name => fn(name)` and wraps it in a leaf
// specification.
func Where[T any](name string, fn func(x *expr.ParameterExpression) expr.Expression) (*AdHocSpecification[T], error) {
	predicate, err := expr.Lambda[T](name, fn)
	if err != nil {
		return nil, err
	}
	return New(predicate)
}

func (spec *AdHocSpecification[T]) Kind() Kind { return KindAdHoc }

func (spec *AdHocSpecification[T]) ToExpression() *expr.Predicate[T] { return spec.predicate }

// Predicate returns the wrapped predicate.
func (spec *AdHocSpecification[T]) Predicate() *expr.Predicate[T] { return spec.predicate }

func (spec *AdHocSpecification[T]) UnmarshalJSON(data []byte) error {
	decoded, err := unmarshalJSON[T](data, KindAdHoc)
	if err != nil {
		return err
	}
	*spec = *decoded.(*AdHocSpecification[T])
	spec.base = base[T]{self: spec}
	return nil
}
