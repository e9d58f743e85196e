package specification

import (
	"fmt"

	"github.com/go-leo/specification/expr"
)

// AndSpecification used to create a new specification that is the AND of two other specifications.
// The right side is only evaluated when the left side holds.
type AndSpecification[T any] struct {
	base[T]
	left      Specification[T]
	right     Specification[T]
	predicate *expr.Predicate[T]
}

var _ Specification[any] = (*AndSpecification[any])(nil)

func NewAndSpecification[T any](left Specification[T], right Specification[T]) (*AndSpecification[T], error) {
	predicate, err := binary(left, right, (*expr.Predicate[T]).AndAlso)
	if err != nil {
		return nil, err
	}
	spec := &AndSpecification[T]{left: left, right: right, predicate: predicate}
	spec.base = base[T]{self: spec}
	return spec, nil
}

func (spec *AndSpecification[T]) Kind() Kind { return KindAnd }

func (spec *AndSpecification[T]) ToExpression() *expr.Predicate[T] { return spec.predicate }

func (spec *AndSpecification[T]) Left() Specification[T] { return spec.left }

func (spec *AndSpecification[T]) Right() Specification[T] { return spec.right }

func (spec *AndSpecification[T]) UnmarshalJSON(data []byte) error {
	decoded, err := unmarshalJSON[T](data, KindAnd)
	if err != nil {
		return err
	}
	*spec = *decoded.(*AndSpecification[T])
	spec.base = base[T]{self: spec}
	return nil
}

func binary[T any](
	left Specification[T],
	right Specification[T],
	combine func(p, q *expr.Predicate[T]) (*expr.Predicate[T], error),
) (*expr.Predicate[T], error) {
	if isNil(left) {
		return nil, fmt.Errorf("%w: left", ErrNilSpecification)
	}
	if isNil(right) {
		return nil, fmt.Errorf("%w: right", ErrNilSpecification)
	}
	return combine(left.ToExpression(), right.ToExpression())
}
