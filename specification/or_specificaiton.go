package specification

import (
	"github.com/go-leo/specification/expr"
)

// OrSpecification used to create a new specification that is the OR of two other specifications.
// The right side is only evaluated when the left side does not hold.
type OrSpecification[T any] struct {
	base[T]
	left      Specification[T]
	right     Specification[T]
	predicate *expr.Predicate[T]
}

var _ Specification[any] = (*OrSpecification[any])(nil)

func NewOrSpecification[T any](left Specification[T], right Specification[T]) (*OrSpecification[T], error) {
	predicate, err := binary(left, right, (*expr.Predicate[T]).OrElse)
	if err != nil {
		return nil, err
	}
	spec := &OrSpecification[T]{left: left, right: right, predicate: predicate}
	spec.base = base[T]{self: spec}
	return spec, nil
}

func (spec *OrSpecification[T]) Kind() Kind { return KindOr }

func (spec *OrSpecification[T]) ToExpression() *expr.Predicate[T] { return spec.predicate }

func (spec *OrSpecification[T]) Left() Specification[T] { return spec.left }

func (spec *OrSpecification[T]) Right() Specification[T] { return spec.right }

func (spec *OrSpecification[T]) UnmarshalJSON(data []byte) error {
	decoded, err := unmarshalJSON[T](data, KindOr)
	if err != nil {
		return err
	}
	*spec = *decoded.(*OrSpecification[T])
	spec.base = base[T]{self: spec}
	return nil
}
