package specification

import (
	"github.com/go-leo/specification/expr"
)

// NotSpecification used to create a new specification that is the inverse (NOT) of the given spec.
type NotSpecification[T any] struct {
	base[T]
	operand   Specification[T]
	predicate *expr.Predicate[T]
}

var _ Specification[any] = (*NotSpecification[any])(nil)

func NewNotSpecification[T any](operand Specification[T]) (*NotSpecification[T], error) {
	if isNil(operand) {
		return nil, ErrNilSpecification
	}
	predicate, err := operand.ToExpression().Not()
	if err != nil {
		return nil, err
	}
	spec := &NotSpecification[T]{operand: operand, predicate: predicate}
	spec.base = base[T]{self: spec}
	return spec, nil
}

func (spec *NotSpecification[T]) Kind() Kind { return KindNot }

func (spec *NotSpecification[T]) ToExpression() *expr.Predicate[T] { return spec.predicate }

func (spec *NotSpecification[T]) Operand() Specification[T] { return spec.operand }

func (spec *NotSpecification[T]) UnmarshalJSON(data []byte) error {
	decoded, err := unmarshalJSON[T](data, KindNot)
	if err != nil {
		return err
	}
	*spec = *decoded.(*NotSpecification[T])
	spec.base = base[T]{self: spec}
	return nil
}
