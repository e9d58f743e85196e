package specification

import (
	"github.com/go-leo/specification/expr"
)

// And combines left and right with a short-circuit AND.
func And[T any](left Specification[T], right Specification[T]) (Specification[T], error) {
	spec, err := NewAndSpecification(left, right)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// Or combines left and right with a short-circuit OR.
func Or[T any](left Specification[T], right Specification[T]) (Specification[T], error) {
	spec, err := NewOrSpecification(left, right)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// Not negates spec.
func Not[T any](spec Specification[T]) (Specification[T], error) {
	not, err := NewNotSpecification(spec)
	if err != nil {
		return nil, err
	}
	return not, nil
}

// AndPredicate combines spec with a leaf built from predicate, spec first.
func AndPredicate[T any](spec Specification[T], predicate *expr.Predicate[T]) (Specification[T], error) {
	leaf, err := New(predicate)
	if err != nil {
		return nil, err
	}
	return And[T](spec, leaf)
}

// PredicateAnd combines a leaf built from predicate with spec, predicate first.
func PredicateAnd[T any](predicate *expr.Predicate[T], spec Specification[T]) (Specification[T], error) {
	leaf, err := New(predicate)
	if err != nil {
		return nil, err
	}
	return And[T](leaf, spec)
}

// OrPredicate combines spec with a leaf built from predicate, spec first.
func OrPredicate[T any](spec Specification[T], predicate *expr.Predicate[T]) (Specification[T], error) {
	leaf, err := New(predicate)
	if err != nil {
		return nil, err
	}
	return Or[T](spec, leaf)
}

// PredicateOr combines a leaf built from predicate with spec, predicate first.
func PredicateOr[T any](predicate *expr.Predicate[T], spec Specification[T]) (Specification[T], error) {
	leaf, err := New(predicate)
	if err != nil {
		return nil, err
	}
	return Or[T](leaf, spec)
}

// Conjunction ANDs specs together from left to right:
// Conjunction(a, b, c) is (a AND b) AND c. A single spec is returned as is.
func Conjunction[T any](specs ...Specification[T]) (Specification[T], error) {
	return fold(And[T], specs)
}

// Disjunction ORs specs together from left to right.
func Disjunction[T any](specs ...Specification[T]) (Specification[T], error) {
	return fold(Or[T], specs)
}

func fold[T any](
	combine func(left, right Specification[T]) (Specification[T], error),
	specs []Specification[T],
) (Specification[T], error) {
	if len(specs) == 0 {
		return nil, ErrNoSpecifications
	}
	if isNil(specs[0]) {
		return nil, ErrNilSpecification
	}
	result := specs[0]
	for _, spec := range specs[1:] {
		var err error
		if result, err = combine(result, spec); err != nil {
			return nil, err
		}
	}
	return result, nil
}
