// Package specification implements the specification pattern over typed,
// inspectable predicate expressions.
//
// A Specification is an immutable boolean criterion over T. Leaf criteria wrap
// an expr.Predicate; composites combine other specifications with AND, OR and
// NOT. Every specification converts to a single predicate expression that can
// be compiled, compared structurally, hashed, translated to a query or
// serialized.
package specification

import (
	"github.com/go-leo/specification/expr"
)

// Kind identifies a specification variant.
type Kind string

const (
	KindAdHoc Kind = "adhoc"
	KindAnd   Kind = "and"
	KindOr    Kind = "or"
	KindNot   Kind = "not"
)

// Specification is a composable criterion over T.
//
// The set of implementations is closed: *AdHocSpecification, *AndSpecification,
// *OrSpecification and *NotSpecification.
type Specification[T any] interface {
	// Kind reports the variant.
	Kind() Kind

	// ToExpression returns the predicate expression the specification stands for.
	ToExpression() *expr.Predicate[T]

	// IsSatisfiedBy check if t is satisfied by the specification.
	IsSatisfiedBy(t T) bool

	// Equal reports whether other is a specification of the same variant with a
	// structurally equal expression. Operand order is significant.
	Equal(other any) bool

	// Hash returns the structural hash of ToExpression.
	Hash() uint64

	String() string

	// And create a new specification that is the AND operation of the current
	// specification and another specification.
	And(another Specification[T]) Specification[T]

	// Or create a new specification that is the OR operation of the current
	// specification and another specification.
	Or(another Specification[T]) Specification[T]

	// Not create a new specification that is the NOT operation of the current specification.
	Not() Specification[T]

	// AndPredicate is And with a raw predicate on the right.
	AndPredicate(predicate *expr.Predicate[T]) Specification[T]

	// OrPredicate is Or with a raw predicate on the right.
	OrPredicate(predicate *expr.Predicate[T]) Specification[T]

	specification()
}

// ToPredicate converts spec into its predicate expression.
func ToPredicate[T any](spec Specification[T]) (*expr.Predicate[T], error) {
	if isNil(spec) {
		return nil, ErrNilSpecification
	}
	return spec.ToExpression(), nil
}

// Equal reports whether a and b are equal specifications.
func Equal[T any](a Specification[T], b any) bool {
	if isNil(a) {
		return false
	}
	other, ok := b.(Specification[T])
	if !ok || isNil(other) {
		return false
	}
	return a.Kind() == other.Kind() && a.ToExpression().Equal(other.ToExpression())
}

// Must panics if err is not nil and returns spec otherwise.
func Must[S any](spec S, err error) S {
	if err != nil {
		panic(err)
	}
	return spec
}

func isNil[T any](spec Specification[T]) bool {
	switch s := spec.(type) {
	case nil:
		return true
	case *AdHocSpecification[T]:
		return s == nil
	case *AndSpecification[T]:
		return s == nil
	case *OrSpecification[T]:
		return s == nil
	case *NotSpecification[T]:
		return s == nil
	}
	return false
}
