package specification

import (
	"errors"

	"github.com/go-leo/specification/expr"
)

var (
	// ErrNilSpecification a required specification is nil
	ErrNilSpecification = errors.New("specification: specification is nil")

	// ErrNilPredicate a required predicate is nil
	ErrNilPredicate = expr.ErrNilPredicate

	// ErrNoSpecifications nothing to combine
	ErrNoSpecifications = errors.New("specification: no specifications")

	// ErrMalformed an encoded specification can not be decoded
	ErrMalformed = errors.New("specification: malformed document")
)
