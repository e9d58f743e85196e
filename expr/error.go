package expr

import "errors"

var (
	// ErrNilExpression a required expression node is nil
	ErrNilExpression = errors.New("expr: expression is nil")

	// ErrNilPredicate a required predicate is nil
	ErrNilPredicate = errors.New("expr: predicate is nil")

	// ErrEmptyParameterName a parameter has no name
	ErrEmptyParameterName = errors.New("expr: parameter name is empty")

	// ErrUnboundParameter a parameter is referenced outside of its lambda
	ErrUnboundParameter = errors.New("expr: unbound parameter")

	// ErrUnsupportedConstant a literal has a type that cannot be represented
	ErrUnsupportedConstant = errors.New("expr: unsupported constant")

	// ErrUnsupportedOperator a comparison operator or node kind is unknown
	ErrUnsupportedOperator = errors.New("expr: unsupported operator")

	// ErrUnknownMethod a call names a method that does not exist
	ErrUnknownMethod = errors.New("expr: unknown method")

	// ErrUnknownMember a member expression names a missing or unexported field
	ErrUnknownMember = errors.New("expr: unknown member")

	// ErrTypeMismatch operand types do not fit the node
	ErrTypeMismatch = errors.New("expr: type mismatch")

	// ErrMalformed a wire record cannot be decoded into an expression
	ErrMalformed = errors.New("expr: malformed wire record")
)
