// Package expr provides inspectable predicate expressions.
//
// An Expression is an immutable tree describing a computation over a single
// bound input. A Predicate[T] binds a parameter to T and a boolean body, and
// can be compiled into a plain func(T) bool, compared structurally with other
// predicates, hashed, printed and serialized through package wire.
//
//	p := expr.MustLambda[string]("n", func(n *expr.ParameterExpression) expr.Expression {
//		return expr.AndAlso(expr.StartsWith(n, "J"), expr.EndsWith(n, "e"))
//	})
//	fn := p.Compile()
//	fn("Jose") // true
package expr

import (
	"strings"
)

// Kind identifies the variant of an Expression.
type Kind string

const (
	KindParameter Kind = "parameter"
	KindConstant  Kind = "constant"
	KindMember    Kind = "member"
	KindCall      Kind = "call"
	KindCompare   Kind = "compare"
	KindAndAlso   Kind = "and_also"
	KindOrElse    Kind = "or_else"
	KindNot       Kind = "not"
	KindAny       Kind = "any"
	KindAll       Kind = "all"
)

// Operator is a comparison operator.
type Operator string

const (
	OpEqual              Operator = "eq"
	OpNotEqual           Operator = "ne"
	OpLessThan           Operator = "lt"
	OpLessThanOrEqual    Operator = "le"
	OpGreaterThan        Operator = "gt"
	OpGreaterThanOrEqual Operator = "ge"
)

var operatorSymbols = map[Operator]string{
	OpEqual:              "==",
	OpNotEqual:           "!=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
}

// Symbol returns the Go spelling of the operator.
func (op Operator) Symbol() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return string(op)
}

// Expression is implemented by every node type in this package.
// Use a type switch over the node types to inspect a tree.
type Expression interface {
	// Kind returns the variant of the node.
	Kind() Kind

	// String returns the node in a Go-like lambda body notation.
	String() string

	expression()
}

// ParameterExpression refers to a bound lambda parameter by name.
type ParameterExpression struct {
	Name string
}

// ConstantExpression is a literal value.
type ConstantExpression struct {
	Value any
}

// MemberExpression reads a struct field or a string-keyed map entry.
type MemberExpression struct {
	Target Expression
	Name   string
}

// CallExpression invokes one of the built-in methods on Target.
type CallExpression struct {
	Target Expression
	Method Method
	Args   []Expression
}

// CompareExpression compares two operands.
type CompareExpression struct {
	Op    Operator
	Left  Expression
	Right Expression
}

// BinaryExpression is a short-circuit conjunction (KindAndAlso) or
// disjunction (KindOrElse). Left is always evaluated first.
type BinaryExpression struct {
	Op    Kind
	Left  Expression
	Right Expression
}

// NotExpression negates its operand.
type NotExpression struct {
	Operand Expression
}

// QuantifierExpression tests Body against each element of Source, binding
// the element to Parameter. Op is KindAny or KindAll.
type QuantifierExpression struct {
	Op        Kind
	Source    Expression
	Parameter *ParameterExpression
	Body      Expression
}

func (*ParameterExpression) Kind() Kind    { return KindParameter }
func (*ConstantExpression) Kind() Kind     { return KindConstant }
func (*MemberExpression) Kind() Kind       { return KindMember }
func (*CallExpression) Kind() Kind         { return KindCall }
func (*CompareExpression) Kind() Kind      { return KindCompare }
func (e *BinaryExpression) Kind() Kind     { return e.Op }
func (*NotExpression) Kind() Kind          { return KindNot }
func (e *QuantifierExpression) Kind() Kind { return e.Op }

func (*ParameterExpression) expression()  {}
func (*ConstantExpression) expression()   {}
func (*MemberExpression) expression()     {}
func (*CallExpression) expression()       {}
func (*CompareExpression) expression()    {}
func (*BinaryExpression) expression()     {}
func (*NotExpression) expression()        {}
func (*QuantifierExpression) expression() {}

func (e *ParameterExpression) String() string { return e.Name }

func (e *ConstantExpression) String() string { return formatConstant(e.Value) }

func (e *MemberExpression) String() string { return stringOf(e.Target) + "." + e.Name }

func (e *CallExpression) String() string {
	args := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		args = append(args, stringOf(arg))
	}
	return stringOf(e.Target) + "." + string(e.Method) + "(" + strings.Join(args, ", ") + ")"
}

func (e *CompareExpression) String() string {
	return "(" + stringOf(e.Left) + " " + e.Op.Symbol() + " " + stringOf(e.Right) + ")"
}

func (e *BinaryExpression) String() string {
	op := "&&"
	if e.Op == KindOrElse {
		op = "||"
	}
	return "(" + stringOf(e.Left) + " " + op + " " + stringOf(e.Right) + ")"
}

func (e *NotExpression) String() string { return "!" + stringOf(e.Operand) }

func (e *QuantifierExpression) String() string {
	name := "Any"
	if e.Op == KindAll {
		name = "All"
	}
	return stringOf(e.Source) + "." + name + "(" + stringOf(e.Parameter) + " => " + stringOf(e.Body) + ")"
}

func stringOf(e Expression) string {
	if isNil(e) {
		return "<nil>"
	}
	return e.String()
}

// isNil reports whether e is nil or a typed nil node pointer.
func isNil(e Expression) bool {
	switch x := e.(type) {
	case nil:
		return true
	case *ParameterExpression:
		return x == nil
	case *ConstantExpression:
		return x == nil
	case *MemberExpression:
		return x == nil
	case *CallExpression:
		return x == nil
	case *CompareExpression:
		return x == nil
	case *BinaryExpression:
		return x == nil
	case *NotExpression:
		return x == nil
	case *QuantifierExpression:
		return x == nil
	}
	return false
}
