package expr

// Parameter returns a reference to the parameter called name.
func Parameter(name string) *ParameterExpression {
	return &ParameterExpression{Name: name}
}

// Constant returns a literal. Supported values are nil, bool, string and
// every integer and floating point kind, including named types over them.
func Constant(v any) *ConstantExpression {
	return &ConstantExpression{Value: v}
}

// Member returns target.name.
func Member(target Expression, name string) *MemberExpression {
	return &MemberExpression{Target: target, Name: name}
}

// Call returns target.method(args...).
func Call(target Expression, method Method, args ...Expression) *CallExpression {
	return &CallExpression{Target: target, Method: method, Args: args}
}

func StartsWith(target Expression, prefix string) *CallExpression {
	return Call(target, MethodStartsWith, Constant(prefix))
}

func EndsWith(target Expression, suffix string) *CallExpression {
	return Call(target, MethodEndsWith, Constant(suffix))
}

func EqualFold(target Expression, s string) *CallExpression {
	return Call(target, MethodEqualFold, Constant(s))
}

// Contains tests for a substring when target is a string, or for an element
// when target is a slice or array. A v that is not an Expression is wrapped
// in a Constant.
func Contains(target Expression, v any) *CallExpression {
	return Call(target, MethodContains, lift(v))
}

func Len(target Expression) *CallExpression { return Call(target, MethodLen) }

func ToLower(target Expression) *CallExpression { return Call(target, MethodToLower) }

func ToUpper(target Expression) *CallExpression { return Call(target, MethodToUpper) }

func TrimSpace(target Expression) *CallExpression { return Call(target, MethodTrimSpace) }

func Compare(op Operator, left, right Expression) *CompareExpression {
	return &CompareExpression{Op: op, Left: left, Right: right}
}

func Eq(left, right Expression) *CompareExpression { return Compare(OpEqual, left, right) }

func Ne(left, right Expression) *CompareExpression { return Compare(OpNotEqual, left, right) }

func Lt(left, right Expression) *CompareExpression { return Compare(OpLessThan, left, right) }

func Le(left, right Expression) *CompareExpression {
	return Compare(OpLessThanOrEqual, left, right)
}

func Gt(left, right Expression) *CompareExpression { return Compare(OpGreaterThan, left, right) }

func Ge(left, right Expression) *CompareExpression {
	return Compare(OpGreaterThanOrEqual, left, right)
}

// IsNil returns e == nil.
func IsNil(e Expression) *CompareExpression { return Eq(e, Constant(nil)) }

// AndAlso returns left && right.
func AndAlso(left, right Expression) *BinaryExpression {
	return &BinaryExpression{Op: KindAndAlso, Left: left, Right: right}
}

// OrElse returns left || right.
func OrElse(left, right Expression) *BinaryExpression {
	return &BinaryExpression{Op: KindOrElse, Left: left, Right: right}
}

// Not returns !e.
func Not(e Expression) *NotExpression {
	return &NotExpression{Operand: e}
}

// Any reports whether body holds for at least one element of source.
// fn receives the element parameter called name.
func Any(source Expression, name string, fn func(x *ParameterExpression) Expression) *QuantifierExpression {
	return quantifier(KindAny, source, name, fn)
}

// All reports whether body holds for every element of source.
func All(source Expression, name string, fn func(x *ParameterExpression) Expression) *QuantifierExpression {
	return quantifier(KindAll, source, name, fn)
}

func quantifier(op Kind, source Expression, name string, fn func(x *ParameterExpression) Expression) *QuantifierExpression {
	param := Parameter(name)
	var body Expression
	if fn != nil {
		body = fn(param)
	}
	return &QuantifierExpression{Op: op, Source: source, Parameter: param, Body: body}
}

func lift(v any) Expression {
	if e, ok := v.(Expression); ok {
		return e
	}
	return Constant(v)
}
