package expr

import (
	"fmt"
	"reflect"
)

// evaluator computes a node against the bound parameters in f.
type evaluator func(f *frame) reflect.Value

// frame holds the value of one bound parameter; parent is the enclosing
// lambda's frame.
type frame struct {
	value  reflect.Value
	parent *frame
}

func (f *frame) at(depth int) reflect.Value {
	for ; depth > 0; depth-- {
		f = f.parent
	}
	return f.value
}

type binding struct {
	name string
	typ  reflect.Type
}

// scope lists the parameters in view, innermost last.
type scope []binding

func (s scope) lookup(name string) (int, reflect.Type, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].name == name {
			return len(s) - 1 - i, s[i].typ, true
		}
	}
	return 0, nil, false
}

func (s scope) push(name string, typ reflect.Type) scope {
	next := make(scope, len(s), len(s)+1)
	copy(next, s)
	return append(next, binding{name: name, typ: typ})
}

var (
	trueValue  = reflect.ValueOf(true)
	falseValue = reflect.ValueOf(false)
)

// compile type-checks e and lowers it to an evaluator. The returned type is
// the static type of the node's value, nil for the untyped nil constant.
func compile(e Expression, sc scope) (evaluator, reflect.Type, error) {
	if isNil(e) {
		return nil, nil, ErrNilExpression
	}
	switch x := e.(type) {
	case *ParameterExpression:
		return compileParameter(x, sc)
	case *ConstantExpression:
		if _, ok := constantTag(x.Value); !ok {
			return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedConstant, x.Value)
		}
		v := reflect.ValueOf(x.Value)
		var typ reflect.Type
		if v.IsValid() {
			typ = v.Type()
		}
		return func(*frame) reflect.Value { return v }, typ, nil
	case *MemberExpression:
		return compileMember(x, sc)
	case *CallExpression:
		return compileCall(x, sc)
	case *CompareExpression:
		left, lt, err := compile(x.Left, sc)
		if err != nil {
			return nil, nil, err
		}
		right, rt, err := compile(x.Right, sc)
		if err != nil {
			return nil, nil, err
		}
		if err := checkCompare(x.Op, lt, rt); err != nil {
			return nil, nil, err
		}
		op := x.Op
		return func(f *frame) reflect.Value {
			if compareValues(op, left(f), right(f)) {
				return trueValue
			}
			return falseValue
		}, boolType, nil
	case *BinaryExpression:
		return compileBinary(x, sc)
	case *NotExpression:
		operand, err := compileBool(x.Operand, sc)
		if err != nil {
			return nil, nil, err
		}
		return func(f *frame) reflect.Value {
			if operand(f).Bool() {
				return falseValue
			}
			return trueValue
		}, boolType, nil
	case *QuantifierExpression:
		return compileQuantifier(x, sc)
	default:
		return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedOperator, e)
	}
}

func compileParameter(x *ParameterExpression, sc scope) (evaluator, reflect.Type, error) {
	if x.Name == "" {
		return nil, nil, ErrEmptyParameterName
	}
	depth, typ, ok := sc.lookup(x.Name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnboundParameter, x.Name)
	}
	return func(f *frame) reflect.Value { return f.at(depth) }, typ, nil
}

func compileMember(x *MemberExpression, sc scope) (evaluator, reflect.Type, error) {
	target, tt, err := compile(x.Target, sc)
	if err != nil {
		return nil, nil, err
	}
	base := derefType(tt)
	switch kindOf(tt) {
	case reflect.Struct:
		field, ok := base.FieldByName(x.Name)
		if !ok || !field.IsExported() {
			return nil, nil, fmt.Errorf("%w: %s.%s", ErrUnknownMember, typeName(tt), x.Name)
		}
		return func(f *frame) reflect.Value {
			v := indirect(target(f))
			if !v.IsValid() {
				return reflect.Zero(field.Type)
			}
			fv, err := v.FieldByIndexErr(field.Index)
			if err != nil {
				// nil embedded pointer on the path
				return reflect.Zero(field.Type)
			}
			return fv
		}, field.Type, nil
	case reflect.Map:
		if base.Key().Kind() != reflect.String {
			return nil, nil, fmt.Errorf("%w: member %s of %s needs string keys", ErrTypeMismatch, x.Name, typeName(tt))
		}
		key := reflect.ValueOf(x.Name).Convert(base.Key())
		elem := base.Elem()
		return func(f *frame) reflect.Value {
			m := indirect(target(f))
			if !m.IsValid() || m.IsNil() {
				return reflect.Zero(elem)
			}
			v := m.MapIndex(key)
			if !v.IsValid() {
				return reflect.Zero(elem)
			}
			return v
		}, elem, nil
	default:
		return nil, nil, fmt.Errorf("%w: member %s of %s", ErrTypeMismatch, x.Name, typeName(tt))
	}
}

func compileCall(x *CallExpression, sc scope) (evaluator, reflect.Type, error) {
	m, ok := methods[x.Method]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMethod, x.Method)
	}
	if len(x.Args) != m.arity {
		return nil, nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrTypeMismatch, x.Method, m.arity, len(x.Args))
	}
	target, tt, err := compile(x.Target, sc)
	if err != nil {
		return nil, nil, err
	}
	var (
		args     []evaluator
		argTypes []reflect.Type
	)
	for _, arg := range x.Args {
		ev, at, err := compile(arg, sc)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, ev)
		argTypes = append(argTypes, at)
	}
	rt, err := m.check(tt, argTypes)
	if err != nil {
		return nil, nil, err
	}
	invoke := m.invoke
	return func(f *frame) reflect.Value {
		values := make([]reflect.Value, len(args))
		for i, arg := range args {
			values[i] = arg(f)
		}
		return invoke(target(f), values)
	}, rt, nil
}

func compileBinary(x *BinaryExpression, sc scope) (evaluator, reflect.Type, error) {
	if x.Op != KindAndAlso && x.Op != KindOrElse {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, x.Op)
	}
	left, err := compileBool(x.Left, sc)
	if err != nil {
		return nil, nil, err
	}
	right, err := compileBool(x.Right, sc)
	if err != nil {
		return nil, nil, err
	}
	if x.Op == KindAndAlso {
		return func(f *frame) reflect.Value {
			if !left(f).Bool() {
				return falseValue
			}
			return reflect.ValueOf(right(f).Bool())
		}, boolType, nil
	}
	return func(f *frame) reflect.Value {
		if left(f).Bool() {
			return trueValue
		}
		return reflect.ValueOf(right(f).Bool())
	}, boolType, nil
}

func compileQuantifier(x *QuantifierExpression, sc scope) (evaluator, reflect.Type, error) {
	if x.Op != KindAny && x.Op != KindAll {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, x.Op)
	}
	if x.Parameter == nil {
		return nil, nil, ErrNilExpression
	}
	if x.Parameter.Name == "" {
		return nil, nil, ErrEmptyParameterName
	}
	source, st, err := compile(x.Source, sc)
	if err != nil {
		return nil, nil, err
	}
	switch kindOf(st) {
	case reflect.Slice, reflect.Array:
	default:
		return nil, nil, fmt.Errorf("%w: %s over %s", ErrTypeMismatch, x.Op, typeName(st))
	}
	body, err := compileBool(x.Body, sc.push(x.Parameter.Name, derefType(st).Elem()))
	if err != nil {
		return nil, nil, err
	}
	// Any stops at the first match, All at the first miss.
	stop := x.Op == KindAny
	return func(f *frame) reflect.Value {
		items := indirect(source(f))
		if items.IsValid() {
			for i := 0; i < items.Len(); i++ {
				if body(&frame{value: items.Index(i), parent: f}).Bool() == stop {
					return reflect.ValueOf(stop)
				}
			}
		}
		return reflect.ValueOf(!stop)
	}, boolType, nil
}

// compileBool compiles e and requires a boolean result.
func compileBool(e Expression, sc scope) (evaluator, error) {
	ev, typ, err := compile(e, sc)
	if err != nil {
		return nil, err
	}
	if typ == nil || typ.Kind() != reflect.Bool {
		return nil, fmt.Errorf("%w: %s is %s, want bool", ErrTypeMismatch, stringOf(e), typeName(typ))
	}
	return ev, nil
}
