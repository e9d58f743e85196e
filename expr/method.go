package expr

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Method names a built-in method a CallExpression can invoke.
type Method string

const (
	MethodStartsWith Method = "StartsWith"
	MethodEndsWith   Method = "EndsWith"
	MethodContains   Method = "Contains"
	MethodEqualFold  Method = "EqualFold"
	MethodLen        Method = "Len"
	MethodToLower    Method = "ToLower"
	MethodToUpper    Method = "ToUpper"
	MethodTrimSpace  Method = "TrimSpace"
)

var (
	boolType   = reflect.TypeOf(false)
	intType    = reflect.TypeOf(0)
	stringType = reflect.TypeOf("")
)

type method struct {
	arity int
	// check validates operand types and returns the result type.
	check  func(target reflect.Type, args []reflect.Type) (reflect.Type, error)
	invoke func(target reflect.Value, args []reflect.Value) reflect.Value
}

var methods = map[Method]method{
	MethodStartsWith: stringPredicate(strings.HasPrefix),
	MethodEndsWith:   stringPredicate(strings.HasSuffix),
	MethodEqualFold:  stringPredicate(strings.EqualFold),
	MethodToLower:    stringTransform(strings.ToLower),
	MethodToUpper:    stringTransform(strings.ToUpper),
	MethodTrimSpace:  stringTransform(strings.TrimSpace),
	MethodLen: {
		arity: 0,
		check: func(target reflect.Type, _ []reflect.Type) (reflect.Type, error) {
			switch kindOf(target) {
			case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
				return intType, nil
			}
			return nil, fmt.Errorf("%w: Len on %s", ErrTypeMismatch, typeName(target))
		},
		invoke: func(target reflect.Value, _ []reflect.Value) reflect.Value {
			target = indirect(target)
			switch {
			case !target.IsValid():
				return reflect.ValueOf(0)
			case target.Kind() == reflect.String:
				return reflect.ValueOf(utf8.RuneCountInString(target.String()))
			default:
				return reflect.ValueOf(target.Len())
			}
		},
	},
	MethodContains: {
		arity: 1,
		check: func(target reflect.Type, args []reflect.Type) (reflect.Type, error) {
			switch kindOf(target) {
			case reflect.String:
				if kindOf(args[0]) == reflect.String {
					return boolType, nil
				}
			case reflect.Slice, reflect.Array:
				if err := checkCompare(OpEqual, derefType(target).Elem(), args[0]); err == nil {
					return boolType, nil
				}
			}
			return nil, fmt.Errorf("%w: %s.Contains(%s)", ErrTypeMismatch, typeName(target), typeName(args[0]))
		},
		invoke: func(target reflect.Value, args []reflect.Value) reflect.Value {
			target = indirect(target)
			if !target.IsValid() {
				return reflect.ValueOf(false)
			}
			if target.Kind() == reflect.String {
				return reflect.ValueOf(strings.Contains(target.String(), stringValue(args[0])))
			}
			for i := 0; i < target.Len(); i++ {
				if valuesEqual(target.Index(i), args[0]) {
					return reflect.ValueOf(true)
				}
			}
			return reflect.ValueOf(false)
		},
	},
}

func stringPredicate(fn func(s, t string) bool) method {
	return method{
		arity: 1,
		check: func(target reflect.Type, args []reflect.Type) (reflect.Type, error) {
			if kindOf(target) != reflect.String || kindOf(args[0]) != reflect.String {
				return nil, fmt.Errorf("%w: want string operands, got %s and %s",
					ErrTypeMismatch, typeName(target), typeName(args[0]))
			}
			return boolType, nil
		},
		invoke: func(target reflect.Value, args []reflect.Value) reflect.Value {
			return reflect.ValueOf(fn(stringValue(target), stringValue(args[0])))
		},
	}
}

func stringTransform(fn func(s string) string) method {
	return method{
		arity: 0,
		check: func(target reflect.Type, _ []reflect.Type) (reflect.Type, error) {
			if kindOf(target) != reflect.String {
				return nil, fmt.Errorf("%w: want string operand, got %s", ErrTypeMismatch, typeName(target))
			}
			return stringType, nil
		},
		invoke: func(target reflect.Value, _ []reflect.Value) reflect.Value {
			return reflect.ValueOf(fn(stringValue(target)))
		},
	}
}

// derefType strips pointer indirections from t.
func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// kindOf returns the kind of t after stripping pointers, or reflect.Invalid
// for the untyped nil.
func kindOf(t reflect.Type) reflect.Kind {
	t = derefType(t)
	if t == nil {
		return reflect.Invalid
	}
	return t.Kind()
}

// indirect follows pointers, returning the zero Value when one is nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// stringValue reads a string through pointers; nil reads as "".
func stringValue(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	return v.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return nilTag
	}
	return t.String()
}
