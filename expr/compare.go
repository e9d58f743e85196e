package expr

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

type class int

const (
	classNil class = iota
	classBool
	classString
	classSigned
	classUnsigned
	classFloat
	classNilable
	classInterface
	classOther
)

func classOf(t reflect.Type) class {
	if t == nil {
		return classNil
	}
	switch t.Kind() {
	case reflect.Bool:
		return classBool
	case reflect.String:
		return classString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUnsigned
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.Interface:
		return classInterface
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return classNilable
	default:
		return classOther
	}
}

func isNumeric(c class) bool {
	return c == classSigned || c == classUnsigned || c == classFloat
}

func isOrdering(op Operator) bool {
	switch op {
	case OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
		return true
	}
	return false
}

// checkCompare validates that values of types l and r can be compared with op.
func checkCompare(op Operator, l, r reflect.Type) error {
	if _, ok := operatorSymbols[op]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}
	if l != nil && r != nil {
		l, r = derefType(l), derefType(r)
	}
	lc, rc := classOf(l), classOf(r)
	switch {
	case isNumeric(lc) && isNumeric(rc), lc == classString && rc == classString:
		return nil
	case isOrdering(op):
		return fmt.Errorf("%w: %s %s %s is not ordered", ErrTypeMismatch, typeName(l), op.Symbol(), typeName(r))
	case lc == classNil || rc == classNil:
		other := lc
		if lc == classNil {
			other = rc
		}
		if other == classNil || other == classNilable || other == classInterface {
			return nil
		}
	case lc == classBool && rc == classBool:
		return nil
	case lc == classInterface || rc == classInterface:
		return nil
	case l == r && l.Comparable():
		return nil
	}
	return fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, typeName(l), typeName(r))
}

func compareValues(op Operator, l, r reflect.Value) bool {
	switch op {
	case OpEqual:
		return valuesEqual(l, r)
	case OpNotEqual:
		return !valuesEqual(l, r)
	}
	c, ok := order(l, r)
	if !ok {
		return false
	}
	switch op {
	case OpLessThan:
		return c < 0
	case OpLessThanOrEqual:
		return c <= 0
	case OpGreaterThan:
		return c > 0
	case OpGreaterThanOrEqual:
		return c >= 0
	}
	return false
}

func unwrap(v reflect.Value) reflect.Value {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		return v.Elem()
	}
	return v
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if classOf(v.Type()) == classNilable {
		return v.IsNil()
	}
	return false
}

func valuesEqual(l, r reflect.Value) bool {
	l, r = unwrap(l), unwrap(r)
	if isNilValue(l) || isNilValue(r) {
		return isNilValue(l) && isNilValue(r)
	}
	l, r = indirect(l), indirect(r)
	if !l.IsValid() || !r.IsValid() {
		return false
	}
	lc, rc := classOf(l.Type()), classOf(r.Type())
	switch {
	case isNumeric(lc) && isNumeric(rc), lc == classString && rc == classString:
		c, ok := order(l, r)
		return ok && c == 0
	case lc == classBool && rc == classBool:
		return l.Bool() == r.Bool()
	case l.Type() == r.Type() && l.Comparable():
		return l.Equal(r)
	}
	return false
}

// order compares two numbers or two strings. ok is false when the values
// are unordered, which includes any comparison involving NaN.
func order(l, r reflect.Value) (c int, ok bool) {
	l, r = indirect(unwrap(l)), indirect(unwrap(r))
	if !l.IsValid() || !r.IsValid() {
		return 0, false
	}
	lc, rc := classOf(l.Type()), classOf(r.Type())
	switch {
	case lc == classString && rc == classString:
		return strings.Compare(l.String(), r.String()), true
	case !isNumeric(lc) || !isNumeric(rc):
		return 0, false
	case lc == classFloat || rc == classFloat:
		a, b := toFloat(l), toFloat(r)
		if math.IsNaN(a) || math.IsNaN(b) {
			return 0, false
		}
		return sign(a < b, a > b), true
	case lc == classUnsigned && rc == classUnsigned:
		a, b := l.Uint(), r.Uint()
		return sign(a < b, a > b), true
	case lc == classUnsigned:
		if r.Int() < 0 {
			return 1, true
		}
		a, b := l.Uint(), uint64(r.Int())
		return sign(a < b, a > b), true
	case rc == classUnsigned:
		if l.Int() < 0 {
			return -1, true
		}
		a, b := uint64(l.Int()), r.Uint()
		return sign(a < b, a > b), true
	default:
		a, b := l.Int(), r.Int()
		return sign(a < b, a > b), true
	}
}

func toFloat(v reflect.Value) float64 {
	switch classOf(v.Type()) {
	case classSigned:
		return float64(v.Int())
	case classUnsigned:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func sign(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
