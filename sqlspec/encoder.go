package sqlspec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-leo/specification/expr"
	"github.com/go-leo/specification/specification"
)

// ErrUnsupported the expression has no SQL equivalent
var ErrUnsupported = errors.New("sqlspec: unsupported expression")

// Placeholder selects the bind argument syntax.
type Placeholder int

const (
	// Question uses `?`, as MySQL and SQLite do.
	Question Placeholder = iota
	// Dollar uses `$1`, `$2`, ... as PostgreSQL does.
	Dollar
)

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps member names to column names.
	// Members not in the map use their own names.
	ColumnMapping map[string]string

	// ParameterColumn is the column standing for the parameter itself, used
	// when a predicate tests the value directly (`s => s.StartsWith("a")`).
	// Defaults to "value".
	ParameterColumn string

	Placeholder Placeholder
}

// Encoder encodes predicate expressions to SQL. It is safe for concurrent use.
type Encoder struct {
	opts *EncoderOptions
}

// NewEncoder creates a new SQL encoder.
// If opts is nil, default options are used.
func NewEncoder(opts *EncoderOptions) *Encoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	if opts.ParameterColumn == "" {
		o := *opts
		o.ParameterColumn = "value"
		opts = &o
	}
	return &Encoder{opts: opts}
}

// Where encodes spec as a WHERE clause body and its bind arguments.
func Where[T any](e *Encoder, spec specification.Specification[T]) (string, []any, error) {
	predicate, err := specification.ToPredicate(spec)
	if err != nil {
		return "", nil, err
	}
	return e.encode(reflect.TypeOf((*T)(nil)).Elem(), predicate.Parameter(), predicate.Body())
}

// Encode converts the body of the lambda `param => body` to SQL.
// Without the parameter type every Contains target is taken for a string,
// use Where to have element tests rejected.
func (e *Encoder) Encode(param *expr.ParameterExpression, body expr.Expression) (string, []any, error) {
	return e.encode(nil, param, body)
}

func (e *Encoder) encode(typ reflect.Type, param *expr.ParameterExpression, body expr.Expression) (string, []any, error) {
	if param == nil || body == nil {
		return "", nil, expr.ErrNilExpression
	}
	enc := &encoding{opts: e.opts, param: param.Name, typ: typ}
	sql, err := enc.condition(body)
	if err != nil {
		return "", nil, err
	}
	return sql, enc.args, nil
}

// encoding holds the state of a single Encode call.
type encoding struct {
	opts  *EncoderOptions
	param string
	// typ is the parameter type, nil when unknown.
	typ  reflect.Type
	args []any
}

func unsupported(e expr.Expression) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, e)
}

// condition encodes a boolean expression.
func (enc *encoding) condition(e expr.Expression) (string, error) {
	switch x := e.(type) {
	case *expr.BinaryExpression:
		left, err := enc.condition(x.Left)
		if err != nil {
			return "", err
		}
		right, err := enc.condition(x.Right)
		if err != nil {
			return "", err
		}
		op := " AND "
		if x.Op == expr.KindOrElse {
			op = " OR "
		}
		return "(" + left + op + right + ")", nil
	case *expr.NotExpression:
		operand, err := enc.condition(x.Operand)
		if err != nil {
			return "", err
		}
		return "NOT (" + operand + ")", nil
	case *expr.CompareExpression:
		return enc.comparison(x)
	case *expr.CallExpression:
		if pattern, ok := likePatterns[x.Method]; ok {
			return enc.like(x, pattern)
		}
		if x.Method == expr.MethodEqualFold {
			return enc.equalFold(x)
		}
		return enc.value(x)
	case *expr.QuantifierExpression:
		return "", unsupported(e)
	default:
		return enc.value(e)
	}
}

var comparisonOperators = map[expr.Operator]string{
	expr.OpEqual:              "=",
	expr.OpNotEqual:           "<>",
	expr.OpLessThan:           "<",
	expr.OpLessThanOrEqual:    "<=",
	expr.OpGreaterThan:        ">",
	expr.OpGreaterThanOrEqual: ">=",
}

func isNull(e expr.Expression) bool {
	c, ok := e.(*expr.ConstantExpression)
	return ok && c.Value == nil
}

func (enc *encoding) comparison(c *expr.CompareExpression) (string, error) {
	op, ok := comparisonOperators[c.Op]
	if !ok {
		return "", unsupported(c)
	}
	if isNull(c.Left) || isNull(c.Right) {
		operand := c.Left
		if isNull(c.Left) {
			operand = c.Right
		}
		if isNull(operand) {
			return "", unsupported(c)
		}
		sql, err := enc.value(operand)
		if err != nil {
			return "", err
		}
		switch c.Op {
		case expr.OpEqual:
			return sql + " IS NULL", nil
		case expr.OpNotEqual:
			return sql + " IS NOT NULL", nil
		}
		return "", unsupported(c)
	}
	left, err := enc.value(c.Left)
	if err != nil {
		return "", err
	}
	right, err := enc.value(c.Right)
	if err != nil {
		return "", err
	}
	return left + " " + op + " " + right, nil
}

// likePatterns wrap the escaped argument of a string method.
var likePatterns = map[expr.Method]string{
	expr.MethodStartsWith: "%s%%",
	expr.MethodEndsWith:   "%%%s",
	expr.MethodContains:   "%%%s%%",
}

func (enc *encoding) like(call *expr.CallExpression, pattern string) (string, error) {
	arg, ok := stringArgument(call)
	if !ok || !enc.isString(call.Target) {
		return "", unsupported(call)
	}
	target, err := enc.value(call.Target)
	if err != nil {
		return "", err
	}
	return target + " LIKE " + enc.bind(fmt.Sprintf(pattern, escapeLike(arg))) + ` ESCAPE '\'`, nil
}

func (enc *encoding) equalFold(call *expr.CallExpression) (string, error) {
	arg, ok := stringArgument(call)
	if !ok {
		return "", unsupported(call)
	}
	target, err := enc.value(call.Target)
	if err != nil {
		return "", err
	}
	return "LOWER(" + target + ") = LOWER(" + enc.bind(arg) + ")", nil
}

func stringArgument(call *expr.CallExpression) (string, bool) {
	if len(call.Args) != 1 {
		return "", false
	}
	c, ok := call.Args[0].(*expr.ConstantExpression)
	if !ok {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}

// isString reports whether e may be a string. Slices and arrays fail, so an
// element test never turns into a substring match.
func (enc *encoding) isString(e expr.Expression) bool {
	t, known := enc.typeOf(e)
	return !known || t.Kind() == reflect.String || t.Kind() == reflect.Interface
}

// typeOf resolves the Go type of a column expression through pointers.
func (enc *encoding) typeOf(e expr.Expression) (reflect.Type, bool) {
	if enc.typ == nil {
		return nil, false
	}
	switch x := e.(type) {
	case *expr.ParameterExpression:
		return deref(enc.typ), true
	case *expr.MemberExpression:
		base, ok := enc.typeOf(x.Target)
		if !ok {
			return nil, false
		}
		switch base.Kind() {
		case reflect.Struct:
			field, ok := base.FieldByName(x.Name)
			if !ok {
				return nil, false
			}
			return deref(field.Type), true
		case reflect.Map:
			return deref(base.Elem()), true
		}
	case *expr.CallExpression:
		if x.Method == expr.MethodLen {
			return reflect.TypeOf(0), true
		}
		if _, ok := functions[x.Method]; ok {
			return reflect.TypeOf(""), true
		}
	}
	return nil, false
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

var functions = map[expr.Method]string{
	expr.MethodLen:       "LENGTH",
	expr.MethodToLower:   "LOWER",
	expr.MethodToUpper:   "UPPER",
	expr.MethodTrimSpace: "TRIM",
}

// value encodes a scalar expression.
func (enc *encoding) value(e expr.Expression) (string, error) {
	switch x := e.(type) {
	case *expr.ParameterExpression:
		if x.Name != enc.param {
			return "", unsupported(e)
		}
		return quoteIdentifier(enc.opts.ParameterColumn), nil
	case *expr.MemberExpression:
		p, ok := x.Target.(*expr.ParameterExpression)
		if !ok || p.Name != enc.param {
			return "", unsupported(e)
		}
		return enc.column(x.Name), nil
	case *expr.ConstantExpression:
		if x.Value == nil {
			return "NULL", nil
		}
		return enc.bind(x.Value), nil
	case *expr.CallExpression:
		fn, ok := functions[x.Method]
		if !ok || len(x.Args) != 0 {
			return "", unsupported(e)
		}
		target, err := enc.value(x.Target)
		if err != nil {
			return "", err
		}
		return fn + "(" + target + ")", nil
	default:
		return "", unsupported(e)
	}
}

func (enc *encoding) column(name string) string {
	if mapped, ok := enc.opts.ColumnMapping[name]; ok {
		name = mapped
	}
	return quoteIdentifier(name)
}

// bind records v as an argument and returns its placeholder.
func (enc *encoding) bind(v any) string {
	enc.args = append(enc.args, v)
	if enc.opts.Placeholder == Dollar {
		return "$" + strconv.Itoa(len(enc.args))
	}
	return "?"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
