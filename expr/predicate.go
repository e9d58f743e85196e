package expr

import (
	"fmt"
	"reflect"
)

// Func is a compiled predicate.
type Func[T any] func(t T) bool

// Predicate is a typed lambda `param => body` over T whose body yields a bool.
//
// A Predicate is immutable and type-checked against T when it is built, so
// Compile never fails. It keeps its own copy of the expression tree.
type Predicate[T any] struct {
	param *ParameterExpression
	body  Expression
	eval  evaluator
}

// NewPredicate binds param to T and type-checks body against it.
func NewPredicate[T any](param *ParameterExpression, body Expression) (*Predicate[T], error) {
	if param == nil {
		return nil, fmt.Errorf("%w: parameter", ErrNilExpression)
	}
	if param.Name == "" {
		return nil, ErrEmptyParameterName
	}
	body = clone(body)
	eval, err := compileBool(body, scope{{name: param.Name, typ: typeOf[T]()}})
	if err != nil {
		return nil, fmt.Errorf("expr: invalid predicate over %s: %w", typeOf[T](), err)
	}
	return &Predicate[T]{param: Parameter(param.Name), body: body, eval: eval}, nil
}

// Lambda builds a Predicate from fn, which receives the parameter called name.
func Lambda[T any](name string, fn func(x *ParameterExpression) Expression) (*Predicate[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: lambda body", ErrNilExpression)
	}
	param := Parameter(name)
	return NewPredicate[T](param, fn(param))
}

// MustLambda is like Lambda but panics if the predicate is invalid.
func MustLambda[T any](name string, fn func(x *ParameterExpression) Expression) *Predicate[T] {
	p, err := Lambda[T](name, fn)
	if err != nil {
		panic(err)
	}
	return p
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Parameter returns a copy of the bound parameter.
func (p *Predicate[T]) Parameter() *ParameterExpression { return Parameter(p.param.Name) }

// Body returns a copy of the boolean body. Changing it does not affect p.
func (p *Predicate[T]) Body() Expression { return clone(p.body) }

// Compile returns the predicate as a function. Evaluation is short-circuit
// and left to right.
func (p *Predicate[T]) Compile() Func[T] {
	eval := p.eval
	return func(t T) bool {
		return eval(&frame{value: reflect.ValueOf(&t).Elem()}).Bool()
	}
}

// AndAlso returns `x => p(x) && q(x)`; q's parameter is unified with p's.
func (p *Predicate[T]) AndAlso(q *Predicate[T]) (*Predicate[T], error) {
	return p.combine(KindAndAlso, q)
}

// OrElse returns `x => p(x) || q(x)`; q's parameter is unified with p's.
func (p *Predicate[T]) OrElse(q *Predicate[T]) (*Predicate[T], error) {
	return p.combine(KindOrElse, q)
}

func (p *Predicate[T]) combine(op Kind, q *Predicate[T]) (*Predicate[T], error) {
	if p == nil || q == nil {
		return nil, ErrNilPredicate
	}
	left, right := p.eval, q.eval
	body := &BinaryExpression{Op: op, Left: p.body, Right: rename(q.body, q.param.Name, p.param.Name)}
	eval := func(f *frame) reflect.Value {
		if left(f).Bool() == (op == KindOrElse) {
			return reflect.ValueOf(op == KindOrElse)
		}
		return reflect.ValueOf(right(f).Bool())
	}
	return &Predicate[T]{param: p.param, body: body, eval: eval}, nil
}

// Not returns `x => !p(x)`.
func (p *Predicate[T]) Not() (*Predicate[T], error) {
	if p == nil {
		return nil, ErrNilPredicate
	}
	operand := p.eval
	eval := func(f *frame) reflect.Value {
		return reflect.ValueOf(!operand(f).Bool())
	}
	return &Predicate[T]{param: p.param, body: Not(p.body), eval: eval}, nil
}

// Equal reports whether p and q are structurally equal; parameter names
// may differ.
func (p *Predicate[T]) Equal(q *Predicate[T]) bool {
	if p == nil || q == nil {
		return p == nil && q == nil
	}
	return equal(p.body, q.body, []string{p.param.Name}, []string{q.param.Name})
}

// Hash returns a structural hash consistent with Equal.
func (p *Predicate[T]) Hash() uint64 {
	h := hasher{Hash64: newHash()}
	if p != nil {
		h.expr(p.body, []string{p.param.Name})
	}
	return h.Sum64()
}

func (p *Predicate[T]) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.param.Name + " => " + stringOf(p.body)
}
