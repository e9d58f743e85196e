package expr

import (
	"github.com/go-leo/gox/slicex"
)

// clone returns a deep copy of e. Nil children stay nil.
func clone(e Expression) Expression {
	if isNil(e) {
		return e
	}
	switch x := e.(type) {
	case *ParameterExpression:
		return Parameter(x.Name)
	case *ConstantExpression:
		return Constant(x.Value)
	case *MemberExpression:
		return Member(clone(x.Target), x.Name)
	case *CallExpression:
		return Call(clone(x.Target), x.Method, cloneAll(x.Args)...)
	case *CompareExpression:
		return Compare(x.Op, clone(x.Left), clone(x.Right))
	case *BinaryExpression:
		return &BinaryExpression{Op: x.Op, Left: clone(x.Left), Right: clone(x.Right)}
	case *NotExpression:
		return Not(clone(x.Operand))
	case *QuantifierExpression:
		q := &QuantifierExpression{Op: x.Op, Source: clone(x.Source), Body: clone(x.Body)}
		if x.Parameter != nil {
			q.Parameter = Parameter(x.Parameter.Name)
		}
		return q
	}
	return e
}

func cloneAll(es []Expression) []Expression {
	if es == nil {
		return nil
	}
	return slicex.Map[[]Expression, []Expression](es, func(_ int, e Expression) Expression { return clone(e) })
}
