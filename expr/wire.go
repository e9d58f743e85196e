package expr

import (
	"fmt"

	"github.com/go-leo/specification/wire"
)

// ToNode encodes e as a wire record. A nil e encodes as nil.
func ToNode(e Expression) *wire.Node {
	if isNil(e) {
		return nil
	}
	n := &wire.Node{Kind: string(e.Kind())}
	switch x := e.(type) {
	case *ParameterExpression:
		n.Name = x.Name
	case *ConstantExpression:
		n.Type, _ = constantTag(x.Value)
		n.Value = constantText(x.Value)
	case *MemberExpression:
		n.Name = x.Name
		n.Target = ToNode(x.Target)
	case *CallExpression:
		n.Name = string(x.Method)
		n.Target = ToNode(x.Target)
		for _, arg := range x.Args {
			n.Args = append(n.Args, ToNode(arg))
		}
	case *CompareExpression:
		n.Op = string(x.Op)
		n.Left = ToNode(x.Left)
		n.Right = ToNode(x.Right)
	case *BinaryExpression:
		n.Left = ToNode(x.Left)
		n.Right = ToNode(x.Right)
	case *NotExpression:
		n.Operand = ToNode(x.Operand)
	case *QuantifierExpression:
		if x.Parameter != nil {
			n.Name = x.Parameter.Name
		}
		n.Source = ToNode(x.Source)
		n.Body = ToNode(x.Body)
	}
	return n
}

// FromNode rebuilds the expression encoded by n. The result has the exact
// shape that was encoded; it is not type-checked until bound in a Predicate.
func FromNode(n *wire.Node) (Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing node", ErrMalformed)
	}
	switch Kind(n.Kind) {
	case KindParameter:
		return Parameter(n.Name), nil
	case KindConstant:
		v, err := parseConstant(n.Type, n.Value)
		if err != nil {
			return nil, err
		}
		return Constant(v), nil
	case KindMember:
		target, err := FromNode(n.Target)
		if err != nil {
			return nil, err
		}
		return Member(target, n.Name), nil
	case KindCall:
		target, err := FromNode(n.Target)
		if err != nil {
			return nil, err
		}
		args := make([]Expression, 0, len(n.Args))
		for i, an := range n.Args {
			arg, err := FromNode(an)
			if err != nil {
				return nil, fmt.Errorf("argument %d of %s: %w", i, n.Name, err)
			}
			args = append(args, arg)
		}
		return Call(target, Method(n.Name), args...), nil
	case KindCompare:
		left, right, err := fromNodes(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return Compare(Operator(n.Op), left, right), nil
	case KindAndAlso, KindOrElse:
		left, right, err := fromNodes(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Op: Kind(n.Kind), Left: left, Right: right}, nil
	case KindNot:
		operand, err := FromNode(n.Operand)
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	case KindAny, KindAll:
		source, body, err := fromNodes(n.Source, n.Body)
		if err != nil {
			return nil, err
		}
		return &QuantifierExpression{Op: Kind(n.Kind), Source: source, Parameter: Parameter(n.Name), Body: body}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrMalformed, n.Kind)
	}
}

func fromNodes(l, r *wire.Node) (Expression, Expression, error) {
	left, err := FromNode(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := FromNode(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// ToWire encodes p as a wire lambda.
func (p *Predicate[T]) ToWire() *wire.Lambda {
	return &wire.Lambda{Parameter: p.param.Name, Body: ToNode(p.body)}
}

// PredicateFromWire rebuilds and type-checks a predicate over T.
func PredicateFromWire[T any](l *wire.Lambda) (*Predicate[T], error) {
	if l == nil {
		return nil, fmt.Errorf("%w: missing lambda", ErrMalformed)
	}
	body, err := FromNode(l.Body)
	if err != nil {
		return nil, err
	}
	return NewPredicate[T](Parameter(l.Parameter), body)
}
