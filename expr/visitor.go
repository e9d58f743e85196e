package expr

// Visitor visits the nodes of an expression tree.
// If Visit returns a non-nil Visitor w, Walk visits each child of the node
// with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(e Expression) (w Visitor)
}

// Walk traverses e in depth-first order, left operand before right.
func Walk(v Visitor, e Expression) {
	if isNil(e) {
		return
	}
	if v = v.Visit(e); v == nil {
		return
	}
	switch x := e.(type) {
	case *ParameterExpression, *ConstantExpression:
	case *MemberExpression:
		Walk(v, x.Target)
	case *CallExpression:
		Walk(v, x.Target)
		for _, arg := range x.Args {
			Walk(v, arg)
		}
	case *CompareExpression:
		Walk(v, x.Left)
		Walk(v, x.Right)
	case *BinaryExpression:
		Walk(v, x.Left)
		Walk(v, x.Right)
	case *NotExpression:
		Walk(v, x.Operand)
	case *QuantifierExpression:
		Walk(v, x.Source)
		if x.Parameter != nil {
			Walk(v, x.Parameter)
		}
		Walk(v, x.Body)
	}
	v.Visit(nil)
}

type inspector func(Expression) bool

func (f inspector) Visit(e Expression) Visitor {
	if f(e) {
		return f
	}
	return nil
}

// Inspect traverses e calling f for each node; f returning false prunes the
// node's children. f is called with nil after the children of a node.
func Inspect(e Expression, f func(Expression) bool) {
	Walk(inspector(f), e)
}

// Names returns every parameter name that occurs in e, bound or free.
func Names(e Expression) map[string]struct{} {
	names := make(map[string]struct{})
	Inspect(e, func(n Expression) bool {
		if p, ok := n.(*ParameterExpression); ok && p != nil {
			names[p.Name] = struct{}{}
		}
		return true
	})
	return names
}
