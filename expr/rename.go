package expr

import "strconv"

// rename returns e with every free reference to from replaced by to.
// Binders inside e that would capture to are renamed to fresh names first.
// e itself is left untouched.
func rename(e Expression, from, to string) Expression {
	if from == to || isNil(e) {
		return e
	}
	taken := Names(e)
	taken[from] = struct{}{}
	taken[to] = struct{}{}
	r := &renamer{from: from, to: to, taken: taken}
	return r.expr(e)
}

type renamer struct {
	from, to string
	taken    map[string]struct{}
}

func (r *renamer) fresh(base string) string {
	for i := 1; ; i++ {
		name := base + "_" + strconv.Itoa(i)
		if _, ok := r.taken[name]; !ok {
			r.taken[name] = struct{}{}
			return name
		}
	}
}

func (r *renamer) expr(e Expression) Expression {
	if isNil(e) {
		return e
	}
	switch x := e.(type) {
	case *ParameterExpression:
		if x.Name == r.from {
			return Parameter(r.to)
		}
		return x
	case *ConstantExpression:
		return x
	case *MemberExpression:
		return Member(r.expr(x.Target), x.Name)
	case *CallExpression:
		args := make([]Expression, len(x.Args))
		for i, arg := range x.Args {
			args[i] = r.expr(arg)
		}
		return Call(r.expr(x.Target), x.Method, args...)
	case *CompareExpression:
		return Compare(x.Op, r.expr(x.Left), r.expr(x.Right))
	case *BinaryExpression:
		return &BinaryExpression{Op: x.Op, Left: r.expr(x.Left), Right: r.expr(x.Right)}
	case *NotExpression:
		return Not(r.expr(x.Operand))
	case *QuantifierExpression:
		source := r.expr(x.Source)
		if x.Parameter == nil {
			return &QuantifierExpression{Op: x.Op, Source: source, Body: x.Body}
		}
		switch x.Parameter.Name {
		case r.from:
			// from is shadowed below this binder
			return &QuantifierExpression{Op: x.Op, Source: source, Parameter: x.Parameter, Body: x.Body}
		case r.to:
			name := r.fresh(r.to)
			body := rename(x.Body, r.to, name)
			return &QuantifierExpression{Op: x.Op, Source: source, Parameter: Parameter(name), Body: r.expr(body)}
		}
		return &QuantifierExpression{Op: x.Op, Source: source, Parameter: x.Parameter, Body: r.expr(x.Body)}
	}
	return e
}
