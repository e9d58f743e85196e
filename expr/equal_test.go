package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lenGreaterThan(name string, n int) *Predicate[string] {
	return MustLambda[string](name, func(x *ParameterExpression) Expression {
		return Gt(Len(x), Constant(n))
	})
}

func TestEqualIgnoresParameterNames(t *testing.T) {
	a := lenGreaterThan("x", 1)
	b := lenGreaterThan("y", 1)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(lenGreaterThan("x", 2)))
}

func TestEqualIsStructural(t *testing.T) {
	build := func() Expression {
		p := Parameter("p")
		return AndAlso(Eq(Member(p, "Name"), Constant("ana")), Not(IsNil(Member(p, "Email"))))
	}
	a, b := build(), build()

	assert.NotSame(t, a, b)
	assert.True(t, Equal(a, b))
	assert.Equal(t, Hash(a), Hash(b))
}

func TestEqualDistinguishesLiteralTypes(t *testing.T) {
	assert.False(t, Equal(Constant(1), Constant(int64(1))))
	assert.False(t, Equal(Constant(1), Constant(1.0)))
	assert.False(t, Equal(Constant("1"), Constant(1)))
	assert.True(t, Equal(Constant(nil), Constant(nil)))
	assert.True(t, Equal(Constant(uint8(7)), Constant(uint8(7))))
}

func TestEqualIsOrderSensitive(t *testing.T) {
	p := Parameter("s")
	l, r := Gt(Len(p), Constant(1)), Lt(Len(p), Constant(5))

	assert.False(t, Equal(AndAlso(l, r), AndAlso(r, l)))
	assert.False(t, Equal(AndAlso(l, r), OrElse(l, r)))
	assert.False(t, Equal(Gt(Len(p), Constant(1)), Lt(Len(p), Constant(1))))
}

func TestEqualTracksBindingDepth(t *testing.T) {
	inner := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Any(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
			return Eq(t, Member(p, "Name"))
		})
	})
	swapped := MustLambda[Person]("q", func(q *ParameterExpression) Expression {
		return Any(Member(q, "Tags"), "p", func(p *ParameterExpression) Expression {
			return Eq(p, Member(q, "Name"))
		})
	})
	outer := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Any(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
			return Eq(Member(p, "Name"), Member(p, "Name"))
		})
	})

	assert.True(t, inner.Equal(swapped))
	assert.Equal(t, inner.Hash(), swapped.Hash())
	assert.False(t, inner.Equal(outer))
}

func TestEqualNil(t *testing.T) {
	var p *Predicate[string]
	assert.True(t, p.Equal(nil))
	assert.False(t, p.Equal(lenGreaterThan("x", 1)))
	assert.False(t, lenGreaterThan("x", 1).Equal(nil))
	assert.True(t, Equal(nil, (*MemberExpression)(nil)))
	assert.False(t, Equal(Constant(1), nil))
}

func TestInspect(t *testing.T) {
	p := Parameter("p")
	e := AndAlso(Eq(Member(p, "Name"), Constant("ana")), Any(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
		return Eq(t, Constant("vip"))
	}))

	var kinds []Kind
	Inspect(e, func(n Expression) bool {
		if n != nil {
			kinds = append(kinds, n.Kind())
		}
		return n == nil || n.Kind() != KindMember
	})
	assert.Equal(t, []Kind{
		KindAndAlso, KindCompare, KindMember, KindConstant,
		KindAny, KindMember, KindParameter, KindCompare, KindParameter, KindConstant,
	}, kinds)

	assert.Equal(t, map[string]struct{}{"p": {}, "t": {}}, Names(e))
}
