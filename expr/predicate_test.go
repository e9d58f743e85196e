package expr

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Address struct {
	City string
}

type Person struct {
	Name    string
	Age     int
	Level   uint8
	Score   float64
	Email   *string
	Tags    []string
	Address *Address
	Attrs   map[string]string
	secret  string
}

func TestLambdaCompile(t *testing.T) {
	p := MustLambda[string]("n", func(n *ParameterExpression) Expression {
		return AndAlso(StartsWith(n, "J"), EndsWith(n, "e"))
	})
	fn := p.Compile()

	var got []string
	for _, name := range []string{"Jose", "Julian", "Manuel"} {
		if fn(name) {
			got = append(got, name)
		}
	}
	assert.Equal(t, []string{"Jose"}, got)
	assert.Equal(t, `n => (n.StartsWith("J") && n.EndsWith("e"))`, p.String())
}

func TestMemberAccess(t *testing.T) {
	adult := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return AndAlso(Ge(Member(p, "Age"), Constant(18)), Contains(Member(p, "Name"), "a"))
	})
	fn := adult.Compile()

	assert.True(t, fn(Person{Name: "Maria", Age: 30}))
	assert.False(t, fn(Person{Name: "Maria", Age: 12}))
	assert.False(t, fn(Person{Name: "John", Age: 30}))
}

func TestMemberThroughPointers(t *testing.T) {
	inMadrid := MustLambda[*Person]("p", func(p *ParameterExpression) Expression {
		return Eq(Member(Member(p, "Address"), "City"), Constant("Madrid"))
	})
	fn := inMadrid.Compile()

	assert.True(t, fn(&Person{Address: &Address{City: "Madrid"}}))
	assert.False(t, fn(&Person{Address: &Address{City: "Lima"}}))
	assert.False(t, fn(&Person{}))
	assert.False(t, fn(nil))
}

func TestNilComparisons(t *testing.T) {
	noEmail := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return IsNil(Member(p, "Email"))
	})
	email := "jose@example.com"
	assert.True(t, noEmail.Compile()(Person{}))
	assert.False(t, noEmail.Compile()(Person{Email: &email}))

	byEmail := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Eq(Member(p, "Email"), Constant(email))
	})
	assert.True(t, byEmail.Compile()(Person{Email: &email}))
	assert.False(t, byEmail.Compile()(Person{}))
}

func TestMapMember(t *testing.T) {
	gold := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Eq(Member(Member(p, "Attrs"), "tier"), Constant("gold"))
	})
	fn := gold.Compile()

	assert.True(t, fn(Person{Attrs: map[string]string{"tier": "gold"}}))
	assert.False(t, fn(Person{Attrs: map[string]string{"tier": "silver"}}))
	assert.False(t, fn(Person{}))
}

func TestQuantifiers(t *testing.T) {
	anyVip := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Any(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
			return Eq(t, Constant("vip"))
		})
	})
	allShort := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return All(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
			return Lt(Len(t), Constant(4))
		})
	})

	assert.True(t, anyVip.Compile()(Person{Tags: []string{"new", "vip"}}))
	assert.False(t, anyVip.Compile()(Person{Tags: []string{"new"}}))
	assert.False(t, anyVip.Compile()(Person{}))

	assert.True(t, allShort.Compile()(Person{Tags: []string{"new", "vip"}}))
	assert.False(t, allShort.Compile()(Person{Tags: []string{"new", "premium"}}))
	assert.True(t, allShort.Compile()(Person{}))
}

func TestQuantifierSeesOuterParameter(t *testing.T) {
	tagged := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Any(Member(p, "Tags"), "t", func(t *ParameterExpression) Expression {
			return Eq(t, Member(p, "Name"))
		})
	})
	fn := tagged.Compile()

	assert.True(t, fn(Person{Name: "ana", Tags: []string{"x", "ana"}}))
	assert.False(t, fn(Person{Name: "ana", Tags: []string{"x"}}))
}

func TestContainsElement(t *testing.T) {
	vip := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Contains(Member(p, "Tags"), "vip")
	})
	assert.True(t, vip.Compile()(Person{Tags: []string{"vip"}}))
	assert.False(t, vip.Compile()(Person{Tags: []string{"new"}}))
}

func TestStringMethods(t *testing.T) {
	p := MustLambda[string]("s", func(s *ParameterExpression) Expression {
		return AndAlso(
			Eq(ToUpper(TrimSpace(s)), Constant("GO")),
			AndAlso(EqualFold(s, " go "), Eq(ToLower(s), Constant(" go "))),
		)
	})
	assert.True(t, p.Compile()(" Go "))
	assert.False(t, p.Compile()("Go"))
}

func TestLenCountsRunes(t *testing.T) {
	p := MustLambda[string]("s", func(s *ParameterExpression) Expression {
		return Eq(Len(s), Constant(4))
	})
	assert.True(t, p.Compile()("José"))
}

func TestNumericComparisonAcrossKinds(t *testing.T) {
	p := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return AndAlso(Gt(Member(p, "Level"), Constant(-1)), Le(Member(p, "Score"), Constant(uint64(10))))
	})
	assert.True(t, p.Compile()(Person{Level: 3, Score: 9.5}))
	assert.False(t, p.Compile()(Person{Level: 3, Score: 10.5}))

	big := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Lt(Member(p, "Age"), Constant(uint64(math.MaxUint64)))
	})
	assert.True(t, big.Compile()(Person{Age: -5}))
}

func TestNaNIsUnordered(t *testing.T) {
	p := MustLambda[float64]("f", func(f *ParameterExpression) Expression {
		return OrElse(Eq(f, f), OrElse(Lt(f, Constant(0)), Ge(f, Constant(0))))
	})
	assert.False(t, p.Compile()(math.NaN()))
	assert.True(t, p.Compile()(1))
}

func TestNamedTypes(t *testing.T) {
	type Brand string
	p := MustLambda[Brand]("b", func(b *ParameterExpression) Expression {
		return Eq(b, Constant("xiaomi"))
	})
	assert.True(t, p.Compile()(Brand("xiaomi")))
	assert.False(t, p.Compile()(Brand("vivo")))
}

func TestNewPredicateRejectsInvalidTrees(t *testing.T) {
	cases := map[string]struct {
		fn  func(p *ParameterExpression) Expression
		err error
	}{
		"nil body": {
			fn:  func(p *ParameterExpression) Expression { return nil },
			err: ErrNilExpression,
		},
		"typed nil child": {
			fn: func(p *ParameterExpression) Expression {
				return AndAlso(Eq(Member(p, "Age"), Constant(1)), (*NotExpression)(nil))
			},
			err: ErrNilExpression,
		},
		"unbound parameter": {
			fn:  func(p *ParameterExpression) Expression { return Eq(Member(Parameter("q"), "Age"), Constant(1)) },
			err: ErrUnboundParameter,
		},
		"unknown member": {
			fn:  func(p *ParameterExpression) Expression { return Eq(Member(p, "Height"), Constant(1)) },
			err: ErrUnknownMember,
		},
		"unexported member": {
			fn:  func(p *ParameterExpression) Expression { return Eq(Member(p, "secret"), Constant("x")) },
			err: ErrUnknownMember,
		},
		"string method on int": {
			fn:  func(p *ParameterExpression) Expression { return StartsWith(Member(p, "Age"), "1") },
			err: ErrTypeMismatch,
		},
		"ordering booleans": {
			fn:  func(p *ParameterExpression) Expression { return Lt(Constant(true), Constant(false)) },
			err: ErrTypeMismatch,
		},
		"string against int": {
			fn:  func(p *ParameterExpression) Expression { return Eq(Member(p, "Name"), Constant(1)) },
			err: ErrTypeMismatch,
		},
		"non boolean body": {
			fn:  func(p *ParameterExpression) Expression { return Member(p, "Name") },
			err: ErrTypeMismatch,
		},
		"unsupported constant": {
			fn:  func(p *ParameterExpression) Expression { return Eq(Constant(complex(1, 2)), Constant(1)) },
			err: ErrUnsupportedConstant,
		},
		"unknown method": {
			fn:  func(p *ParameterExpression) Expression { return Call(Member(p, "Name"), "Reverse") },
			err: ErrUnknownMethod,
		},
		"wrong arity": {
			fn:  func(p *ParameterExpression) Expression { return Call(Member(p, "Name"), MethodStartsWith) },
			err: ErrTypeMismatch,
		},
		"unknown operator": {
			fn:  func(p *ParameterExpression) Expression { return Compare("like", Member(p, "Name"), Constant("x")) },
			err: ErrUnsupportedOperator,
		},
		"quantifier over string": {
			fn: func(p *ParameterExpression) Expression {
				return Any(Member(p, "Name"), "c", func(c *ParameterExpression) Expression { return Eq(c, c) })
			},
			err: ErrTypeMismatch,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Lambda[Person]("p", c.fn)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.err), err.Error())
		})
	}

	_, err := Lambda[Person]("", func(p *ParameterExpression) Expression { return Eq(p, p) })
	assert.ErrorIs(t, err, ErrEmptyParameterName)
	_, err = Lambda[Person]("p", nil)
	assert.ErrorIs(t, err, ErrNilExpression)
	_, err = NewPredicate[Person](nil, Constant(true))
	assert.ErrorIs(t, err, ErrNilExpression)
}

func countingPredicate(name string, result bool, calls *int) *Predicate[string] {
	return &Predicate[string]{
		param: Parameter(name),
		body:  Eq(Constant(result), Constant(true)),
		eval: func(*frame) reflect.Value {
			*calls++
			return reflect.ValueOf(result)
		},
	}
}

func TestAndAlsoShortCircuits(t *testing.T) {
	var leftCalls, rightCalls int
	left := countingPredicate("x", false, &leftCalls)
	right := countingPredicate("y", true, &rightCalls)

	and, err := left.AndAlso(right)
	require.NoError(t, err)
	assert.False(t, and.Compile()("anything"))
	assert.Equal(t, 1, leftCalls)
	assert.Equal(t, 0, rightCalls)

	or, err := right.OrElse(left)
	require.NoError(t, err)
	assert.True(t, or.Compile()("anything"))
	assert.Equal(t, 1, rightCalls)
	assert.Equal(t, 1, leftCalls)
}

func TestCombineUnifiesParameters(t *testing.T) {
	long := MustLambda[string]("a", func(a *ParameterExpression) Expression { return Gt(Len(a), Constant(3)) })
	upper := MustLambda[string]("b", func(b *ParameterExpression) Expression { return Eq(ToUpper(b), b) })

	both, err := long.AndAlso(upper)
	require.NoError(t, err)
	assert.Equal(t, "a", both.Parameter().Name)
	assert.Equal(t, `a => ((a.Len() > 3) && (a.ToUpper() == a))`, both.String())
	assert.True(t, both.Compile()("ABCD"))
	assert.False(t, both.Compile()("abcd"))
	assert.False(t, both.Compile()("ABC"))

	rebuilt, err := NewPredicate[string](both.Parameter(), both.Body())
	require.NoError(t, err)
	assert.True(t, rebuilt.Compile()("ABCD"))
}

func TestCombineAvoidsCapture(t *testing.T) {
	named := MustLambda[Person]("p", func(p *ParameterExpression) Expression {
		return Ne(Member(p, "Name"), Constant(""))
	})
	// the right operand binds "p" internally, which must not capture the
	// unified outer parameter
	tagged := MustLambda[Person]("x", func(x *ParameterExpression) Expression {
		return Any(Member(x, "Tags"), "p", func(p *ParameterExpression) Expression {
			return Eq(p, Member(x, "Name"))
		})
	})

	both, err := named.AndAlso(tagged)
	require.NoError(t, err)
	fn := both.Compile()
	assert.True(t, fn(Person{Name: "ana", Tags: []string{"ana"}}))
	assert.False(t, fn(Person{Name: "ana", Tags: []string{"bob"}}))

	want := MustLambda[Person]("q", func(q *ParameterExpression) Expression {
		return AndAlso(
			Ne(Member(q, "Name"), Constant("")),
			Any(Member(q, "Tags"), "t", func(t *ParameterExpression) Expression {
				return Eq(t, Member(q, "Name"))
			}),
		)
	})
	assert.True(t, both.Equal(want))
}

func TestNot(t *testing.T) {
	short := MustLambda[string]("s", func(s *ParameterExpression) Expression { return Lt(Len(s), Constant(3)) })
	long, err := short.Not()
	require.NoError(t, err)
	assert.True(t, long.Compile()("abcd"))
	assert.False(t, long.Compile()("ab"))
	assert.Equal(t, "s => !(s.Len() < 3)", long.String())

	var nilPredicate *Predicate[string]
	_, err = nilPredicate.Not()
	assert.ErrorIs(t, err, ErrNilPredicate)
	_, err = short.AndAlso(nil)
	assert.ErrorIs(t, err, ErrNilPredicate)
	_, err = nilPredicate.OrElse(short)
	assert.ErrorIs(t, err, ErrNilPredicate)
}

func TestPredicateOwnsItsTree(t *testing.T) {
	s := Parameter("s")
	prefix := Constant("J")
	body := StartsWith(s, "J")
	body.Args[0] = prefix

	p, err := NewPredicate[string](s, body)
	require.NoError(t, err)
	hash, text := p.Hash(), p.String()

	body.Args[0] = Constant("X")
	prefix.Value = "X"
	s.Name = "x"
	assert.Equal(t, hash, p.Hash())
	assert.Equal(t, text, p.String())
	assert.True(t, p.Compile()("Jose"))

	p.Body().(*CallExpression).Args[0] = Constant("X")
	p.Parameter().Name = "x"
	assert.Equal(t, hash, p.Hash())
	assert.Equal(t, text, p.String())
	assert.True(t, p.Compile()("Jose"))
	assert.False(t, p.Compile()("Xavi"))
}
