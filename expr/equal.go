package expr

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"golang.org/x/exp/slices"
)

// Equal reports whether a and b have the same shape: the same node kinds,
// operators, methods, member names and literals, with parameters matched by
// the position of their binding rather than by name. Node identity is never
// consulted, so trees rebuilt from the wire compare equal to their source.
func Equal(a, b Expression) bool {
	return equal(a, b, nil, nil)
}

// Hash returns a structural hash of e consistent with Equal.
func Hash(e Expression) uint64 {
	h := hasher{Hash64: newHash()}
	h.expr(e, nil)
	return h.Sum64()
}

func newHash() hash.Hash64 { return fnv.New64a() }

// depthOf returns how many binders separate the reference to name from its
// binding, or -1 when name is free.
func depthOf(bound []string, name string) int {
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i] == name {
			return len(bound) - 1 - i
		}
	}
	return -1
}

func push(bound []string, name string) []string {
	next := make([]string, len(bound), len(bound)+1)
	copy(next, bound)
	return append(next, name)
}

func equal(a, b Expression, as, bs []string) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *ParameterExpression:
		y, ok := b.(*ParameterExpression)
		if !ok {
			return false
		}
		dx, dy := depthOf(as, x.Name), depthOf(bs, y.Name)
		if dx < 0 || dy < 0 {
			return dx == dy && x.Name == y.Name
		}
		return dx == dy
	case *ConstantExpression:
		y, ok := b.(*ConstantExpression)
		if !ok {
			return false
		}
		tx, okx := constantTag(x.Value)
		ty, oky := constantTag(y.Value)
		return okx && oky && tx == ty && constantText(x.Value) == constantText(y.Value)
	case *MemberExpression:
		y, ok := b.(*MemberExpression)
		return ok && x.Name == y.Name && equal(x.Target, y.Target, as, bs)
	case *CallExpression:
		y, ok := b.(*CallExpression)
		if !ok || x.Method != y.Method || !equal(x.Target, y.Target, as, bs) {
			return false
		}
		return slices.EqualFunc(x.Args, y.Args, func(l, r Expression) bool {
			return equal(l, r, as, bs)
		})
	case *CompareExpression:
		y, ok := b.(*CompareExpression)
		return ok && x.Op == y.Op && equal(x.Left, y.Left, as, bs) && equal(x.Right, y.Right, as, bs)
	case *BinaryExpression:
		y, ok := b.(*BinaryExpression)
		return ok && equal(x.Left, y.Left, as, bs) && equal(x.Right, y.Right, as, bs)
	case *NotExpression:
		y, ok := b.(*NotExpression)
		return ok && equal(x.Operand, y.Operand, as, bs)
	case *QuantifierExpression:
		y, ok := b.(*QuantifierExpression)
		if !ok || x.Parameter == nil || y.Parameter == nil {
			return false
		}
		return equal(x.Source, y.Source, as, bs) &&
			equal(x.Body, y.Body, push(as, x.Parameter.Name), push(bs, y.Parameter.Name))
	}
	return false
}

type hasher struct {
	hash.Hash64
}

func (h hasher) str(s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}

func (h hasher) num(n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	_, _ = h.Write(b[:])
}

func (h hasher) expr(e Expression, bound []string) {
	if isNil(e) {
		h.str("<nil>")
		return
	}
	h.str(string(e.Kind()))
	switch x := e.(type) {
	case *ParameterExpression:
		if d := depthOf(bound, x.Name); d >= 0 {
			h.num(d)
		} else {
			h.str(x.Name)
		}
	case *ConstantExpression:
		tag, _ := constantTag(x.Value)
		h.str(tag)
		h.str(constantText(x.Value))
	case *MemberExpression:
		h.str(x.Name)
		h.expr(x.Target, bound)
	case *CallExpression:
		h.str(string(x.Method))
		h.num(len(x.Args))
		h.expr(x.Target, bound)
		for _, arg := range x.Args {
			h.expr(arg, bound)
		}
	case *CompareExpression:
		h.str(string(x.Op))
		h.expr(x.Left, bound)
		h.expr(x.Right, bound)
	case *BinaryExpression:
		h.expr(x.Left, bound)
		h.expr(x.Right, bound)
	case *NotExpression:
		h.expr(x.Operand, bound)
	case *QuantifierExpression:
		h.expr(x.Source, bound)
		name := ""
		if x.Parameter != nil {
			name = x.Parameter.Name
		}
		h.expr(x.Body, push(bound, name))
	}
}
