package specification

import (
	"fmt"

	"github.com/go-leo/specification/expr"
	"github.com/go-leo/specification/wire"
)

// Marshal encodes spec as a versioned wire document.
func Marshal[T any](codec wire.Codec, spec Specification[T]) ([]byte, error) {
	node, err := ToWire(spec)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(wire.NewDocument(node))
}

// Unmarshal decodes a document produced by Marshal. The predicates are
// rebuilt and type-checked against T.
func Unmarshal[T any](codec wire.Codec, data []byte) (Specification[T], error) {
	var doc wire.Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version != wire.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}
	return FromWire[T](doc.Specification)
}

// ToWire encodes spec as a wire record.
func ToWire[T any](spec Specification[T]) (*wire.Specification, error) {
	switch s := spec.(type) {
	case *AdHocSpecification[T]:
		if s != nil && s.predicate != nil {
			return &wire.Specification{Kind: string(KindAdHoc), Predicate: s.predicate.ToWire()}, nil
		}
	case *AndSpecification[T]:
		if s != nil {
			return binaryToWire(KindAnd, s.left, s.right)
		}
	case *OrSpecification[T]:
		if s != nil {
			return binaryToWire(KindOr, s.left, s.right)
		}
	case *NotSpecification[T]:
		if s != nil {
			operand, err := ToWire(s.operand)
			if err != nil {
				return nil, err
			}
			return &wire.Specification{Kind: string(KindNot), Operand: operand}, nil
		}
	}
	return nil, ErrNilSpecification
}

func binaryToWire[T any](kind Kind, left, right Specification[T]) (*wire.Specification, error) {
	l, err := ToWire(left)
	if err != nil {
		return nil, err
	}
	r, err := ToWire(right)
	if err != nil {
		return nil, err
	}
	return &wire.Specification{Kind: string(kind), Left: l, Right: r}, nil
}

// FromWire rebuilds the specification encoded by node.
func FromWire[T any](node *wire.Specification) (Specification[T], error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing specification", ErrMalformed)
	}
	switch Kind(node.Kind) {
	case KindAdHoc:
		if node.Predicate == nil {
			return nil, fmt.Errorf("%w: adhoc specification without predicate", ErrMalformed)
		}
		predicate, err := expr.PredicateFromWire[T](node.Predicate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		spec, err := New(predicate)
		if err != nil {
			return nil, err
		}
		return spec, nil
	case KindAnd, KindOr:
		left, err := FromWire[T](node.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromWire[T](node.Right)
		if err != nil {
			return nil, err
		}
		if Kind(node.Kind) == KindAnd {
			return And(left, right)
		}
		return Or(left, right)
	case KindNot:
		operand, err := FromWire[T](node.Operand)
		if err != nil {
			return nil, err
		}
		return Not(operand)
	default:
		return nil, fmt.Errorf("%w: unknown specification kind %q", ErrMalformed, node.Kind)
	}
}

func unmarshalJSON[T any](data []byte, kind Kind) (Specification[T], error) {
	spec, err := Unmarshal[T](wire.JSON, data)
	if err != nil {
		return nil, err
	}
	if spec.Kind() != kind {
		return nil, fmt.Errorf("%w: want %s specification, got %s", ErrMalformed, kind, spec.Kind())
	}
	return spec, nil
}
