// Package repository is an in-memory store queried with specifications.
package repository

import (
	"context"

	"github.com/go-leo/specification/specification"
)

// Query is a single lookup. A Limit of zero means no limit.
type Query[T any] struct {
	Specification specification.Specification[T]
	Limit         int
}

// Repository scans a fixed collection of items. It is safe for concurrent use
// as long as the items themselves are not mutated.
type Repository[T any] struct {
	items   []T
	options *options[T]
	invoker Invoker[T]
}

// NewRepository creates a repository over items.
func NewRepository[T any](items []T, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		items:   items,
		options: new(options[T]).apply(opts...).correct(),
	}
	r.invoker = r.scan
	if mdw := Chain(r.options.Middlewares...); mdw != nil {
		r.invoker = func(ctx context.Context, query Query[T]) ([]T, error) {
			return mdw(ctx, query, r.scan)
		}
	}
	return r
}

// Find returns every item satisfying spec, in collection order.
func (r *Repository[T]) Find(ctx context.Context, spec specification.Specification[T]) ([]T, error) {
	return r.query(ctx, Query[T]{Specification: spec})
}

// Count returns the number of items satisfying spec.
func (r *Repository[T]) Count(ctx context.Context, spec specification.Specification[T]) (int, error) {
	items, err := r.query(ctx, Query[T]{Specification: spec})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Exists reports whether any item satisfies spec. The scan stops at the
// first match.
func (r *Repository[T]) Exists(ctx context.Context, spec specification.Specification[T]) (bool, error) {
	items, err := r.query(ctx, Query[T]{Specification: spec, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// First returns the first item satisfying spec, or ErrNotFound.
func (r *Repository[T]) First(ctx context.Context, spec specification.Specification[T]) (T, error) {
	var zero T
	items, err := r.query(ctx, Query[T]{Specification: spec, Limit: 1})
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, ErrNotFound
	}
	return items[0], nil
}

func (r *Repository[T]) query(ctx context.Context, query Query[T]) ([]T, error) {
	if _, err := specification.ToPredicate(query.Specification); err != nil {
		return nil, err
	}
	return r.invoker(ctx, query)
}

func (r *Repository[T]) scan(ctx context.Context, query Query[T]) ([]T, error) {
	match := query.Specification.ToExpression().Compile()
	var found []T
	for _, item := range r.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !match(item) {
			continue
		}
		found = append(found, item)
		if query.Limit > 0 && len(found) == query.Limit {
			break
		}
	}
	return found, nil
}
