package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Invoker runs a query.
type Invoker[T any] func(ctx context.Context, query Query[T]) ([]T, error)

// Middleware wraps the invoker of a query.
type Middleware[T any] func(ctx context.Context, query Query[T], invoker Invoker[T]) ([]T, error)

// Chain composes middlewares into one; the first is the outermost. Chain
// returns nil when there is nothing to compose.
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	switch len(middlewares) {
	case 0:
		return nil
	case 1:
		return middlewares[0]
	}
	return func(ctx context.Context, query Query[T], invoker Invoker[T]) ([]T, error) {
		return middlewares[0](ctx, query, next(middlewares, 0, invoker))
	}
}

func next[T any](middlewares []Middleware[T], curr int, final Invoker[T]) Invoker[T] {
	if curr == len(middlewares)-1 {
		return final
	}
	return func(ctx context.Context, query Query[T]) ([]T, error) {
		return middlewares[curr+1](ctx, query, next(middlewares, curr+1, final))
	}
}

// Logging logs each query with its outcome. Successful queries log at debug
// level, failed ones at error level.
func Logging[T any](logger zerolog.Logger) Middleware[T] {
	return func(ctx context.Context, query Query[T], invoker Invoker[T]) ([]T, error) {
		start := time.Now()
		items, err := invoker(ctx, query)
		event := logger.Debug()
		if err != nil {
			event = logger.Error().Err(err)
		}
		event.
			Str("kind", string(query.Specification.Kind())).
			Stringer("specification", query.Specification).
			Int("limit", query.Limit).
			Int("matches", len(items)).
			Dur("elapsed", time.Since(start)).
			Msg("repository query")
		return items, err
	}
}
