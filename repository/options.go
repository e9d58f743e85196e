package repository

import (
	"github.com/go-leo/gox/slicex"
	"github.com/rs/zerolog"
)

type options[T any] struct {
	Logger      *zerolog.Logger
	Middlewares []Middleware[T]
}

func (o *options[T]) apply(opts ...Option[T]) *options[T] {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options[T]) correct() *options[T] {
	if o.Logger != nil {
		o.Middlewares = slicex.AppendFirst(o.Middlewares, Logging[T](*o.Logger))
	}
	return o
}

type Option[T any] func(o *options[T])

// Logger logs every query through the Logging middleware, outermost.
func Logger[T any](logger zerolog.Logger) Option[T] {
	return func(o *options[T]) {
		o.Logger = &logger
	}
}

// Middlewares appends query middlewares. The first one is the outermost.
func Middlewares[T any](middlewares ...Middleware[T]) Option[T] {
	return func(o *options[T]) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}
