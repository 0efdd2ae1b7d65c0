// Package future provides one-shot asynchronous tasks whose result can be awaited any number of times.
package future

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"sync"
)

// Task performs a computation and returns a value of type T or an error. It is executed at most once.
type Task[T any] func(context.Context) (T, error)

// Future returns the result of a Task. Every call returns the same value and error.
type Future[T any] func(context.Context) (T, error)

// NewDeferred creates a Future from a Task. The Task starts the first time the Future is called.
func NewDeferred[T any](task Task[T]) Future[T] {
	runner, receiver := makeRunnerAndReceiver(task)
	var once sync.Once
	return func(ctx context.Context) (T, error) {
		once.Do(func() { go runner(ctx) })
		return receiver(ctx)
	}
}

// NewValue returns a Future that always resolves to v.
func NewValue[T any](v T) Future[T] {
	return func(_ context.Context) (T, error) {
		return v, nil
	}
}

// NewError returns a Future that always fails with err.
func NewError[T any](err error) Future[T] {
	var zero T
	return func(_ context.Context) (T, error) {
		return zero, err
	}
}

// Await waits for f and returns its value or error. Equivalent to calling f(ctx).
func (f Future[T]) Await(ctx context.Context) (T, error) {
	return f(ctx)
}

// Result holds the value or error of a Future.
type Result[T any] struct {
	Value T
	Err   error
}

func makeRunnerAndReceiver[T any](task func(context.Context) (T, error)) (runner func(context.Context), receiver func(context.Context) (T, error)) {
	ch := make(chan Result[T], 1)
	runner = func(ctx context.Context) {
		defer close(ch)
		var result Result[T]
		defer func() { ch <- result }()
		defer result.recover()
		result.Value, result.Err = task(ctx)
	}
	var once sync.Once
	var result Result[T]
	receiver = func(ctx context.Context) (T, error) {
		once.Do(func() {
			result.receive(ctx, ch)
		})
		return result.Value, result.Err
	}
	return runner, receiver
}

// receive stores the result sent on ch.
// If ctx is done first, ctx.Err() is stored unless the result is already available.
func (r *Result[T]) receive(ctx context.Context, ch <-chan Result[T]) {
	select {
	case result, ok := <-ch:
		if ok {
			*r = result
		}
	case <-ctx.Done():
		select {
		case result, ok := <-ch:
			if ok {
				*r = result
			}
		default:
			r.Err = ctx.Err()
		}
	}
}

// recover turns a panic in the task into an error.
func (r *Result[T]) recover() {
	switch v := recover().(type) {
	case nil:
	case error:
		r.Err = v
	default:
		r.Err = fmt.Errorf("%+v", v)
	}
}

// Await runs futures with at most about limit of them in flight and yields their results in input order.
// A limit <= 0 means runtime.NumCPU(). Nothing runs until the returned sequence is iterated.
// Once ctx is done, futures not yet started are skipped and yield ctx.Err(), so every future still
// yields exactly one result.
func Await[T any](ctx context.Context, futures iter.Seq[Future[T]], limit int) iter.Seq[Result[T]] {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return func(yield func(Result[T]) bool) {
		receiverCh := make(chan func(context.Context) (T, error), limit)
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			defer close(receiverCh)
			for f := range futures {
				if err := ctx.Err(); err != nil {
					f = NewError[T](err)
				}
				runner, receiver := makeRunnerAndReceiver(f)
				select {
				case receiverCh <- receiver:
				case <-stop:
					return
				}
				go runner(ctx)
			}
		}()
		for receiver := range receiverCh {
			var result Result[T]
			result.Value, result.Err = receiver(ctx)
			if !yield(result) {
				return
			}
		}
	}
}
