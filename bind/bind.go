// Package bind provides explicit receiver binding and partial application
// for plain Go functions.
//
// A Method is a function that takes its receiver as an explicit first
// parameter. It can be invoked against any receiver (Call, Apply) or have
// its receiver and leading arguments fixed ahead of time (Bind):
//
//	fullName := bind.Method[Person, string, string](func(p Person, args ...string) string {
//	    return p.First + " " + p.Last + " from " + strings.Join(args, ", ")
//	})
//
//	fullName.Call(vex, "Haryana")
//	fullName.Apply(vex, []string{"Haryana"})
//
//	printVegeta := fullName.Bind(vegeta, "Tokyo")
//	printVegeta()
package bind

import "slices"

// Method is a function invoked against an explicit receiver.
type Method[R, A, T any] func(recv R, args ...A) T

// Call invokes m against recv with args listed individually.
func (m Method[R, A, T]) Call(recv R, args ...A) T {
	return m(recv, args...)
}

// Apply invokes m against recv with args passed as a slice.
func (m Method[R, A, T]) Apply(recv R, args []A) T {
	return m(recv, args...)
}

// Bind fixes the receiver and leading arguments of m. The returned function
// appends its own arguments after the bound ones. Bound arguments are copied,
// so later changes to the caller's slice do not affect the bound function.
func (m Method[R, A, T]) Bind(recv R, bound ...A) func(args ...A) T {
	bound = slices.Clone(bound)
	return func(args ...A) T {
		all := make([]A, 0, len(bound)+len(args))
		all = append(all, bound...)
		all = append(all, args...)
		return m(recv, all...)
	}
}

// Partial fixes the first argument of a two-argument function.
func Partial[X, Y, T any](f func(X, Y) T, x X) func(Y) T {
	return func(y Y) T {
		return f(x, y)
	}
}

// Curry2 turns a two-argument function into a chain of one-argument
// functions: Curry2(f)(x)(y) == f(x, y).
func Curry2[X, Y, T any](f func(X, Y) T) func(X) func(Y) T {
	return func(x X) func(Y) T {
		return Partial(f, x)
	}
}

// Uncurry2 reverses Curry2.
func Uncurry2[X, Y, T any](f func(X) func(Y) T) func(X, Y) T {
	return func(x X, y Y) T {
		return f(x)(y)
	}
}

// Map applies fn to every element of s and returns the results in order.
// A nil slice maps to an empty, non-nil slice.
func Map[S ~[]E, E, T any](s S, fn func(E) T) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		out = append(out, fn(v))
	}
	return out
}
