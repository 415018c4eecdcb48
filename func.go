package damper

import "slices"

// Func is a callable invoked against a receiver with positional arguments.
type Func[R, A any] func(recv R, args ...A) error

// invocation is a captured call: the receiver and arguments to replay.
type invocation[R, A any] struct {
	recv R
	args []A
}

// capture copies args so later mutation by the caller cannot leak into a
// deferred invocation.
func capture[R, A any](recv R, args []A) *invocation[R, A] {
	return &invocation[R, A]{recv: recv, args: slices.Clone(args)}
}

func (i *invocation[R, A]) run(fn Func[R, A]) error {
	return fn(i.recv, i.args...)
}
