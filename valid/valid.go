// Package valid implements the accumulating validation result that the
// planning pipeline is built on. Unlike an early-return error, a Valid can
// carry several causes at once: Zip, Fuse and FromIter evaluate every
// branch and concatenate the failures, while AndThen short-circuits.
package valid

// Valid holds either a value or a non-empty list of failure causes.
type Valid[T any] struct {
	value  T
	causes []Cause
}

// Succeed wraps a value.
func Succeed[T any](value T) Valid[T] {
	return Valid[T]{value: value}
}

// Fail creates a failed Valid with a single cause.
func Fail[T any](message string) Valid[T] {
	return Valid[T]{causes: []Cause{NewCause(message)}}
}

// FailCauses creates a failed Valid from pre-built causes.
func FailCauses[T any](causes []Cause) Valid[T] {
	return Valid[T]{causes: causes}
}

// FromOption succeeds with *value when it is non-nil and fails with message
// otherwise.
func FromOption[T any](value *T, message string) Valid[T] {
	if value == nil {
		return Fail[T](message)
	}
	return Succeed(*value)
}

// FromResult lifts a (value, error) pair.
func FromResult[T any](value T, err error) Valid[T] {
	if err != nil {
		if verr, ok := err.(*Error); ok {
			return FailCauses[T](verr.Causes())
		}
		return Fail[T](err.Error())
	}
	return Succeed(value)
}

// IsSucceed reports whether the Valid holds a value.
func (v Valid[T]) IsSucceed() bool {
	return len(v.causes) == 0
}

// Causes returns the failure causes, nil on success.
func (v Valid[T]) Causes() []Cause {
	return v.causes
}

// Trace prepends a segment to the trace of every cause.
func (v Valid[T]) Trace(segment string) Valid[T] {
	if v.IsSucceed() {
		return v
	}
	traced := make([]Cause, len(v.causes))
	for i, cause := range v.causes {
		traced[i] = cause.WithTrace(segment)
	}
	return Valid[T]{causes: traced}
}

// MapErrMessages rewrites every cause message.
func (v Valid[T]) MapErrMessages(f func(string) string) Valid[T] {
	if v.IsSucceed() {
		return v
	}
	mapped := make([]Cause, len(v.causes))
	for i, cause := range v.causes {
		mapped[i] = Cause{Message: f(cause.Message), Trace: cause.Trace}
	}
	return Valid[T]{causes: mapped}
}

// ToResult unwraps the Valid into a (value, error) pair.
func (v Valid[T]) ToResult() (T, *Error) {
	if v.IsSucceed() {
		return v.value, nil
	}
	var zero T
	return zero, NewError(v.causes...)
}

// Map transforms the value on success.
func Map[A, B any](v Valid[A], f func(A) B) Valid[B] {
	if !v.IsSucceed() {
		return FailCauses[B](v.causes)
	}
	return Succeed(f(v.value))
}

// AndThen chains a dependent computation. It short-circuits: f never runs
// when v already failed.
func AndThen[A, B any](v Valid[A], f func(A) Valid[B]) Valid[B] {
	if !v.IsSucceed() {
		return FailCauses[B](v.causes)
	}
	return f(v.value)
}

// Zip combines two Valids. Both sides are always evaluated before Zip is
// called, so failures from both accumulate.
func Zip[A, B, C any](a Valid[A], b Valid[B], f func(A, B) C) Valid[C] {
	if !a.IsSucceed() || !b.IsSucceed() {
		return FailCauses[C](append(append([]Cause{}, a.causes...), b.causes...))
	}
	return Succeed(f(a.value, b.value))
}

// Fuse is the n-ary accumulating zip over a homogeneous slice.
func Fuse[T any](vs ...Valid[T]) Valid[[]T] {
	var causes []Cause
	values := make([]T, 0, len(vs))
	for _, v := range vs {
		if v.IsSucceed() {
			values = append(values, v.value)
		} else {
			causes = append(causes, v.causes...)
		}
	}
	if len(causes) > 0 {
		return FailCauses[[]T](causes)
	}
	return Succeed(values)
}

// FromIter applies f to every element and accumulates all failures. It only
// succeeds when every element does.
func FromIter[A, B any](items []A, f func(A) Valid[B]) Valid[[]B] {
	var causes []Cause
	values := make([]B, 0, len(items))
	for _, item := range items {
		v := f(item)
		if v.IsSucceed() {
			values = append(values, v.value)
		} else {
			causes = append(causes, v.causes...)
		}
	}
	if len(causes) > 0 {
		return FailCauses[[]B](causes)
	}
	return Succeed(values)
}
