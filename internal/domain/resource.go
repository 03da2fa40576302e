package domain

// ResourceStatus is the tag of a Resource.
type ResourceStatus int

const (
	StatusNotRequested ResourceStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s ResourceStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "not_requested"
	}
}

// Resource is the load state of one remote value: NotRequested, Loading,
// Loaded(value) or Failed(prior value, if any).
//
// The zero value is NotRequested. Resources are values; every transition
// returns a new Resource and leaves the receiver untouched.
type Resource[T any] struct {
	status   ResourceStatus
	value    T
	hasValue bool
	err      *TransportError
}

// NotRequested returns the absent state.
func NotRequested[T any]() Resource[T] {
	return Resource[T]{}
}

// Loaded wraps a concrete value.
func Loaded[T any](v T) Resource[T] {
	return Resource[T]{status: StatusLoaded, value: v, hasValue: true}
}

// Status returns the tag.
func (r Resource[T]) Status() ResourceStatus {
	return r.status
}

// IsLoading reports whether a request is in flight.
func (r Resource[T]) IsLoading() bool {
	return r.status == StatusLoading
}

// IsLoaded reports whether a concrete value is exposed. A failed request
// that kept a prior value still counts as loaded.
func (r Resource[T]) IsLoaded() bool {
	return r.status != StatusLoading && r.hasValue
}

// Value returns the concrete value. ok is false while loading or when
// nothing has been loaded yet.
func (r Resource[T]) Value() (v T, ok bool) {
	if !r.IsLoaded() {
		return v, false
	}
	return r.value, true
}

// Err returns the error of the last failed request, or nil.
func (r Resource[T]) Err() *TransportError {
	if r.status != StatusFailed {
		return nil
	}
	return r.err
}

// StartLoading moves to Loading. The current value is hidden but kept so a
// later failure can restore it.
func (r Resource[T]) StartLoading() Resource[T] {
	return Resource[T]{status: StatusLoading, value: r.value, hasValue: r.hasValue}
}

// Succeed replaces the value, whatever the previous state was.
func (r Resource[T]) Succeed(v T) Resource[T] {
	return Loaded(v)
}

// Fail records a failed request. A prior value, if any, stays exposed.
func (r Resource[T]) Fail(err *TransportError) Resource[T] {
	return Resource[T]{status: StatusFailed, value: r.value, hasValue: r.hasValue, err: err}
}

// Update applies fn to the held value, keeping the tag. Resources without a
// value are returned as they are.
func (r Resource[T]) Update(fn func(T) T) Resource[T] {
	if !r.hasValue {
		return r
	}
	r.value = fn(r.value)
	return r
}
