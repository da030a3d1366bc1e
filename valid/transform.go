package valid

// Transform rewrites a value of one shape into the same shape, reporting
// failures through Valid. Plan transforms (minify, enrich, prune) implement
// this interface and compose with Pipe.
type Transform[V any] interface {
	Transform(input V) Valid[V]
}

type pipe[V any] struct {
	first  Transform[V]
	second Transform[V]
}

// Pipe runs a then b. b only runs when a succeeded.
func Pipe[V any](a, b Transform[V]) Transform[V] {
	return pipe[V]{first: a, second: b}
}

func (p pipe[V]) Transform(input V) Valid[V] {
	return AndThen(p.first.Transform(input), func(v V) Valid[V] {
		return p.second.Transform(v)
	})
}

type identity[V any] struct{}

// Identity is the unit of Pipe.
func Identity[V any]() Transform[V] {
	return identity[V]{}
}

func (identity[V]) Transform(input V) Valid[V] {
	return Succeed(input)
}

type mapErr[V any] struct {
	inner Transform[V]
	f     func(string) string
}

// MapErr rewrites the cause messages produced by a transform.
func MapErr[V any](t Transform[V], f func(string) string) Transform[V] {
	return mapErr[V]{inner: t, f: f}
}

func (m mapErr[V]) Transform(input V) Valid[V] {
	return m.inner.Transform(input).MapErrMessages(m.f)
}
