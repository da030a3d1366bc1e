package queryplan

import "strconv"

// Lens is a composable JSON path with total Get and Set operations. Values
// are decoded JSON: map[string]any, []any and scalars.
type Lens interface {
	// Get projects the value at the lens location, nil when absent.
	Get(value any) any
	// Set writes other at the lens location and returns the updated value.
	Set(value, other any) any
	String() string
}

// FieldLens selects an object key.
type FieldLens struct {
	Name string
}

func (l FieldLens) Get(value any) any {
	if obj, ok := value.(map[string]any); ok {
		return obj[l.Name]
	}
	return nil
}

func (l FieldLens) Set(value, other any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		obj = make(map[string]any, 1)
	}
	updated := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		updated[k] = v
	}
	updated[l.Name] = other
	return updated
}

func (l FieldLens) String() string { return l.Name }

// IndexLens selects an array index.
type IndexLens struct {
	Index int
}

func (l IndexLens) Get(value any) any {
	if arr, ok := value.([]any); ok && l.Index >= 0 && l.Index < len(arr) {
		return arr[l.Index]
	}
	return nil
}

func (l IndexLens) Set(value, other any) any {
	arr, _ := value.([]any)
	if l.Index < 0 {
		return arr
	}
	length := len(arr)
	if l.Index+1 > length {
		length = l.Index + 1
	}
	updated := make([]any, length)
	copy(updated, arr)
	updated[l.Index] = other
	return updated
}

func (l IndexLens) String() string { return "[" + strconv.Itoa(l.Index) + "]" }

// CombineLens composes two lenses, the right one applying inside the left.
type CombineLens struct {
	First  Lens
	Second Lens
}

func (l CombineLens) Get(value any) any {
	return l.Second.Get(l.First.Get(value))
}

func (l CombineLens) Set(value, other any) any {
	inner := l.First.Get(value)
	return l.First.Set(value, l.Second.Set(inner, other))
}

func (l CombineLens) String() string { return l.First.String() + "." + l.Second.String() }

// ForEachLens applies a lens to every array element or object value.
type ForEachLens struct {
	Of Lens
}

func (l ForEachLens) Get(value any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = l.Of.Get(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = l.Of.Get(item)
		}
		return out
	}
	return nil
}

func (l ForEachLens) Set(value, other any) any {
	switch v := value.(type) {
	case []any:
		updated := make([]any, len(v))
		others, spread := other.([]any)
		for i, item := range v {
			if spread {
				if i < len(others) {
					updated[i] = l.Of.Set(item, others[i])
				} else {
					updated[i] = item
				}
			} else {
				updated[i] = l.Of.Set(item, other)
			}
		}
		return updated
	case map[string]any:
		updated := make(map[string]any, len(v))
		others, spread := other.(map[string]any)
		for k, item := range v {
			if spread {
				if o, ok := others[k]; ok {
					updated[k] = l.Of.Set(item, o)
				} else {
					updated[k] = item
				}
			} else {
				updated[k] = l.Of.Set(item, other)
			}
		}
		return updated
	}
	return value
}

func (l ForEachLens) String() string { return "@." + l.Of.String() }

// EmptyLens selects nothing on Get and replaces the whole value on Set.
type EmptyLens struct{}

func (EmptyLens) Get(any) any { return nil }

func (EmptyLens) Set(_, other any) any { return other }

func (EmptyLens) String() string { return "" }

// Path builds a Combine chain of field lenses from key segments.
func Path(segments ...string) Lens {
	if len(segments) == 0 {
		return EmptyLens{}
	}
	var lens Lens = FieldLens{Name: segments[0]}
	for _, segment := range segments[1:] {
		lens = CombineLens{First: lens, Second: FieldLens{Name: segment}}
	}
	return lens
}
