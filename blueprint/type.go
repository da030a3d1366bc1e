package blueprint

// Type represents a GraphQL type usage with modifiers.
// https://spec.graphql.org/October2021/#sec-Wrapping-Types
type Type interface {
	// BaseName is the innermost named type.
	BaseName() string
	String() string
	typeNode()
}

// NamedType is a reference to a named type, required when followed by `!`.
type NamedType struct {
	Name     string
	Required bool
}

func (t *NamedType) BaseName() string { return t.Name }

func (t *NamedType) String() string {
	if t.Required {
		return t.Name + "!"
	}
	return t.Name
}

func (*NamedType) typeNode() {}

// ListType wraps an element type, non-null when followed by `!`.
type ListType struct {
	OfType  Type
	NonNull bool
}

func (t *ListType) BaseName() string { return t.OfType.BaseName() }

func (t *ListType) String() string {
	if t.NonNull {
		return "[" + t.OfType.String() + "]!"
	}
	return "[" + t.OfType.String() + "]"
}

func (*ListType) typeNode() {}
