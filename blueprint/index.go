package blueprint

// QueryField is what a (container type, field name) pair resolves to: either
// an output field together with its arguments by name, or an input field.
type QueryField interface {
	queryField()
}

// OutputField is an object or interface field.
type OutputField struct {
	Def  *FieldDefinition
	Args map[string]*InputFieldDefinition
}

func (OutputField) queryField() {}

// InputField is an input-object field or a field argument.
type InputField struct {
	Def *InputFieldDefinition
}

func (InputField) queryField() {}

type fieldKey struct {
	Type  string
	Field string
}

// Index provides O(1) lookups over a blueprint. It references the
// blueprint's definitions and is immutable once built.
type Index struct {
	types  map[string]Definition
	fields map[fieldKey]QueryField

	queryRoot        string
	mutationRoot     string
	subscriptionRoot string
}

// ToIndex flattens the blueprint into lookup tables.
func (b *Blueprint) ToIndex() *Index {
	idx := &Index{
		types:            make(map[string]Definition, len(b.Definitions)),
		fields:           make(map[fieldKey]QueryField),
		queryRoot:        b.Schema.Query,
		mutationRoot:     b.Schema.Mutation,
		subscriptionRoot: b.Schema.Subscription,
	}

	for _, def := range b.Definitions {
		idx.types[def.TypeName()] = def

		switch d := def.(type) {
		case *ObjectTypeDefinition:
			idx.indexFields(d.Name, d.Fields)
		case *InterfaceTypeDefinition:
			idx.indexFields(d.Name, d.Fields)
		case *InputObjectTypeDefinition:
			for _, field := range d.Fields {
				idx.fields[fieldKey{Type: d.Name, Field: field.Name}] = InputField{Def: field}
			}
		}
	}

	return idx
}

func (idx *Index) indexFields(typeName string, fields []*FieldDefinition) {
	for _, field := range fields {
		args := make(map[string]*InputFieldDefinition, len(field.Args))
		for _, arg := range field.Args {
			args[arg.Name] = arg
			// an argument never shadows a field of the same name
			key := fieldKey{Type: typeName, Field: arg.Name}
			if _, taken := idx.fields[key]; !taken {
				idx.fields[key] = InputField{Def: arg}
			}
		}
		idx.fields[fieldKey{Type: typeName, Field: field.Name}] = OutputField{Def: field, Args: args}
	}
}

// GetType returns the definition of a named type, nil when unknown.
func (idx *Index) GetType(name string) Definition {
	return idx.types[name]
}

// GetObjectTypeDefinition returns the object definition behind a type name,
// nil when the name is unknown or not an object type.
func (idx *Index) GetObjectTypeDefinition(name string) *ObjectTypeDefinition {
	if d, ok := idx.types[name].(*ObjectTypeDefinition); ok {
		return d
	}
	return nil
}

// GetField resolves a field inside a container type, nil when unknown.
func (idx *Index) GetField(container, name string) QueryField {
	return idx.fields[fieldKey{Type: container, Field: name}]
}

// GetQuery returns the query root type name, empty when undefined.
func (idx *Index) GetQuery() string { return idx.queryRoot }

// GetMutation returns the mutation root type name, empty when undefined.
func (idx *Index) GetMutation() string { return idx.mutationRoot }

// GetSubscription returns the subscription root type name, empty when undefined.
func (idx *Index) GetSubscription() string { return idx.subscriptionRoot }
