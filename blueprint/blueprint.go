// Package blueprint turns a supergraph SDL document into a typed, indexable
// intermediate representation. The federation join__* directives are
// materialised as first-class records on every definition so that the query
// planner never has to re-read raw directive arguments.
package blueprint

// Blueprint is the typed representation of one supergraph schema version.
// It is built once and treated as immutable afterwards.
type Blueprint struct {
	Definitions []Definition
	Schema      SchemaDefinition
	Directives  []DirectiveDefinition
	JoinGraphs  []JoinGraph
}

// Graph returns the registry entry for a graph identifier, nil when the
// identifier is not part of the join__Graph enumeration.
func (b *Blueprint) Graph(id Graph) *JoinGraph {
	for i := range b.JoinGraphs {
		if b.JoinGraphs[i].Graph == id {
			return &b.JoinGraphs[i]
		}
	}
	return nil
}

// SchemaDefinition holds the root operation type names and the directives
// attached to the schema definition itself.
type SchemaDefinition struct {
	Query        string
	Mutation     string
	Subscription string
	Directives   []Directive
}

// Definition is one named type definition of the supergraph.
type Definition interface {
	TypeName() string
	definition()
}

// ObjectTypeDefinition is an object type with its join metadata.
type ObjectTypeDefinition struct {
	Name           string
	Description    string
	Fields         []*FieldDefinition
	Implements     []string
	Directives     []Directive
	JoinTypes      []JoinType
	JoinImplements []JoinImplements
}

func (d *ObjectTypeDefinition) TypeName() string { return d.Name }
func (*ObjectTypeDefinition) definition()        {}

// Field returns the field definition with the given name, nil when absent.
func (d *ObjectTypeDefinition) Field(name string) *FieldDefinition {
	for _, field := range d.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// InterfaceTypeDefinition is an interface type with its join metadata.
type InterfaceTypeDefinition struct {
	Name           string
	Description    string
	Fields         []*FieldDefinition
	Directives     []Directive
	JoinTypes      []JoinType
	JoinImplements []JoinImplements
}

func (d *InterfaceTypeDefinition) TypeName() string { return d.Name }
func (*InterfaceTypeDefinition) definition()        {}

// InputObjectTypeDefinition is an input object type.
type InputObjectTypeDefinition struct {
	Name        string
	Description string
	Fields      []*InputFieldDefinition
	Directives  []Directive
	JoinTypes   []JoinType
}

func (d *InputObjectTypeDefinition) TypeName() string { return d.Name }
func (*InputObjectTypeDefinition) definition()        {}

// ScalarTypeDefinition is a scalar type.
type ScalarTypeDefinition struct {
	Name        string
	Description string
	Directives  []Directive
	JoinTypes   []JoinType
}

func (d *ScalarTypeDefinition) TypeName() string { return d.Name }
func (*ScalarTypeDefinition) definition()        {}

// EnumTypeDefinition is an enum type with its values.
type EnumTypeDefinition struct {
	Name        string
	Description string
	Directives  []Directive
	Values      []*EnumValueDefinition
	JoinTypes   []JoinType
}

func (d *EnumTypeDefinition) TypeName() string { return d.Name }
func (*EnumTypeDefinition) definition()        {}

// EnumValueDefinition is a single enum value.
type EnumValueDefinition struct {
	Name        string
	Description string
	Directives  []Directive
	JoinEnums   []JoinEnum
}

// UnionTypeDefinition is a union type with its member type names.
type UnionTypeDefinition struct {
	Name        string
	Description string
	Directives  []Directive
	Types       []string
	JoinTypes   []JoinType
	JoinUnions  []JoinUnion
}

func (d *UnionTypeDefinition) TypeName() string { return d.Name }
func (*UnionTypeDefinition) definition()        {}

// FieldDefinition is an output field of an object or interface type.
type FieldDefinition struct {
	Name        string
	Description string
	Args        []*InputFieldDefinition
	OfType      Type
	Directives  []Directive
	JoinFields  []JoinField
}

// InputFieldDefinition is an input field or a field argument.
type InputFieldDefinition struct {
	Name         string
	Description  string
	OfType       Type
	DefaultValue any
	Directives   []Directive
	JoinFields   []JoinField
}

// Directive is a raw directive application. Arguments are preserved as a
// JSON object so join records can be re-derived from them at any time.
type Directive struct {
	Name      string
	Arguments map[string]any
}

// DirectiveDefinition is a directive declared by the supergraph document.
type DirectiveDefinition struct {
	Name        string
	Description string
	Arguments   []*InputFieldDefinition
	Repeatable  bool
	Locations   []string
}
