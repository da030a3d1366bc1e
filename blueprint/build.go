package blueprint

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/gqlfed/federation-planner/valid"
)

const joinGraphEnumName = "join__Graph"

// Parse builds a blueprint from supergraph SDL text. Syntax errors are
// surfaced unchanged; semantic problems (duplicate definitions, malformed
// join directives, missing join__Graph enumeration) accumulate so one parse
// reports everything that is wrong with the document.
func Parse(sdl string) valid.Valid[*Blueprint] {
	doc, err := parser.ParseSchema(&ast.Source{Name: "supergraph.graphql", Input: sdl})
	if err != nil {
		return valid.Fail[*Blueprint](err.Error()).Trace("blueprint")
	}
	return parseDocument(doc).Trace("blueprint")
}

func parseDocument(doc *ast.SchemaDocument) valid.Valid[*Blueprint] {
	schemaV := parseSchemaDefinitions(append(append(ast.SchemaDefinitionList{}, doc.Schema...), doc.SchemaExtension...))

	seenTypes := make(map[string]bool, len(doc.Definitions))
	defValids := make([]valid.Valid[Definition], 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		if seenTypes[def.Name] {
			defValids = append(defValids, valid.Fail[Definition](fmt.Sprintf("type `%s` has been already defined", def.Name)))
			continue
		}
		seenTypes[def.Name] = true
		defValids = append(defValids, parseTypeDefinition(def))
	}
	defsV := valid.Fuse(defValids...)

	seenDirectives := make(map[string]bool, len(doc.Directives))
	dirValids := make([]valid.Valid[DirectiveDefinition], 0, len(doc.Directives))
	for _, def := range doc.Directives {
		if seenDirectives[def.Name] {
			dirValids = append(dirValids, valid.Fail[DirectiveDefinition](fmt.Sprintf("directive `%s` has been already defined", def.Name)))
			continue
		}
		seenDirectives[def.Name] = true
		dirValids = append(dirValids, parseDirectiveDefinition(def))
	}
	dirsV := valid.Fuse(dirValids...)

	// The registry derives from the parsed definitions; when those already
	// failed their causes must not be reported twice.
	joinGraphsV := valid.Succeed[[]JoinGraph](nil)
	if defs, derr := defsV.ToResult(); derr == nil {
		joinGraphsV = parseJoinGraphs(defs)
	}

	type schemaAndDefs struct {
		schema SchemaDefinition
		defs   []Definition
	}
	type dirsAndGraphs struct {
		dirs   []DirectiveDefinition
		graphs []JoinGraph
	}

	return valid.Zip(
		valid.Zip(schemaV, defsV, func(schema SchemaDefinition, defs []Definition) schemaAndDefs {
			return schemaAndDefs{schema: schema, defs: defs}
		}),
		valid.Zip(dirsV, joinGraphsV, func(dirs []DirectiveDefinition, graphs []JoinGraph) dirsAndGraphs {
			return dirsAndGraphs{dirs: dirs, graphs: graphs}
		}),
		func(a schemaAndDefs, b dirsAndGraphs) *Blueprint {
			return &Blueprint{
				Definitions: a.defs,
				Schema:      a.schema,
				Directives:  b.dirs,
				JoinGraphs:  b.graphs,
			}
		},
	)
}

// parseSchemaDefinitions folds the schema definitions and extensions into a
// single SchemaDefinition. The first non-empty root name wins; directives
// from every definition are appended in order.
func parseSchemaDefinitions(defs ast.SchemaDefinitionList) valid.Valid[SchemaDefinition] {
	result := valid.Succeed(SchemaDefinition{})
	for _, def := range defs {
		node := def
		result = valid.Zip(result, parseDirectives(node.Directives), func(schema SchemaDefinition, directives []Directive) SchemaDefinition {
			for _, op := range node.OperationTypes {
				switch op.Operation {
				case ast.Query:
					if schema.Query == "" {
						schema.Query = op.Type
					}
				case ast.Mutation:
					if schema.Mutation == "" {
						schema.Mutation = op.Type
					}
				case ast.Subscription:
					if schema.Subscription == "" {
						schema.Subscription = op.Type
					}
				}
			}
			schema.Directives = append(schema.Directives, directives...)
			return schema
		})
	}
	return result
}

func parseTypeDefinition(def *ast.Definition) valid.Valid[Definition] {
	name := def.Name
	description := def.Description
	directivesV := parseDirectives(def.Directives)

	switch def.Kind {
	case ast.Scalar:
		return valid.AndThen(directivesV, func(directives []Directive) valid.Valid[Definition] {
			return valid.Map(extractJoins[JoinType](directives, "join__type", name), func(joinTypes []JoinType) Definition {
				return &ScalarTypeDefinition{Name: name, Description: description, Directives: directives, JoinTypes: joinTypes}
			})
		})

	case ast.Object:
		fieldsV := valid.FromIter(def.Fields, parseFieldDefinition)
		return valid.AndThen(valid.Zip(directivesV, fieldsV, zipDirsFields), func(p dirsFields) valid.Valid[Definition] {
			return valid.Zip(
				extractJoins[JoinType](p.dirs, "join__type", name),
				extractJoins[JoinImplements](p.dirs, "join__implements", name),
				func(joinTypes []JoinType, joinImplements []JoinImplements) Definition {
					return &ObjectTypeDefinition{
						Name:           name,
						Description:    description,
						Fields:         p.fields,
						Implements:     def.Interfaces,
						Directives:     p.dirs,
						JoinTypes:      joinTypes,
						JoinImplements: joinImplements,
					}
				},
			)
		})

	case ast.Interface:
		fieldsV := valid.FromIter(def.Fields, parseFieldDefinition)
		return valid.AndThen(valid.Zip(directivesV, fieldsV, zipDirsFields), func(p dirsFields) valid.Valid[Definition] {
			return valid.Zip(
				extractJoins[JoinType](p.dirs, "join__type", name),
				extractJoins[JoinImplements](p.dirs, "join__implements", name),
				func(joinTypes []JoinType, joinImplements []JoinImplements) Definition {
					return &InterfaceTypeDefinition{
						Name:           name,
						Description:    description,
						Fields:         p.fields,
						Directives:     p.dirs,
						JoinTypes:      joinTypes,
						JoinImplements: joinImplements,
					}
				},
			)
		})

	case ast.Union:
		return valid.AndThen(directivesV, func(directives []Directive) valid.Valid[Definition] {
			return valid.Zip(
				extractJoins[JoinType](directives, "join__type", name),
				extractJoins[JoinUnion](directives, "join__unionMember", name),
				func(joinTypes []JoinType, joinUnions []JoinUnion) Definition {
					return &UnionTypeDefinition{
						Name:        name,
						Description: description,
						Directives:  directives,
						Types:       def.Types,
						JoinTypes:   joinTypes,
						JoinUnions:  joinUnions,
					}
				},
			)
		})

	case ast.Enum:
		valuesV := valid.FromIter(def.EnumValues, parseEnumValue)
		return valid.AndThen(valid.Zip(directivesV, valuesV, func(dirs []Directive, values []*EnumValueDefinition) dirsValues {
			return dirsValues{dirs: dirs, values: values}
		}), func(p dirsValues) valid.Valid[Definition] {
			return valid.Map(extractJoins[JoinType](p.dirs, "join__type", name), func(joinTypes []JoinType) Definition {
				return &EnumTypeDefinition{
					Name:        name,
					Description: description,
					Directives:  p.dirs,
					Values:      p.values,
					JoinTypes:   joinTypes,
				}
			})
		})

	case ast.InputObject:
		fieldsV := valid.FromIter(def.Fields, parseInputObjectField)
		return valid.AndThen(valid.Zip(directivesV, fieldsV, func(dirs []Directive, fields []*InputFieldDefinition) dirsInputFields {
			return dirsInputFields{dirs: dirs, fields: fields}
		}), func(p dirsInputFields) valid.Valid[Definition] {
			return valid.Map(extractJoins[JoinType](p.dirs, "join__type", name), func(joinTypes []JoinType) Definition {
				return &InputObjectTypeDefinition{
					Name:        name,
					Description: description,
					Fields:      p.fields,
					Directives:  p.dirs,
					JoinTypes:   joinTypes,
				}
			})
		})
	}

	return valid.Fail[Definition](fmt.Sprintf("unsupported definition kind `%s` for type `%s`", def.Kind, name))
}

type argsDirs struct {
	args []*InputFieldDefinition
	dirs []Directive
}

type dirsFields struct {
	dirs   []Directive
	fields []*FieldDefinition
}

func zipDirsFields(dirs []Directive, fields []*FieldDefinition) dirsFields {
	return dirsFields{dirs: dirs, fields: fields}
}

type dirsValues struct {
	dirs   []Directive
	values []*EnumValueDefinition
}

type dirsInputFields struct {
	dirs   []Directive
	fields []*InputFieldDefinition
}

func parseFieldDefinition(node *ast.FieldDefinition) valid.Valid[*FieldDefinition] {
	argsV := valid.FromIter(node.Arguments, parseArgumentDefinition)
	directivesV := parseDirectives(node.Directives)

	return valid.AndThen(valid.Zip(argsV, directivesV, func(args []*InputFieldDefinition, dirs []Directive) argsDirs {
		return argsDirs{args: args, dirs: dirs}
	}), func(p argsDirs) valid.Valid[*FieldDefinition] {
		return valid.Map(extractJoins[JoinField](p.dirs, "join__field", node.Name), func(joinFields []JoinField) *FieldDefinition {
			return &FieldDefinition{
				Name:        node.Name,
				Description: node.Description,
				Args:        p.args,
				OfType:      convertType(node.Type),
				Directives:  p.dirs,
				JoinFields:  joinFields,
			}
		})
	})
}

// parseInputObjectField converts an input-object field, which the syntactic
// document carries as a field definition without arguments.
func parseInputObjectField(node *ast.FieldDefinition) valid.Valid[*InputFieldDefinition] {
	defaultV := parseOptionalValue(node.DefaultValue)
	directivesV := parseDirectives(node.Directives)

	return valid.AndThen(valid.Zip(defaultV, directivesV, func(def any, dirs []Directive) inputFieldParts {
		return inputFieldParts{defaultValue: def, dirs: dirs}
	}), func(p inputFieldParts) valid.Valid[*InputFieldDefinition] {
		return valid.Map(extractJoins[JoinField](p.dirs, "join__field", node.Name), func(joinFields []JoinField) *InputFieldDefinition {
			return &InputFieldDefinition{
				Name:         node.Name,
				Description:  node.Description,
				OfType:       convertType(node.Type),
				DefaultValue: p.defaultValue,
				Directives:   p.dirs,
				JoinFields:   joinFields,
			}
		})
	})
}

func parseArgumentDefinition(node *ast.ArgumentDefinition) valid.Valid[*InputFieldDefinition] {
	defaultV := parseOptionalValue(node.DefaultValue)
	directivesV := parseDirectives(node.Directives)

	return valid.AndThen(valid.Zip(defaultV, directivesV, func(def any, dirs []Directive) inputFieldParts {
		return inputFieldParts{defaultValue: def, dirs: dirs}
	}), func(p inputFieldParts) valid.Valid[*InputFieldDefinition] {
		return valid.Map(extractJoins[JoinField](p.dirs, "join__field", node.Name), func(joinFields []JoinField) *InputFieldDefinition {
			return &InputFieldDefinition{
				Name:         node.Name,
				Description:  node.Description,
				OfType:       convertType(node.Type),
				DefaultValue: p.defaultValue,
				Directives:   p.dirs,
				JoinFields:   joinFields,
			}
		})
	})
}

type inputFieldParts struct {
	defaultValue any
	dirs         []Directive
}

func parseEnumValue(node *ast.EnumValueDefinition) valid.Valid[*EnumValueDefinition] {
	return valid.AndThen(parseDirectives(node.Directives), func(directives []Directive) valid.Valid[*EnumValueDefinition] {
		return valid.Map(extractJoins[JoinEnum](directives, "join__enumValue", node.Name), func(joinEnums []JoinEnum) *EnumValueDefinition {
			return &EnumValueDefinition{
				Name:        node.Name,
				Description: node.Description,
				Directives:  directives,
				JoinEnums:   joinEnums,
			}
		})
	})
}

func parseDirectiveDefinition(node *ast.DirectiveDefinition) valid.Valid[DirectiveDefinition] {
	locations := make([]string, 0, len(node.Locations))
	for _, loc := range node.Locations {
		locations = append(locations, string(loc))
	}

	return valid.Map(valid.FromIter(node.Arguments, parseArgumentDefinition), func(args []*InputFieldDefinition) DirectiveDefinition {
		return DirectiveDefinition{
			Name:        node.Name,
			Description: node.Description,
			Arguments:   args,
			Repeatable:  node.IsRepeatable,
			Locations:   locations,
		}
	})
}

func parseDirectives(nodes ast.DirectiveList) valid.Valid[[]Directive] {
	return valid.FromIter(nodes, func(node *ast.Directive) valid.Valid[Directive] {
		return valid.Map(parseArguments(node), func(arguments map[string]any) Directive {
			return Directive{Name: node.Name, Arguments: arguments}
		})
	})
}

func parseArguments(node *ast.Directive) valid.Valid[map[string]any] {
	arguments := make(map[string]any, len(node.Arguments))
	causes := make([]valid.Cause, 0)
	for _, arg := range node.Arguments {
		value, err := arg.Value.Value(nil)
		if err != nil {
			causes = append(causes, valid.NewCause(fmt.Sprintf("could not convert value of argument `%s` on `@%s`: %v", arg.Name, node.Name, err)))
			continue
		}
		arguments[arg.Name] = value
	}
	if len(causes) > 0 {
		return valid.FailCauses[map[string]any](causes)
	}
	return valid.Succeed(arguments)
}

func parseOptionalValue(node *ast.Value) valid.Valid[any] {
	if node == nil {
		return valid.Succeed[any](nil)
	}
	value, err := node.Value(nil)
	if err != nil {
		return valid.Fail[any](fmt.Sprintf("could not convert default value: %v", err))
	}
	return valid.Succeed(value)
}

func parseJoinGraphs(definitions []Definition) valid.Valid[[]JoinGraph] {
	var joinGraphEnum *EnumTypeDefinition
	for _, def := range definitions {
		if enum, ok := def.(*EnumTypeDefinition); ok && enum.Name == joinGraphEnumName {
			joinGraphEnum = enum
			break
		}
	}
	if joinGraphEnum == nil {
		return valid.Fail[[]JoinGraph]("The `join__Graph` enumeration is missing")
	}

	return valid.Map(valid.FromIter(joinGraphEnum.Values, func(value *EnumValueDefinition) valid.Valid[[]JoinGraph] {
		return valid.Map(extractJoins[JoinGraph](value.Directives, "join__graph", joinGraphEnumName+"."+value.Name), func(graphs []JoinGraph) []JoinGraph {
			for i := range graphs {
				graphs[i].Graph = Graph(value.Name)
			}
			return graphs
		})
	}), func(groups [][]JoinGraph) []JoinGraph {
		var flat []JoinGraph
		for _, group := range groups {
			flat = append(flat, group...)
		}
		return flat
	})
}

func convertType(node *ast.Type) Type {
	if node == nil {
		return &NamedType{Name: ""}
	}
	if node.NamedType != "" {
		return &NamedType{Name: node.NamedType, Required: node.NonNull}
	}
	return &ListType{OfType: convertType(node.Elem), NonNull: node.NonNull}
}
