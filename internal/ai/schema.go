package ai

// Type names a JSON schema type understood by the providers.
type Type string

const (
	TypeString  Type = "STRING"
	TypeNumber  Type = "NUMBER"
	TypeInteger Type = "INTEGER"
	TypeBoolean Type = "BOOLEAN"
	TypeArray   Type = "ARRAY"
	TypeObject  Type = "OBJECT"
)

// Schema is the provider-neutral subset of OpenAPI schema used for
// structured output and tool parameters.
type Schema struct {
	Type        Type
	Description string
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// ArrayOf wraps an item schema in an array.
func ArrayOf(item *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: item}
}

// String is a shorthand for a described string property.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}
