package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// Handler performs one tool operation on typed input and renders the text
// result. Returned errors become failure results.
type Handler[In any] func(ctx context.Context, c *services.Clients, in In) (string, error)

// Tool pairs a tool's descriptor with its handler. The input schema is
// inferred from the handler's input type, so the two cannot drift apart.
type Tool struct {
	Name        string
	Service     string
	Description string
	Annotations *mcp.ToolAnnotations
	InputSchema *jsonschema.Schema
	Icons       []mcp.Icon

	resolved *jsonschema.Resolved
	invoke   func(ctx context.Context, c *services.Clients, args map[string]any) (string, error)
}

// SchemaOption adjusts an inferred input schema.
type SchemaOption func(*jsonschema.Schema) error

// Default declares the value used when the caller omits prop.
func Default(prop string, v any) SchemaOption {
	return func(s *jsonschema.Schema) error {
		p, err := property(s, prop)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("default for %q: %w", prop, err)
		}
		p.Default = raw
		return nil
	}
}

// Enum restricts prop to the given values.
func Enum(prop string, values ...any) SchemaOption {
	return func(s *jsonschema.Schema) error {
		p, err := property(s, prop)
		if err != nil {
			return err
		}
		p.Enum = values
		return nil
	}
}

func property(s *jsonschema.Schema, prop string) (*jsonschema.Schema, error) {
	p, ok := s.Properties[prop]
	if !ok {
		return nil, fmt.Errorf("schema has no property %q", prop)
	}
	if slices.Contains(s.Required, prop) {
		return nil, fmt.Errorf("property %q is required and cannot be adjusted", prop)
	}
	return p, nil
}

// Define builds a Tool from a typed handler. It panics if the input type
// cannot be described as a JSON schema or an option names an unknown or
// required property; both are programming errors caught at startup.
func Define[In any](name, service, description string, ann *mcp.ToolAnnotations, h Handler[In], opts ...SchemaOption) *Tool {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		panic(fmt.Sprintf("tool %s: inferring input schema: %v", name, err))
	}
	for _, opt := range opts {
		if err := opt(schema); err != nil {
			panic(fmt.Sprintf("tool %s: %v", name, err))
		}
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("tool %s: resolving input schema: %v", name, err))
	}

	return &Tool{
		Name:        name,
		Service:     service,
		Description: description,
		Annotations: ann,
		InputSchema: schema,
		resolved:    resolved,
		invoke: func(ctx context.Context, c *services.Clients, args map[string]any) (string, error) {
			data, err := json.Marshal(args)
			if err != nil {
				return "", fmt.Errorf("encoding arguments: %w", err)
			}
			var in In
			if err := json.Unmarshal(data, &in); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			return h(ctx, c, in)
		},
	}
}

// Prepare decodes raw arguments, fills in schema defaults and validates the
// result against the input schema.
func (t *Tool) Prepare(raw json.RawMessage) (map[string]any, error) {
	args := make(map[string]any)
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}
	if err := t.resolved.ApplyDefaults(&args); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := t.resolved.Validate(&args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

// MCPTool returns the descriptor advertised during discovery.
func (t *Tool) MCPTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		Annotations: t.Annotations,
		InputSchema: t.InputSchema,
		Icons:       t.Icons,
	}
}

// ReadOnly reports whether the tool is annotated as read-only.
func (t *Tool) ReadOnly() bool {
	return t.Annotations != nil && t.Annotations.ReadOnlyHint
}
