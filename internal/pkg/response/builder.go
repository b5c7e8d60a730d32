package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Result prefixes. Results never set IsError; clients tell success from
// failure by the prefix only.
const (
	SuccessPrefix = "✅ "
	FailurePrefix = "❌ "
)

// Builder constructs formatted text responses for MCP tool results.
type Builder struct {
	sb strings.Builder
}

// New creates a new response Builder.
func New() *Builder {
	return &Builder{}
}

// Header writes a header line with optional formatting arguments.
func (b *Builder) Header(format string, args ...any) *Builder {
	b.sb.WriteString("═══ ")
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteString(" ═══\n")
	return b
}

// Success writes the leading success line.
func (b *Builder) Success(format string, args ...any) *Builder {
	b.sb.WriteString(SuccessPrefix)
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteByte('\n')
	return b
}

// KeyValue writes a key-value pair.
func (b *Builder) KeyValue(key string, value any) *Builder {
	fmt.Fprintf(&b.sb, "• %s: %v\n", key, value)
	return b
}

// Item writes a bulleted item.
func (b *Builder) Item(format string, args ...any) *Builder {
	b.sb.WriteString("  → ")
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteByte('\n')
	return b
}

// Line writes a plain line.
func (b *Builder) Line(format string, args ...any) *Builder {
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteByte('\n')
	return b
}

// Blank writes an empty line.
func (b *Builder) Blank() *Builder {
	b.sb.WriteByte('\n')
	return b
}

// Section writes a section header (smaller than Header).
func (b *Builder) Section(format string, args ...any) *Builder {
	b.sb.WriteString("── ")
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteString(" ──\n")
	return b
}

// JSON writes v as two-space indented JSON followed by a newline.
// Values that cannot be encoded are written with %v instead.
func (b *Builder) JSON(v any) *Builder {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(&b.sb, "%v\n", v)
		return b
	}
	b.sb.Write(data)
	b.sb.WriteByte('\n')
	return b
}

// Build returns the assembled string.
func (b *Builder) Build() string {
	return b.sb.String()
}

// TextResult wraps the builder's text in a CallToolResult.
func (b *Builder) TextResult() *mcp.CallToolResult {
	return Text(b.sb.String())
}

// Text returns a CallToolResult holding exactly one text block.
func Text(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// Failure returns a failure result: the message prefixed with FailurePrefix.
func Failure(msg string) *mcp.CallToolResult {
	return Text(FailurePrefix + msg)
}

// Failuref is Failure with formatting.
func Failuref(format string, args ...any) *mcp.CallToolResult {
	return Failure(fmt.Sprintf(format, args...))
}

// TextOf returns the concatenated text content of a result.
func TextOf(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

// IsFailure reports whether res is a failure result.
func IsFailure(res *mcp.CallToolResult) bool {
	return strings.HasPrefix(TextOf(res), FailurePrefix)
}
