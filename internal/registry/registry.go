package registry

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/config"
)

// toolNameRE enforces SEP-986: tool names must match ^[a-zA-Z0-9_-]{1,64}$
var toolNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateToolName checks that a tool name complies with SEP-986.
func ValidateToolName(name string) error {
	if !toolNameRE.MatchString(name) {
		return fmt.Errorf("tool name %q does not match SEP-986 pattern ^[a-zA-Z0-9_-]{1,64}$", name)
	}
	return nil
}

// ShouldIncludeTool checks whether a tool should be exposed under the
// current tier, service and mode settings.
func ShouldIncludeTool(t *Tool, cfg *config.Config, tierMap map[string]config.ToolInfo) bool {
	info, ok := tierMap[t.Name]
	if !ok {
		slog.Warn("tool not found in tier config, skipping", "tool", t.Name)
		return false
	}

	if config.TierLevel(info.Tier) > config.TierLevel(cfg.ToolTier) {
		return false
	}

	if len(cfg.EnabledServices) > 0 && !slices.Contains(cfg.EnabledServices, info.Service) {
		return false
	}

	// Read-only mode exposes only tools that never modify anything.
	if cfg.ReadOnly && !t.ReadOnly() {
		return false
	}

	return true
}

// Filter returns the tools selected by cfg, preserving catalog order.
func Filter(tools []*Tool, cfg *config.Config, tierMap map[string]config.ToolInfo) []*Tool {
	var out []*Tool
	for _, t := range tools {
		if ShouldIncludeTool(t, cfg, tierMap) {
			out = append(out, t)
		}
	}
	slog.Info("selected tools",
		"tier", cfg.ToolTier,
		"services", cfg.EnabledServices,
		"readOnly", cfg.ReadOnly,
		"count", len(out),
		"catalog", len(tools),
	)
	return out
}

// Register adds every dispatcher tool to the server. All calls funnel
// through the dispatcher, which applies defaults and validation itself.
func Register(server *mcp.Server, d *Dispatcher) {
	for _, t := range d.Tools() {
		server.AddTool(t.MCPTool(), d.Handle)
	}
}
