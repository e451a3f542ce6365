// render.go - Result rendering
package form

import (
	"github.com/schema-scout/backend/internal/models"
	"github.com/schema-scout/backend/internal/schema"
)

// YAMLPlaceholder is rendered for the YAML format choice. The component
// never grew real client-side YAML serialization; the server's export
// endpoint provides it instead.
const YAMLPlaceholder = "# YAML output would be here"

// Render produces the display text for a result. JSON renders as
// 2-space indented, deterministically ordered JSON; YAML renders the
// placeholder. An absent result renders as empty.
func Render(result models.ProcessingResult, format OutputFormat) string {
	if result == nil {
		return ""
	}
	if format == FormatYAML {
		return YAMLPlaceholder
	}
	out, err := schema.MarshalJSON(result)
	if err != nil {
		return ""
	}
	return out
}
