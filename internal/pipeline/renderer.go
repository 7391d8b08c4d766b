package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rkabir/floodlens/internal/model"
)

// Renderer renders article results as console blocks and JSON records
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing console blocks to out
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// RenderBlock writes the human-readable per-article report block
func (r *Renderer) RenderBlock(result *model.ArticleResult) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "Article: %s\n", result.Article)
	fmt.Fprintf(r.out, "%s\n", rule)
	fmt.Fprintf(r.out, "Disaster Type: %s\n", result.DisasterType)
	fmt.Fprintf(r.out, "\nEvent Date: %s\n", result.EventDate)
	fmt.Fprintf(r.out, "\nLocations:\n")
	fmt.Fprintf(r.out, "  Districts: %s\n", formatList(result.Locations.Districts))
	fmt.Fprintf(r.out, "  Upazilas:  %s\n", formatList(result.Locations.Upazilas))
	fmt.Fprintf(r.out, "  Uncertain: %s\n", formatList(result.Locations.Uncertain))
	if len(result.Locations.Conflicts) > 0 {
		fmt.Fprintf(r.out, "  Conflicts: %s\n", formatList(result.Locations.Conflicts))
	}
	fmt.Fprintf(r.out, "\nCasualties & Impact:\n")
	fmt.Fprintf(r.out, "  Deaths:   %s\n", formatList(result.Casualties.Deaths))
	fmt.Fprintf(r.out, "  Injured:  %s\n", formatList(result.Casualties.Injured))
	fmt.Fprintf(r.out, "  Affected: %s\n", formatList(result.Casualties.Affected))
	fmt.Fprintf(r.out, "%s\n\n", rule)
}

// RenderJSON writes the structured record to path
func (r *Renderer) RenderJSON(result *model.ArticleResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// formatList formats a name list for the console block
func formatList(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
