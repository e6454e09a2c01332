package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

type ExportFormat string

const (
	FormatText     ExportFormat = "text"
	FormatJSON     ExportFormat = "json"
	FormatDocument ExportFormat = "document"
)

// DocumentRenderer produces print-ready documents. Rendering itself lives in
// an external service; this interface keeps document export routable through
// the same Export call as text and json.
type DocumentRenderer interface {
	Render(ctx context.Context, c *types.GeneratedContent) (string, error)
}

// Exporter turns a content bundle into an exportable string. The display
// function maps internal platform keys to the human names the content map is
// keyed by.
type Exporter struct {
	display  func(string) string
	renderer DocumentRenderer
}

func NewExporter(display func(string) string, renderer DocumentRenderer) *Exporter {
	if display == nil {
		display = func(s string) string { return s }
	}
	return &Exporter{display: display, renderer: renderer}
}

func (e *Exporter) Export(ctx context.Context, c *types.GeneratedContent, format ExportFormat) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: content required", pkgerrors.ErrInvalidArgument)
	}
	switch format {
	case FormatText:
		return e.exportText(c), nil
	case FormatJSON:
		b, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	case FormatDocument:
		if e.renderer == nil {
			return "", fmt.Errorf("%w: no document renderer configured", pkgerrors.ErrInvalidArgument)
		}
		return e.renderer.Render(ctx, c)
	default:
		return "", fmt.Errorf("%w: unknown export format %q", pkgerrors.ErrInvalidArgument, format)
	}
}

func (e *Exporter) exportText(c *types.GeneratedContent) string {
	var b strings.Builder

	b.WriteString("GENERATED CONTENT\n")
	b.WriteString("=================\n")
	fmt.Fprintf(&b, "Generated: %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	names := make([]string, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		names = append(names, e.display(p))
	}
	fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(names, ", "))
	if c.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", c.Tone)
	}
	b.WriteString("\n")

	contentMap := c.ContentByPlatform.Data()
	for _, p := range c.Platforms {
		name := e.display(p)
		text, ok := contentMap[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n\n", name, text)
	}

	refs := c.References.Data()
	if len(refs) > 0 {
		b.WriteString("References:\n")
		for _, r := range refs {
			fmt.Fprintf(&b, "- %s (%s, %s)\n", r.Text, r.CardName, r.Source)
		}
	}
	return b.String()
}
