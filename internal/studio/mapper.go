package studio

import (
	"encoding/json"
	"strings"

	"github.com/cardspark/cardstudio-backend/internal/genai/template"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/prompt"
)

// Mapper turns a raw model reply into the display-keyed content map.
type Mapper struct {
	guide prompt.StyleGuide
	log   *logger.Logger
}

func NewMapper(guide prompt.StyleGuide, baseLog *logger.Logger) *Mapper {
	return &Mapper{guide: guide, log: baseLog.With("component", "ResponseMapper")}
}

// MapResponse parses raw as a flat JSON object of internal-platform-key to
// text. A malformed reply is replaced wholesale by the template synthesizer;
// requested platforms the model skipped are backfilled from it, so every
// requested platform always ends up with non-empty text. Keys are then
// rewritten to display names; unknown keys pass through untouched.
func (m *Mapper) MapResponse(raw string, platforms []string, fallback *template.Engine) map[string]string {
	parsed := parseFlatObject(raw)
	if parsed == nil {
		m.log.Warn("Model reply was not a flat JSON object, substituting template content", "raw_len", len(raw))
		parsed = fallback.Synthesize()
	} else {
		synthesized := map[string]string(nil)
		for _, p := range platforms {
			if strings.TrimSpace(parsed[p]) != "" {
				continue
			}
			if synthesized == nil {
				synthesized = fallback.Synthesize()
			}
			m.log.Warn("Model reply missing requested platform, backfilling from template", "platform", p)
			parsed[p] = synthesized[p]
		}
	}

	out := make(map[string]string, len(parsed))
	for key, text := range parsed {
		out[m.guide.DisplayName(key)] = text
	}
	return out
}

// parseFlatObject tolerates markdown code fences around the JSON body; any
// other shape returns nil.
func parseFlatObject(raw string) map[string]string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil
	}
	return parsed
}
