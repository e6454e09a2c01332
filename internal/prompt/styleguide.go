package prompt

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed styleguide.yaml
var styleGuideYAML []byte

// PlatformStyle is the per-platform rule set applied to generated content.
type PlatformStyle struct {
	DisplayName  string            `yaml:"display_name"`
	Tone         string            `yaml:"tone"`
	MaxLength    int               `yaml:"max_length"`
	EmojiDensity string            `yaml:"emoji_density"`
	HashtagCount string            `yaml:"hashtag_count"`
	ContentStyle string            `yaml:"content_style"`
	CTAStyle     string            `yaml:"cta_style"`
	Formats      map[string]string `yaml:"formats"`
}

// StyleGuide maps internal platform keys (linkedin, twitter, instagram,
// youtube) to their style rules. Loaded once at startup; treated as immutable.
type StyleGuide struct {
	Platforms map[string]PlatformStyle `yaml:"platforms"`
}

// LoadStyleGuide parses the embedded style-guide table.
func LoadStyleGuide() (StyleGuide, error) {
	var g StyleGuide
	if err := yaml.Unmarshal(styleGuideYAML, &g); err != nil {
		return StyleGuide{}, fmt.Errorf("parse style guide: %w", err)
	}
	if len(g.Platforms) == 0 {
		return StyleGuide{}, fmt.Errorf("style guide has no platforms")
	}
	return g, nil
}

// DisplayName maps an internal platform key to its human display name.
// Unknown keys pass through unchanged.
func (g StyleGuide) DisplayName(key string) string {
	if p, ok := g.Platforms[key]; ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return key
}
