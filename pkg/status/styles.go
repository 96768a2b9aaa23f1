package status

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color in styles.yaml.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is one named style in styles.yaml. Foreground and Background
// refer to entries of the colors table.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// StyleConfig is the whole styles.yaml document.
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Styles maps semantic names to lipgloss styles bound to one renderer.
type Styles struct {
	registry map[string]lipgloss.Style
	renderer *lipgloss.Renderer
}

// LoadStyles parses a styles document for renderer.
func LoadStyles(data []byte, renderer *lipgloss.Renderer) (*Styles, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	s := &Styles{registry: make(map[string]lipgloss.Style, len(cfg.Styles)), renderer: renderer}
	for name, def := range cfg.Styles {
		s.registry[name] = buildStyle(renderer, def, colors)
	}
	return s, nil
}

// DefaultStyles loads the embedded styles, falling back to unstyled text
// if they cannot be parsed.
func DefaultStyles(renderer *lipgloss.Renderer) *Styles {
	s, err := LoadStyles(embeddedStyles, renderer)
	if err != nil {
		return &Styles{registry: map[string]lipgloss.Style{}, renderer: renderer}
	}
	return s
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	return style
}

// Get returns the named style, or a plain one when unknown.
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return s.renderer.NewStyle()
}

// Render applies the named style to text.
func (s *Styles) Render(name, text string) string {
	return s.Get(name).Render(text)
}
