package cards

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Deltas outside this range are clamped during normalization.
const (
	minDelta = -10
	maxDelta = 10
)

var (
	errNoFrontMatter = errors.New("card library missing leading front matter")
	errUnterminated  = errors.New("card library front matter not terminated")
)

// rawCard is a card entry as it appears in the source, before coercion.
// Fields are loosely typed so a sloppy source degrades instead of failing.
type rawCard struct {
	ID        any   `yaml:"id"`
	Label     any   `yaml:"label"`
	Delta     any   `yaml:"delta"`
	Tags      []any `yaml:"tags"`
	Mitigates []any `yaml:"mitigates"`
}

type rawLibrary struct {
	Controls    []rawCard `yaml:"controls"`
	Missteps    []rawCard `yaml:"missteps"`
	Mitigations []rawCard `yaml:"mitigations"`
	CardSpaces  []any     `yaml:"cardSpaces"`
}

// Load reads a card library from a markdown file whose YAML front matter
// holds the catalog, normalizes it, and fills empty sections from the
// built-in defaults. On any read or parse failure it returns the default
// catalog together with the error, so callers can log and keep going.
func Load(path string, boardSize int) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultLibrary(), err
	}
	front, err := frontMatter(string(raw))
	if err != nil {
		return DefaultLibrary(), err
	}
	var parsed rawLibrary
	if err := yaml.Unmarshal([]byte(front), &parsed); err != nil {
		return DefaultLibrary(), fmt.Errorf("parse card library: %w", err)
	}
	return normalize(parsed, boardSize), nil
}

// frontMatter extracts the YAML document between the leading and closing
// "---" markers.
func frontMatter(content string) (string, error) {
	if !strings.HasPrefix(content, "---") {
		return "", errNoFrontMatter
	}
	rest := content[3:]
	end := strings.Index(rest, "---")
	if end == -1 {
		return "", errUnterminated
	}
	return strings.TrimSpace(rest[:end]), nil
}

func normalize(parsed rawLibrary, boardSize int) *Library {
	fallback := DefaultLibrary()

	controls := make([]Control, 0, len(parsed.Controls))
	for _, c := range parsed.Controls {
		controls = append(controls, Control{
			ID:    toString(c.ID),
			Label: toString(c.Label),
			Delta: clampDelta(c.Delta),
		})
	}
	missteps := make([]Misstep, 0, len(parsed.Missteps))
	for _, c := range parsed.Missteps {
		missteps = append(missteps, Misstep{
			ID:    toString(c.ID),
			Label: toString(c.Label),
			Delta: clampDelta(c.Delta),
			Tags:  toStrings(c.Tags),
		})
	}
	mitigations := make([]Mitigation, 0, len(parsed.Mitigations))
	for _, c := range parsed.Mitigations {
		mitigations = append(mitigations, Mitigation{
			ID:        toString(c.ID),
			Label:     toString(c.Label),
			Mitigates: toStrings(c.Mitigates),
		})
	}
	spaces := make([]int, 0, len(parsed.CardSpaces))
	for _, v := range parsed.CardSpaces {
		if n := toInt(v); n > 0 && n <= boardSize {
			spaces = append(spaces, n)
		}
	}

	if len(controls) == 0 {
		controls = fallback.Controls
	}
	if len(missteps) == 0 {
		missteps = fallback.Missteps
	}
	if len(mitigations) == 0 {
		mitigations = fallback.Mitigations
	}
	if len(spaces) == 0 {
		spaces = fallback.CardSpaces
	}
	return NewLibrary(controls, missteps, mitigations, spaces)
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func toStrings(vs []any) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s := toString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func clampDelta(v any) int {
	n := toInt(v)
	if n < minDelta {
		return minDelta
	}
	if n > maxDelta {
		return maxDelta
	}
	return n
}
