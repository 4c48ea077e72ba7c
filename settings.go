package assist

import (
	"fmt"
	"io"
	"maps"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/iw2rmb/flourish-assist/annotation"
)

// Settings configures one editor instance.
type Settings struct {
	// EditorOptions are handed to the EditorFactory unchanged.
	EditorOptions map[string]any `toml:"editor_options"`

	// LintRuleset is merged per language ("javascript", "css", "html") over
	// DefaultLintRules.
	LintRuleset map[string]map[string]any `toml:"lint_ruleset"`

	// NoticeGrace is the refocus window after a completion session closes.
	// Zero means 500ms.
	NoticeGrace time.Duration `toml:"notice_grace"`

	OnTabNext     func() `toml:"-"`
	OnTabPrevious func() `toml:"-"`

	OnChangeLintingErrors func(errs annotation.ErrorSet, all, sorted []annotation.Annotation) `toml:"-"`
	OnUpdateErrorNotice   func(errs annotation.ErrorSet, inst *Instance)                      `toml:"-"`
}

// LintOptions is written to the editor under LintOption before any handler
// is wired.
type LintOptions struct {
	Rules map[string]map[string]any
}

// DefaultLintRules returns the base rule sets for the JavaScript, CSS, and
// HTML sub-linters.
func DefaultLintRules() map[string]map[string]any {
	return map[string]map[string]any{
		"javascript": {
			"esversion": 11,
			"undef":     true,
			"browser":   true,
		},
		"css": {
			"errors":               true,
			"known-properties":     true,
			"empty-rules":          false,
			"duplicate-properties": true,
		},
		"html": {
			"tagname-lowercase":        true,
			"attr-lowercase":           true,
			"tag-pair":                 true,
			"attr-no-duplication":      true,
			"spec-char-escape":         true,
			"doctype-first":            false,
			"id-unique":                true,
			"src-not-empty":            true,
			"attr-value-double-quotes": false,
		},
	}
}

// MergeLintRules returns base with each language's rules overlaid by
// overlay. Neither input is modified.
func MergeLintRules(base, overlay map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(base)+len(overlay))
	for lang, rules := range base {
		out[lang] = maps.Clone(rules)
	}
	for lang, rules := range overlay {
		merged := out[lang]
		if merged == nil {
			merged = make(map[string]any, len(rules))
		}
		maps.Copy(merged, rules)
		out[lang] = merged
	}
	return out
}

// DecodeSettings reads TOML settings from r. Callbacks are left unset.
func DecodeSettings(r io.Reader) (Settings, error) {
	var s Settings
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// LoadSettings reads TOML settings from path.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return DecodeSettings(f)
}
