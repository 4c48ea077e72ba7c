package assist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMergeLintRules_OverlayWinsAndInputsUntouched(t *testing.T) {
	base := map[string]map[string]any{
		"css":  {"errors": true, "empty-rules": false},
		"html": {"tag-pair": true},
	}
	overlay := map[string]map[string]any{
		"css":        {"empty-rules": true},
		"javascript": {"esversion": 6},
	}

	got := MergeLintRules(base, overlay)

	if v := got["css"]["empty-rules"]; v != true {
		t.Fatalf("css empty-rules: got %v, want true", v)
	}
	if v := got["css"]["errors"]; v != true {
		t.Fatalf("css errors: got %v, want true", v)
	}
	if v := got["javascript"]["esversion"]; v != 6 {
		t.Fatalf("javascript esversion: got %v, want 6", v)
	}
	if v := got["html"]["tag-pair"]; v != true {
		t.Fatalf("html tag-pair: got %v, want true", v)
	}
	if v := base["css"]["empty-rules"]; v != false {
		t.Fatalf("base mutated: got %v, want false", v)
	}
	if _, ok := overlay["html"]; ok {
		t.Fatalf("overlay mutated")
	}
}

func TestDefaultLintRules_CoversSubLinters(t *testing.T) {
	rules := DefaultLintRules()
	for _, lang := range []string{"javascript", "css", "html"} {
		if len(rules[lang]) == 0 {
			t.Fatalf("default rules for %s are empty", lang)
		}
	}
}

const settingsTOML = `
notice_grace = "750ms"

[editor_options]
mode = "htmlmixed"
lineNumbers = true

[lint_ruleset.css]
empty-rules = true

[lint_ruleset.javascript]
esversion = 6
`

func TestDecodeSettings(t *testing.T) {
	s, err := DecodeSettings(strings.NewReader(settingsTOML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, want := s.NoticeGrace, 750*time.Millisecond; got != want {
		t.Fatalf("notice grace: got %v, want %v", got, want)
	}
	if got := s.EditorOptions["mode"]; got != "htmlmixed" {
		t.Fatalf("editor mode: got %v, want htmlmixed", got)
	}
	if got := s.LintRuleset["css"]["empty-rules"]; got != true {
		t.Fatalf("css rule: got %v, want true", got)
	}
	if got := s.LintRuleset["javascript"]["esversion"]; got != int64(6) {
		t.Fatalf("js rule: got %v (%T), want int64 6", got, got)
	}
}

func TestDecodeSettings_InvalidTOML(t *testing.T) {
	if _, err := DecodeSettings(strings.NewReader("editor_options = [")); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assist.toml")
	if err := os.WriteFile(path, []byte(settingsTOML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.EditorOptions["lineNumbers"]; got != true {
		t.Fatalf("lineNumbers: got %v, want true", got)
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
