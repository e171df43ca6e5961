// Package guide owns the instruction text that teaches the model the
// save-command syntax, in every supported UI language, with optional
// per-language overrides loaded from a YAML file.
package guide

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marker prefixes every rendered guide so hosts can detect a guide that is
// already present in the context and avoid double injection.
const Marker = "[MEMKEEP-GUIDE v1]"

// SupportedLangs lists the languages with built-in templates.
var SupportedLangs = []string{"en", "de", "es", "fr", "pt", "it", "pl", "cs"}

// Library resolves guide text per language, preferring custom overrides.
type Library struct {
	overrides map[string]string
}

// NewLibrary returns a library with no overrides.
func NewLibrary() *Library {
	return &Library{overrides: map[string]string{}}
}

// LoadOverrides reads a YAML mapping of language code to guide text.
// A missing file is not an error; the built-in templates apply.
func LoadOverrides(path string) (*Library, error) {
	lib := NewLibrary()
	if path == "" {
		return lib, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return lib, fmt.Errorf("guide: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &lib.overrides); err != nil {
		return lib, fmt.Errorf("guide: parse %s: %w", path, err)
	}
	return lib, nil
}

// SetOverride replaces the guide text for a language. Empty text restores
// the built-in default.
func (l *Library) SetOverride(lang, text string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if strings.TrimSpace(text) == "" {
		delete(l.overrides, lang)
		return
	}
	l.overrides[lang] = strings.TrimSpace(text)
}

// Text returns the guide for the given language, marker included.
// Unknown languages fall back to English.
func (l *Library) Text(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	body := l.overrides[lang]
	if body == "" {
		body = defaultFor(lang)
	}
	return Marker + "\n" + body
}

func defaultFor(lang string) string {
	if txt, ok := defaults[lang]; ok {
		return txt
	}
	return defaults["en"]
}

// HasTrigger reports whether any trigger word occurs in the text. Triggers
// match on word boundaries; triggers that contain non-word characters fall
// back to a plain substring check.
func HasTrigger(text string, triggers []string) bool {
	low := strings.ToLower(text)
	for _, w := range triggers {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if wordishRe.MatchString(w) {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
			if re.MatchString(low) {
				return true
			}
		} else if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

var wordishRe = regexp.MustCompile(`^[\p{L}\p{N} ]+$`)

// DefaultTriggers are the words that suggest the user wants something
// remembered, so the guide should be (re)introduced.
var DefaultTriggers = []string{
	"merke", "merk dir", "erinnere", "speichere",
	"remember", "store", "save this", "note this",
}
