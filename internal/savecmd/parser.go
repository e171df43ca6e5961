// Package savecmd extracts "save:" directives from model or user text and
// normalizes them into memory record drafts. Parsing is pure: the caller
// decides whether a draft gets persisted.
package savecmd

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/jeanpaul/memkeep/internal/store"
)

// Marker introduces a save command. Matching is case-sensitive.
const Marker = "save:"

// SkipReason explains why a scanned command produced no usable draft.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipEmpty    SkipReason = "empty"
	SkipTooShort SkipReason = "too short"
	SkipFiltered SkipReason = "filtered"
)

// Command is one save: occurrence. Start/End span the whole directive,
// including trailing bracket flags, so the host can scrub it from the
// output whether or not the draft was accepted.
type Command struct {
	Draft store.Draft
	Start int
	End   int
	Skip  SkipReason
}

// Valid reports whether the command carries a persistable draft.
func (c Command) Valid() bool { return c.Skip == SkipNone }

// DefaultBanPhrases filters drafts that are meta-chatter about saving
// rather than content worth keeping.
var DefaultBanPhrases = []string{
	"we need to ask", "we will ask", "we cannot because",
	"after we know what to remember", "so not",
}

// Scanner holds the validation settings applied to every draft.
type Scanner struct {
	MinLength  int
	BanPhrases []string
}

var (
	kwSplitRe  = regexp.MustCompile(`[,\n]+`)
	wsRe       = regexp.MustCompile(`\s+`)
	kwFlagRe   = regexp.MustCompile(`(?i)\[\s*keywords\s*=\s*([^\]]+)\]`)
	alwFlagRe  = regexp.MustCompile(`(?i)\[\s*always\s*=\s*([^\]]+)\]`)
	flagTailRe = regexp.MustCompile(`(?i)^(\s*\[(?:keywords|always)\s*=\s*[^\]]+\])+`)
	sentEndRe  = regexp.MustCompile(`[.!?…]$`)
	trueValues = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "on": true}
)

// SplitKeywords splits a comma- or newline-separated keyword string into a
// normalized set.
func SplitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return store.NormalizeKeywords(kwSplitRe.Split(s, -1))
}

// ParseBool accepts the loose truthy spellings models tend to emit.
func ParseBool(s string) bool {
	return trueValues[strings.ToLower(strings.TrimSpace(s))]
}

// Scan finds every save command in text, in order of appearance. Each
// occurrence is parsed independently.
func (sc *Scanner) Scan(text string) []Command {
	var cmds []Command
	for i := 0; i < len(text); {
		idx := strings.Index(text[i:], Marker)
		if idx < 0 {
			break
		}
		start := i + idx
		if start > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:start])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				i = start + len(Marker)
				continue
			}
		}
		cmd := sc.parseAt(text, start)
		cmds = append(cmds, cmd)
		i = cmd.End
	}
	return cmds
}

// parseAt parses one directive beginning at the marker offset.
func (sc *Scanner) parseAt(text string, start int) Command {
	body := start + len(Marker)
	for body < len(text) && (text[body] == ' ' || text[body] == '\t') {
		body++
	}

	var raw string
	end := body
	switch {
	case body < len(text) && text[body] == '{':
		if stop, ok := matchBrace(text, body); ok {
			raw = text[body:stop]
			end = stop
		} else {
			raw, end = restOfLine(text, body)
		}
	case body < len(text) && text[body] == '(':
		if stop, ok := matchParen(text, body); ok {
			raw = text[body+1 : stop-1]
			end = stop
		} else {
			raw, end = restOfLine(text, body)
		}
	default:
		raw, end = restOfLine(text, body)
	}

	// Trailing [keywords=...] [always=...] flags belong to the directive.
	// In the bare line form they sit inside the payload itself.
	var tailKw string
	tailAlw := false
	hasTailAlw := false
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		if km := kwFlagRe.FindStringSubmatch(raw); km != nil {
			tailKw = strings.TrimSpace(km[1])
			raw = kwFlagRe.ReplaceAllString(raw, "")
		}
		if am := alwFlagRe.FindStringSubmatch(raw); am != nil {
			tailAlw = ParseBool(am[1])
			hasTailAlw = true
			raw = alwFlagRe.ReplaceAllString(raw, "")
		}
	}
	if m := flagTailRe.FindString(text[end:]); m != "" {
		if km := kwFlagRe.FindStringSubmatch(m); km != nil {
			tailKw = strings.TrimSpace(km[1])
		}
		if am := alwFlagRe.FindStringSubmatch(m); am != nil {
			tailAlw = ParseBool(am[1])
			hasTailAlw = true
		}
		end += len(m)
	}

	draft := parsePayload(raw)
	if tailKw != "" && len(draft.Keywords) == 0 {
		draft.Keywords = SplitKeywords(tailKw)
	}
	if hasTailAlw && !draft.Always {
		draft.Always = tailAlw
	}

	cmd := Command{Draft: draft, Start: start, End: end}
	cmd.Skip = sc.check(draft.Text)
	return cmd
}

// parsePayload tries the three accepted forms in order: JSON object,
// key=value list, then bare text.
func parsePayload(raw string) store.Draft {
	raw = strings.TrimSpace(html.UnescapeString(raw))

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") && gjson.Valid(raw) {
		if mem := gjson.Get(raw, "memory"); mem.Exists() && strings.TrimSpace(mem.String()) != "" {
			return store.Draft{
				Text:     normalizeText(mem.String()),
				Keywords: jsonKeywords(gjson.Get(raw, "keywords")),
				Always:   gjson.Get(raw, "always").Bool(),
			}
		}
	}

	if d, ok := parseKV(raw); ok {
		return d
	}

	// Bare short form: the whole payload is the memory text.
	return store.Draft{Text: normalizeText(raw)}
}

// jsonKeywords accepts both the documented comma-separated string and the
// array form models sometimes produce anyway.
func jsonKeywords(res gjson.Result) []string {
	if res.IsArray() {
		var kws []string
		for _, el := range res.Array() {
			kws = append(kws, el.String())
		}
		return store.NormalizeKeywords(kws)
	}
	return SplitKeywords(res.String())
}

// parseKV parses "memory=..., keywords=kw1,kw2, always=true" in any order.
// A comma segment without '=' folds into the value of the preceding key, so
// comma-separated keyword lists survive the split.
func parseKV(raw string) (store.Draft, bool) {
	if !strings.Contains(raw, "=") {
		return store.Draft{}, false
	}

	var pairs []string
	for _, seg := range strings.Split(raw, ",") {
		if strings.Contains(seg, "=") || len(pairs) == 0 {
			pairs = append(pairs, seg)
		} else {
			pairs[len(pairs)-1] += "," + seg
		}
	}

	kv := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		kv[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	mem, ok := kv["memory"]
	if !ok || strings.TrimSpace(mem) == "" {
		return store.Draft{}, false
	}
	return store.Draft{
		Text:     normalizeText(mem),
		Keywords: SplitKeywords(kv["keywords"]),
		Always:   ParseBool(kv["always"]),
	}, true
}

// check applies the relevance gate to extracted memory text.
func (sc *Scanner) check(text string) SkipReason {
	if text == "" {
		return SkipEmpty
	}
	if utf8.RuneCountInString(text) < sc.MinLength {
		return SkipTooShort
	}
	low := strings.ToLower(text)
	for _, p := range sc.BanPhrases {
		if strings.Contains(low, p) {
			return SkipFiltered
		}
	}
	// Accept anything that reads like a statement: sentence-ending
	// punctuation, or at least three words.
	if sentEndRe.MatchString(text) || len(strings.Fields(text)) >= 3 {
		return SkipNone
	}
	return SkipFiltered
}

// normalizeText strips wrapping quotes and collapses whitespace, keeping case.
func normalizeText(s string) string {
	s = strings.TrimSpace(html.UnescapeString(s))
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return wsRe.ReplaceAllString(s, " ")
}

// restOfLine returns the payload up to the next newline.
func restOfLine(text string, from int) (string, int) {
	end := strings.IndexByte(text[from:], '\n')
	if end < 0 {
		return text[from:], len(text)
	}
	return text[from : from+end], from + end
}

// matchBrace returns the offset just past the brace that closes the object
// opening at from, honoring JSON string literals and escapes.
func matchBrace(text string, from int) (int, bool) {
	depth := 0
	inString := false
	for i := from; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// matchParen returns the offset just past the parenthesis closing the group
// opening at from.
func matchParen(text string, from int) (int, bool) {
	depth := 0
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
