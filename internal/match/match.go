// Package match selects stored memories for injection by keyword against
// the upcoming conversation context. Selection is deterministic: no
// randomness, no scoring, just flags, substrings and insertion order.
package match

import (
	"regexp"
	"strings"

	"github.com/jeanpaul/memkeep/internal/store"
)

// Select returns the records to inject for the given context text:
// always-flagged records first, then keyword matches, each group in
// insertion order. Records whose normalized text was already picked are
// dropped. maxChars bounds the running sum of record text lengths; a
// record that would push past the budget is dropped together with the
// rest of the tail (whole records only, never partial text). maxChars <= 0
// disables the bound.
func Select(contextText string, records []store.Record, maxChars int) []store.Record {
	ctx := strings.ToLower(contextText)

	var picked []store.Record
	seen := make(map[string]bool)
	take := func(r store.Record) {
		norm := store.Normalize(r.Text)
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		picked = append(picked, r)
	}

	for _, r := range records {
		if r.Always {
			take(r)
		}
	}
	for _, r := range records {
		if r.Always {
			continue
		}
		for _, kw := range r.Keywords {
			if Matches(ctx, kw) {
				take(r)
				break
			}
		}
	}

	if maxChars <= 0 {
		return picked
	}
	total := 0
	for i, r := range picked {
		total += len(r.Text)
		if total > maxChars {
			return picked[:i]
		}
	}
	return picked
}

// Matches reports whether a normalized keyword occurs in the lower-cased
// context. Keywords of the form r/<pattern>/ are treated as regular
// expressions; an invalid pattern never matches.
func Matches(ctxLower, kw string) bool {
	if strings.HasPrefix(kw, "r/") && strings.HasSuffix(kw, "/") && len(kw) > 3 {
		re, err := regexp.Compile("(?i)" + kw[2:len(kw)-1])
		if err != nil {
			return false
		}
		return re.MatchString(ctxLower)
	}
	return strings.Contains(ctxLower, kw)
}
