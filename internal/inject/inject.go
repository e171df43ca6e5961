// Package inject formats selected memories into the text block the host
// merges into the prompt. Formatting is pure; the caller owns all policy.
package inject

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeanpaul/memkeep/internal/store"
)

// Options controls the rendered block.
type Options struct {
	// Guide, when non-empty, is prepended before everything else.
	Guide string
	// TimeContext / DateContext add "Current time/date" lines.
	TimeContext bool
	DateContext bool
	// MaxShow caps the number of listed memories; the tail is collapsed
	// into a count. <= 0 lists everything.
	MaxShow int
	// Now supplies the clock; nil means time.Now.
	Now func() time.Time
}

// Format renders the injection block. An empty selection yields an empty
// string regardless of other options, so the host skips prompt
// modification entirely.
func Format(selected []store.Record, opts Options) string {
	if len(selected) == 0 {
		return ""
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var b strings.Builder
	if opts.Guide != "" {
		b.WriteString(opts.Guide)
		b.WriteString("\n\n")
	}
	if opts.TimeContext {
		fmt.Fprintf(&b, "Current time: %s\n", now().Format("15:04"))
	}
	if opts.DateContext {
		fmt.Fprintf(&b, "Current date: %s\n", now().Format("January 02, 2006"))
	}

	fmt.Fprintf(&b, "[Memories (%d)]\n", len(selected))
	shown := len(selected)
	if opts.MaxShow > 0 && shown > opts.MaxShow {
		shown = opts.MaxShow
	}
	for _, r := range selected[:shown] {
		fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(r.Text))
	}
	if rest := len(selected) - shown; rest > 0 {
		fmt.Fprintf(&b, "… (+%d more)\n", rest)
	}

	return strings.TrimRight(b.String(), "\n")
}
