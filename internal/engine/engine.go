// Package engine is the host-facing surface of the memory subsystem. The
// host hands it model output and upcoming prompt context; the engine owns
// parsing, persistence, selection, formatting and diagnostics.
package engine

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/jeanpaul/memkeep/internal/config"
	"github.com/jeanpaul/memkeep/internal/diag"
	"github.com/jeanpaul/memkeep/internal/guide"
	"github.com/jeanpaul/memkeep/internal/inject"
	"github.com/jeanpaul/memkeep/internal/match"
	"github.com/jeanpaul/memkeep/internal/savecmd"
	"github.com/jeanpaul/memkeep/internal/store"
)

// Engine wires the memory pipeline together for one host process.
type Engine struct {
	cfg     *config.Config
	store   *store.Store
	guides  *guide.Library
	diags   *diag.Diagnostics
	scanner savecmd.Scanner
	log     *slog.Logger

	mu            sync.Mutex
	guideInjected bool
	seenSaves     map[string]struct{}
}

// New builds an engine over an opened store. guides may be nil when the
// host never injects guide text.
func New(cfg *config.Config, st *store.Store, guides *guide.Library) *Engine {
	if guides == nil {
		guides = guide.NewLibrary()
	}
	ban := cfg.BanPhrases
	if ban == nil {
		ban = savecmd.DefaultBanPhrases
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return &Engine{
		cfg:       cfg,
		store:     st,
		guides:    guides,
		diags:     diag.New(diag.DefaultCapacity),
		scanner:   savecmd.Scanner{MinLength: cfg.MinMemoryLength, BanPhrases: ban},
		log:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		seenSaves: make(map[string]struct{}),
	}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// IngestResponse scans text for save commands, persists the valid ones and
// returns the stored records together with the text scrubbed of save tags.
// Model-generated text is ignored entirely when allow_model_saves is off.
// A save identical to one already processed this session is skipped.
func (e *Engine) IngestResponse(text string, modelGenerated bool) ([]store.Record, string, error) {
	if modelGenerated && !e.cfg.AllowModelSaves {
		return nil, text, nil
	}

	cmds := e.scanner.Scan(text)
	if len(cmds) == 0 {
		return nil, text, nil
	}

	var added []store.Record
	var errs []error
	for _, cmd := range cmds {
		if !cmd.Valid() {
			e.log.Debug("save command skipped", "reason", string(cmd.Skip))
			continue
		}
		fp := fingerprint(cmd.Draft)
		e.mu.Lock()
		_, seen := e.seenSaves[fp]
		if !seen {
			e.seenSaves[fp] = struct{}{}
		}
		e.mu.Unlock()
		if seen {
			e.log.Debug("save command repeated this session, ignoring")
			continue
		}

		rec, err := e.store.Add(cmd.Draft)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.log.Debug("memory saved", "id", rec.ID, "keywords", strings.Join(rec.Keywords, ","))
		added = append(added, rec)
	}

	// Scrub every directive span, accepted or not, from the end so
	// earlier offsets stay valid.
	scrubbed := text
	for i := len(cmds) - 1; i >= 0; i-- {
		scrubbed = scrubbed[:cmds[i].Start] + scrubbed[cmds[i].End:]
	}
	scrubbed = strings.TrimSpace(blankRunRe.ReplaceAllString(scrubbed, "\n\n"))

	return added, scrubbed, errors.Join(errs...)
}

// BuildInjection selects matching memories for the upcoming prompt context
// and formats the block to prepend. An empty selection yields an empty
// string: the prompt is then left untouched.
func (e *Engine) BuildInjection(contextText string) string {
	selected := match.Select(contextText, e.store.List(), e.cfg.MaxContextChars)

	block := inject.Format(selected, inject.Options{
		Guide:       e.pendingGuide(contextText),
		TimeContext: e.cfg.TimeContext,
		DateContext: e.cfg.DateContext,
		MaxShow:     e.cfg.MaxShowMemories,
	})

	texts := make([]string, len(selected))
	for i, r := range selected {
		texts[i] = r.Text
	}
	e.diags.Record(texts, block)
	if block != "" {
		e.markGuideInjected(strings.Contains(block, guide.Marker))
		e.log.Debug("injection built", "memories", len(selected), "chars", len(block))
	}
	return block
}

// GuideBlock returns the guide text to merge into the hidden context when
// the configuration asks for it, independent of memory matches. It returns
// "" when no guide is due. Contexts already carrying the guide marker are
// never re-guided.
func (e *Engine) GuideBlock(contextText string) string {
	g := e.pendingGuide(contextText)
	if g == "" {
		return ""
	}
	e.markGuideInjected(true)
	return g
}

func (e *Engine) pendingGuide(contextText string) string {
	if !e.cfg.InjectGuide {
		return ""
	}
	if strings.Contains(contextText, guide.Marker) {
		return ""
	}
	e.mu.Lock()
	done := e.cfg.GuideOnce && e.guideInjected
	e.mu.Unlock()
	if done {
		return ""
	}
	triggers := e.cfg.GuideTriggers
	if len(triggers) == 0 {
		triggers = guide.DefaultTriggers
	}
	if e.cfg.GuideMode != "always" && !guide.HasTrigger(contextText, triggers) {
		return ""
	}
	return e.guides.Text(e.cfg.GuideLang)
}

func (e *Engine) markGuideInjected(injected bool) {
	if !injected {
		return
	}
	e.mu.Lock()
	e.guideInjected = true
	e.mu.Unlock()
}

// Add stores a manually entered memory. Keywords are a comma-separated
// string, as the settings form hands them over.
func (e *Engine) Add(text, keywords string, always bool) (store.Record, error) {
	return e.store.Add(store.Draft{
		Text:     text,
		Keywords: savecmd.SplitKeywords(keywords),
		Always:   always,
	})
}

// Update edits a stored memory. Nil fields are left unchanged.
func (e *Engine) Update(id string, text *string, keywords *string, always *bool) (store.Record, error) {
	f := store.Fields{Text: text, Always: always}
	if keywords != nil {
		f.Keywords = savecmd.SplitKeywords(*keywords)
		if f.Keywords == nil {
			f.Keywords = []string{}
		}
	}
	return e.store.Update(id, f)
}

// Delete removes a stored memory.
func (e *Engine) Delete(id string) error {
	return e.store.Delete(id)
}

// DeleteAll backs the store up and clears it, returning the backup path.
func (e *Engine) DeleteAll() (string, error) {
	path, err := e.store.DeleteAll()
	if err == nil {
		e.log.Debug("store cleared", "backup", path)
	}
	return path, err
}

// List returns all stored memories in insertion order.
func (e *Engine) List() []store.Record {
	return e.store.List()
}

// Backups lists backup files written by delete-all.
func (e *Engine) Backups() ([]string, error) {
	return e.store.Backups()
}

// Diagnostics exposes the injection history for the host's display.
func (e *Engine) Diagnostics() *diag.Diagnostics {
	return e.diags
}

// fingerprint identifies a draft for once-per-session save dedup.
func fingerprint(d store.Draft) string {
	payload, _ := json.Marshal(struct {
		Text     string   `json:"text"`
		Keywords []string `json:"keywords"`
		Always   bool     `json:"always"`
	}{d.Text, d.Keywords, d.Always})
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}
