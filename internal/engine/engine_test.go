package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/memkeep/internal/config"
	"github.com/jeanpaul/memkeep/internal/guide"
	"github.com/jeanpaul/memkeep/internal/store"
)

func testEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StorePath = filepath.Join(t.TempDir(), "memories.json")
	cfg.InjectGuide = false
	cfg.TimeContext = false
	cfg.DateContext = false
	if mutate != nil {
		mutate(cfg)
	}
	st, err := store.New(cfg.StorePath, cfg.MinMemoryLength)
	require.NoError(t, err)
	return New(cfg, st, nil)
}

func TestIngestStoresAndScrubs(t *testing.T) {
	eng := testEngine(t, nil)

	out := `Understood, I'll keep that in mind.
save: {"memory":"User prefers dark mode in all apps.","keywords":"theme,dark"}
Anything else?`

	added, scrubbed, err := eng.IngestResponse(out, true)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "User prefers dark mode in all apps.", added[0].Text)
	assert.Equal(t, []string{"theme", "dark"}, added[0].Keywords)

	assert.NotContains(t, scrubbed, "save:")
	assert.Contains(t, scrubbed, "Understood")
	assert.Contains(t, scrubbed, "Anything else?")

	assert.Equal(t, 1, len(eng.List()))
}

func TestModelSavesGate(t *testing.T) {
	eng := testEngine(t, func(c *config.Config) { c.AllowModelSaves = false })

	out := "save: (User works in UTC+2 most of the year.)"

	added, scrubbed, err := eng.IngestResponse(out, true)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, out, scrubbed, "gated model output must pass through untouched")

	// The same text entered by the user is still ingested.
	added, _, err = eng.IngestResponse(out, false)
	require.NoError(t, err)
	assert.Len(t, added, 1)
}

func TestRepeatedSaveIgnoredWithinSession(t *testing.T) {
	eng := testEngine(t, nil)
	out := `save: memory=User prefers tabs over spaces, keywords=style`

	added, _, err := eng.IngestResponse(out, true)
	require.NoError(t, err)
	require.Len(t, added, 1)

	added, _, err = eng.IngestResponse(out, true)
	require.NoError(t, err)
	assert.Empty(t, added, "identical save must be processed once per session")
}

func TestDuplicateTextCoalesces(t *testing.T) {
	eng := testEngine(t, nil)

	first, err := eng.Add("User prefers concise answers.", "concise", false)
	require.NoError(t, err)
	second, err := eng.Add("user prefers concise answers.", "", true)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, eng.List(), 1)
}

func TestBuildInjection(t *testing.T) {
	eng := testEngine(t, nil)
	_, err := eng.Add("No emojis in any reply.", "emoji", false)
	require.NoError(t, err)

	block := eng.BuildInjection("I like emoji a lot")
	assert.Contains(t, block, "No emojis in any reply.")

	assert.Empty(t, eng.BuildInjection("hello there"), "no match must omit injection entirely")

	// Both turns are visible to diagnostics.
	recent := eng.Diagnostics().Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, 0, recent[0].Chars)
	assert.Equal(t, len(block), recent[1].Chars)
	assert.Equal(t, len(block), eng.Diagnostics().TotalChars())
}

func TestBudgetDropsWholeRecordsEndToEnd(t *testing.T) {
	eng := testEngine(t, func(c *config.Config) {
		c.MinMemoryLength = 1
		c.MaxContextChars = 10
	})
	_, err := eng.Add("12345678", "match", false)
	require.NoError(t, err)
	_, err = eng.Add("abcdefgh", "match", false)
	require.NoError(t, err)

	block := eng.BuildInjection("this will match")
	assert.Contains(t, block, "12345678")
	assert.NotContains(t, block, "abcdefgh", "second record must be dropped whole, not cut")
}

func TestGuideInjectedOncePerSession(t *testing.T) {
	eng := testEngine(t, func(c *config.Config) {
		c.InjectGuide = true
		c.GuideMode = "always"
	})
	_, err := eng.Add("Stable fact worth keeping.", "", true)
	require.NoError(t, err)

	first := eng.BuildInjection("hello")
	assert.Contains(t, first, guide.Marker)

	second := eng.BuildInjection("hello")
	assert.NotContains(t, second, guide.Marker)
	assert.Contains(t, second, "Stable fact worth keeping.")
}

func TestGuideTriggerMode(t *testing.T) {
	eng := testEngine(t, func(c *config.Config) {
		c.InjectGuide = true
		c.GuideMode = "trigger"
	})

	assert.Empty(t, eng.GuideBlock("tell me a story"))
	block := eng.GuideBlock("please remember my birthday")
	assert.True(t, strings.HasPrefix(block, guide.Marker))

	// A context that already carries the guide is never re-guided.
	eng2 := testEngine(t, func(c *config.Config) {
		c.InjectGuide = true
		c.GuideMode = "always"
	})
	assert.Empty(t, eng2.GuideBlock("context with "+guide.Marker+" inside"))
}

func TestDeleteAllBacksUp(t *testing.T) {
	eng := testEngine(t, nil)
	_, err := eng.Add("User prefers concise answers.", "", false)
	require.NoError(t, err)

	backup, err := eng.DeleteAll()
	require.NoError(t, err)

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Empty(t, eng.List())

	paths, err := eng.Backups()
	require.NoError(t, err)
	assert.Equal(t, []string{backup}, paths)
}

func TestUpdateAndDelete(t *testing.T) {
	eng := testEngine(t, nil)
	rec, err := eng.Add("User works on the Helios project.", "helios", false)
	require.NoError(t, err)

	kws := "atlas, project"
	updated, err := eng.Update(rec.ID, nil, &kws, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"atlas", "project"}, updated.Keywords)
	assert.Equal(t, rec.Text, updated.Text)

	require.NoError(t, eng.Delete(rec.ID))
	assert.ErrorIs(t, eng.Delete(rec.ID), store.ErrNotFound)
}
