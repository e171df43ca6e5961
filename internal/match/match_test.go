package match

import (
	"testing"

	"github.com/jeanpaul/memkeep/internal/store"
)

func rec(text string, always bool, kws ...string) store.Record {
	return store.Record{ID: text, Text: text, Always: always, Keywords: kws}
}

func ids(records []store.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestAlwaysRecordsIgnoreContext(t *testing.T) {
	records := []store.Record{rec("X", true)}

	got := Select("unrelated", records, 0)
	if len(got) != 1 || got[0].Text != "X" {
		t.Errorf("always record must be selected regardless of context, got %v", ids(got))
	}
}

func TestKeywordMatch(t *testing.T) {
	records := []store.Record{rec("No emojis", false, "emoji")}

	if got := Select("I like emoji", records, 0); len(got) != 1 {
		t.Errorf("expected keyword match, got %v", ids(got))
	}
	if got := Select("hello", records, 0); len(got) != 0 {
		t.Errorf("expected no match, got %v", ids(got))
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	records := []store.Record{rec("Helios notes", false, "helios")}

	if got := Select("Tell me about HELIOS", records, 0); len(got) != 1 {
		t.Errorf("match must be case-insensitive, got %v", ids(got))
	}
}

func TestOrderingAlwaysFirstThenInsertionOrder(t *testing.T) {
	records := []store.Record{
		rec("kw-one", false, "topic"),
		rec("always-one", true),
		rec("kw-two", false, "topic"),
		rec("always-two", true),
	}

	got := ids(Select("about that topic", records, 0))
	want := []string{"always-one", "always-two", "kw-one", "kw-two"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBudgetDropsWholeRecords(t *testing.T) {
	records := []store.Record{
		rec("12345678", false, "match"),
		rec("abcdefgh", false, "match"),
	}

	got := Select("this will match", records, 10)
	if len(got) != 1 || got[0].Text != "12345678" {
		t.Errorf("budget of 10 must keep only the first 8-char record, got %v", ids(got))
	}
}

func TestBudgetZeroMeansUnlimited(t *testing.T) {
	records := []store.Record{
		rec("12345678", false, "match"),
		rec("abcdefgh", false, "match"),
	}
	if got := Select("this will match", records, 0); len(got) != 2 {
		t.Errorf("no budget should keep both records, got %v", ids(got))
	}
}

func TestDuplicateTextSelectedOnce(t *testing.T) {
	records := []store.Record{
		rec("Same memory text.", true),
		{ID: "other", Text: "same   memory text.", Keywords: []string{"memo"}},
	}
	got := Select("a memo about things", records, 0)
	if len(got) != 1 {
		t.Errorf("normalized duplicates must be picked once, got %v", ids(got))
	}
}

func TestRegexKeyword(t *testing.T) {
	records := []store.Record{rec("Versioned note", false, "r/v\\d+\\.\\d+/")}

	if got := Select("we shipped v2.3 yesterday", records, 0); len(got) != 1 {
		t.Errorf("regex keyword should match, got %v", ids(got))
	}
	if got := Select("no version mentioned", records, 0); len(got) != 0 {
		t.Errorf("regex keyword should not match, got %v", ids(got))
	}

	broken := []store.Record{rec("bad", false, "r/([unclosed/")}
	if got := Select("anything", broken, 0); len(got) != 0 {
		t.Errorf("invalid regex must never match, got %v", ids(got))
	}
}

func TestEmptySelection(t *testing.T) {
	if got := Select("anything", nil, 0); len(got) != 0 {
		t.Errorf("expected empty selection, got %v", ids(got))
	}
}
