package diag

import (
	"fmt"
	"testing"
)

func TestRecordAndAccessors(t *testing.T) {
	d := New(0)

	d.Record([]string{"first memory"}, "block one")
	d.Record([]string{"second memory", "third memory"}, "a longer block two")

	if got := d.TotalChars(); got != len("block one")+len("a longer block two") {
		t.Errorf("TotalChars = %d", got)
	}

	recent := d.Recent()
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if len(recent[0].Memories) != 2 {
		t.Error("entries must be most-recent-first")
	}

	last, ok := d.Last()
	if !ok || last.Chars != len("a longer block two") {
		t.Errorf("Last = %+v, ok=%v", last, ok)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	d := New(3)
	for i := 0; i < 5; i++ {
		d.Record([]string{fmt.Sprintf("mem %d", i)}, "x")
	}

	recent := d.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected capacity 3, got %d", len(recent))
	}
	if recent[0].Memories[0] != "mem 4" || recent[2].Memories[0] != "mem 2" {
		t.Errorf("wrong entries survived: %v", recent)
	}
	// The total keeps counting even after eviction.
	if d.TotalChars() != 5 {
		t.Errorf("TotalChars = %d, want 5", d.TotalChars())
	}
}

func TestZeroInjectionIsRecorded(t *testing.T) {
	d := New(0)
	d.Record(nil, "")

	last, ok := d.Last()
	if !ok || last.Chars != 0 || len(last.Memories) != 0 {
		t.Errorf("zero injection not recorded: %+v", last)
	}
}
