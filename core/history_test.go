package slight

import (
	"path/filepath"
	"testing"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndRecent(t *testing.T) {
	h := openTestHistory(t)
	for _, tr := range []*Trace{
		{Entry: "1", Result: "1", StepCount: 1, Timestamp: "2026-01-01T00:00:00Z"},
		{Entry: "y", Error: "undefined variable: 'y'", StepCount: 1, Timestamp: "2026-01-01T00:00:01Z"},
		{Entry: "(δ x 2 x)", Result: "2", StepCount: 3, Timestamp: "2026-01-01T00:00:02Z"},
	} {
		if err := h.Record(tr); err != nil {
			t.Fatal(err)
		}
	}

	all, err := h.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Entry != "1" || all[2].Entry != "(δ x 2 x)" {
		t.Fatalf("expected all traces oldest first, got %+v", all)
	}
	if all[1].Error != "undefined variable: 'y'" || all[1].Result != "" {
		t.Fatalf("error trace mismatch: %+v", all[1])
	}
	if all[2].StepCount != 3 {
		t.Fatalf("expected 3 steps, got %d", all[2].StepCount)
	}

	last, err := h.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 || last[0].Entry != "y" || last[1].Entry != "(δ x 2 x)" {
		t.Fatalf("expected the two latest traces, got %+v", last)
	}
}

func TestHistoryClear(t *testing.T) {
	h := openTestHistory(t)
	if err := h.Record(&Trace{Entry: "1", Result: "1", Timestamp: "t"}); err != nil {
		t.Fatal(err)
	}
	if err := h.Clear(); err != nil {
		t.Fatal(err)
	}
	traces, err := h.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) != 0 {
		t.Fatalf("expected empty history, got %+v", traces)
	}
}

func TestHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Record(&Trace{Entry: "42", Result: "42", Timestamp: "t"}); err != nil {
		t.Fatal(err)
	}
	h.Close()

	h, err = OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	traces, err := h.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) != 1 || traces[0].Result != "42" {
		t.Fatalf("expected the recorded trace, got %+v", traces)
	}
}
