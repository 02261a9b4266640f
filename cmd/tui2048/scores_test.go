package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestWriteRecent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	results := []storage.Result{
		{GameID: "2048_mini", Score: 300, MaxTile: 64, Moves: 40},
		{GameID: "2048", Score: 2400, MaxTile: 2048, Moves: 210, Won: true},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	entries, err := store.RecentScores(10)
	if err != nil {
		t.Fatalf("RecentScores: %v", err)
	}

	var buf bytes.Buffer
	writeRecent(&buf, entries)
	out := buf.String()

	won := strings.Index(out, "2048*")
	mini := strings.Index(out, "2048_mini")
	if won < 0 || mini < 0 {
		t.Fatalf("output missing games:\n%s", out)
	}
	if won > mini {
		t.Errorf("newest game should be listed first:\n%s", out)
	}
	if !strings.Contains(out, "2400") || !strings.Contains(out, "300") {
		t.Errorf("output missing scores:\n%s", out)
	}
}

func TestWriteRecentEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeRecent(&buf, nil)
	if !strings.Contains(buf.String(), "No games recorded yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
