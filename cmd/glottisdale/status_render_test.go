package main

import (
	"bytes"
	"strings"
	"testing"

	"glottisdale/internal/manifest"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Seed", statusInfo, "42", false)
	if line != "  Seed:        [INFO] 42" {
		t.Fatalf("line = %q", line)
	}
	colored := renderStatusLine("Room tone", statusWarn, "no", true)
	if !strings.HasPrefix(colored, ansiYellow) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("colored = %q", colored)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestRunSummaryReportsManifest(t *testing.T) {
	m := manifest.Manifest{
		Duration:          3.5,
		Seed:              42,
		TotalSyllables:    20,
		SelectedSyllables: 12,
		Clips:             make([]manifest.Clip, 5),
		Phrases: []manifest.Phrase{
			{GapAfterMS: 500, GapSamples: 8000},
			{GapAfterMS: 250, GapSamples: 4000},
			{GapType: "none"},
		},
	}
	s := newRunSummary("2026-05-06-quiet-heron", false)
	s.manifest(m)
	var buf bytes.Buffer
	s.write(&buf)
	out := buf.String()

	for _, want := range []string{
		"== Quiet Heron ==",
		"Duration:    [INFO] 3.50s",
		"Syllables:   [INFO] 12 of 20",
		"Words:       [INFO] 5 in 3 phrases",
		"Pauses:      [INFO] 2 totalling 0.75s",
		"Seed:        [INFO] 42",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	if renderTable(nil, [][]string{{"x"}}) != "" {
		t.Fatal("no columns should render nothing")
	}
	out := renderTable(runsListColumns, [][]string{{"2026-05-06-demo", "2026-05-06 07:08", "2.00s"}})
	for _, want := range []string{"Name", "Sources", "2026-05-06-demo", "2.00s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 5 {
		t.Fatalf("unexpected table height:\n%s", out)
	}
}
