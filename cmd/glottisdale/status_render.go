package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"glottisdale/internal/manifest"
	"glottisdale/internal/textutil"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

// renderStatusLine formats one labelled line of a run summary.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// shouldColorize reports whether writer is an interactive terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runSummary is the block printed after a collage run and by runs show: a
// header naming the run, then one status line per figure.
type runSummary struct {
	colorize bool
	lines    []string
}

func newRunSummary(runName string, colorize bool) *runSummary {
	return &runSummary{colorize: colorize, lines: renderSectionHeader(textutil.TitleCase(runName), colorize)}
}

func (s *runSummary) line(label string, kind statusKind, message string) {
	s.lines = append(s.lines, renderStatusLine(label, kind, message, s.colorize))
}

// manifest adds the length, syllable usage and structure recorded in m.
func (s *runSummary) manifest(m manifest.Manifest) {
	s.line("Duration", statusInfo, fmt.Sprintf("%.2fs", m.Duration))
	s.line("Syllables", statusInfo, fmt.Sprintf("%d of %d", m.SelectedSyllables, m.TotalSyllables))
	s.line("Words", statusInfo, fmt.Sprintf("%d in %d phrases", len(m.Clips), len(m.Phrases)))
	gaps, gapMS := 0, 0.0
	for _, p := range m.Phrases {
		if p.GapSamples > 0 {
			gaps++
			gapMS += p.GapAfterMS
		}
	}
	s.line("Pauses", statusInfo, fmt.Sprintf("%d totalling %.2fs", gaps, gapMS/1000))
	s.line("Seed", statusInfo, fmt.Sprintf("%d", m.Seed))
}

func (s *runSummary) write(out io.Writer) {
	for _, line := range s.lines {
		fmt.Fprintln(out, line)
	}
}
