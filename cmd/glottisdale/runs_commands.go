package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"glottisdale/internal/manifest"
	"glottisdale/internal/runs"
	"glottisdale/internal/services"
)

type runView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Dir               string    `json:"dir"`
	Seed              int64     `json:"seed"`
	Sources           []string  `json:"sources"`
	SelectedSyllables int       `json:"selected_syllables"`
	TotalSyllables    int       `json:"total_syllables"`
	Duration          float64   `json:"duration"`
	CreatedAt         time.Time `json:"created_at"`
}

func newRunView(rec runs.Record) runView {
	return runView{
		ID:                rec.ID,
		Name:              rec.Name,
		Dir:               rec.Dir,
		Seed:              rec.Seed,
		Sources:           rec.Sources,
		SelectedSyllables: rec.SelectedSyllables,
		TotalSyllables:    rec.TotalSyllables,
		Duration:          rec.Duration,
		CreatedAt:         rec.CreatedAt,
	}
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect previous collage runs",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func openHistory(cmd *cobra.Command, ctx *commandContext) (*runs.History, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HistoryPath()), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runs", "open", cfg.HistoryPath(), err)
	}
	history, err := runs.OpenHistory(cmd.Context(), cfg.HistoryPath())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runs", "open", cfg.HistoryPath(), err)
	}
	return history, nil
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(cmd, ctx)
			if err != nil {
				return err
			}
			defer history.Close()

			records, err := history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				views := make([]runView, 0, len(records))
				for _, rec := range records {
					views = append(views, newRunView(rec))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Name,
					rec.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%.2fs", rec.Duration),
					fmt.Sprintf("%d/%d", rec.SelectedSyllables, rec.TotalSyllables),
					fmt.Sprintf("%d", rec.Seed),
					strings.Join(rec.Sources, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(runsListColumns, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

var runsListColumns = []tableColumn{
	{Header: "Name"},
	{Header: "Created"},
	{Header: "Duration", Numeric: true},
	{Header: "Syllables", Numeric: true},
	{Header: "Seed", Numeric: true},
	{Header: "Sources"},
}

// writeJSON prints runs list views or a run manifest as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recorded run and its manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(cmd, ctx)
			if err != nil {
				return err
			}
			defer history.Close()

			rec, err := history.Get(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			run := runs.Run{Name: rec.Name, Dir: rec.Dir}
			m, err := manifest.Read(run.ManifestPath())
			if err != nil {
				return services.Wrap(services.ErrNotFound, "runs", "show", run.ManifestPath(), err)
			}
			if asJSON {
				return writeJSON(cmd, m)
			}

			out := cmd.OutOrStdout()
			s := newRunSummary(rec.Name, shouldColorize(out))
			s.line("Directory", statusInfo, rec.Dir)
			s.line("Created", statusInfo, rec.CreatedAt.Local().Format(time.RFC3339))
			s.manifest(m)
			s.line("Breaths", statusInfo, fmt.Sprintf("%d", m.BreathCount))
			s.write(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full manifest as JSON")
	return cmd
}
