package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/appsettings"
)

type analyzeReport struct {
	RunID    string          `json:"run_id"`
	Project  string          `json:"project"`
	Sources  []string        `json:"sources"`
	Existing []string        `json:"existing"`
	Residual []residualEntry `json:"residual"`
	Written  []string        `json:"written,omitempty"`
	Issues   []issueEntry    `json:"issues,omitempty"`
}

type residualEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

type issueEntry struct {
	Code    string `json:"code"`
	Source  string `json:"source"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func newAnalyzeCmd(f *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show the settings a migration would add, without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			rep, err := e.run(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := buildReport(e.projectFile, rep)
			if asJSON {
				b, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
				return err
			}
			printReport(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func newMigrateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Append missing legacy settings to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, f)
			if err != nil {
				return err
			}
			rep, err := e.run(cmd.Context(), false)
			w := cmd.OutOrStdout()
			if err != nil {
				color.New(color.FgRed).Fprintf(w, "✗ migration failed: %v\n", err)
				return err
			}
			out := buildReport(e.projectFile, rep)
			printReport(w, out)
			target := filepath.Join(filepath.Dir(e.projectFile), e.opts.TargetFile)
			if len(out.Written) == 0 {
				color.New(color.FgGreen).Fprintf(w, "✓ %s is up to date\n", target)
				return nil
			}
			color.New(color.FgGreen).Fprintf(w, "✓ %d setting(s) written to %s\n", len(out.Written), target)
			return nil
		},
	}
}

func buildReport(projectFile string, rep appsettings.Report) analyzeReport {
	out := analyzeReport{
		RunID:    rep.RunID,
		Project:  projectFile,
		Sources:  []string{},
		Existing: []string{},
		Residual: []residualEntry{},
	}
	m := migrationOf(rep)
	if m == nil {
		return out
	}
	out.Sources = append(out.Sources, m.Sources...)
	out.Existing = append(out.Existing, m.Existing...)
	out.Written = m.Written
	for k, v := range m.Residual.All() {
		out.Residual = append(out.Residual, residualEntry{Key: k, Value: v, Kind: appsettings.Infer(v).Kind.String()})
	}
	for _, it := range m.Issues {
		out.Issues = append(out.Issues, issueEntry{Code: it.Code, Source: it.Source, Path: it.Path, Message: it.Message})
	}
	return out
}

func printReport(w io.Writer, r analyzeReport) {
	bold := color.New(color.Bold)
	warn := color.New(color.FgYellow)

	bold.Fprintf(w, "Project %s\n", r.Project)
	if len(r.Sources) == 0 {
		warn.Fprintln(w, "  no legacy configuration files found")
	}
	for _, s := range r.Sources {
		fmt.Fprintf(w, "  source   %s\n", s)
	}
	for _, s := range r.Existing {
		fmt.Fprintf(w, "  existing %s\n", s)
	}
	for _, it := range r.Issues {
		warn.Fprintf(w, "  ⚠ %s: %s\n", it.Source, it.Message)
	}
	if len(r.Residual) == 0 {
		fmt.Fprintln(w, "No settings to migrate.")
		return
	}
	bold.Fprintf(w, "%d setting(s) to migrate:\n", len(r.Residual))
	for _, e := range r.Residual {
		fmt.Fprintf(w, "  %s = %q (%s)\n", e.Key, e.Value, e.Kind)
	}
}
