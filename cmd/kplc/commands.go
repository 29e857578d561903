package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/graeme-hill/kpl-go/lib"
	"github.com/spf13/cobra"
)

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan FILE",
		Short: "Print the token trace of a KPL file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.noInputFile(cmd)
			}
			run := lib.Run{Command: "scan", Source: args[0], StartedAt: time.Now()}
			diags := a.diagnostics()

			err := a.session(diags).ScanFile(args[0], func(tok lib.Token) {
				fmt.Fprintln(a.stdout, tok)
			})
			if errors.Is(err, lib.ErrCannotRead) {
				return a.cannotRead(err)
			}

			run.Success = true
			a.record(cmd.Context(), run, diags.Errors())
			return nil
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Check that a KPL file is a well-formed program",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.noInputFile(cmd)
			}
			run := lib.Run{Command: "parse", Source: args[0], StartedAt: time.Now()}
			diags := a.diagnostics()

			err := a.session(diags).ParseFile(args[0])
			if errors.Is(err, lib.ErrCannotRead) {
				return a.cannotRead(err)
			}

			// A syntax error has already been printed by diags.
			run.Success = err == nil
			a.record(cmd.Context(), run, diags.Errors())
			if err != nil {
				return errReported
			}
			return nil
		},
	}
}

func (a *app) indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index TEXT STOPWORDS",
		Short: "List the words of a text file with the lines they appear on",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return a.noInputFile(cmd)
			}
			run := lib.Run{Command: "index", Source: args[0], StartedAt: time.Now()}

			text, err := os.Open(args[0])
			if err != nil {
				return a.cannotRead(err)
			}
			defer text.Close()

			stopWords, err := os.Open(args[1])
			if err != nil {
				return a.cannotRead(err)
			}
			defer stopWords.Close()

			entries, err := lib.BuildWordIndex(text, stopWords)
			if err != nil {
				return a.cannotRead(err)
			}
			for _, entry := range entries {
				fmt.Fprintln(a.stdout, entry)
			}

			run.Success = true
			a.record(cmd.Context(), run, nil)
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.History.Enabled() {
				fmt.Fprintln(a.stderr, "history is disabled: set history.driver in the config file")
				return errReported
			}

			h, err := lib.OpenHistory(cmd.Context(), a.cfg.History)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer h.Close()

			runs, err := h.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}

			renderer := lipgloss.NewRenderer(a.stdout)
			okStyle := renderer.NewStyle().Foreground(lipgloss.Color("#10B981"))
			failStyle := renderer.NewStyle().Foreground(lipgloss.Color("#EF4444"))

			for _, run := range runs {
				status := "ok"
				style := okStyle
				if !run.Success {
					status = "failed"
					style = failStyle
				}
				if a.cfg.Output.Color {
					status = style.Render(status)
				}
				fmt.Fprintf(a.stdout, "%s  %s  %-5s  %s  %s  %d errors\n",
					run.ID, run.StartedAt.Local().Format(time.DateTime),
					run.Command, run.Source, status, run.ErrorCount)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}
