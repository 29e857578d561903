package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/graeme-hill/kpl-go/lib"
	"github.com/spf13/cobra"
)

// errReported means the user has already been told what went wrong.
var errReported = errors.New("reported")

type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	verbose bool
	color   bool

	cfg    lib.Config
	logger *slog.Logger
}

func newRootCmd(stdout io.Writer, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "kplc",
		Short: "Scanner and syntax checker for KPL programs",
		Long: `kplc scans and parses programs written in KPL, a small
Pascal-like teaching language.

  scan     print the token trace of a file
  parse    check that a file is a well-formed program
  index    build a word index of a text file
  history  list recorded runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml or .yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().BoolVar(&a.color, "color", false, "color diagnostics")

	root.AddCommand(
		a.scanCmd(),
		a.parseCmd(),
		a.indexCmd(),
		a.historyCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = lib.DefaultConfig()
	if a.cfgFile != "" {
		cfg, err := lib.LoadConfig(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.verbose {
		a.cfg.Log.Level = "debug"
	}
	if cmd.Flags().Changed("color") {
		a.cfg.Output.Color = a.color
	}

	logger, err := lib.NewLogger(a.cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) diagnostics() *lib.Diagnostics {
	return lib.NewDiagnostics(a.stdout, lib.DiagnosticsOptions{
		Color:     a.cfg.Output.Color,
		MaxErrors: a.cfg.Lexer.MaxErrors,
	})
}

func (a *app) session(reporter lib.Reporter) lib.Session {
	return lib.Session{
		Lexer:    a.cfg.Lexer,
		Reporter: reporter,
		Logger:   a.logger,
	}
}

func (a *app) noInputFile(cmd *cobra.Command) error {
	fmt.Fprintf(a.stderr, "%s: no input file.\n", cmd.Name())
	return errReported
}

func (a *app) cannotRead(err error) error {
	a.logger.Debug("reading input", "err", err)
	fmt.Fprintln(a.stderr, "Can't read input file!")
	return errReported
}

// record stores a finished run when history is enabled. Failing to record
// never fails the command.
func (a *app) record(ctx context.Context, run lib.Run, errs []*lib.Error) {
	if !a.cfg.History.Enabled() {
		return
	}
	run.FinishedAt = time.Now()

	h, err := lib.OpenHistory(ctx, a.cfg.History)
	if err != nil {
		a.logger.Warn("opening history", "err", err)
		return
	}
	defer h.Close()

	id, err := h.Record(ctx, run, errs)
	if err != nil {
		a.logger.Warn("recording run", "err", err)
		return
	}
	a.logger.Debug("recorded run", "id", id, "command", run.Command)
}
