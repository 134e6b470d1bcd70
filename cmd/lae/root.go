// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lae/config"
	"github.com/katalvlaran/lae/engine"
	"github.com/katalvlaran/lae/matrix"
	"github.com/katalvlaran/lae/logging"
	"github.com/katalvlaran/lae/tree"
)

// defaultOutput receives the error document when the output path is missing.
const defaultOutput = "output.json"

var (
	errUsage   = errors.New("usage: lae <threads> <input.json> <output.json>")
	errThreads = errors.New("numberOfThreads must be an integer")
	errVerify  = errors.New("result differs from sequential reference")
)

// app carries the state shared by the command hooks.
type app struct {
	stdout    io.Writer
	newLogger func(logging.Options) (*zap.Logger, error)

	// flags
	configPath   string
	verbose      bool
	seed         int64
	verify       bool
	report       bool
	reportFormat string

	cfg    *config.Config
	logger *zap.Logger
}

func newApp(stdout io.Writer) *app {
	return &app{stdout: stdout, newLogger: logging.New}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lae <threads> <input.json> <output.json>",
		Short: "Evaluate a matrix operation tree on a fatigue-scheduled worker pool",
		Long: `lae reads an operation tree from <input.json>, evaluates it with
<threads> worker goroutines and writes {"result": [[...]]} to <output.json>.

A tree node is either a matrix ([[1, 2], [3, 4]]) or an operator object
{"operator": "+", "operands": [...]} where the operator is one of
"+" (add), "*" (multiply), "-" (negate) or "T" (transpose).

Tasks always go to the idle worker with the lowest accumulated fatigue
(busy time weighted by a per-worker factor). A per-worker report is printed
to stdout after the run.`,
		Args:              a.checkArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[1], args[2])
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.configPath, "config", "", "YAML configuration file")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	f.Int64Var(&a.seed, "seed", 0, "seed for worker fatigue factors (0 = time-based)")
	f.BoolVar(&a.verify, "verify", false, "cross-check the result against a sequential evaluation")
	f.BoolVar(&a.report, "report", true, "print the worker report to stdout")
	f.StringVar(&a.reportFormat, "report-format", config.FormatText, "report format: text, yaml or json")

	return cmd
}

// checkArgs requires exactly three positional arguments. On any other count
// the usage error is written to the third argument, or to output.json in the
// working directory when there is none.
func (a *app) checkArgs(_ *cobra.Command, args []string) error {
	if len(args) == 3 {
		return nil
	}
	err := fmt.Errorf("%w: got %d arguments", errUsage, len(args))
	out := defaultOutput
	if len(args) > 2 {
		out = args[2]
	}
	a.writeError(out, err)
	return err
}

// setup resolves the configuration (defaults, file, flags, threads argument)
// and builds the logger. Failures are written to the output file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.configure(cmd, args[0]); err != nil {
		a.writeError(args[2], err)
		return err
	}
	return nil
}

func (a *app) configure(cmd *cobra.Command, threads string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(threads)
	if err != nil {
		return fmt.Errorf("%w: %q", errThreads, threads)
	}
	cfg.Workers = n

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("verify") {
		cfg.Verify = a.verify
	}
	if flags.Changed("report") {
		cfg.Report.Enabled = a.report
	}
	if flags.Changed("report-format") {
		cfg.Report.Format = a.reportFormat
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := a.newLogger(logging.Options{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger

	return nil
}

// run parses, evaluates and writes. The report is printed whenever an engine
// was created, on success and on failure alike.
func (a *app) run(ctx context.Context, inPath, outPath string) error {
	root, err := tree.ParseFile(inPath)
	if err != nil {
		return a.fail(outPath, nil, err)
	}

	// The reference must be computed first: Run resolves the tree in place.
	var want *matrix.Dense
	if a.cfg.Verify {
		if want, err = matrix.Eval(root); err != nil {
			a.logger.Debug("reference evaluation failed", zap.Error(err))
		}
	}

	opts := []engine.Option{engine.WithLogger(a.logger)}
	if a.cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(a.cfg.Seed))
	}
	eng, err := engine.New(a.cfg.Workers, opts...)
	if err != nil {
		return a.fail(outPath, nil, err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			a.logger.Warn("engine close", zap.Error(err))
		}
	}()

	a.logger.Debug("evaluating",
		zap.String("input", inPath),
		zap.Int("workers", a.cfg.Workers),
		zap.Int("depth", root.Depth()),
	)
	res, err := eng.Run(ctx, root)
	if err != nil {
		return a.fail(outPath, eng, err)
	}
	if a.cfg.Verify {
		if err := check(res.Matrix(), want); err != nil {
			return a.fail(outPath, eng, err)
		}
	}
	if err := tree.WriteFile(outPath, res.Matrix()); err != nil {
		return a.fail(outPath, eng, err)
	}

	return a.printReport(eng)
}

// check compares the engine result with the sequential reference.
// Overflowed results are admitted so that they compare unequal instead of
// failing ingestion.
func check(got [][]float64, want *matrix.Dense) error {
	if want == nil {
		return fmt.Errorf("%w: reference evaluation failed", errVerify)
	}
	g, err := matrix.FromRows(got, matrix.WithNoValidateNaNInf())
	if err != nil {
		return fmt.Errorf("%w: %w", errVerify, err)
	}
	ok, err := matrix.AllClose(g, want, matrix.DefaultRTol, matrix.DefaultATol)
	if err != nil {
		return fmt.Errorf("%w: %w", errVerify, err)
	}
	if !ok {
		return errVerify
	}
	return nil
}

func (a *app) fail(outPath string, eng *engine.Engine, cause error) error {
	a.writeError(outPath, cause)
	if eng != nil {
		if err := a.printReport(eng); err != nil {
			a.logger.Warn("print report", zap.Error(err))
		}
	}
	return cause
}

func (a *app) writeError(outPath string, cause error) {
	if err := tree.WriteErrorFile(outPath, cause.Error()); err != nil && a.logger != nil {
		a.logger.Error("write error output", zap.String("path", outPath), zap.Error(err))
	}
}

func (a *app) printReport(eng *engine.Engine) error {
	if !a.cfg.Report.Enabled {
		return nil
	}
	r := eng.Report()

	switch a.cfg.Report.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	default:
		_, err := io.WriteString(a.stdout, r.String())
		return err
	}
}
