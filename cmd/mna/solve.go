package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-mna/pkg/analysis"
	"github.com/edp1096/toy-mna/pkg/netlist"
)

type solveOptions struct {
	*rootOptions
	AC          bool
	Frequency   float64
	PrintSystem bool
}

func newSolveCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &solveOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <network-file>",
		Short: "Assemble and solve a network",
		Long: `Assemble the admittance matrix and injection vector of a network and solve
for its node voltages.

Files ending in .yaml or .yml are read as YAML, anything else as a text netlist.

Example:
  mna solve ./testdata/ladder.cir
  mna solve --ac --frequency 60 ./testdata/rl.yaml --format json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.PrintSystem && opts.Format == "json" {
				return fmt.Errorf("--print-system only works with --format text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&opts.AC, "ac", false, "run a single-frequency AC study instead of the one in the file")
	cmd.Flags().Float64Var(&opts.Frequency, "frequency", 0, "AC frequency in Hz (overrides the file)")
	cmd.Flags().BoolVar(&opts.PrintSystem, "print-system", false, "print the assembled equations before the results")

	return cmd
}

func loadNetwork(path string) (*netlist.NetworkParams, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading network file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return netlist.ParseYAML(content)
	default:
		return netlist.Parse(string(content))
	}
}

func runSolve(ctx context.Context, opts *solveOptions, path string, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger(errOut)

	params, err := loadNetwork(path)
	if err != nil {
		return err
	}
	if opts.AC {
		params.Analysis = netlist.AnalysisAC
	}
	if opts.Frequency > 0 {
		params.Frequency = opts.Frequency
	}
	logger.Debug("network loaded", "path", path, "nodes", len(params.Nodes), "components", len(params.Components), "analysis", params.Analysis)

	analyzer, err := analysis.New(params, logger)
	if err != nil {
		return err
	}
	if err := analyzer.Setup(params); err != nil {
		return fmt.Errorf("analysis setup failed: %w", err)
	}
	if err := analyzer.Execute(ctx); err != nil {
		return fmt.Errorf("analysis execution failed: %w", err)
	}

	if opts.PrintSystem {
		if err := analyzer.PrintSystem(out); err != nil {
			return err
		}
	}

	results := analyzer.GetResults()
	if opts.Format == "json" {
		return writeJSON(out, params, results)
	}
	writeReport(out, params.Title, results)
	return nil
}
