// Package main provides the CLI entry point for sheetops.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetops-go/internal/config"
	"github.com/ukaji3/sheetops-go/internal/logging"
	"go.uber.org/zap"
)

// app holds state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	pretty     bool

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "sheetops",
		Short: "Sort, filter, format and merge cells in Excel workbooks",
		Long: `sheetops applies spreadsheet operations to .xlsx workbooks and prints
a JSON report for each processed workbook. Operations can be run one at a
time or chained in a YAML job file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.pretty = a.pretty || cfg.Pretty

			logger, err := logging.New(cfg.Logging, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "sheetops.yaml", "Settings file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		a.mergeCmd(),
		a.sortCmd(),
		a.filterCmd(),
		a.headerCmd(),
		a.formatCmd(),
		a.autofitCmd(),
		a.inspectCmd(),
		a.runCmd(),
		a.signCmd(),
		a.verifyCmd(),
	)
	return rootCmd
}

// write prints data followed by a newline.
func (a *app) write(data []byte) error {
	if _, err := fmt.Fprintln(a.out, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
