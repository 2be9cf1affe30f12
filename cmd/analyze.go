package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/inflammation-cli/internal/analysis"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaInput      inputFlags
	anaReport     reportFlags
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Report daily mean/max/min (and optionally normalised values) for one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, format := anaReport.options(cmd)
		m, err := loadMatrix(path, &anaInput)
		if err != nil {
			return err
		}
		rep, err := analysis.Build(filepath.Base(path), m, opt)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		out, err := analysis.Render(rep, format)
		if err != nil {
			return err
		}

		// Decide where to write: --output path or stdout
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	anaInput.register(analyzeCmd)
	anaReport.register(analyzeCmd)
}
