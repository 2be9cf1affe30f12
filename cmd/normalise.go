package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/inflammation-cli/internal/analysis"
	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
)

var (
	normInput      inputFlags
	normOutputPath string
	normPrecision  int
)

var normaliseCmd = &cobra.Command{
	Use:     "normalise <file>",
	Aliases: []string{"normalize"},
	Short:   "Rescale each patient by their maximum and write the result as CSV",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMatrix(args[0], &normInput)
		if err != nil {
			return err
		}
		norm, err := inflammation.Normalise(m, computeOptions()...)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := analysis.WriteCSV(&buf, norm, normPrecision); err != nil {
			return err
		}
		if normOutputPath != "" {
			if err := utils.SafeWriteFile(normOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote normalised matrix to %s\n", normOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(normaliseCmd)
	normaliseCmd.Flags().StringVarP(&normOutputPath, "output", "o", "", "optional path to write the normalised CSV")
	normaliseCmd.Flags().IntVar(&normPrecision, "precision", 0, "significant digits (0 = shortest exact)")
	normInput.register(normaliseCmd)
}
