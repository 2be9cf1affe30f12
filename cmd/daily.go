package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

var (
	dailyInput     inputFlags
	dailyPrecision int
)

var dailyStats = map[string]func(mat.Matrix, ...inflammation.Option) ([]float64, error){
	"mean": inflammation.DailyMean,
	"max":  inflammation.DailyMax,
	"min":  inflammation.DailyMin,
}

var dailyCmd = &cobra.Command{
	Use:       "daily <mean|max|min> <file>",
	Short:     "Print one daily aggregate, one value per day",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"mean", "max", "min"},
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, ok := dailyStats[args[0]]
		if !ok {
			return fmt.Errorf("unknown statistic: %s (use mean|max|min)", args[0])
		}
		m, err := loadMatrix(args[1], &dailyInput)
		if err != nil {
			return err
		}
		vals, err := stat(m, computeOptions()...)
		if err != nil {
			return err
		}
		prec := dailyPrecision
		if prec <= 0 {
			prec = -1
		}
		for _, v := range vals {
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', prec, 64))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	dailyCmd.Flags().IntVar(&dailyPrecision, "precision", 0, "significant digits (0 = shortest exact)")
	dailyInput.register(dailyCmd)
}
