package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/inflammation-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		delim := c.Delimiter
		if delim == "" {
			delim = "(auto)"
		}
		fmt.Fprintf(out, "delimiter: %s\n", delim)
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", c.SheetIndex)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.OutputDir != "" {
			fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		}
		fmt.Fprintf(out, "precision: %d\n", c.Precision)
		fmt.Fprintf(out, "max_days: %d\n", c.MaxDays)
		fmt.Fprintf(out, "normalise: %t\n", c.Normalise)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		fmt.Fprintf(out, "parallel_threshold: %d\n", c.ParallelThreshold)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "delimiter":
			switch val {
			case "", "auto":
				c.Delimiter = ""
			default:
				r, err := parseDelimiter(val)
				if err != nil {
					return fmt.Errorf("invalid delimiter: %s (use comma, semicolon, tab, or auto)", val)
				}
				c.Delimiter = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab"}[r]
			}
		case "sheet_name":
			c.SheetName = val
		case "sheet_index", "precision", "max_days", "workers", "parallel_threshold":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "sheet_index":
				c.SheetIndex = i
			case "precision":
				c.Precision = i
			case "max_days":
				c.MaxDays = i
			case "workers":
				c.Workers = i
			case "parallel_threshold":
				c.ParallelThreshold = i
			}
		case "output_format":
			c.OutputFormat = val
		case "output_dir":
			c.OutputDir = val
		case "normalise":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for normalise: %w", err)
			}
			c.Normalise = b
		case "log_level":
			c.LogLevel = val
		case "log_format":
			c.LogFormat = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
