package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/inflammation-cli/internal/analysis"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutDir    string
	abQuiet     bool
	abKeepGoing bool
	abInput     inputFlags
	abReport    reportFlags
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files with progress and optional report files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		opt, format := abReport.options(cmd)
		outDir := abOutDir
		if outDir == "" {
			outDir = settings().OutputDir
		}
		if outDir != "" {
			if err := utils.EnsureDir(outDir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		total := len(files)
		var failed []error
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			body, err := analyzeOne(path, opt, format)
			if err != nil {
				if !abKeepGoing {
					return err
				}
				logger.Error("analysis failed", "file", path, "err", err)
				failed = append(failed, err)
				continue
			}

			if outDir == "" {
				if !abQuiet {
					fmt.Fprintln(out, string(body))
				}
				continue
			}
			base := utils.BaseName(path)
			outFile := utils.UniquePath(outDir, base, ".report"+analysis.Extension(format))
			if filepath.Base(outFile) != base+".report"+analysis.Extension(format) && !abQuiet {
				fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if err := utils.SafeWriteFile(outFile, body); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed: %w", len(failed), total, errors.Join(failed...))
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates, and sorts the result.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func analyzeOne(path string, opt analysis.Options, format string) ([]byte, error) {
	m, err := loadMatrix(path, &abInput)
	if err != nil {
		return nil, err
	}
	rep, err := analysis.Build(filepath.Base(path), m, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return analysis.Render(rep, format)
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for <name>.report.<ext> files (default from config; stdout if empty)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "log failures and continue with remaining files")
	abInput.register(analyzeBatchCmd)
	abReport.register(analyzeBatchCmd)
}
