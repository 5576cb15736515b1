package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/sigmatch"
	"github.com/gnoverse/sigmatch/formatter"
	"github.com/gnoverse/sigmatch/source"
)

var (
	checkShape      string
	checkJsonOutput bool
	checkOutPath    string
	mismatchesOnly  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check functions in Go files against a signature shape",
	Long: `Scans the given files or directories and reports, for every declared
function, whether its parameter list conforms to the shape.
Example) sigmatch check --shape ". . *" ./handlers`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		m, err := sigmatch.Parse(checkShape)
		if err != nil {
			logger.Fatal("Invalid shape", zap.String("shape", checkShape), zap.Error(err))
		}

		var reports []formatter.Report
		for _, path := range args {
			fns, err := source.ScanPath(ctx, logger, path, !checkJsonOutput)
			if err != nil {
				logger.Error("Error scanning path", zap.String("path", path), zap.Error(err))
				os.Exit(1)
			}
			reports = append(reports, formatter.BuildReports(m, checkShape, fns)...)
		}

		if mismatchesOnly {
			reports = formatter.Mismatches(reports)
		}
		printReports(logger, reports, checkJsonOutput, checkOutPath)

		if len(formatter.Mismatches(reports)) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkShape, "shape", "", `Signature shape, e.g. ". . c * **"`)
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output reports in JSON format")
	checkCmd.Flags().StringVarP(&checkOutPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&mismatchesOnly, "mismatches", false, "Only report functions that do not match")
}

func printReports(logger *zap.Logger, reports []formatter.Report, isJson bool, jsonOutput string) {
	if !isJson {
		fmt.Print(formatter.Format(reports))
		return
	}

	d, err := json.Marshal(reports)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
