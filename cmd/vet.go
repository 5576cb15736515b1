package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/sigmatch"
	"github.com/gnoverse/sigmatch/formatter"
	"github.com/gnoverse/sigmatch/source"
)

var (
	vetJsonOutput bool
	vetOutPath    string
)

var vetCmd = &cobra.Command{
	Use:   "vet [paths...]",
	Short: "Check functions against the shapes bound to them in the configuration file",
	Long: `Loads the configuration file, scans the given paths, and reports every
function whose name is bound to a shape but whose parameter list does not
conform to it. Functions without a binding are skipped.
Example) sigmatch vet ./...`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := sigmatch.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.String("config", cfgFile), zap.Error(err))
		}
		matchers, err := config.Matchers()
		if err != nil {
			logger.Fatal("Invalid configuration", zap.String("config", cfgFile), zap.Error(err))
		}

		var fns []source.Function
		for _, path := range args {
			pathFns, err := source.ScanPath(ctx, logger, path, !vetJsonOutput)
			if err != nil {
				logger.Error("Error scanning path", zap.String("path", path), zap.Error(err))
				os.Exit(1)
			}
			fns = append(fns, pathFns...)
		}

		reports := vetFunctions(config, matchers, fns)
		printReports(logger, reports, vetJsonOutput, vetOutPath)

		if len(reports) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	vetCmd.Flags().BoolVar(&vetJsonOutput, "json", false, "Output reports in JSON format")
	vetCmd.Flags().StringVarP(&vetOutPath, "output", "o", "", "Output path (when using JSON)")
}

// vetFunctions checks every bound function and returns the mismatches.
func vetFunctions(config sigmatch.Config, matchers map[string]*sigmatch.Matcher, fns []source.Function) []formatter.Report {
	var reports []formatter.Report
	for _, fn := range fns {
		shapeName, ok := config.Functions[fn.Name]
		if !ok {
			continue
		}
		shaped := formatter.BuildReports(matchers[shapeName], config.Shapes[shapeName], []source.Function{fn})
		reports = append(reports, formatter.Mismatches(shaped)...)
	}
	return reports
}
