/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tissuemech/fesweep/results"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [log-file]",
	Short: "Extract optimization metrics from solver logs into CSV files",
	Long: `
Parses the solver log of every job directory under the results directory
and writes optimization_summary.csv, objective_progression.csv and a
per-job detail CSV to the output directory.

With a log file argument, parses just that file and writes a single
detail CSV next to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return extractSingle(args[0])
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		resultsDir, _ := cmd.Flags().GetString("resultsDir")
		outputDir, _ := cmd.Flags().GetString("output")
		return results.ExtractAll(results.GrammarV1(), resultsDir, outputDir, log)
	},
}

func extractSingle(logFile string) error {
	f, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := results.Parse(results.GrammarV1(), f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", logFile, err)
	}
	fmt.Printf("%d simulations, %d objective samples, max %d control points\n",
		len(report.Records), len(report.Objectives), report.MaxControlPoints)

	outFile := strings.TrimSuffix(logFile, ".log") + ".csv"
	out, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer out.Close()
	if err = results.WriteDetailCSV(out, report.Records); err != nil {
		return err
	}
	fmt.Println("Wrote", outFile)
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().String("resultsDir", "results", "results directory holding job subdirectories")
	extractCmd.Flags().StringP("output", "o", "analysis", "output directory for CSV files")
}
