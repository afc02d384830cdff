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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tissuemech/fesweep/results"
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete field snapshots except one kept iteration",
	Long: `
Removes opt_<level>_<iteration>_<points>.vtu/.vtm field snapshots from
every job directory, keeping only the snapshots of one iteration. Long
sweeps produce hundreds of gigabytes of these.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		resultsDir, _ := cmd.Flags().GetString("resultsDir")
		keep, _ := cmd.Flags().GetInt("keepIteration")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		deleted, kept, err := results.CleanAll(resultsDir, keep, dryRun, log)
		if err != nil {
			return err
		}
		log.Info("clean complete",
			zap.Int("deleted", deleted),
			zap.Int("kept", kept),
			zap.Bool("dry_run", dryRun))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().String("resultsDir", "results", "results directory holding job subdirectories")
	cleanCmd.Flags().Int("keepIteration", 10, "iteration whose snapshots are kept")
	cleanCmd.Flags().Bool("dry-run", false, "report what would be deleted without deleting")
}
