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
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tissuemech/fesweep/slurm"
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Stage sweep job directories and submit them to SLURM",
	Long: `
Creates one result directory per job in the manifest, stages the solver
config and base data files into it, fills the batch script template and
hands it to sbatch. Use --dry-run to stage without submitting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		opts := slurm.Options{}
		opts.JobListPath, _ = cmd.Flags().GetString("jobList")
		opts.ConfigDir, _ = cmd.Flags().GetString("configDir")
		opts.BaseDataDir, _ = cmd.Flags().GetString("baseDataDir")
		opts.ResultsDir, _ = cmd.Flags().GetString("resultsDir")
		opts.TemplatePath, _ = cmd.Flags().GetString("template")
		opts.BuildDirs.Solver, _ = cmd.Flags().GetString("solverBuildDir")
		opts.BuildDirs.MMG, _ = cmd.Flags().GetString("mmgBuildDir")
		opts.BuildDirs.FTetWild, _ = cmd.Flags().GetString("ftetwildBuildDir")
		opts.Params.Walltime, _ = cmd.Flags().GetString("walltime")
		opts.Params.Nodes, _ = cmd.Flags().GetString("nodes")
		opts.Params.CPUs, _ = cmd.Flags().GetString("cpus")
		opts.Params.Memory, _ = cmd.Flags().GetString("memory")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.SkipExisting, _ = cmd.Flags().GetBool("skip-existing")
		opts.MaxJobs, _ = cmd.Flags().GetInt("max-jobs")

		s := slurm.NewSubmitter(opts, log)
		n, err := s.SubmitAll(context.Background())
		if err != nil {
			return err
		}
		log.Info("done", zap.Int("jobs", n), zap.Bool("dry_run", opts.DryRun))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().String("jobList", "configs/generated/job_list.yaml", "job list manifest")
	submitCmd.Flags().String("configDir", "configs/generated", "directory holding generated run configs")
	submitCmd.Flags().String("baseDataDir", "", "base data directory staged into every job")
	submitCmd.Flags().String("resultsDir", "results", "results directory")
	submitCmd.Flags().String("template", "", "batch script template (default: built-in)")
	submitCmd.Flags().String("solverBuildDir", "", "path to the solver build directory")
	submitCmd.Flags().String("mmgBuildDir", "", "path to the mmg build directory")
	submitCmd.Flags().String("ftetwildBuildDir", "", "path to the ftetwild build directory")
	submitCmd.Flags().String("walltime", "06:00:00", "wall time per job")
	submitCmd.Flags().String("nodes", "1", "nodes per job")
	submitCmd.Flags().String("cpus", "16", "CPUs per job")
	submitCmd.Flags().String("memory", "64G", "memory per job")
	submitCmd.Flags().Int("max-jobs", 0, "maximum number of jobs to submit, 0 for all")
	submitCmd.Flags().Bool("dry-run", false, "stage job directories without submitting")
	submitCmd.Flags().Bool("skip-existing", false, "skip jobs whose result directory exists")
	submitCmd.MarkFlagRequired("solverBuildDir")
}
