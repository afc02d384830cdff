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

	"github.com/spf13/cobra"

	"github.com/tissuemech/fesweep/sweep"
)

// gridgenCmd represents the gridgen command
var gridgenCmd = &cobra.Command{
	Use:   "gridgen",
	Short: "Generate parameter sweep solver configs and a job list",
	Long: `
Expands a YAML parameter grid into one solver config per parameter
combination plus a job_list.yaml manifest for the submit command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gridFile, _ := cmd.Flags().GetString("grid")
		baseDir, _ := cmd.Flags().GetString("baseDir")
		outputDir, _ := cmd.Flags().GetString("output")

		grid, err := sweep.LoadParameterGrid(gridFile)
		if err != nil {
			return err
		}

		fmt.Printf("Generating %d parameter combinations...\n", len(grid.Combinations()))
		jl, err := sweep.Generate(grid, baseDir, outputDir)
		if err != nil {
			return err
		}
		for i, job := range jl.Jobs {
			fmt.Printf("  %3d: %s -> %s\n", i+1, job.JobID, job.ConfigFile)
		}
		fmt.Printf("Wrote %d configs and job_list.yaml to %s\n", jl.TotalJobs, outputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridgenCmd)
	gridgenCmd.Flags().StringP("grid", "g", "configs/parameter_grid.yaml", "parameter grid YAML file")
	gridgenCmd.Flags().String("baseDir", ".", "directory the grid's run_config path is relative to")
	gridgenCmd.Flags().StringP("output", "o", "configs/generated", "output directory for generated configs")
}
