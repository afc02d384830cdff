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

	"github.com/spf13/cobra"

	"github.com/tissuemech/fesweep/readers"
	"github.com/tissuemech/fesweep/selections"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select <volumetric-mesh> <reference-surface>",
	Short: "Classify mesh regions into boundary condition groups",
	Long: `
Classifies the boundary triangles of a volumetric tetrahedral mesh into
Dirichlet (1), inner interface (2) and outer (3) groups, and labels every
tetrahedron as inside (1) or outside (2) the reference surface by winding
number. Writes surface_selections.txt and volume_selections.txt for the
downstream solver.

The Dirichlet threshold policy is a per-dataset convention; pick it to
match the mesh pair, it is not auto-detected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := selections.DefaultParameters()

		if deckFile, _ := cmd.Flags().GetString("inputParametersFile"); deckFile != "" {
			data, err := os.ReadFile(deckFile)
			if err != nil {
				return err
			}
			if err = params.Parse(data); err != nil {
				return fmt.Errorf("parsing %s: %w", deckFile, err)
			}
		}
		if cmd.Flags().Changed("policy") {
			params.Policy, _ = cmd.Flags().GetString("policy")
		}
		if cmd.Flags().Changed("coverage") {
			params.CoveragePercent, _ = cmd.Flags().GetFloat64("coverage")
		}
		if cmd.Flags().Changed("yTolerance") {
			params.YToleranceFactor, _ = cmd.Flags().GetFloat64("yTolerance")
		}
		if cmd.Flags().Changed("scale") {
			params.Scale, _ = cmd.Flags().GetFloat64("scale")
		}
		if cmd.Flags().Changed("surfaceOut") {
			params.SurfaceOutput, _ = cmd.Flags().GetString("surfaceOut")
		}
		if cmd.Flags().Changed("volumeOut") {
			params.VolumeOutput, _ = cmd.Flags().GetString("volumeOut")
		}
		params.Print()

		return runSelect(args[0], args[1], params)
	},
}

func runSelect(meshFile, surfaceFile string, params selections.Parameters) error {
	policy, err := params.BuildPolicy()
	if err != nil {
		return err
	}

	m, err := readers.ReadVolumeMesh(meshFile)
	if err != nil {
		return err
	}
	m.Scale(params.Scale)

	surf, err := readers.ReadSurfaceMesh(surfaceFile)
	if err != nil {
		return err
	}

	res, err := selections.Classify(m, surf, policy)
	if err != nil {
		return err
	}
	res.Summary.Print()

	return selections.WriteFiles(params.SurfaceOutput, params.VolumeOutput, res)
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for selection parameters")
	selectCmd.Flags().StringP("policy", "p", "coverage", "Dirichlet threshold policy: coverage, extent or line")
	selectCmd.Flags().Float64("coverage", selections.DefaultCoveragePercent, "coverage fraction of the surface x-extent (coverage policy)")
	selectCmd.Flags().Float64("yTolerance", selections.DefaultYToleranceFactor, "y tolerance fraction of the surface y-range (coverage policy)")
	selectCmd.Flags().Float64("scale", 1.0, "scale factor applied to volumetric mesh coordinates")
	selectCmd.Flags().String("surfaceOut", "surface_selections.txt", "surface selection output file")
	selectCmd.Flags().String("volumeOut", "volume_selections.txt", "volume selection output file")
}
