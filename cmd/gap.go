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
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/thermogap/gapcond/InputParameters"
	"github.com/thermogap/gapcond/model_problems/GapHeat"
)

// GapCmd represents the gap command
var GapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Gap conductance model problems",
	Long: `
Evaluates gap conductance over a pair of opposed surfaces in both the node
based and quadrature (search) based modes and prints the per point results,

gapcond gap -c 1 -n 50`,
	Run: func(cmd *cobra.Command, args []string) {
		mg := &ModelGap{}
		caseInt, _ := cmd.Flags().GetInt("case")
		mg.Case = GapHeat.CaseType(caseInt)
		mg.N, _ = cmd.Flags().GetInt("npoints")
		mg.ParallelDegree, _ = cmd.Flags().GetInt("parallel")
		mg.CaseFile, _ = cmd.Flags().GetString("input")
		mg.Emissivity1, _ = cmd.Flags().GetFloat64("emissivity1")
		mg.Emissivity2, _ = cmd.Flags().GetFloat64("emissivity2")
		mg.Profile, _ = cmd.Flags().GetBool("profile")
		RunGap(mg)
	},
}

func init() {
	rootCmd.AddCommand(GapCmd)
	GapCmd.Flags().IntP("case", "c", 0, "model problem: 0 = Plate Pair, 1 = Concentric Cylinders, 2 = Concentric Spheres")
	GapCmd.Flags().IntP("npoints", "n", 20, "number of evaluation points on the near surface")
	GapCmd.Flags().IntP("parallel", "p", runtime.NumCPU(), "number of goroutines used for the point sweep")
	GapCmd.Flags().StringP("input", "i", "", "YAML case file with gap parameters")
	GapCmd.Flags().Float64("emissivity1", 0, "near surface emissivity, 0 disables radiation")
	GapCmd.Flags().Float64("emissivity2", 0, "far surface emissivity, 0 disables radiation")
	GapCmd.Flags().Bool("profile", false, "write a CPU profile for the point sweep")
}

type ModelGap struct {
	Case                     GapHeat.CaseType
	N, ParallelDegree        int
	CaseFile                 string
	Emissivity1, Emissivity2 float64
	Profile                  bool
}

func RunGap(mg *ModelGap) {
	params := InputParameters.NewGapParameters()
	if mg.CaseFile != "" {
		data, err := os.ReadFile(mg.CaseFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err = params.Parse(data); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	if mg.Emissivity1 != 0 {
		params.Emissivity1 = mg.Emissivity1
	}
	if mg.Emissivity2 != 0 {
		params.Emissivity2 = mg.Emissivity2
	}
	if mg.Profile {
		defer profile.Start().Stop()
	}
	gh := GapHeat.NewGapHeat(mg.Case, mg.N, mg.ParallelDegree, params)
	if _, _, _, err := gh.Run(true); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
