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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meshfree/espim/espim"
	"github.com/meshfree/espim/laminate"
	"github.com/meshfree/espim/mesh"
)

type AssembleModel struct {
	MeshFile     string
	LaminateFile string
	OutFile      string
	PerTria      bool
	Silent       bool
	Procs        int
	Profile      bool
}

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the global stiffness matrix of a shell mesh",
	Long: `Reads a triangular shell mesh (Nastran GRID/CTRIA3 deck) and a laminate
deck (YAML), attaches the laminate's A/B/D tensors per node or per triangle,
assembles the edge-smoothed global stiffness matrix and writes it in
MatrixMarket coordinate format.`,
	Run: func(cmd *cobra.Command, args []string) {
		am := &AssembleModel{}
		am.MeshFile, _ = cmd.Flags().GetString("mesh")
		am.LaminateFile, _ = cmd.Flags().GetString("laminate")
		am.OutFile, _ = cmd.Flags().GetString("out")
		am.PerTria, _ = cmd.Flags().GetBool("per-tria")
		am.Silent, _ = cmd.Flags().GetBool("silent")
		am.Procs, _ = cmd.Flags().GetInt("procs")
		am.Profile, _ = cmd.Flags().GetBool("profile")
		if err := RunAssemble(am); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func RunAssemble(am *AssembleModel) (err error) {
	if am.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	logger := zap.NewNop()
	if !am.Silent {
		if logger, err = zap.NewDevelopment(); err != nil {
			return
		}
		espim.SetLogger(logger)
	}
	sugar := logger.Sugar()

	sugar.Infof("reading mesh %s", am.MeshFile)
	m, err := mesh.ReadNastran(am.MeshFile)
	if err != nil {
		return
	}
	stack, err := laminate.ReadStackFile(am.LaminateFile)
	if err != nil {
		return
	}
	prop, err := stack.ABD()
	if err != nil {
		return
	}
	if am.PerTria {
		m.SetTriaProp(prop)
	} else {
		m.SetNodeProp(prop)
	}

	asm := espim.NewAssembler(espim.WithParallelDegree(am.Procs))
	start := time.Now()
	K, err := asm.Assemble(m, !am.PerTria)
	if err != nil {
		return
	}
	sugar.Infof("assembled in %v", time.Since(start))

	out, err := os.Create(am.OutFile)
	if err != nil {
		return
	}
	defer out.Close()
	if err = espim.WriteMatrixMarket(out, K); err != nil {
		return
	}
	sugar.Infof("wrote %s", am.OutFile)
	return
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("mesh", "m", "mesh.bdf", "Nastran input deck with GRID and CTRIA3 cards")
	assembleCmd.Flags().StringP("laminate", "l", "laminate.yaml", "laminate deck (materials and ply stack)")
	assembleCmd.Flags().StringP("out", "o", "K.mtx", "output MatrixMarket file")
	assembleCmd.Flags().Bool("per-tria", false, "attach properties per triangle instead of per node")
	assembleCmd.Flags().BoolP("silent", "s", false, "suppress progress messages")
	assembleCmd.Flags().IntP("procs", "p", runtime.NumCPU(), "parallel degree of the stiffness stage")
	assembleCmd.Flags().Bool("profile", false, "write a CPU profile next to the output")
}
