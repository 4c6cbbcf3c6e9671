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
	"io"
	"log"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/kmesh/InputParameters"
	"github.com/notargets/kmesh/geometry2D"
	"github.com/notargets/kmesh/mesh"
	"github.com/notargets/kmesh/utils"
)

type MeshRun struct {
	ModelFile  string
	OutputHead string
	ParamsFile string
	Suffix     string
	EmitTable  bool
	EmitImage  bool
	Profile    bool
	Verbose    bool
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Triangulate the points of a model file and export the mesh",
	Long: `
Reads the points of a model file, triangulates them and writes the mesh next
to the model as <model>_out.lua and <model>_out.ps. Without --lua or --ps
both files are written.

kmesh mesh -F model.lua --ps -o /tmp/model`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mr := &MeshRun{}
		if mr.ModelFile, err = cmd.Flags().GetString("modelFile"); err != nil {
			return
		}
		mr.OutputHead, _ = cmd.Flags().GetString("output")
		mr.ParamsFile, _ = cmd.Flags().GetString("params")
		if mr.ParamsFile == "" {
			mr.ParamsFile = viper.GetString("params")
		}
		mr.Suffix = viper.GetString("suffix")
		mr.EmitTable, _ = cmd.Flags().GetBool("lua")
		mr.EmitImage, _ = cmd.Flags().GetBool("ps")
		if !mr.EmitTable && !mr.EmitImage {
			mr.EmitTable, mr.EmitImage = true, true
		}
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		mr.Verbose = viper.GetBool("verbose")
		if len(mr.ModelFile) == 0 {
			return fmt.Errorf("must supply a model file (-F, --modelFile) ending in .lua")
		}
		if mr.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		}
		return RunMesh(appFs, mr, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("modelFile", "F", "", "Model file to read, a Lua table with dimension, water and points")
	MeshCmd.Flags().StringP("output", "o", "", "Output path without extension, replaces <model>_out")
	MeshCmd.Flags().StringP("params", "P", "", "YAML file with render parameters like:\n\t- PageSize\n\t- EdgeColor")
	MeshCmd.Flags().Bool("lua", false, "write the mesh table")
	MeshCmd.Flags().Bool("ps", false, "write the PostScript picture")
	MeshCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
}

func RunMesh(fsys afero.Fs, mr *MeshRun, out io.Writer) (err error) {
	var (
		m       *mesh.Model
		rp      *InputParameters.RenderParameters
		written []string
	)
	if rp, err = loadParams(fsys, mr.ParamsFile); err != nil {
		return
	}
	if m, err = mesh.ReadModel(fsys, mr.ModelFile); err != nil {
		return
	}
	if mr.Verbose {
		log.Printf("read %d points from %s", len(m.Points), mr.ModelFile)
	}
	if err = geometry2D.Triangulate(m); err != nil {
		return
	}
	if mr.Verbose {
		m.PrintStatistics()
		rp.Print()
	}
	if written, err = mesh.ExportAll(fsys, m, mesh.ExportOptions{
		EmitTable:    mr.EmitTable,
		EmitImage:    mr.EmitImage,
		OverridePath: mr.OutputHead,
		Suffix:       mr.Suffix,
		Params:       rp,
	}); err != nil {
		return
	}
	if mr.Verbose {
		log.Printf("memory: %s", utils.GetMemUsage())
	}
	max, ave := mesh.FlatRatioStats(m)
	fmt.Fprintf(out, "%d triangles, flat ratio max %8.5f average %8.5f\n", m.ValidTriangles(), max, ave)
	for _, path := range written {
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return
}

func loadParams(fsys afero.Fs, path string) (rp *InputParameters.RenderParameters, err error) {
	rp = InputParameters.NewRenderParameters()
	if len(path) == 0 {
		return
	}
	var data []byte
	if data, err = afero.ReadFile(fsys, path); err != nil {
		return nil, err
	}
	if err = rp.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return
}
