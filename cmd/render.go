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
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/kmesh/InputParameters"
	"github.com/notargets/kmesh/mesh"
)

type RenderRun struct {
	MeshFile   string
	ImageFile  string
	Format     string
	ParamsFile string
}

// RenderCmd represents the render command
var RenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw an exported mesh table as an image",
	Long: `
Reads a mesh table written by "kmesh mesh" and draws it. The format follows
the output extension: ps, svg, pdf, png or eps.

kmesh render -F model_out.lua -o model.svg`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rr := &RenderRun{}
		rr.MeshFile, _ = cmd.Flags().GetString("meshFile")
		rr.ImageFile, _ = cmd.Flags().GetString("output")
		rr.Format, _ = cmd.Flags().GetString("format")
		rr.ParamsFile, _ = cmd.Flags().GetString("params")
		if rr.ParamsFile == "" {
			rr.ParamsFile = viper.GetString("params")
		}
		if len(rr.MeshFile) == 0 || len(rr.ImageFile) == 0 {
			return fmt.Errorf("must supply a mesh table (-F, --meshFile) and an image file (-o, --output)")
		}
		return RunRender(appFs, rr, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(RenderCmd)
	RenderCmd.Flags().StringP("meshFile", "F", "", "Mesh table to draw, as written by the mesh command")
	RenderCmd.Flags().StringP("output", "o", "", "Image file to write")
	RenderCmd.Flags().StringP("format", "f", "", "Image format, taken from the output extension when empty")
	RenderCmd.Flags().StringP("params", "P", "", "YAML file with render parameters")
}

func RunRender(fsys afero.Fs, rr *RenderRun, out io.Writer) (err error) {
	var (
		m  *mesh.Model
		rp *InputParameters.RenderParameters
	)
	if rp, err = loadParams(fsys, rr.ParamsFile); err != nil {
		return
	}
	if m, err = mesh.ReadExport(fsys, rr.MeshFile); err != nil {
		return
	}
	format := rr.Format
	if format == "" {
		format = filepath.Ext(rr.ImageFile)
	}
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == strings.TrimPrefix(mesh.ImageExt, ".") {
		err = mesh.RenderPS(fsys, m, rr.ImageFile, rp)
	} else {
		err = mesh.RenderImage(fsys, m, rr.ImageFile, format, rp)
	}
	if err != nil {
		return
	}
	fmt.Fprintf(out, "wrote %s\n", rr.ImageFile)
	return
}
