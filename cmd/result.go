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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/kmesh/result"
)

// ResultCmd represents the result command
var ResultCmd = &cobra.Command{
	Use:   "result",
	Short: "Summarize a mesh table as id addressed arrays",
	Long: `
Loads the elements and points of a mesh table into arrays indexed by the ids
stored in the file and prints their sizes.

kmesh result -F model_out.lua`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var file string
		file, _ = cmd.Flags().GetString("resultFile")
		if len(file) == 0 {
			return fmt.Errorf("must supply a result file (-F, --resultFile) ending in .lua")
		}
		return RunResult(appFs, file, viper.GetBool("verbose"), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(ResultCmd)
	ResultCmd.Flags().StringP("resultFile", "F", "", "Mesh table to load")
}

func RunResult(fsys afero.Fs, path string, verbose bool, out io.Writer) (err error) {
	var (
		tb       *result.Table
		points   []result.Coords
		elements []result.Nodes
	)
	if tb, err = result.ReadTable(fsys, path); err != nil {
		return
	}
	if points, elements, err = tb.Arrays(); err != nil {
		return
	}
	elMin, elMax, ptMin, ptMax := tb.IDRanges()
	fmt.Fprintf(out, "elements: %d, ids %d to %d, array size %d\n", tb.NumElements(), elMin, elMax, len(elements))
	fmt.Fprintf(out, "points:   %d, ids %d to %d, array size %d\n", tb.NumPoints(), ptMin, ptMax, len(points))
	if verbose {
		for id, nodes := range elements {
			if nodes != (result.Nodes{}) {
				fmt.Fprintf(out, "element[%d] = %v\n", id, nodes[1:])
			}
		}
		for id, x := range points {
			fmt.Fprintf(out, "point[%d] = [%8.5f %8.5f]\n", id, x[1], x[2])
		}
	}
	return
}
