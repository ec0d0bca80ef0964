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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/ibtargets/readfiles"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert [structure ...]",
	Short: "Convert legacy .vertex_OLD point files to .vertex files",
	Long: `
Reads <structure>.vertex_OLD, shifts every point by the legacy frame
correction (0.0125, 0.035) and writes <structure>.vertex with a count header
and 16 significant digit coordinates.

ibtargets convert -s heart`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			names = args
			opts  []readfiles.ConvertOption
		)
		if s := viper.GetString("convert.structure"); len(s) != 0 {
			names = append([]string{s}, names...)
		}
		if len(names) == 0 {
			return fmt.Errorf("must supply a structure name (-s, --structure) or positional argument")
		}
		opts = append(opts, readfiles.WithVerbose(viper.GetBool("verbose")))
		if viper.GetBool("convert.graph") {
			delay := time.Duration(viper.GetInt("convert.delay")) * time.Millisecond
			opts = append(opts, readfiles.WithPlot(readfiles.NewChartPlotHook(delay)))
		}
		for _, name := range names {
			if err = readfiles.Convert(name, opts...); err != nil {
				return
			}
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().StringP("structure", "s", "", "structure name, reads <name>.vertex_OLD and writes <name>.vertex")
	ConvertCmd.Flags().BoolP("graph", "g", false, "display the converted points")
	ConvertCmd.Flags().IntP("delay", "d", 5000, "milliseconds to hold each plotted structure on screen")
	_ = viper.BindPFlag("convert.structure", ConvertCmd.Flags().Lookup("structure"))
	_ = viper.BindPFlag("convert.graph", ConvertCmd.Flags().Lookup("graph"))
	_ = viper.BindPFlag("convert.delay", ConvertCmd.Flags().Lookup("delay"))
}
