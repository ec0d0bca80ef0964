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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/ibtargets/InputParameters"
	"github.com/notargets/ibtargets/model_problems/HeartWall"
	"github.com/notargets/ibtargets/readfiles"
	"github.com/notargets/ibtargets/types"
	"github.com/notargets/ibtargets/utils"
)

// HeartWallCmd represents the heartwall command
var HeartWallCmd = &cobra.Command{
	Use:   "heartwall",
	Short: "Step prescribed target point motion for a pulsing heart wall",
	Long: `
Loads a target point table and steps it through time, moving every target
point between the two configurations of a reference positions file.

ibtargets heartwall -I heart.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip      *InputParameters.InputParametersIB
			icFile  = viper.GetString("heartwall.inputConditionsFile")
			verbose = viper.GetBool("verbose")
		)
		if len(icFile) == 0 {
			exampleFile := `
########################################
Title: "Pulsing Heart"
TargetFile: heart.target
ReferenceFile: All_Positions.txt
FinalTime: 0.2
DT: 1.e-4
OutputEvery: 100
CacheReference: false
########################################
`
			return fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)\nExample File:%s", exampleFile)
		}
		if ip, err = InputParameters.ReadInputParameters(icFile); err != nil {
			return
		}
		if verbose {
			ip.Print()
		}
		if viper.GetBool("heartwall.profile") {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
		logger = kitlog.With(logger, "cmd", "heartwall")
		return runToFile(ip, logger, verbose)
	},
}

func init() {
	rootCmd.AddCommand(HeartWallCmd)
	HeartWallCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- TargetFile\n\t- ReferenceFile\n\t- FinalTime, DT")
	HeartWallCmd.Flags().Bool("profile", false, "write a CPU profile of the run to the current directory")
	_ = viper.BindPFlag("heartwall.inputConditionsFile", HeartWallCmd.Flags().Lookup("inputConditionsFile"))
	_ = viper.BindPFlag("heartwall.profile", HeartWallCmd.Flags().Lookup("profile"))
}

// runToFile runs to ip.OutputFile when one is named, a failed flush or close
// of the output fails the run.
func runToFile(ip *InputParameters.InputParametersIB, logger kitlog.Logger, verbose bool) (err error) {
	if len(ip.OutputFile) == 0 {
		return RunHeartWall(ip, logger, nil, verbose)
	}
	var f *os.File
	if f, err = os.Create(ip.OutputFile); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", ip.OutputFile, cerr)
		}
	}()
	bw := bufio.NewWriter(f)
	if err = RunHeartWall(ip, logger, bw, verbose); err != nil {
		return
	}
	if err = bw.Flush(); err != nil {
		err = fmt.Errorf("writing %s: %w", ip.OutputFile, err)
	}
	return
}

// RunHeartWall drives the target point update from t = 0 to FinalTime, one
// call per step. When out is non nil the positions of every output step are
// written as "step time ID X Y" rows. The parameters are validated first.
func RunHeartWall(ip *InputParameters.InputParametersIB, logger kitlog.Logger, out io.Writer, verbose bool) (err error) {
	var (
		tt      *types.TargetTable
		opts    []HeartWall.Option
		nSteps  int
		updater *HeartWall.Updater
	)
	if err = ip.Validate(); err != nil {
		return
	}
	nSteps = int(math.Round(ip.FinalTime / ip.DT))
	if tt, err = readfiles.ReadTargetTable(ip.TargetFile); err != nil {
		return
	}
	if ip.CacheReference {
		opts = append(opts, HeartWall.WithReferenceCache())
	}
	updater = HeartWall.NewUpdater(opts...)
	_ = logger.Log("msg", "starting run", "title", ip.Title, "targets", tt.Len(), "steps", nSteps)
	for step := 0; step <= nSteps; step++ {
		currentTime := float64(step) * ip.DT
		if tt, err = updater.Update(ip.DT, currentTime, tt, ip.ReferenceFile); err != nil {
			_ = logger.Log("msg", "update failed", "step", step, "time", currentTime, "err", err)
			return
		}
		if step%ip.OutputEvery != 0 && step != nSteps {
			continue
		}
		X, Y := tt.Positions()
		if !utils.IsFinite(X) || !utils.IsFinite(Y) {
			return fmt.Errorf("non finite target position at step %d, time %v", step, currentTime)
		}
		if verbose {
			phase, tau := HeartWall.Phase(currentTime)
			_ = logger.Log("step", step, "time", currentTime, "phase", phase, "tau", tau)
		}
		if out != nil {
			for i, tp := range tt.Points {
				if _, err = fmt.Fprintf(out, "%d %s %d %s %s\n", step, readfiles.FormatCoordinate(currentTime),
					tp.ID, readfiles.FormatCoordinate(X[i]), readfiles.FormatCoordinate(Y[i])); err != nil {
					return
				}
			}
		}
	}
	_ = logger.Log("msg", "run complete", "steps", nSteps, "mem", utils.GetMemUsage())
	return
}
