// Copyright 2025 CascadePass
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/commands"
	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/opts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "tcxscale",
		Short: "Scale the power readings recorded in TCX activity files",
		Long: `tcxscale multiplies every Watts sample in a folder of TCX activity
files by a scale factor, keeping a byte-exact backup of every original
next to the file it came from. Typical use is correcting activities
recorded with a power meter that read consistently high or low.`,
		// Failures are reported through the user logger below, not
		// cobra's default printer.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRootOpts(cmd, ro)
		},
	}
	addRootFlags(rootCmd)

	// Bare tcxscale runs the scale command
	scaleCmd := commands.NewScaleCmd(ro)
	rootCmd.RunE = scaleCmd.RunE

	rootCmd.AddCommand(
		scaleCmd,
		commands.NewStatusCmd(ro),
		commands.NewRestoreCmd(ro),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// The user logger only exists once flag parsing succeeded
		if ro.UserLogger != nil {
			ro.UserLogger.Error(err.Error())
		} else {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}
