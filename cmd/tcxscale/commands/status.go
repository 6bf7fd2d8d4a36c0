package commands

import (
	"fmt"

	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/opts"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates the status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Preview what a scale run would touch",
		Long: `Status walks the working folder without writing anything.
It will:
1. List every file a scale run would consider
2. Count the power samples in each and flag unparseable files
3. Show which files already have a backup from an earlier run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			ro.UserLogger.Header(fmt.Sprintf("previewing %s", ro.Config.WorkingFolder))

			op, err := operation.NewStatusOperation(operation.Options{
				Config:     ro.Config,
				Backup:     ro.Backup,
				StatusMgr:  ro.StatusMgr,
				UserLogger: ro.UserLogger,
				Logger:     ro.Logger,
			})
			if err != nil {
				return errors.Errorf("creating status operation: %w", err)
			}

			return operation.NewRunner(ro.Logger).Run(ctx, op)
		},
	}

	return cmd
}
