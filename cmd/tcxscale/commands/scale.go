package commands

import (
	"fmt"

	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/opts"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewScaleCmd creates the scale command
func NewScaleCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Scale every power reading in the working folder",
		Long: `Scale rewrites the Watts samples of every matching TCX file.
It will:
1. Resolve the scale factor, prompting if none was given
2. Back up each file byte for byte before touching it
3. Multiply every valid power sample and round to a whole number
4. Report per-file results and a batch summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "scale").Logger().WithContext(ctx)

			cfg, err := ro.Provider.Resolve(ctx, ro.Config)
			if err != nil {
				return errors.Errorf("resolving settings: %w", err)
			}

			ro.UserLogger.Header(fmt.Sprintf("scaling %s by %v", cfg.WorkingFolder, cfg.ScaleFactor))

			op, err := operation.NewScaleOperation(operation.Options{
				Config:     cfg,
				Backup:     ro.Backup,
				StatusMgr:  ro.StatusMgr,
				UserLogger: ro.UserLogger,
				Logger:     ro.Logger,
			})
			if err != nil {
				return errors.Errorf("creating scale operation: %w", err)
			}

			return operation.NewRunner(ro.Logger).Run(ctx, op)
		},
	}

	return cmd
}
