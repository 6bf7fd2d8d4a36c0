package commands

import (
	"fmt"

	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/opts"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd(ro *opts.RootOpts) *cobra.Command {
	var keepBackups bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Put original files back from their backups",
		Long: `Restore copies each file's oldest backup back over the scaled
file, undoing every scale run since that backup was made. The consumed
backup is removed unless --keep-backups is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "restore").Logger().WithContext(ctx)

			ro.UserLogger.Header(fmt.Sprintf("restoring %s", ro.Config.WorkingFolder))

			op, err := operation.NewRestoreOperation(operation.Options{
				Config:      ro.Config,
				Backup:      ro.Backup,
				StatusMgr:   ro.StatusMgr,
				UserLogger:  ro.UserLogger,
				Logger:      ro.Logger,
				KeepBackups: keepBackups,
			})
			if err != nil {
				return errors.Errorf("creating restore operation: %w", err)
			}

			return operation.NewRunner(ro.Logger).Run(ctx, op)
		},
	}

	cmd.Flags().BoolVar(&keepBackups, "keep-backups", false, "leave backups in place after restoring")

	return cmd
}
