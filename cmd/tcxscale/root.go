package main

import (
	"context"
	"os"

	"github.com/CascadePass/TCXPowerScaler/cmd/tcxscale/opts"
	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/log"
	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile   string
	folder       string
	factor       float64
	pattern      string
	backupSuffix string
	verbose      bool
	yes          bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (default: .tcxscale[.yaml|.json|.hcl] in the current folder)")
	cmd.PersistentFlags().StringVarP(&folder, "folder", "f", "", "folder holding the TCX files (default: current folder)")
	cmd.PersistentFlags().Float64Var(&factor, "factor", 0, "scale factor to apply, e.g. 0.95 (default: prompt)")
	cmd.PersistentFlags().StringVarP(&pattern, "pattern", "p", "", `file pattern to match (default "*.tcx")`)
	cmd.PersistentFlags().StringVar(&backupSuffix, "suffix", "", `backup name suffix (default ".original")`)
	cmd.PersistentFlags().BoolVarP(&verbose, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
}

// initRootOpts wires logging and the shared collaborators. It runs
// after flag parsing, before every command except version.
func initRootOpts(cmd *cobra.Command, ro *opts.RootOpts) error {
	logger := log.Setup(os.Stderr, verbose)
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}

	ro.Config = cfg
	ro.Provider = config.NewInteractiveProvider()
	ro.Backup = backup.NewManager(cfg.BackupSuffix)
	ro.StatusMgr = status.NewManager()
	ro.UserLogger = log.NewUserLogger(ctx)
	ro.Logger = &logger
	return nil
}

// buildConfig layers the settings file under the flags: flags win,
// anything still unset falls back to its default. The working folder
// ends up at the process working directory when nothing names one.
func buildConfig(ctx context.Context) (*config.Config, error) {
	cfg := &config.Config{}

	path := configFile
	if path == "" {
		path = config.Find(ctx, ".")
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading settings: %w", err)
		}
		cfg = loaded
	}

	if folder != "" {
		cfg.WorkingFolder = folder
	}
	if factor != 0 {
		cfg.ScaleFactor = factor
	}
	if pattern != "" {
		cfg.Pattern = pattern
	}
	if backupSuffix != "" {
		cfg.BackupSuffix = backupSuffix
	}
	if yes {
		cfg.SkipConfirm = true
	}
	if verbose {
		cfg.Verbose = true
	}

	if cfg.WorkingFolder == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("resolving working folder: %w", err)
		}
		cfg.WorkingFolder = cwd
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}
	return cfg, nil
}
