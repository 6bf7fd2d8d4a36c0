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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/log"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/CascadePass/TCXPowerScaler/pkg/testutils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 createTestEnv creates a test environment rooted in a temp folder
func createTestEnv(t *testing.T) (context.Context, operation.Options, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		ScaleFactor:   0.5,
		WorkingFolder: t.TempDir(),
		Pattern:       config.DefaultPattern,
		BackupSuffix:  config.DefaultBackupSuffix,
	}

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	console := &bytes.Buffer{}
	opts := operation.Options{
		Config:     cfg,
		Backup:     backup.NewManager(cfg.BackupSuffix),
		StatusMgr:  status.NewManager(),
		UserLogger: log.NewUserLoggerTo(ctx, console),
		Logger:     &logger,
	}
	return ctx, opts, console
}

// 🧪 TestScaleOperation runs the batch end to end on real files
func TestScaleOperation(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	original := testutils.SimpleTCX("100", "200", "abc")
	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", original)

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	// Numeric samples are halved, the corrupt one survives verbatim
	scaled, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(scaled), "<ns3:Watts>50</ns3:Watts>")
	assert.Contains(t, string(scaled), "<ns3:Watts>100</ns3:Watts>")
	assert.Contains(t, string(scaled), "<ns3:Watts>abc</ns3:Watts>")

	// The backup holds the untouched original bytes
	backupBytes, err := os.ReadFile(path + config.DefaultBackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, string(backupBytes))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.Equal(t, status.StatusScaled, results[0].Status)
	assert.Equal(t, 2, results[0].Points)
	assert.Equal(t, int64(150), results[0].Total)
	assert.Equal(t, 1, results[0].Invalid)

	out := console.String()
	assert.Contains(t, out, "ride.tcx")
	assert.Contains(t, out, "2 points, avg 75.0W")
	assert.Contains(t, out, "1 scaled, 0 without power, 0 skipped")
}

// 🧪 TestScaleOperation_OneBadFileDoesNotStopTheBatch verifies per-file
// isolation: a file that cannot be parsed is reported and the rest of
// the folder is still processed.
func TestScaleOperation_OneBadFileDoesNotStopTheBatch(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	testutils.WriteTCX(t, opts.Config.WorkingFolder, "a.tcx", testutils.SimpleTCX("100"))
	testutils.WriteTCX(t, opts.Config.WorkingFolder, "broken.tcx", "<TrainingCenterDatabase><Unclosed")
	testutils.WriteTCX(t, opts.Config.WorkingFolder, "z.tcx", testutils.SimpleTCX("300"))

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 3)

	byName := map[string]status.FileResult{}
	for _, res := range results {
		byName[filepath.Base(res.Path)] = res
	}
	assert.Equal(t, status.StatusScaled, byName["a.tcx"].Status)
	assert.Equal(t, status.StatusSkipped, byName["broken.tcx"].Status)
	require.Error(t, byName["broken.tcx"].Err)
	assert.Equal(t, status.StatusScaled, byName["z.tcx"].Status)

	// The broken file was neither rewritten nor backed up
	raw, err := os.ReadFile(filepath.Join(opts.Config.WorkingFolder, "broken.tcx"))
	require.NoError(t, err)
	assert.Equal(t, "<TrainingCenterDatabase><Unclosed", string(raw))
	_, err = os.Stat(filepath.Join(opts.Config.WorkingFolder, "broken.tcx"+config.DefaultBackupSuffix))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, console.String(), "2 scaled, 0 without power, 1 skipped")
}

// 🧪 TestScaleOperation_FileWithoutPower still backs up and rewrites
func TestScaleOperation_FileWithoutPower(t *testing.T) {
	ctx, opts, _ := createTestEnv(t)

	content := testutils.TCXContent(testutils.TCXOptions{Prefix: "ns3", BarePoints: 3})
	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "walk.tcx", content)

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.Equal(t, status.StatusNoPower, results[0].Status)
	assert.Zero(t, results[0].Points)

	_, err = os.Stat(path + config.DefaultBackupSuffix)
	assert.NoError(t, err, "files without power are still backed up")
}

// 🧪 TestScaleOperation_EmptyFolder reports and succeeds
func TestScaleOperation_EmptyFolder(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Empty(t, opts.StatusMgr.Results())
	assert.Contains(t, console.String(), "no files matching")
}

// 🧪 TestScaleOperation_RepeatRunScalesAgain documents that scaling is
// not idempotent: each run compounds, and each run gets its own backup.
func TestScaleOperation_RepeatRunScalesAgain(t *testing.T) {
	ctx, opts, _ := createTestEnv(t)

	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", testutils.SimpleTCX("100"))

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))
	require.NoError(t, op.Execute(ctx))

	// Two passes at 0.5 leave a quarter of the original power
	scaled, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(scaled), "<ns3:Watts>25</ns3:Watts>")

	// The first backup kept the plain name, the second got a token
	backups, err := opts.Backup.Backups(ctx, path)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, path+config.DefaultBackupSuffix, backups[0])

	plain, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Contains(t, string(plain), "<ns3:Watts>100</ns3:Watts>")
}

// 🧪 TestScaleOperation_Cancelled stops between files
func TestScaleOperation_Cancelled(t *testing.T) {
	ctx, opts, _ := createTestEnv(t)
	testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", testutils.SimpleTCX("100"))

	op, err := operation.NewScaleOperation(opts)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = op.Execute(cancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scaling cancelled")
}

// 🧪 TestNewScaleOperation_Validation rejects incomplete options
func TestNewScaleOperation_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*operation.Options)
		expectedError string
	}{
		{
			name:          "missing_config",
			mutate:        func(o *operation.Options) { o.Config = nil },
			expectedError: "config is required",
		},
		{
			name:          "invalid_config",
			mutate:        func(o *operation.Options) { o.Config.ScaleFactor = -2 },
			expectedError: "scale_factor must be greater than zero",
		},
		{
			name:          "missing_backup_manager",
			mutate:        func(o *operation.Options) { o.Backup = nil },
			expectedError: "backup manager is required",
		},
		{
			name:          "missing_status_manager",
			mutate:        func(o *operation.Options) { o.StatusMgr = nil },
			expectedError: "status manager is required",
		},
		{
			name:          "missing_user_logger",
			mutate:        func(o *operation.Options) { o.UserLogger = nil },
			expectedError: "user logger is required",
		},
		{
			name:          "missing_logger",
			mutate:        func(o *operation.Options) { o.Logger = nil },
			expectedError: "logger is required",
		},
		{
			name:          "unset_factor",
			mutate:        func(o *operation.Options) { o.Config.ScaleFactor = 0 },
			expectedError: "scale factor is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts, _ := createTestEnv(t)
			tt.mutate(&opts)

			_, err := operation.NewScaleOperation(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
