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
	"os"
	"testing"

	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/CascadePass/TCXPowerScaler/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestStatusOperation previews the folder without touching disk
func TestStatusOperation(t *testing.T) {
	ctx, opts, console := createTestEnv(t)
	opts.Config.ScaleFactor = 0 // status runs fine before a factor is chosen

	content := testutils.SimpleTCX("100", "200", "abc")
	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", content)

	op, err := operation.NewStatusOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	// Dry run: same bytes on disk, no backup created
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
	_, err = os.Stat(path + config.DefaultBackupSuffix)
	assert.True(t, os.IsNotExist(err))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.Equal(t, status.StatusPending, results[0].Status)
	assert.Equal(t, 2, results[0].Points)
	assert.Equal(t, 1, results[0].Invalid)
	assert.Empty(t, results[0].BackupPath)

	assert.Contains(t, console.String(), "pending")
}

// 🧪 TestStatusOperation_ReportsExistingBackup flags files a previous
// run already preserved.
func TestStatusOperation_ReportsExistingBackup(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	content := testutils.SimpleTCX("100")
	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", content)
	_, err := opts.Backup.Create(ctx, path, []byte(content))
	require.NoError(t, err)

	op, err := operation.NewStatusOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.Equal(t, path+config.DefaultBackupSuffix, results[0].BackupPath)
	assert.False(t, results[0].Drifted, "identical bytes mean the file was not rescaled")
	assert.Contains(t, console.String(), "backup exists")
	assert.NotContains(t, console.String(), "modified since backup")
}

// 🧪 TestStatusOperation_FlagsDriftFromBackup warns when the working
// file no longer matches the bytes its backup preserved.
func TestStatusOperation_FlagsDriftFromBackup(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	path := testutils.WriteTCX(t, opts.Config.WorkingFolder, "ride.tcx", testutils.SimpleTCX("50"))
	_, err := opts.Backup.Create(ctx, path, []byte(testutils.SimpleTCX("100")))
	require.NoError(t, err)

	op, err := operation.NewStatusOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.True(t, results[0].Drifted)
	assert.Contains(t, console.String(), "modified since backup")
}

// 🧪 TestStatusOperation_BrokenFile is reported, not fatal
func TestStatusOperation_BrokenFile(t *testing.T) {
	ctx, opts, _ := createTestEnv(t)

	testutils.WriteTCX(t, opts.Config.WorkingFolder, "broken.tcx", "this is not a tcx file")

	op, err := operation.NewStatusOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	results := opts.StatusMgr.Results()
	require.Len(t, results, 1)
	assert.Equal(t, status.StatusSkipped, results[0].Status)
	require.Error(t, results[0].Err)
}

// 🧪 TestStatusOperation_EmptyFolder reports and succeeds
func TestStatusOperation_EmptyFolder(t *testing.T) {
	ctx, opts, console := createTestEnv(t)

	op, err := operation.NewStatusOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Empty(t, opts.StatusMgr.Results())
	assert.Contains(t, console.String(), "no files matching")
}
