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

package operation

import (
	"context"

	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewRestoreOperation creates the operation that puts original
// bytes back in place from their backups.
func NewRestoreOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &restoreOperation{
		BaseOperation: NewBaseOperation(opts),
		keep:          opts.KeepBackups,
	}, nil
}

// ♻️ restoreOperation implements the restore operation
type restoreOperation struct {
	BaseOperation
	keep bool
}

// 🏃 Execute restores every candidate that has a backup. Candidates
// without one are left alone; a folder with no backups at all is
// reported, not an error.
func (op *restoreOperation) Execute(ctx context.Context) error {
	candidates, err := Candidates(ctx, op.Config, op.Backup)
	if err != nil {
		return err
	}

	restorable := 0
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("restore cancelled: %w", err)
		}

		backups, err := op.Backup.Backups(ctx, path)
		if err != nil {
			op.StatusMgr.Track(ctx, status.FileResult{
				Path:   path,
				Status: status.StatusSkipped,
				Err:    err,
			})
			continue
		}
		if len(backups) == 0 {
			op.Logger.Debug().Str("file", path).Msg("no backup, skipping restore")
			continue
		}
		restorable++

		res := status.FileResult{Path: path, BackupPath: backups[0]}
		if err := op.Backup.Restore(ctx, path, op.keep); err != nil {
			res.Status = status.StatusSkipped
			res.Err = err
		} else {
			res.Status = status.StatusRestored
		}
		op.StatusMgr.Track(ctx, res)
		op.UserLogger.LogFileResult(ctx, res)
	}

	if restorable == 0 {
		op.UserLogger.Warningf("no backups found in %q", op.Config.WorkingFolder)
		return nil
	}

	op.UserLogger.LogSummary(ctx, op.StatusMgr.Summarize(op.Config.WorkingFolder, op.Config.ScaleFactor))
	return nil
}
