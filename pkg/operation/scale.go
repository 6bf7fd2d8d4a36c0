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
	"github.com/CascadePass/TCXPowerScaler/pkg/tcx"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewScaleOperation creates the operation that rewrites every
// candidate's power samples by the configured factor.
func NewScaleOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Config.ScaleFactor <= 0 {
		return nil, errors.Errorf("scale factor is required")
	}
	return &scaleOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// ⚡ scaleOperation implements the scale operation
type scaleOperation struct {
	BaseOperation
}

// 🏃 Execute runs the batch. Files are processed one at a time, in
// name order; a file that fails is reported and skipped, never the
// whole batch.
func (op *scaleOperation) Execute(ctx context.Context) error {
	candidates, err := Candidates(ctx, op.Config, op.Backup)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		op.UserLogger.Warningf("no files matching %s in %q", op.Config.Pattern, op.Config.WorkingFolder)
		return nil
	}

	scaler := tcx.NewScaler(op.Config.ScaleFactor)
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("scaling cancelled: %w", err)
		}

		res := op.processFile(ctx, path, scaler)
		op.StatusMgr.Track(ctx, res)
		op.UserLogger.LogFileResult(ctx, res)
	}

	op.UserLogger.LogSummary(ctx, op.StatusMgr.Summarize(op.Config.WorkingFolder, op.Config.ScaleFactor))
	return nil
}

// 📄 processFile runs one file through load, backup, scale, and
// write-back. The backup is created from the raw on-disk bytes before
// the file is touched; if any step fails the file is left as it was
// and the failure lands in the result instead of an error return.
func (op *scaleOperation) processFile(ctx context.Context, path string, scaler *tcx.Scaler) status.FileResult {
	res := status.FileResult{Path: path}

	doc, err := tcx.Load(ctx, path)
	if err != nil {
		res.Status = status.StatusSkipped
		res.Err = err
		return res
	}

	backupPath, err := op.Backup.Create(ctx, path, doc.Raw)
	if err != nil {
		res.Status = status.StatusSkipped
		res.Err = errors.Errorf("creating backup: %w", err)
		return res
	}
	res.BackupPath = backupPath

	scaled := scaler.Scale(ctx, doc)
	res.Points = scaled.Points
	res.Total = scaled.Total
	res.Invalid = len(scaled.Invalid)

	out, err := doc.WriteToBytes()
	if err != nil {
		res.Status = status.StatusSkipped
		res.Err = errors.Errorf("serializing scaled document: %w", err)
		return res
	}

	if err := op.StatusMgr.WriteFileAtomic(ctx, path, out); err != nil {
		res.Status = status.StatusSkipped
		res.Err = errors.Errorf("writing scaled file: %w", err)
		return res
	}

	if res.Points > 0 {
		res.Status = status.StatusScaled
	} else {
		// Backed up and rewritten all the same, so a later run
		// behaves identically whether or not the file had power.
		res.Status = status.StatusNoPower
	}
	return res
}
