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

// 📦 NewStatusOperation creates the dry-run operation: it reports what
// a scale run would do without touching a single byte on disk.
func NewStatusOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &statusOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 🔍 statusOperation implements the dry-run report
type statusOperation struct {
	BaseOperation
}

// 🏃 Execute parses every candidate in memory and reports its point
// count, parse health, and whether a backup already exists. Files on
// disk are only ever read.
func (op *statusOperation) Execute(ctx context.Context) error {
	candidates, err := Candidates(ctx, op.Config, op.Backup)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		op.UserLogger.Warningf("no files matching %s in %q", op.Config.Pattern, op.Config.WorkingFolder)
		return nil
	}

	// With no factor configured the preview keeps values as they are;
	// scaling by 1 in memory still counts and validates every sample.
	factor := op.Config.ScaleFactor
	if factor == 0 {
		factor = 1
	}
	scaler := tcx.NewScaler(factor)

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("status cancelled: %w", err)
		}

		res := op.previewFile(ctx, path, scaler)
		op.StatusMgr.Track(ctx, res)
		op.UserLogger.LogFileResult(ctx, res)
	}

	op.UserLogger.LogSummary(ctx, op.StatusMgr.Summarize(op.Config.WorkingFolder, factor))
	return nil
}

// 📄 previewFile inspects one candidate without writing anything.
func (op *statusOperation) previewFile(ctx context.Context, path string, scaler *tcx.Scaler) status.FileResult {
	res := status.FileResult{Path: path, Status: status.StatusPending}

	if backups, err := op.Backup.Backups(ctx, path); err == nil && len(backups) > 0 {
		res.BackupPath = backups[0]
	}

	doc, err := tcx.Load(ctx, path)
	if err != nil {
		res.Status = status.StatusSkipped
		res.Err = err
		return res
	}

	// A file whose bytes have drifted from its oldest backup has been
	// scaled at least once already; worth flagging before compounding.
	if res.BackupPath != "" {
		if same, err := op.Backup.Matches(ctx, res.BackupPath, doc.Raw); err == nil && !same {
			res.Drifted = true
		}
	}

	// The document is discarded afterwards, so scaling it in memory
	// is free and exercises exactly the code a real run would.
	scaled := scaler.Scale(ctx, doc)
	res.Points = scaled.Points
	res.Total = scaled.Total
	res.Invalid = len(scaled.Invalid)
	return res
}
