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

	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/log"
	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one executable unit of work over the working folder
type Operation interface {
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options contains the collaborators every operation needs
type Options struct {
	// Config is the validated scaling settings
	Config *config.Config

	// Backup preserves original bytes before any rewrite
	Backup *backup.Manager

	// StatusMgr tracks results and writes files
	StatusMgr *status.Manager

	// UserLogger prints the human-readable run report
	UserLogger *log.UserLogger

	// Logger receives structured diagnostics
	Logger *zerolog.Logger

	// KeepBackups stops restore from consuming the backups it reads
	KeepBackups bool
}

// validate checks the collaborators that every operation requires.
func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if err := o.Config.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	if o.Backup == nil {
		return errors.Errorf("backup manager is required")
	}
	if o.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if o.UserLogger == nil {
		return errors.Errorf("user logger is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}

// 📦 BaseOperation carries the shared collaborators
type BaseOperation struct {
	Config     *config.Config
	Backup     *backup.Manager
	StatusMgr  *status.Manager
	UserLogger *log.UserLogger
	Logger     *zerolog.Logger
}

// 🏭 NewBaseOperation builds the shared part of an operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Config:     opts.Config,
		Backup:     opts.Backup,
		StatusMgr:  opts.StatusMgr,
		UserLogger: opts.UserLogger,
		Logger:     opts.Logger,
	}
}
