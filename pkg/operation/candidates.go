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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Candidates enumerates the files an operation will consider: the
// direct children of the working folder whose names match the pattern,
// compared case-insensitively. Subdirectories are never descended
// into, backups never qualify, and a blank or missing folder yields an
// empty list rather than an error. The result is sorted by name so
// every run reports files in the same order.
func Candidates(ctx context.Context, cfg *config.Config, bk *backup.Manager) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if cfg.WorkingFolder == "" {
		logger.Debug().Msg("no working folder set, nothing to enumerate")
		return nil, nil
	}

	entries, err := os.ReadDir(cfg.WorkingFolder)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("folder", cfg.WorkingFolder).Msg("working folder does not exist")
			return nil, nil
		}
		return nil, errors.Errorf("reading folder %s: %w", cfg.WorkingFolder, err)
	}

	pattern := strings.ToLower(cfg.Pattern)
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if bk.IsBackup(name) {
			logger.Debug().Str("file", name).Msg("skipping backup file")
			continue
		}

		matched, err := doublestar.Match(pattern, strings.ToLower(name))
		if err != nil {
			return nil, errors.Errorf("matching pattern %q: %w", cfg.Pattern, err)
		}
		if !matched {
			continue
		}
		candidates = append(candidates, filepath.Join(cfg.WorkingFolder, name))
	}

	sort.Strings(candidates)
	logger.Debug().
		Str("folder", cfg.WorkingFolder).
		Str("pattern", cfg.Pattern).
		Int("count", len(candidates)).
		Msg("enumerated candidates")
	return candidates, nil
}
