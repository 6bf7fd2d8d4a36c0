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

package status

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of processing one file
type FileStatus int

const (
	StatusUnknown  FileStatus = iota
	StatusScaled              // File was backed up and rewritten with scaled values
	StatusNoPower             // File holds no power samples; backed up and rewritten unchanged
	StatusSkipped             // File could not be processed and was left untouched
	StatusRestored            // File was restored from its backup
	StatusPending             // File is a candidate that has not been processed yet
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusScaled:
		return "scaled"
	case StatusNoPower:
		return "no power"
	case StatusSkipped:
		return "skipped"
	case StatusRestored:
		return "restored"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// 📄 FileResult holds the outcome of processing one file
type FileResult struct {
	Path       string     // Absolute path of the file
	Status     FileStatus // Outcome
	Points     int        // Power samples scaled
	Total      int64      // Sum of scaled values
	Invalid    int        // Power samples skipped as non-numeric
	BackupPath string     // Where the original bytes were preserved
	Drifted    bool       // Current bytes no longer match the oldest backup
	Err        error      // Why the file was skipped
}

// Average returns the mean scaled value for this file, or zero when no
// samples were scaled.
func (r FileResult) Average() float64 {
	if r.Points == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Points)
}

// 📈 Summary aggregates the results of one batch run
type Summary struct {
	Folder   string        // Folder that was processed
	Factor   float64       // Factor that was applied
	Files    int           // Candidate files considered
	Scaled   int           // Files rewritten with scaled values
	NoPower  int           // Files without power samples
	Skipped  int           // Files left untouched because of errors
	Restored int           // Files restored from backup
	Pending  int           // Files previewed but not yet processed
	Points   int           // Power samples scaled across all files
	Total    int64         // Sum of all scaled values
	Invalid  int           // Non-numeric samples across all files
	Elapsed  time.Duration // Wall-clock duration of the run
}

// Average returns the mean scaled value across the whole batch, or
// zero when nothing was scaled.
func (s Summary) Average() float64 {
	if s.Points == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Points)
}

// SkipRate returns the fraction of candidates that were skipped, or
// zero for an empty batch.
func (s Summary) SkipRate() float64 {
	if s.Files == 0 {
		return 0
	}
	return float64(s.Skipped) / float64(s.Files)
}

// 🔧 Manager collects per-file results and performs the file writes
// that land scaled content on disk.
type Manager struct {
	mu      sync.Mutex
	results []FileResult
	started time.Time
}

// 🏭 NewManager creates a new result manager
func NewManager() *Manager {
	return &Manager{started: time.Now()}
}

// 📝 Track records the outcome of one file and mirrors it to the log
func (m *Manager) Track(ctx context.Context, res FileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, res)

	evt := zerolog.Ctx(ctx).Info().
		Str("file", res.Path).
		Str("status", res.Status.String()).
		Int("points", res.Points).
		Int64("total", res.Total)
	if res.BackupPath != "" {
		evt = evt.Str("backup", res.BackupPath)
	}
	if res.Err != nil {
		evt = evt.Err(res.Err)
	}
	evt.Msg("file processed")
}

// 🔍 Results returns the tracked results in processing order
func (m *Manager) Results() []FileResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]FileResult, len(m.results))
	copy(out, m.results)
	return out
}

// 📈 Summarize folds the tracked results into a Summary
func (m *Manager) Summarize(folder string, factor float64) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	sum := Summary{
		Folder:  folder,
		Factor:  factor,
		Files:   len(m.results),
		Elapsed: time.Since(m.started),
	}
	for _, res := range m.results {
		switch res.Status {
		case StatusScaled:
			sum.Scaled++
		case StatusNoPower:
			sum.NoPower++
		case StatusSkipped:
			sum.Skipped++
		case StatusRestored:
			sum.Restored++
		case StatusPending:
			sum.Pending++
		}
		sum.Points += res.Points
		sum.Total += res.Total
		sum.Invalid += res.Invalid
	}
	return sum
}

// 💾 WriteFileAtomic writes content through a temp file and rename so
// a crash mid-write never leaves a half-written target.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// FileExists reports whether path exists as a regular file.
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}
