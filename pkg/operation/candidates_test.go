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
	"path/filepath"
	"testing"

	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/CascadePass/TCXPowerScaler/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestCandidates tests folder enumeration
func TestCandidates(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		files    []string
		dirs     []string
		expected []string
	}{
		{
			name:     "matches_pattern_only",
			pattern:  "*.tcx",
			files:    []string{"ride.tcx", "notes.txt", "export.gpx"},
			expected: []string{"ride.tcx"},
		},
		{
			name:     "case_insensitive",
			pattern:  "*.tcx",
			files:    []string{"MORNING.TCX", "evening.tcx"},
			expected: []string{"MORNING.TCX", "evening.tcx"},
		},
		{
			name:     "uppercase_pattern",
			pattern:  "*.TCX",
			files:    []string{"ride.tcx"},
			expected: []string{"ride.tcx"},
		},
		{
			name:     "never_descends_into_subfolders",
			pattern:  "*.tcx",
			files:    []string{"top.tcx"},
			dirs:     []string{"rides.tcx"},
			expected: []string{"top.tcx"},
		},
		{
			name:     "backups_never_qualify",
			pattern:  "*",
			files:    []string{"ride.tcx", "ride.tcx.original", "ride.tcx.original.7f3a"},
			expected: []string{"ride.tcx"},
		},
		{
			name:     "sorted_by_name",
			pattern:  "*.tcx",
			files:    []string{"c.tcx", "a.tcx", "b.tcx"},
			expected: []string{"a.tcx", "b.tcx", "c.tcx"},
		},
		{
			name:    "no_matches",
			pattern: "*.tcx",
			files:   []string{"notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.NewTestContext(t)
			tmpDir := t.TempDir()
			for _, dir := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(tmpDir, dir), 0755))
				// A matching file below the top level must stay invisible
				testutils.WriteTCX(t, filepath.Join(tmpDir, dir), "inner.tcx", "content")
			}
			for _, name := range tt.files {
				testutils.WriteTCX(t, tmpDir, name, "content")
			}

			cfg := &config.Config{WorkingFolder: tmpDir, Pattern: tt.pattern}
			got, err := operation.Candidates(ctx, cfg, backup.NewManager(""))
			require.NoError(t, err)

			var names []string
			for _, path := range got {
				names = append(names, filepath.Base(path))
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

// 🧪 TestCandidates_MissingFolder yields nothing rather than an error
func TestCandidates_MissingFolder(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	cfg := &config.Config{
		WorkingFolder: filepath.Join(t.TempDir(), "gone"),
		Pattern:       "*.tcx",
	}

	got, err := operation.Candidates(ctx, cfg, backup.NewManager(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// 🧪 TestCandidates_BlankFolder yields nothing rather than an error
func TestCandidates_BlankFolder(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	cfg := &config.Config{Pattern: "*.tcx"}

	got, err := operation.Candidates(ctx, cfg, backup.NewManager(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// 🧪 TestCandidates_BadPattern surfaces the pattern error
func TestCandidates_BadPattern(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	tmpDir := t.TempDir()
	testutils.WriteTCX(t, tmpDir, "ride.tcx", "content")

	cfg := &config.Config{WorkingFolder: tmpDir, Pattern: "["}
	_, err := operation.Candidates(ctx, cfg, backup.NewManager(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matching pattern")
}
