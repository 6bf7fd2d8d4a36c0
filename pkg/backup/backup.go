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

// Package backup preserves original file bytes before any rewrite.
//
// Backups sit next to their source as <file><suffix>. A backup is never
// overwritten: when the plain name is taken, a random token is appended
// instead, so every run that mutates a file leaves its own pristine
// copy behind.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultSuffix is appended to a file's name to form its backup name.
const DefaultSuffix = ".original"

// maxTokenAttempts bounds the token regeneration loop when the file
// system keeps reporting collisions.
const maxTokenAttempts = 5

// 💾 Manager creates, finds, and restores sibling backups of files.
type Manager struct {
	suffix string
}

// 🏭 NewManager creates a Manager using the given backup suffix. An
// empty suffix falls back to DefaultSuffix.
func NewManager(suffix string) *Manager {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Manager{suffix: suffix}
}

// Suffix returns the suffix backups are named with.
func (m *Manager) Suffix() string {
	return m.suffix
}

// 🔒 Create writes content to path's backup name and returns the path
// it wrote. The plain name is tried first; if it already exists the
// backup gets a random token instead, so existing backups survive
// every later run. The written copy is read back and verified against
// content before Create returns.
func (m *Manager) Create(ctx context.Context, path string, content []byte) (string, error) {
	logger := zerolog.Ctx(ctx)

	candidate := path + m.suffix
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				// Taken, likely by an earlier run. Token the name
				// and try again rather than touching it.
				candidate = path + m.suffix + "." + uuid.NewString()
				continue
			}
			return "", errors.Errorf("creating backup file: %w", err)
		}

		if _, err := f.Write(content); err != nil {
			f.Close()
			os.Remove(candidate)
			return "", errors.Errorf("writing backup file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(candidate)
			return "", errors.Errorf("closing backup file: %w", err)
		}

		if err := m.verify(candidate, content); err != nil {
			return "", err
		}

		logger.Debug().
			Str("file", path).
			Str("backup", candidate).
			Str("digest", Digest(content)).
			Msg("created backup")
		return candidate, nil
	}

	return "", errors.Errorf("could not find a free backup name for %s after %d attempts", path, maxTokenAttempts)
}

// 🔍 Backups lists the backups that exist for path, pristine original
// first: the plain <path><suffix> name, then any tokened siblings
// ordered oldest to newest.
func (m *Manager) Backups(ctx context.Context, path string) ([]string, error) {
	var found []string

	plain := path + m.suffix
	if _, err := os.Stat(plain); err == nil {
		found = append(found, plain)
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("checking backup existence: %w", err)
	}

	tokened, err := filepath.Glob(path + m.suffix + ".*")
	if err != nil {
		return nil, errors.Errorf("globbing tokened backups: %w", err)
	}
	sort.Slice(tokened, func(i, j int) bool {
		return modTime(tokened[i]).Before(modTime(tokened[j]))
	})
	found = append(found, tokened...)

	return found, nil
}

// ♻️ Restore copies the oldest backup of path back over path, then
// removes that backup unless keep is set. The oldest backup is the
// pristine original; newer tokened ones hold already-scaled bytes.
func (m *Manager) Restore(ctx context.Context, path string, keep bool) error {
	logger := zerolog.Ctx(ctx)

	backups, err := m.Backups(ctx, path)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.Errorf("no backup found for %s", path)
	}
	src := backups[0]

	if err := copyFile(src, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if !keep {
		if err := os.Remove(src); err != nil {
			return errors.Errorf("removing restored backup: %w", err)
		}
	}

	logger.Debug().
		Str("file", path).
		Str("backup", src).
		Bool("kept", keep).
		Msg("restored from backup")
	return nil
}

// 🔍 Matches reports whether the backup at backupPath holds exactly
// content. A mismatch means the working file has been rewritten since
// that backup was made.
func (m *Manager) Matches(ctx context.Context, backupPath string, content []byte) (bool, error) {
	got, err := os.ReadFile(backupPath)
	if err != nil {
		return false, errors.Errorf("reading backup: %w", err)
	}
	return Digest(got) == Digest(content), nil
}

// IsBackup reports whether name is a backup file for this suffix,
// plain or tokened. The enumerator uses it to keep backups out of the
// candidate list when someone runs with a loose pattern.
func (m *Manager) IsBackup(name string) bool {
	return strings.HasSuffix(name, m.suffix) ||
		strings.Contains(name, m.suffix+".")
}

// Digest returns a short content fingerprint used in logs and reports.
func Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// verify re-reads a freshly written backup and compares fingerprints.
func (m *Manager) verify(backupPath string, want []byte) error {
	got, err := os.ReadFile(backupPath)
	if err != nil {
		return errors.Errorf("reading back backup for verification: %w", err)
	}
	if Digest(got) != Digest(want) {
		return errors.Errorf("backup verification failed for %s: digest mismatch", backupPath)
	}
	return nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
