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

package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/CascadePass/TCXPowerScaler/pkg/backup"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPattern matches the files a run considers.
	DefaultPattern = "*.tcx"

	// DefaultBackupSuffix names the sibling copy of each original.
	DefaultBackupSuffix = backup.DefaultSuffix
)

// DefaultFileNames are the settings files Find looks for, in order.
var DefaultFileNames = []string{
	".tcxscale",
	".tcxscale.yaml",
	".tcxscale.yml",
	".tcxscale.json",
	".tcxscale.hcl",
}

// 🔌 Parser is the interface for settings parsers
type Parser interface {
	// 📝 Parse parses the settings from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is the list of registered parsers
var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete scaling settings
type Config struct {
	// ScaleFactor multiplies every power sample. Zero means the value
	// has not been provided yet; flags or prompts fill it in.
	ScaleFactor float64 `json:"scale_factor,omitempty" yaml:"scale_factor,omitempty"`

	// WorkingFolder is the directory whose TCX files are processed.
	// Empty simply yields an empty candidate list.
	WorkingFolder string `json:"working_folder,omitempty" yaml:"working_folder,omitempty"`

	// Pattern selects candidate files within the folder.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// BackupSuffix is appended to a file's name to form its backup.
	BackupSuffix string `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty"`

	// SkipConfirm suppresses the interactive confirmation step.
	SkipConfirm bool `json:"skip_confirm,omitempty" yaml:"skip_confirm,omitempty"`

	// Verbose enables per-sample debug logging.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// 🎯 Load loads settings from a file. The parser is picked by file
// name; the extensionless .tcxscale dotfile is tried as YAML first,
// then HCL.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading settings")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	var cfg *Config
	if filepath.Base(path) == ".tcxscale" {
		cfg, err = parseDotfile(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing settings: %w", err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	return cfg, nil
}

// parseDotfile tries the registered YAML parser first, then HCL.
func parseDotfile(ctx context.Context, data []byte) (*Config, error) {
	yamlCfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return yamlCfg, nil
	}
	hclCfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return hclCfg, nil
	}
	return nil, errors.Errorf("not valid YAML (%v) or HCL: %w", yamlErr, hclErr)
}

// 🔍 Find searches dir for a settings file with one of the default
// names and returns the first hit, or empty when there is none.
func Find(ctx context.Context, dir string) string {
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			zerolog.Ctx(ctx).Debug().Str("path", candidate).Msg("found settings file")
			return candidate
		}
	}
	return ""
}

// ApplyDefaults fills the optional fields that were left empty.
func (cfg *Config) ApplyDefaults() {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = DefaultBackupSuffix
	}
	if cfg.WorkingFolder != "" {
		cfg.WorkingFolder = filepath.Clean(cfg.WorkingFolder)
	}
}

// 🔍 Validate rejects values that can never be right. A zero scale
// factor passes here; operations that need one enforce it themselves.
func (cfg *Config) Validate() error {
	if math.IsNaN(cfg.ScaleFactor) || math.IsInf(cfg.ScaleFactor, 0) {
		return errors.Errorf("scale_factor must be a finite number")
	}
	if cfg.ScaleFactor < 0 {
		return errors.Errorf("scale_factor must be greater than zero, got %v", cfg.ScaleFactor)
	}
	if cfg.Pattern == "" {
		return errors.Errorf("pattern is required")
	}
	if cfg.BackupSuffix == "" {
		return errors.Errorf("backup_suffix is required")
	}
	return nil
}

// 📝 String returns a one-line description of the settings
func (cfg *Config) String() string {
	folder := cfg.WorkingFolder
	if folder == "" {
		folder = "<no folder>"
	}
	return fmt.Sprintf("scale %v in %s (%s)", cfg.ScaleFactor, folder, cfg.Pattern)
}
