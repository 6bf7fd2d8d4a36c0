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
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// maxFactorAttempts bounds how often a mistyped factor is re-asked.
const maxFactorAttempts = 3

// 🔌 Provider finalizes a partially specified Config into one a scale
// run can execute with. Operations only ever see the finished value.
type Provider interface {
	// Resolve fills the missing settings and confirms the run
	Resolve(ctx context.Context, cfg *Config) (*Config, error)
}

// 💬 InteractiveProvider asks the user for whatever the settings file
// and flags left open: a missing scale factor is prompted for, and the
// run is confirmed before any file is touched. With a factor supplied
// and SkipConfirm set it never reads the terminal at all.
type InteractiveProvider struct{}

// 🎯 NewInteractiveProvider creates a new interactive provider
func NewInteractiveProvider() *InteractiveProvider {
	return &InteractiveProvider{}
}

// 💬 Resolve returns a finished copy of cfg; the input is not mutated.
func (p *InteractiveProvider) Resolve(ctx context.Context, cfg *Config) (*Config, error) {
	resolved := *cfg
	resolved.ApplyDefaults()

	if resolved.ScaleFactor == 0 {
		factor, err := p.promptFactor(ctx)
		if err != nil {
			return nil, err
		}
		resolved.ScaleFactor = factor
	}

	if err := resolved.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}
	if resolved.ScaleFactor == 0 {
		return nil, errors.Errorf("scale factor is required")
	}

	if !resolved.SkipConfirm {
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show(fmt.Sprintf("Scale power readings in %s by %v?", resolved.WorkingFolder, resolved.ScaleFactor))
		if err != nil {
			return nil, errors.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			return nil, errors.Errorf("scaling declined")
		}
	}

	zerolog.Ctx(ctx).Debug().
		Float64("factor", resolved.ScaleFactor).
		Str("folder", resolved.WorkingFolder).
		Msg("settings resolved")
	return &resolved, nil
}

// promptFactor reads the scale factor from the terminal. Unusable
// input gets a bounded number of retries so one slip of the finger
// does not abort the run.
func (p *InteractiveProvider) promptFactor(ctx context.Context) (float64, error) {
	for attempt := 0; attempt < maxFactorAttempts; attempt++ {
		raw, err := pterm.DefaultInteractiveTextInput.Show("Scale factor (0.95 rescales every reading to 95%)")
		if err != nil {
			return 0, errors.Errorf("reading scale factor: %w", err)
		}

		factor, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
			pterm.Warning.Printfln("%q is not a usable scale factor, expecting a positive number", raw)
			continue
		}

		zerolog.Ctx(ctx).Debug().Float64("factor", factor).Msg("scale factor entered")
		return factor, nil
	}
	return 0, errors.Errorf("no usable scale factor entered")
}
