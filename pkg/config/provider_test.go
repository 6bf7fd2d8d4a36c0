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

package config_test

import (
	"testing"

	"github.com/CascadePass/TCXPowerScaler/pkg/config"
	"github.com/CascadePass/TCXPowerScaler/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The interactive paths need a terminal; these tests cover the
// pass-through behavior a flag-driven run takes.

// 🧪 TestInteractiveProvider_Resolve completes without prompting when
// everything is already supplied.
func TestInteractiveProvider_Resolve(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	provider := config.NewInteractiveProvider()

	cfg := &config.Config{
		ScaleFactor:   0.85,
		WorkingFolder: t.TempDir(),
		SkipConfirm:   true,
	}

	resolved, err := provider.Resolve(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.85, resolved.ScaleFactor)
	assert.Equal(t, config.DefaultPattern, resolved.Pattern)
	assert.Equal(t, config.DefaultBackupSuffix, resolved.BackupSuffix)
}

// 🧪 TestInteractiveProvider_Resolve_DoesNotMutateInput returns a copy
func TestInteractiveProvider_Resolve_DoesNotMutateInput(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	provider := config.NewInteractiveProvider()

	cfg := &config.Config{
		ScaleFactor: 1.1,
		SkipConfirm: true,
	}

	resolved, err := provider.Resolve(ctx, cfg)
	require.NoError(t, err)
	assert.NotSame(t, cfg, resolved)
	assert.Empty(t, cfg.Pattern, "input must stay as it was")
	assert.Equal(t, config.DefaultPattern, resolved.Pattern)
}

// 🧪 TestInteractiveProvider_Resolve_RejectsBadFactor
func TestInteractiveProvider_Resolve_RejectsBadFactor(t *testing.T) {
	ctx := testutils.NewTestContext(t)
	provider := config.NewInteractiveProvider()

	cfg := &config.Config{
		ScaleFactor: -0.5,
		SkipConfirm: true,
	}

	_, err := provider.Resolve(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scale_factor must be greater than zero")
}
