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
	"context"
	"testing"

	"github.com/CascadePass/TCXPowerScaler/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🧪 stubOperation counts executions and returns a canned error
type stubOperation struct {
	calls int
	err   error
}

func (s *stubOperation) Execute(ctx context.Context) error {
	s.calls++
	return s.err
}

// 🧪 TestRunner_Run executes an operation once
func TestRunner_Run(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	op := &stubOperation{}
	runner := operation.NewRunner(&logger)
	require.NoError(t, runner.Run(ctx, op))
	assert.Equal(t, 1, op.calls)
}

// 🧪 TestRunner_Run_WrapsErrors keeps the cause in the message
func TestRunner_Run_WrapsErrors(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	op := &stubOperation{err: errors.New("boom")}
	runner := operation.NewRunner(&logger)
	err := runner.Run(ctx, op)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing operation: boom")
}

// 🧪 TestRunner_Run_RespectsCancellation never starts a cancelled run
func TestRunner_Run_RespectsCancellation(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	cancel()

	op := &stubOperation{}
	runner := operation.NewRunner(&logger)
	err := runner.Run(ctx, op)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation cancelled")
	assert.Zero(t, op.calls)
}
