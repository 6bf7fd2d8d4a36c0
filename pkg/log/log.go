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

// Package log wires structured logging and user-facing console output.
//
// Two channels, two audiences: zerolog carries timestamped diagnostics
// for debugging, the UserLogger prints the colored lines a person
// actually reads. Every user line is mirrored into zerolog so a debug
// run tells the whole story in one stream.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/CascadePass/TCXPowerScaler/pkg/status"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎯 Setup builds the process-wide structured logger. Verbose runs log
// everything at debug level; normal runs only surface warnings, since
// the UserLogger already covers the happy path.
func Setup(console io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
		pterm.EnableDebugMessages()
	}

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = console
	})
	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

// 📢 UserLogger prints user-friendly feedback about the run
type UserLogger struct {
	log       zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
}

// 🎯 NewUserLogger creates a user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout)
}

// 🎯 NewUserLoggerTo creates a user logger writing to console
func NewUserLoggerTo(ctx context.Context, console io.Writer) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 📝 Header prints the run banner
func (u *UserLogger) Header(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	name := color.New(color.Bold, color.FgCyan).Sprint("tcxscale")
	fmt.Fprintf(u.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	u.log.Info().Msg(msg)
}

// 📝 LogFileResult prints one aligned line for a processed file
func (u *UserLogger) LogFileResult(ctx context.Context, res status.FileResult) {
	u.mu.Lock()
	defer u.mu.Unlock()

	fmt.Fprintln(u.console, u.formatter.FormatFileResult(res))

	u.log.Debug().
		Str("file", res.Path).
		Str("status", res.Status.String()).
		Int("points", res.Points).
		Msg("file result")
}

// 📝 LogSummary prints the batch totals block
func (u *UserLogger) LogSummary(ctx context.Context, sum status.Summary) {
	u.mu.Lock()
	defer u.mu.Unlock()

	fmt.Fprintln(u.console)
	fmt.Fprintln(u.console, u.formatter.FormatSummary(sum))

	u.log.Info().
		Int("files", sum.Files).
		Int("scaled", sum.Scaled).
		Int("skipped", sum.Skipped).
		Int("points", sum.Points).
		Msg("batch complete")
}

// 📝 Success logs a success message
func (u *UserLogger) Success(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	pterm.Success.WithWriter(u.console).Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 Info logs an info message
func (u *UserLogger) Info(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	pterm.Info.WithWriter(u.console).Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (u *UserLogger) Warning(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	pterm.Warning.WithWriter(u.console).Println(msg)
	u.log.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (u *UserLogger) Error(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	pterm.Error.WithWriter(u.console).Println(msg)
	u.log.Error().Msg(msg)
}

// 📝 Newline prints an empty console line
func (u *UserLogger) Newline() {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.console)
}

// 📝 Infof logs a formatted info message
func (u *UserLogger) Infof(format string, args ...interface{}) {
	u.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (u *UserLogger) Warningf(format string, args ...interface{}) {
	u.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (u *UserLogger) Errorf(format string, args ...interface{}) {
	u.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.Success(fmt.Sprintf(format, args...))
}
