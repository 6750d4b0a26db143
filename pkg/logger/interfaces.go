/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the injectable logging surface used by every component.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	SetLevel(level zerolog.Level)
}

// NewTestLogger creates a no-op logger for testing that discards all output
func NewTestLogger() Logger {
	return &zeroLogger{l: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// New wraps an existing zerolog logger.
func New(l zerolog.Logger) Logger {
	return &zeroLogger{l: l}
}

// NewWriterLogger logs JSON lines to w at the given level. Tests use it to
// assert on emitted records.
func NewWriterLogger(w io.Writer, level zerolog.Level) Logger {
	return &zeroLogger{l: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

type zeroLogger struct {
	l zerolog.Logger
}

func (z *zeroLogger) Trace() *zerolog.Event { return z.l.Trace() }
func (z *zeroLogger) Debug() *zerolog.Event { return z.l.Debug() }
func (z *zeroLogger) Info() *zerolog.Event  { return z.l.Info() }
func (z *zeroLogger) Warn() *zerolog.Event  { return z.l.Warn() }
func (z *zeroLogger) Error() *zerolog.Event { return z.l.Error() }
func (z *zeroLogger) With() zerolog.Context { return z.l.With() }
func (z *zeroLogger) WithComponent(component string) zerolog.Logger {
	return z.l.With().Str("component", component).Logger()
}
func (z *zeroLogger) SetLevel(level zerolog.Level) { z.l = z.l.Level(level) }
