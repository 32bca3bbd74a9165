// Copyright 2026 The Taller Authors, Inc.
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

package log

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	base  *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Logger is a module scoped logger. Key/value pairs follow the message.
type Logger struct {
	module string
	s      *zap.SugaredLogger
}

// SetLevel changes the level of every logger handed out by GetLogger.
// Unknown names fall back to info.
func SetLevel(l string) {
	switch strings.ToLower(l) {
	case "debug", "verbose":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "silent":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Level reports the current level name.
func Level() string {
	return level.Level().String()
}

func root() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		base = l
	}
	return base
}

// GetLogger returns a logger tagged with the given module name.
func GetLogger(module string) *Logger {
	return &Logger{
		module: module,
		s:      root().Named(module).Sugar(),
	}
}

func (l *Logger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }

func (l *Logger) Info(msg string, kv ...any) { l.s.Infow(msg, kv...) }

func (l *Logger) Warn(msg string, kv ...any) { l.s.Warnw(msg, kv...) }

// Error logs msg with err attached under the "err" key.
func (l *Logger) Error(msg string, err error, kv ...any) {
	l.s.Errorw(msg, append([]any{"err", err}, kv...)...)
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{module: l.module, s: l.s.With(kv...)}
}

// Sync flushes buffered entries.
func Sync() error {
	return root().Sync()
}
