// Copyright 2025 OpenPubkey
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
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileEnvKey = "CHMODKIT_LOG_FILE"

var (
	atomicLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	base        *zap.Logger
	sugar       *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// stdout carries the generated commands, so logs never go there
	if logFile := os.Getenv(logFileEnvKey); logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	base = logger
	sugar = base.Sugar()
}

// SetVerbose switches between debug and the default warn level.
func SetVerbose(verbose bool) {
	if verbose {
		atomicLevel.SetLevel(zapcore.DebugLevel)
		return
	}
	atomicLevel.SetLevel(zapcore.WarnLevel)
}

// Level reports the current level.
func Level() zapcore.Level {
	return atomicLevel.Level()
}

// Replace swaps the logger used by this package and returns a function that
// restores the previous one.
func Replace(l *zap.Logger) func() {
	prevBase, prevSugar := base, sugar
	base, sugar = l, l.Sugar()
	return func() {
		base, sugar = prevBase, prevSugar
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = base.Sync()
}

// Debug logs a printf-style message at debug level, shown with --verbose.
func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

// Info logs a printf-style message at info level.
func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

// Warn logs a printf-style message at warn level, shown by default.
func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}
