// Copyright 2020 ConsenSys Software Inc.
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

// Package logger provides a configurable logger for the prover, based on zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	// default the package logger to a console writer on stderr
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	logger = zerolog.New(output).With().Timestamp().Logger()
}

// Logger returns the package logger
func Logger() zerolog.Logger {
	return logger
}

// SetOutput changes the output of the logger
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set replaces the package logger
func Set(l zerolog.Logger) {
	logger = l
}

// Disable discards all log output
func Disable() {
	logger = zerolog.Nop()
}
