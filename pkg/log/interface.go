// Copyright 2023 Hedgehog
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

import "go.uber.org/zap/zapcore"

// Interface is the logger handed to the syslogfmt components. It can log to the console and
// to RFC 5424 destinations at the same time.
//
// For RFC 5424 destinations the name set by Named becomes the MSGID of the messages and the
// fields added by With end up as params of the structured data element.
type Interface interface {
	Debug(msg string, fields ...zapcore.Field)
	Debugf(template string, args ...interface{})
	Info(msg string, fields ...zapcore.Field)
	Infof(template string, args ...interface{})
	Warn(msg string, fields ...zapcore.Field)
	Warnf(template string, args ...interface{})
	Error(msg string, fields ...zapcore.Field)
	Errorf(template string, args ...interface{})

	// With returns a logger which adds `fields` to every message
	With(fields ...zapcore.Field) Interface

	// Named returns a logger with `name` appended to the logger name
	Named(name string) Interface

	// Sync flushes all destinations
	Sync() error
}
