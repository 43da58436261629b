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

// Package rfc5424 formats a message and optional structured data into an RFC 5424 compliant
// syslog message:
//
//	<PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID STRUCTURED-DATA [MSG]
//
// The package does not provide a transport to get the message to a syslog daemon. The focus is
// to correctly format a message ready for transport into a caller supplied io.Writer.
//
// A Formatter is built once from a Config and can then be shared between goroutines. The
// hostname, app name and proc id do not change for the lifetime of a syslog session, which
// is why they are formatted only once when the Formatter is created.
//
// Writers may have a bounded capacity (see FixedBuffer). If a message does not fit, the
// Formatter writes as much of it as the writer accepts and returns ErrSinkExhausted. It is up
// to the caller to either send the truncated message or to discard it.
package rfc5424
