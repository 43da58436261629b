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

// Package syslog holds the facility and severity values shared by all syslog message formats.
// The values follow /usr/include/sys/syslog.h so that they can be passed through to other
// syslog implementations unchanged. The RFC 5424 encoder lives in the rfc5424 subpackage.
package syslog
