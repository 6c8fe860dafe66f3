// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dom

import "fmt"

// MalformedError is the panic value used when a document violates the
// invariants of the layout engine, such as text containing a newline or
// indentation that overflows.
//
// This is a bug in whatever produced the document, not a condition to be
// recovered from. [Print] and [Fprint] return it as an error so that the
// caller learns of it synchronously.
type MalformedError struct {
	Reason string
}

// Error implements [error].
func (e *MalformedError) Error() string {
	return "dom: malformed document: " + e.Reason
}

// malformed panics with a [*MalformedError].
func malformed(format string, args ...any) {
	panic(&MalformedError{Reason: fmt.Sprintf(format, args...)})
}

// OptionError is returned when an [Options] field is out of range.
type OptionError struct {
	Field  string
	Value  int
	Reason string
}

// Error implements [error].
func (e *OptionError) Error() string {
	return fmt.Sprintf("dom: invalid option %s=%d: %s", e.Field, e.Value, e.Reason)
}
