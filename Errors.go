/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package zdeflate

import "fmt"

// CoreError wraps one of the ERR_* codes in Definitions.go with a
// human-readable message, the same shape the teacher's app layer uses to
// report fatal CLI errors, reused here as the library's own error type
// so callers get a stable code to switch on in addition to the message.
type CoreError struct {
	msg  string
	code int
}

// NewCoreError creates a CoreError carrying msg and code.
func NewCoreError(msg string, code int) *CoreError {
	return &CoreError{msg: msg, code: code}
}

// Error implements the error interface.
func (this *CoreError) Error() string {
	return this.msg
}

// Message returns the human-readable error message.
func (this *CoreError) Message() string {
	return this.msg
}

// Code returns one of the ERR_* constants in Definitions.go.
func (this *CoreError) Code() int {
	return this.code
}

func invalidParam(format string, args ...interface{}) *CoreError {
	return NewCoreError(fmt.Sprintf(format, args...), ERR_INVALID_PARAM)
}

func budgetUnderflow(format string, args ...interface{}) *CoreError {
	return NewCoreError(fmt.Sprintf(format, args...), ERR_BUDGET_UNDERFLOW)
}

func invalidState(format string, args ...interface{}) *CoreError {
	return NewCoreError(fmt.Sprintf(format, args...), ERR_INVALID_STATE)
}
