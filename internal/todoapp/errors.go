// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import "fmt"

// Failures flow as values on the effect error channel. Nothing below is
// recovered inside the application; every failure reaches the supervisor,
// which logs it and reports a non-zero exit status.

// ElementNotFoundError reports that a required document query returned
// nothing.
type ElementNotFoundError struct {
	Selector string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: %s", e.Selector)
}

// ParentElementNotFoundError reports a tree-walk invariant violation: an
// event target lacks the expected ancestor structure.
type ParentElementNotFoundError struct {
	Tag string
}

func (e *ParentElementNotFoundError) Error() string {
	return fmt.Sprintf("no %s ancestor for event target", e.Tag)
}

// EmptyOptionOfElementError reports that an event-stream constructor was
// asked to attach to an absent element.
type EmptyOptionOfElementError struct {
	Message string
}

func (e *EmptyOptionOfElementError) Error() string {
	return "empty option of element: " + e.Message
}

// FetchError reports a transport-level failure of the todo source request.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	return "fetch failed: " + e.Cause.Error()
}

func (e *FetchError) Unwrap() error { return e.Cause }

// DecodeError reports that the server payload failed schema validation or
// JSON decoding. Distinct from FetchError: the transport succeeded but the
// shape is wrong.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return "decode failed: " + e.Cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.Cause }
