//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package nsonerr defines the error type and error code constants reported
// by the NSON codec.
package nsonerr

import (
	"fmt"
)

// Error represents an error that wraps an error code, an error message and
// an optional cause.
//
// This implements the error interface.
type Error struct {
	// Code specifies the error code.
	Code ErrorCode `json:"code"`

	// Message specifies the description of the error.
	Message string `json:"message"`

	// Cause optionally specifies the cause of the error.
	Cause error `json:"cause,omitempty"`
}

// New creates an error with the specified error code and message.
func New(code ErrorCode, msgFmt string, msgArgs ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(msgFmt, msgArgs...),
	}
}

// NewWithCause creates an error with the specified error code, message and
// the cause of the error.
func NewWithCause(code ErrorCode, cause error, msgFmt string, msgArgs ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(msgFmt, msgArgs...),
		Cause:   cause,
	}
}

// NewIllegalArgument creates an IllegalArgument error with the specified message.
func NewIllegalArgument(msgFmt string, msgArgs ...interface{}) *Error {
	return New(IllegalArgument, msgFmt, msgArgs...)
}

// NewIllegalState creates an IllegalState error with the specified message.
func NewIllegalState(msgFmt string, msgArgs ...interface{}) *Error {
	return New(IllegalState, msgFmt, msgArgs...)
}

// NewBadProtocol creates a BadProtocolMessage error with the specified message.
func NewBadProtocol(msgFmt string, msgArgs ...interface{}) *Error {
	return New(BadProtocolMessage, msgFmt, msgArgs...)
}

// NewRangeExceeded creates a RangeExceeded error with the specified message.
func NewRangeExceeded(msgFmt string, msgArgs ...interface{}) *Error {
	return New(RangeExceeded, msgFmt, msgArgs...)
}

// Error returns a descriptive message for the error.
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s]: %s", e.Code.String(), e.Message)
	}

	return fmt.Sprintf("[%s]: %s. Caused by:\n\t%s", e.Code.String(), e.Message, e.Cause.Error())
}

// Unwrap returns the cause of the error, if any.
//
// This supports the errors.Is and errors.As functions.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable returns whether the error is retryable.
//
// Codec failures indicate a protocol or version defect rather than
// transient unavailability, so they are never retryable.
func (e *Error) Retryable() bool {
	return false
}

// Is checks if the specified error is an Error value and its error code
// matches any of the expected error codes if specified.
func Is(err error, expectedCodes ...ErrorCode) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}

	if len(expectedCodes) == 0 {
		return true
	}

	for _, code := range expectedCodes {
		if e.Code == code {
			return true
		}
	}

	return false
}

// IsBadProtocol returns true if the specified error is a
// BadProtocolMessage error, otherwise returns false.
func IsBadProtocol(err error) bool {
	return Is(err, BadProtocolMessage)
}

// IsIllegalArgument returns true if the specified error is an
// IllegalArgument error, otherwise returns false.
func IsIllegalArgument(err error) bool {
	return Is(err, IllegalArgument)
}

// IsRangeExceeded returns true if the specified error is a RangeExceeded
// error, otherwise returns false.
func IsRangeExceeded(err error) bool {
	return Is(err, RangeExceeded)
}

// ErrorCode represents the error code.
type ErrorCode int

const (
	// NoError represents there is no error.
	NoError ErrorCode = iota // 0

	// IllegalArgument error represents the application provided an illegal
	// argument, such as an unsupported Go value kind or a Number with no
	// finite decimal form.
	IllegalArgument // 1

	// IllegalState error represents an illegal state, such as unbalanced
	// start/end framing calls.
	IllegalState // 2

	// BadProtocolMessage error represents malformed wire bytes: an unknown
	// type tag, a truncated buffer, a length-prefix/entry mismatch, invalid
	// UTF-8, an invalid decimal digit string or invalid timestamp text.
	// It is fatal to the current decode and is not visible as retryable.
	BadProtocolMessage // 3

	// UnsupportedProtocol error represents a protocol version mismatch
	// between client and server.
	UnsupportedProtocol // 4

	// RangeExceeded error represents a packed integer payload that decodes
	// to a value outside the target width.
	RangeExceeded // 5
)

// String returns the name of the error code.
//
// This implements the fmt.Stringer interface.
func (code ErrorCode) String() string {
	switch code {
	case NoError:
		return "NoError"
	case IllegalArgument:
		return "IllegalArgument"
	case IllegalState:
		return "IllegalState"
	case BadProtocolMessage:
		return "BadProtocolMessage"
	case UnsupportedProtocol:
		return "UnsupportedProtocol"
	case RangeExceeded:
		return "RangeExceeded"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(code))
	}
}
