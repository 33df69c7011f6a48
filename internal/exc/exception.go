// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"errors"
	"fmt"
)

type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

// Location points into a source document. Offset is a byte offset, Line and
// Column are 1-based.
type Location struct {
	URI    string
	Offset int64
	Line   int32
	Column int32
}

type exc struct {
	code     string
	message  string
	location Location
}

func (e *exc) Error() string {
	if e.location.URI == "" {
		return fmt.Sprintf("%d:%d -- %s: %s", e.location.Line, e.location.Column, e.code, e.message)
	}
	return fmt.Sprintf("%s:%d:%d -- %s: %s", e.location.URI, e.location.Line, e.location.Column, e.code, e.message)
}

func (e *exc) Code() string {
	return e.code
}

func (e *exc) Message() string {
	return e.message
}

func (e *exc) Location() Location {
	return e.location
}

type excUnwrap struct {
	Exception
	cause error
}

func (e *excUnwrap) Unwrap() error {
	return e.cause
}

func New(location Location, code string, message string) Exception {
	return &exc{
		location: location,
		message:  message,
		code:     code,
	}
}

func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(Exception); ok {
		return &excUnwrap{
			Exception: New(location, code, e.Message()),
			cause:     e,
		}
	}
	return &excUnwrap{
		cause:     err,
		Exception: New(location, code, err.Error()),
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}

// HasCode reports whether the outermost Exception in err's chain carries
// the given code.
func HasCode(err error, code string) bool {
	var e Exception
	if !errors.As(err, &e) {
		return false
	}
	return e.Code() == code
}

func IsLexical(err error) bool {
	return HasCode(err, CodeLexical)
}

func IsGrammar(err error) bool {
	return HasCode(err, CodeGrammar)
}

func IsCountMismatch(err error) bool {
	return HasCode(err, CodeCountMismatch)
}

func IsStructural(err error) bool {
	return HasCode(err, CodeStructural)
}
