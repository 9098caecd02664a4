package client

import (
	"fmt"
)

// Code identifies a class of client failure.
type Code string

const (
	CodeInvalidEndpoint  Code = "invalid_endpoint"
	CodeUnauthorized     Code = "unauthorized"
	CodeServer           Code = "server_error"
	CodeDecodingFailed   Code = "decoding_failed"
	CodeEncodingFailed   Code = "encoding_failed"
	CodeTransportFailure Code = "transport_failure"
)

// Error is the single error type returned by Client operations. Two errors
// match under errors.Is when their codes are equal.
type Error struct {
	Code       Code
	StatusCode int
	Message    string
	Err        error
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidEndpoint  = &Error{Code: CodeInvalidEndpoint}
	ErrUnauthorized     = &Error{Code: CodeUnauthorized}
	ErrServer           = &Error{Code: CodeServer}
	ErrDecodingFailed   = &Error{Code: CodeDecodingFailed}
	ErrEncodingFailed   = &Error{Code: CodeEncodingFailed}
	ErrTransportFailure = &Error{Code: CodeTransportFailure}
)

func (e *Error) Error() string {
	switch {
	case e.Code == CodeServer:
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func serverError(status int, message string) *Error {
	return &Error{Code: CodeServer, StatusCode: status, Message: message}
}
