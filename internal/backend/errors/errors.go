// Package errors provides custom errors for types implementing API interface.
package errors

import (
	"fmt"
)

type (
	InvalidShortError struct {
		Short string
	}
	NotFoundError struct {
		Op    string
		Short string
	}
	StatusError struct {
		Op   string
		Code int
		Body string
	}
	TransportError struct {
		Op  string
		Err error
	}
	DecodeError struct {
		Op  string
		Err error
	}
	NilConfigError struct {
	}
)

func (e *InvalidShortError) Error() string {
	return fmt.Sprintf("%q is not a valid short code", e.Short)
}

func (e *NotFoundError) Error() string {
	if e.Short == "" {
		return fmt.Sprintf("%s: not found", e.Op)
	}
	return fmt.Sprintf("%s: %s not found", e.Op, e.Short)
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend responded with status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: backend responded with status %d: %s", e.Op, e.Code, e.Body)
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: could not decode response: %s", e.Op, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *NilConfigError) Error() string {
	return "nil config was passed to backend client initializer"
}
