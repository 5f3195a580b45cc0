// Package errors provides custom errors for types implementing Processor interface.
package errors

import "fmt"

type (
	ServiceFoundNilBackend struct {
		Msg string
	}
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceIncorrectInputURL struct {
		Msg string
	}
	ServiceInvalidCredentialsConfig struct {
		Msg string
	}
	ServiceLoginDisabledError struct {
	}
	ServiceBadCredentialsError struct {
		User string
	}
	ServicePingError struct {
		Component string
		Err       error
	}
)

func (e *ServiceFoundNilBackend) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceIncorrectInputURL) Error() string {
	return e.Msg
}

func (e *ServiceInvalidCredentialsConfig) Error() string {
	return fmt.Sprintf("invalid admin password hash: %s", e.Msg)
}

func (e *ServiceLoginDisabledError) Error() string {
	return "login is disabled"
}

func (e *ServiceBadCredentialsError) Error() string {
	return fmt.Sprintf("bad credentials for %q", e.User)
}

func (e *ServicePingError) Error() string {
	return fmt.Sprintf("%s is unavailable: %s", e.Component, e.Err.Error())
}

func (e *ServicePingError) Unwrap() error {
	return e.Err
}
