package config

import "fmt"

type (
	LoadError struct {
		Source string
		Err    error
	}
	InvalidParameterError struct {
		Name string
		Msg  string
	}
)

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load configuration from %s: %s", e.Source, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Msg)
}
