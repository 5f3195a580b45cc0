package handlers

type (
	NilProcessorError struct {
	}
	NilAuthenticatorError struct {
	}
)

func (e *NilProcessorError) Error() string {
	return "nil Dashboard Service was passed to Dashboard Handler initializer"
}

func (e *NilAuthenticatorError) Error() string {
	return "nil Authenticator was passed to Dashboard Handler initializer"
}
