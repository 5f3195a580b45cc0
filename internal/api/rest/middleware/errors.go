package middleware

type (
	NilSecretaryError struct {
	}
	NoSessionError struct {
	}
)

func (e *NilSecretaryError) Error() string {
	return "nil secretary was passed to session handler initializer"
}

func (e *NoSessionError) Error() string {
	return "request carries no session"
}
