// Package admin provides administrator authentication.
package admin

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/service/errors"
)

// Authenticator checks administrator credentials against a bcrypt hash.
type Authenticator struct {
	user string
	hash []byte
}

// InitAuthenticator initializes an Authenticator from configuration.
func InitAuthenticator(cfg *config.Config) (*Authenticator, error) {
	if cfg.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return nil, &serviceErrors.ServiceInvalidCredentialsConfig{Msg: err.Error()}
		}
	}
	return &Authenticator{user: cfg.AdminUser, hash: []byte(cfg.AdminPasswordHash)}, nil
}

// Enabled reports whether logging in is possible at all.
func (a *Authenticator) Enabled() bool {
	return len(a.hash) > 0
}

// Authenticate checks user and password.
func (a *Authenticator) Authenticate(user, password string) error {
	if !a.Enabled() {
		return &serviceErrors.ServiceLoginDisabledError{}
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil || !userOK {
		return &serviceErrors.ServiceBadCredentialsError{User: user}
	}
	return nil
}
