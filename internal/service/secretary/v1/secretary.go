// Package secretary provides methods for sealing session state into cookie values.
package secretary

import (
	"crypto/sha256"

	"github.com/gorilla/securecookie"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary"
)

// CookieName is the name of the session cookie.
const CookieName = "dashboard_session"

const maxAge = 7 * 24 * 60 * 60

// Check interface implementation explicitly
var (
	_ secretary.Secretary = (*Secretary)(nil)
)

// Secretary defines object structure and its attributes.
type Secretary struct {
	codec *securecookie.SecureCookie
}

// NewSecretaryService initializes a secretary service signing and encrypting session state.
//
// Keys are derived from cfg.SessionKey, an empty key yields random keys valid for the process lifetime.
func NewSecretaryService(c *config.Config) *Secretary {
	var hashKey, blockKey []byte
	if c.SessionKey == "" {
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
	} else {
		h := sha256.Sum256([]byte("hash:" + c.SessionKey))
		b := sha256.Sum256([]byte("block:" + c.SessionKey))
		hashKey, blockKey = h[:], b[:]
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(maxAge)
	return &Secretary{codec: codec}
}

// Encode seals the session into a cookie value.
func (s *Secretary) Encode(session *secretary.Session) (string, error) {
	return s.codec.Encode(CookieName, session)
}

// Decode verifies and opens a cookie value.
func (s *Secretary) Decode(msg string) (*secretary.Session, error) {
	session := &secretary.Session{}
	if err := s.codec.Decode(CookieName, msg, session); err != nil {
		return nil, err
	}
	return session, nil
}

// MaxAge returns the session lifetime in seconds.
func (s *Secretary) MaxAge() int {
	return maxAge
}
