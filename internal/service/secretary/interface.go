// Package secretary provides methods for sealing session state into cookie values.
package secretary

// Session is the per-browser state carried by the session cookie.
type Session struct {
	ID     string
	User   string
	CSRF   string
	Flash  string
	Failed bool
}

// Authenticated reports whether an administrator is logged in.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != ""
}

// SetFlash stores a message shown once on the next rendered page.
func (s *Session) SetFlash(msg string, failed bool) {
	s.Flash = msg
	s.Failed = failed
}

// PopFlash returns and clears the stored message.
func (s *Session) PopFlash() (msg string, failed bool) {
	msg, failed = s.Flash, s.Failed
	s.Flash, s.Failed = "", false
	return msg, failed
}

// Secretary defines a set of methods for types implementing Secretary.
type Secretary interface {
	Encode(s *Session) (string, error)
	Decode(msg string) (*Session, error)
}
