package secretary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Flash(t *testing.T) {
	s := &Session{}
	s.SetFlash("backend unavailable", true)
	msg, failed := s.PopFlash()
	assert.Equal(t, "backend unavailable", msg)
	assert.True(t, failed)
	msg, failed = s.PopFlash()
	assert.Empty(t, msg)
	assert.False(t, failed)
}

func TestSession_Authenticated(t *testing.T) {
	var s *Session
	assert.False(t, s.Authenticated())
	assert.False(t, (&Session{}).Authenticated())
	assert.True(t, (&Session{User: "admin"}).Authenticated())
}
