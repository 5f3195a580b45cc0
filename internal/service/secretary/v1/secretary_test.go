package secretary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary"
)

type SecretaryTestSuite struct {
	suite.Suite
	secretary *Secretary
	config    *config.Config
}

func (suite *SecretaryTestSuite) SetupTest() {
	suite.config = config.NewDefaultConfiguration()
	suite.config.SessionKey = "jds__63h3_7ds"
	suite.secretary = NewSecretaryService(suite.config)
}

func TestSecretaryTestSuite(t *testing.T) {
	suite.Run(t, new(SecretaryTestSuite))
}

func (suite *SecretaryTestSuite) TestEncodeDecode() {
	tests := []struct {
		name    string
		session *secretary.Session
	}{
		{
			name:    "anonymous",
			session: &secretary.Session{ID: "2f1e7c2a-6a5e-4c8e-9d1c-0b7b8c1d2e3f", CSRF: "token"},
		},
		{
			name: "with flash",
			session: &secretary.Session{
				ID:     "id",
				User:   "admin",
				CSRF:   "token",
				Flash:  "Could not delete abc: backend answered 502",
				Failed: true,
			},
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			token, err := suite.secretary.Encode(tt.session)
			assert.NoError(t, err)
			decoded, err := suite.secretary.Decode(token)
			assert.NoError(t, err)
			assert.Equal(t, tt.session, decoded)
		})
	}
}

func (suite *SecretaryTestSuite) TestDecodeRejected() {
	token, err := suite.secretary.Encode(&secretary.Session{ID: "id"})
	suite.Require().NoError(err)

	_, err = suite.secretary.Decode("non-encoded-data")
	suite.Error(err)

	_, err = suite.secretary.Decode(token[:len(token)-4] + "AAAA")
	suite.Error(err)

	other := config.NewDefaultConfiguration()
	other.SessionKey = "another key"
	_, err = NewSecretaryService(other).Decode(token)
	suite.Error(err)

	random := NewSecretaryService(config.NewDefaultConfiguration())
	_, err = random.Decode(token)
	suite.Error(err)
}
