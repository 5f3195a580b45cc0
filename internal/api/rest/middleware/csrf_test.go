package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/mocks"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary"
)

func newProtectedServer(t *testing.T, session *secretary.Session, authEnabled bool) *httptest.Server {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSecretary(ctrl)
	s.EXPECT().Decode("token").Return(session, nil).AnyTimes()
	s.EXPECT().Encode(gomock.Any()).Return("token", nil).AnyTimes()
	sessionHandler, err := NewSessionHandler(s, config.NewDefaultConfiguration(), 60, nil)
	require.NoError(t, err)
	router := chi.NewRouter()
	router.Use(sessionHandler.SessionHandle)
	router.Use(CSRFHandle)
	router.Use(NewAuthHandler(authEnabled, "/login").AuthHandle)
	router.Get("/page", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page"))
	})
	router.Get("/api/data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	router.Post("/links", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("created"))
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func noRedirects() *resty.Client {
	return resty.New().SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))
}

func TestCSRFHandle(t *testing.T) {
	ts := newProtectedServer(t, &secretary.Session{ID: "id", User: "admin", CSRF: "expected"}, true)
	cookie := &http.Cookie{Name: SessionCookieName, Value: "token"}
	tests := []struct {
		name    string
		form    map[string]string
		headers map[string]string
		code    int
	}{
		{"missing token", nil, nil, http.StatusForbidden},
		{"wrong form token", map[string]string{CSRFFormField: "wrong"}, nil, http.StatusForbidden},
		{"form token", map[string]string{CSRFFormField: "expected"}, nil, http.StatusOK},
		{"header token", nil, map[string]string{CSRFHeader: "expected"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := noRedirects().R().SetCookie(cookie).SetHeaders(tt.headers)
			if tt.form != nil {
				req.SetFormData(tt.form)
			}
			res, err := req.Post(ts.URL + "/links")
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.StatusCode())
		})
	}
}

func TestAuthHandle(t *testing.T) {
	cookie := &http.Cookie{Name: SessionCookieName, Value: "token"}

	anonymous := newProtectedServer(t, &secretary.Session{ID: "id", CSRF: "expected"}, true)
	res, err := noRedirects().R().SetCookie(cookie).Get(anonymous.URL + "/page?offset=20")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode())
	assert.Equal(t, "/login?next=%2Fpage%3Foffset%3D20", res.Header().Get("Location"))

	res, err = noRedirects().R().SetCookie(cookie).Get(anonymous.URL + "/api/data")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode())

	res, err = noRedirects().R().SetCookie(cookie).SetHeader(CSRFHeader, "expected").Post(anonymous.URL + "/links")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode())

	admin := newProtectedServer(t, &secretary.Session{ID: "id", User: "admin", CSRF: "expected"}, true)
	res, err = noRedirects().R().SetCookie(cookie).Get(admin.URL + "/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())

	open := newProtectedServer(t, &secretary.Session{ID: "id", CSRF: "expected"}, false)
	res, err = noRedirects().R().SetCookie(cookie).Get(open.URL + "/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
}
