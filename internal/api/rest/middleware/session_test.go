package middleware

import (
	"errors"
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
	secretaryV1 "github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary/v1"
)

func TestNewSessionHandler_NilSecretary(t *testing.T) {
	_, err := NewSessionHandler(nil, config.NewDefaultConfiguration(), 60, nil)
	var nilErr *NilSecretaryError
	assert.ErrorAs(t, err, &nilErr)
}

func TestSessionHandleAbsentCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	sessionHandler, _ := NewSessionHandler(s, config.NewDefaultConfiguration(), 60, nil)
	router.Use(sessionHandler.SessionHandle)
	var seen *secretary.Session
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		_, _ = w.Write([]byte("authorized"))
	})
	s.EXPECT().Encode(gomock.Any()).Return("some-expected-token", nil)
	res, err := resty.New().R().Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, SessionCookieName, res.Cookies()[0].Name)
	assert.Equal(t, "some-expected-token", res.Cookies()[0].Value)
	assert.True(t, res.Cookies()[0].HttpOnly)
	require.NotNil(t, seen)
	assert.NotEmpty(t, seen.ID)
	assert.NotEmpty(t, seen.CSRF)
	assert.False(t, seen.Authenticated())
}

func TestSessionHandleGoodCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	sessionHandler, _ := NewSessionHandler(s, config.NewDefaultConfiguration(), 60, nil)
	router.Use(sessionHandler.SessionHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SessionFromContext(r.Context()).User))
	})
	s.EXPECT().Decode("some-token").Return(&secretary.Session{ID: "id", User: "admin", CSRF: "csrf"}, nil)
	res, err := resty.New().R().SetCookie(&http.Cookie{Name: SessionCookieName, Value: "some-token"}).Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Equal(t, "admin", res.String())
	assert.Empty(t, res.Cookies())
}

func TestSessionHandleBadCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mocks.NewMockSecretary(ctrl)
	sessionHandler, _ := NewSessionHandler(s, config.NewDefaultConfiguration(), 60, nil)
	router.Use(sessionHandler.SessionHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SessionFromContext(r.Context()).User))
	})
	s.EXPECT().Decode(gomock.Any()).Return(nil, errors.New("some-generic-error"))
	s.EXPECT().Encode(gomock.Any()).Return("fresh-token", nil)
	res, err := resty.New().R().SetCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"}).Get(ts.URL + "/get")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Empty(t, res.String())
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, "fresh-token", res.Cookies()[0].Value)
}

func TestSaveSessionReplacesCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	cfg := config.NewDefaultConfiguration()
	cfg.SessionKey = "jds__63h3_7ds"
	sec := secretaryV1.NewSecretaryService(cfg)
	sessionHandler, _ := NewSessionHandler(sec, cfg, 60, nil)
	router.Use(sessionHandler.SessionHandle)
	router.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		SessionFromContext(r.Context()).User = "admin"
		if err := SaveSession(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	res, err := resty.New().R().Get(ts.URL + "/login")
	require.NoError(t, err)
	require.Len(t, res.Cookies(), 1)
	session, err := sec.Decode(res.Cookies()[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.User)
}

func TestSaveSessionWithoutSession(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	err := SaveSession(httptest.NewRecorder(), r)
	var noSessionErr *NoSessionError
	assert.ErrorAs(t, err, &noSessionErr)
	assert.Nil(t, SessionFromContext(r.Context()))
}
