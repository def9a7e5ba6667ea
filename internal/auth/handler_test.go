package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athletiq/athlete-tracker/pkg"
)

func newAuthHandlerForTest(t *testing.T) (*Handler, redismock.ClientMock) {
	t.Helper()

	passwordHash, err := pkg.HashPassword("testpass")
	require.NoError(t, err)

	redisClient, redisMock := redismock.NewClientMock()
	authService := NewService(&Coach{
		Username:     "coach",
		PasswordHash: passwordHash,
	}, time.Hour, redisClient)
	authService.RandStringFunc = func(s int) (string, error) {
		return "test-token", nil
	}

	return NewHandler(authService), redisMock
}

func TestHandler_Login(t *testing.T) {
	handler, redisMock := newAuthHandlerForTest(t)

	redisMock.Regexp().ExpectSet("athlete-tracker-session||test-token", `\d+`, 0).SetVal("OK")
	redisMock.ExpectSAdd("athlete-tracker-sessions", "test-token").SetVal(1)

	credsJson, err := json.Marshal(Credentials{
		Username: "coach",
		Password: "testpass",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/a/login", bytes.NewReader(credsJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleLogin(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token": "test-token"}`, rec.Body.String())
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	handler, _ := newAuthHandlerForTest(t)

	credsJson, err := json.Marshal(Credentials{
		Username: "coach",
		Password: "wrong",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/a/login", bytes.NewReader(credsJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleLogin(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "wrong credentials")
}

func TestHandler_Login_EmptyCreds(t *testing.T) {
	handler, _ := newAuthHandlerForTest(t)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/a/login", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	handler.HandleLogin(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Logout(t *testing.T) {
	handler, redisMock := newAuthHandlerForTest(t)

	redisMock.ExpectGet("athlete-tracker-session||test-token").SetVal("1756400000")
	redisMock.ExpectDel("athlete-tracker-session||test-token").SetVal(1)
	redisMock.ExpectSRem("athlete-tracker-sessions", "test-token").SetVal(1)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/a/logout", nil)
	require.NoError(t, err)
	req.Header.Set("X-AT-TOKEN", "test-token")

	handler.HandleLogout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged-out", rec.Body.String())
}

func TestHandler_Logout_NoToken(t *testing.T) {
	handler, _ := newAuthHandlerForTest(t)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/a/logout", nil)
	require.NoError(t, err)

	handler.HandleLogout(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
