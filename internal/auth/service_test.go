package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	testUsername     = "coach"
	testPassword     = "testpass"
	testPasswordHash = "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i" // testpass
	testCoach        = &Coach{
		Username:     testUsername,
		PasswordHash: testPasswordHash,
	}
	testCredentials = Credentials{
		Username: testUsername,
		Password: testPassword,
	}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestService_Login(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testCoach, time.Hour, rdb)
	require.NotNil(t, authService)
	assert.Equal(t, time.Hour, authService.ttl)

	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}

	now := time.Now()
	sessionKey := sessionKeyPrefix + testToken
	mock.ExpectSet(sessionKey, now.Unix(), 0).SetVal(fmt.Sprintf("%d", now.Unix()))
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)

	token, err := authService.Login(context.Background(), testCredentials, now)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)
}

func TestService_Login_WrongCredentials(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testCoach, time.Hour, rdb)

	token, err := authService.Login(context.Background(), Credentials{
		Username: testUsername,
		Password: "invalid_pass",
	}, time.Now())
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Empty(t, token)

	token, err = authService.Login(context.Background(), Credentials{
		Username: "impostor",
		Password: testPassword,
	}, time.Now())
	assert.ErrorIs(t, err, ErrWrongUsername)
	assert.Empty(t, token)
}

func TestService_Logout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testCoach, time.Hour, rdb)

	now := time.Now()
	testToken := "test_token"
	sessionKey := sessionKeyPrefix + testToken
	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d", now.Unix()))
	mock.ExpectDel(sessionKey).SetVal(1)
	mock.ExpectSRem(tokensSetKey, testToken).SetVal(1)

	loggedOut, err := authService.Logout(context.Background(), testToken)
	require.NoError(t, err)
	assert.True(t, loggedOut)
}

func TestLoginChecker_IsLogged(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	checker := NewLoginChecker(time.Hour, rdb)

	freshToken := "fresh_token"
	mock.ExpectGet(sessionKeyPrefix + freshToken).
		SetVal(fmt.Sprintf("%d", time.Now().Unix()))
	logged, err := checker.IsLogged(context.Background(), freshToken)
	require.NoError(t, err)
	assert.True(t, logged)

	staleToken := "stale_token"
	mock.ExpectGet(sessionKeyPrefix + staleToken).
		SetVal(fmt.Sprintf("%d", time.Now().Add(-2*time.Hour).Unix()))
	logged, err = checker.IsLogged(context.Background(), staleToken)
	require.NoError(t, err)
	assert.False(t, logged)
}
