package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "gatepass/internal/errors"
	"gatepass/internal/model"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Store(ctx context.Context, sessionID string, userID uint, role string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, userID, role, ttl)
	return args.Error(0)
}

func (m *mockSessionStore) Get(ctx context.Context, sessionID string) (uint, string, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockUserResolver struct {
	mock.Mock
}

func (m *mockUserResolver) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func sessionContext(userID uint, sessionID string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user", &jwt.Token{Claims: &SessionClaims{
		UserID:           userID,
		Role:             "student",
		RegisteredClaims: jwt.RegisteredClaims{ID: sessionID},
	}})
	return c
}

func TestResolveSession(t *testing.T) {
	student := &model.User{ID: 7, Username: "ravi", Role: model.RoleStudent}

	t.Run("loads the session user through the resolver", func(t *testing.T) {
		store := new(mockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(uint(7), "student", nil)
		resolver := new(mockUserResolver)
		resolver.On("CurrentUser", mock.Anything, uint(7)).Return(student, nil)

		c := sessionContext(7, "sess-1")
		called := false
		err := ResolveSession(store, resolver)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})(c)

		assert.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, student, CurrentUser(c))
		resolver.AssertExpectations(t)
	})

	t.Run("missing session record is unauthorized", func(t *testing.T) {
		store := new(mockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(uint(0), "", ErrSessionNotFound)

		err := ResolveSession(store, new(mockUserResolver))(nextFails(t))(sessionContext(7, "sess-1"))

		httpErr := assertHTTPError(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("store transport failure is a server error, not a logout", func(t *testing.T) {
		store := new(mockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(uint(0), "",
			fmt.Errorf("read session: %w", stderrors.New("dial tcp 127.0.0.1:6379: connection refused")))

		err := ResolveSession(store, new(mockUserResolver))(nextFails(t))(sessionContext(7, "sess-1"))

		httpErr := assertHTTPError(t, err)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})

	t.Run("record held by another user is unauthorized", func(t *testing.T) {
		store := new(mockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(uint(9), "student", nil)

		err := ResolveSession(store, new(mockUserResolver))(nextFails(t))(sessionContext(7, "sess-1"))

		httpErr := assertHTTPError(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("deleted account is unauthorized", func(t *testing.T) {
		store := new(mockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(uint(7), "student", nil)
		resolver := new(mockUserResolver)
		resolver.On("CurrentUser", mock.Anything, uint(7)).Return(nil, apperrors.ErrUserNotFound)

		err := ResolveSession(store, resolver)(nextFails(t))(sessionContext(7, "sess-1"))

		httpErr := assertHTTPError(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		err := ResolveSession(new(mockSessionStore), new(mockUserResolver))(nextFails(t))(c)

		httpErr := assertHTTPError(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func nextFails(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	}
}

func assertHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	var httpErr *echo.HTTPError
	if !stderrors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return httpErr
}
