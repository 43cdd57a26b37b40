package auth

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"gatepass/internal/errors"
	"gatepass/internal/model"
)

// ContextUserKey is where the resolved user is stored on the echo context.
const ContextUserKey = "currentUser"

// CookieAuth validates the session cookie's signature and expiry. It rejects
// unauthenticated requests with 401 before any session lookup happens.
func CookieAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "cookie:" + SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "unauthorized",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// UserResolver loads the profile behind a live session. service.AuthService
// satisfies it, so secured requests go through the cached profile lookup.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID uint) (*model.User, error)
}

// ResolveSession checks the server-side session record and loads the current
// user into the context. A cookie whose record was deleted at logout is
// rejected here even though its signature is still valid. A missing record
// means the session is gone (401); any other store error means redis is
// unreachable and must not masquerade as an expired session (500).
func ResolveSession(store SessionStoreInterface, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*SessionClaims)
			if !ok {
				return unauthorized()
			}

			userID, _, err := store.Get(c.Request().Context(), claims.ID)
			if err != nil {
				if stderrors.Is(err, ErrSessionNotFound) {
					return unauthorized()
				}
				return serverError()
			}
			if userID != claims.UserID {
				return unauthorized()
			}

			user, err := users.CurrentUser(c.Request().Context(), userID)
			if err != nil {
				if stderrors.Is(err, errors.ErrUserNotFound) {
					return unauthorized()
				}
				return serverError()
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose session user has none of the given roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	roleSet := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized()
			}
			if _, ok := roleSet[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "forbidden",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the session user resolved by ResolveSession, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// SessionID returns the session ID (jti) of the request's session token.
func SessionID(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return ""
	}
	return claims.ID
}

func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "unauthorized",
		Code:  "UNAUTHORIZED",
	})
}

func serverError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
		Error: "internal server error",
		Code:  "INTERNAL_ERROR",
	})
}
