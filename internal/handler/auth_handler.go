package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gatepass/internal/auth"
	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student warden guard"`
}

// RegisterRequest represents a student registration request.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=3"`
	Password      string `json:"password" validate:"required,min=6"`
	Name          string `json:"name" validate:"required"`
	RoomNo        string `json:"roomNo"`
	Course        string `json:"course"`
	Batch         string `json:"batch"`
	PhoneNo       string `json:"phoneNo" validate:"required,len=10"`
	ParentPhoneNo string `json:"parentPhoneNo" validate:"required,len=10"`
}

// UserResponse wraps a user profile.
type UserResponse struct {
	User *model.User `json:"user"`
}

// MessageResponse wraps a plain message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login godoc
// @Summary Log in with username, password, and role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, model.Role(req.Role))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(h.sessionCookie(token, int(auth.SessionTTL.Seconds())))

	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// Register godoc
// @Summary Register a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		Name:          req.Name,
		RoomNo:        req.RoomNo,
		Course:        req.Course,
		Batch:         req.Batch,
		PhoneNo:       req.PhoneNo,
		ParentPhoneNo: req.ParentPhoneNo,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, UserResponse{User: user})
}

// Me godoc
// @Summary Get the current session user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// Logout godoc
// @Summary Log out and invalidate the session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sessionID := auth.SessionID(c); sessionID != "" {
		if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "logout failed",
				Code:  "LOGOUT_FAILED",
			})
		}
	}

	// Expire the cookie client-side as well.
	c.SetCookie(h.sessionCookie("", -1))

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	}
}
