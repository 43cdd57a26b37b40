package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gatepass/internal/auth"
	"gatepass/internal/errors"
	"gatepass/internal/service"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UploadProfilePhoto godoc
// @Summary Upload a profile photo
// @Tags users
// @Accept mpfd
// @Produce json
// @Param photo formData file true "Profile photo (jpeg/png/gif/webp, max 10MB)"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile-photo [post]
func (h *UserHandler) UploadProfilePhoto(c echo.Context) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "photo file is required",
			Code:  "PHOTO_REQUIRED",
		})
	}

	user := auth.CurrentUser(c)
	updated, err := h.userService.UpdateProfilePhoto(c.Request().Context(), user.ID, file)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UserResponse{User: updated})
}
