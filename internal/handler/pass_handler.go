package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gatepass/internal/auth"
	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/service"
)

// PassHandler handles gate-pass endpoints.
type PassHandler struct {
	passService service.PassService
}

// NewPassHandler creates a new pass handler.
func NewPassHandler(passService service.PassService) *PassHandler {
	return &PassHandler{passService: passService}
}

// CreatePassRequest represents a new pass request.
type CreatePassRequest struct {
	OutDate         string `json:"outDate" validate:"required"`
	OutTime         string `json:"outTime" validate:"required"`
	InDate          string `json:"inDate" validate:"required"`
	InTime          string `json:"inTime" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	Destination     string `json:"destination" validate:"required"`
	ContactNumber   string `json:"contactNumber" validate:"required,len=10"`
	ParentContactNo string `json:"parentContactNo" validate:"required,len=10"`
}

// ReviewPassRequest represents a warden's decision on a pending pass.
type ReviewPassRequest struct {
	PassID     uint   `json:"passId" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	WardenNote string `json:"wardenNote"`
}

// PassResponse wraps a single pass.
type PassResponse struct {
	Pass *model.Pass `json:"pass"`
}

// PassListResponse wraps a pass listing.
type PassListResponse struct {
	Passes []model.Pass `json:"passes"`
}

// Create godoc
// @Summary Submit a new gate pass request
// @Tags passes
// @Accept json
// @Produce json
// @Param request body CreatePassRequest true "Pass request"
// @Success 201 {object} PassResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /passes [post]
func (h *PassHandler) Create(c echo.Context) error {
	var req CreatePassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student := auth.CurrentUser(c)
	pass, err := h.passService.Create(c.Request().Context(), student, service.CreatePassInput{
		OutDate:         req.OutDate,
		OutTime:         req.OutTime,
		InDate:          req.InDate,
		InTime:          req.InTime,
		Reason:          req.Reason,
		Destination:     req.Destination,
		ContactNumber:   req.ContactNumber,
		ParentContactNo: req.ParentContactNo,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, PassResponse{Pass: pass})
}

// ListMine godoc
// @Summary List the current student's passes
// @Tags passes
// @Produce json
// @Success 200 {object} PassListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /passes [get]
func (h *PassHandler) ListMine(c echo.Context) error {
	student := auth.CurrentUser(c)
	passes, err := h.passService.ListForStudent(c.Request().Context(), student.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PassListResponse{Passes: passes})
}

// ListPending godoc
// @Summary List pending passes with student profiles
// @Tags passes
// @Produce json
// @Success 200 {object} PassListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /passes/pending [get]
func (h *PassHandler) ListPending(c echo.Context) error {
	return h.listByStatus(c, model.PassPending, "")
}

// ListApproved godoc
// @Summary List approved passes, optionally for one date
// @Tags passes
// @Produce json
// @Param date query string false "Out date (YYYY-MM-DD)"
// @Success 200 {object} PassListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /passes/approved [get]
func (h *PassHandler) ListApproved(c echo.Context) error {
	return h.listByStatus(c, model.PassApproved, c.QueryParam("date"))
}

// ListRejected godoc
// @Summary List rejected passes with student profiles
// @Tags passes
// @Produce json
// @Success 200 {object} PassListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /passes/rejected [get]
func (h *PassHandler) ListRejected(c echo.Context) error {
	return h.listByStatus(c, model.PassRejected, "")
}

func (h *PassHandler) listByStatus(c echo.Context, status model.PassStatus, date string) error {
	passes, err := h.passService.ListByStatus(c.Request().Context(), status, date)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PassListResponse{Passes: passes})
}

// Review godoc
// @Summary Approve or reject a pending pass
// @Tags passes
// @Accept json
// @Produce json
// @Param request body ReviewPassRequest true "Review decision"
// @Success 200 {object} PassResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /passes/review [post]
func (h *PassHandler) Review(c echo.Context) error {
	var req ReviewPassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	warden := auth.CurrentUser(c)
	pass, err := h.passService.Review(c.Request().Context(), warden, service.ReviewInput{
		PassID:     req.PassID,
		Status:     model.PassStatus(req.Status),
		WardenNote: req.WardenNote,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PassResponse{Pass: pass})
}
