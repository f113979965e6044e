package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.  All methods
// assume JWT authentication already ran; the service enforces the
// ownership rules, the handler only translates sentinel errors into
// status codes.
type BookingHandler struct {
	Svc *booking.Service
}

// NewBookingHandler constructs a BookingHandler and panics when the
// service is nil.
func NewBookingHandler(svc *booking.Service) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

type createBookingReq struct {
	TableID   uint64 `json:"table_id"`
	StartTime string `json:"start_time"` // RFC3339, optional; defaults to now
	EndTime   string `json:"end_time"`   // RFC3339, optional; defaults to start+slot
}

type updateBookingReq struct {
	StartTime string `json:"start_time"` // RFC3339, required
}

// Create handles POST /v1/bookings.  It books a table for the
// requester, returning the stored booking with its fixed pricing plus
// a fresh availability snapshot.  A slot conflict is reported as 409.
func (h *BookingHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := parseTimeParam(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}
	end, err := parseTimeParam(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
	}

	res, err := h.Svc.Create(c.Request().Context(), p, req.TableID, start, end)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Update handles PATCH /v1/bookings/:id.  It moves the booking to a
// new start time and reprices it against the offers valid there.
func (h *BookingHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := parseTimeParam(req.StartTime)
	if err != nil || start == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}

	b, err := h.Svc.Update(c.Request().Context(), p, id, *start)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// Cancel handles DELETE /v1/bookings/:id.  Only the owner may cancel.
// Cancelling an already-cancelled booking succeeds without side
// effects; both cases return the refreshed availability snapshot.
func (h *BookingHandler) Cancel(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	res, err := h.Svc.Cancel(c.Request().Context(), p, id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// MyBookings handles GET /v1/my-bookings.  It lists the requester's
// bookings, newest start first, with tables resolved.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Svc.UserBookings(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// bookingError maps service sentinels onto HTTP status codes.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInput), errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrTableNotFound), errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
