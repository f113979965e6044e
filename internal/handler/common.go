package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// principal builds the authenticated identity from the claims that
// JWTAuth stored in the context.  Role and email degrade to empty
// strings when absent; user_id is mandatory.
func principal(c echo.Context) (booking.Principal, error) {
	uid, err := getUserID(c)
	if err != nil {
		return booking.Principal{}, err
	}
	p := booking.Principal{UserID: uid}
	if role, ok := c.Get("role").(string); ok {
		p.Role = role
	}
	if email, ok := c.Get("email").(string); ok {
		p.Email = email
	}
	return p, nil
}

// parseTimeParam parses an optional RFC3339 query or body value.  An
// empty string yields a nil pointer, letting callers fall back to
// service defaults.
func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	u := t.UTC()
	return &u, nil
}
