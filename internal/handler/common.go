package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses a numeric path parameter.  Zero is never a valid store id.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// validationStatus maps a creation error to an HTTP response when it is an
// expected validation failure, or returns false for store errors so the
// caller can log and return a 500.
func validationStatus(err error) (int, echo.Map, bool) {
	var missing *model.MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, echo.Map{"error": missing.Error()}, true
	}
	var malformed *model.MalformedFieldError
	if errors.As(err, &malformed) {
		return http.StatusBadRequest, echo.Map{"error": malformed.Error()}, true
	}
	return 0, nil, false
}

// getUserID extracts the user_id the JWT middleware stored in the context.
// JWT numeric claims decode as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
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
