package errors

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// CustomHTTPErrorHandler responds to domain errors with their status code and message.
// Errors raised by echo itself and unknown errors keep the default handling.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	var he *echo.HTTPError
	if errors.As(err, &he) || !errors.As(err, &HttpError{}) {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}
	c.Echo().DefaultHTTPErrorHandler(echo.NewHTTPError(StatusCode(err), err.Error()).SetInternal(err), c)
}
