package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// statusCode maps a core error onto an HTTP status. Validation wins over
// not-found so that a request with several problems reports the client's
// input first.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.IsValidation(err), errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Unclassified errors are logged and their
// text is not sent to the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return ctx.JSON(he.Code, Error{
			Code:    he.Code,
			Message: fmt.Sprint(he.Message),
		})
	}

	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("route", ctx.Path()),
			slog.Any("error", err))
		message = internalErrorMessage
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// HTTPErrorHandler renders errors raised outside the handlers, such as
// unknown routes and middleware failures, in the same Error shape.
func (s *Server) HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		if he.Code >= http.StatusInternalServerError {
			s.logger.ErrorContext(ctx.Request().Context(), "request failed", slog.Any("error", err))
			message = internalErrorMessage
		}
		if writeErr := ctx.JSON(he.Code, Error{Code: he.Code, Message: message}); writeErr != nil {
			s.logger.ErrorContext(ctx.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
		}
		return
	}

	if writeErr := s.fail(ctx, err); writeErr != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
	}
}
