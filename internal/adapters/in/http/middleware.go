package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

var errMissingToken = fmt.Errorf("missing bearer token: %w", errs.ErrUnauthorized)

// authenticate verifies the bearer token and stores its principal on the
// context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return s.fail(ctx, errMissingToken)
		}

		principal, err := s.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			return s.fail(ctx, err)
		}

		ctx.Set(principalKey, principal)
		return next(ctx)
	}
}

// requireOwner must run after authenticate.
func (s *Server) requireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		principal, _ := principalFrom(ctx)
		if principal.Role != ports.RoleOwner {
			return s.fail(ctx, fmt.Errorf("owner role required: %w", errs.ErrForbidden))
		}
		return next(ctx)
	}
}

// requireCustomerAccess admits the owner and the customer named by the
// customer_id path parameter. It must run after authenticate.
func (s *Server) requireCustomerAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if err := authorizeCustomer(ctx, ctx.Param("customer_id")); err != nil {
			return s.fail(ctx, err)
		}
		return next(ctx)
	}
}

func principalFrom(ctx echo.Context) (ports.Principal, bool) {
	principal, ok := ctx.Get(principalKey).(ports.Principal)
	return principal, ok
}

func authorizeCustomer(ctx echo.Context, customerID string) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return errMissingToken
	}
	if principal.Role == ports.RoleOwner {
		return nil
	}
	if principal.Role == ports.RoleCustomer && principal.CustomerID == customerID {
		return nil
	}
	return fmt.Errorf("customer %s is not accessible with this token: %w", customerID, errs.ErrForbidden)
}

// recordMetrics counts every request by its route pattern. Errors returned
// by later handlers are rendered here so the recorded status is final.
func (s *Server) recordMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()

		err := next(ctx)
		if err != nil {
			ctx.Error(err)
		}

		route := ctx.Path()
		if route == "" || errors.Is(err, echo.ErrNotFound) {
			route = "unmatched"
		}
		s.metrics.RecordHTTPRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
		return nil
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	logger := s.logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}

			logger.LogAttrs(requestContext(ctx), level, "request", attrs...)
			return nil
		},
	})
}

func requestContext(ctx echo.Context) context.Context {
	if req := ctx.Request(); req != nil {
		return req.Context()
	}
	return context.Background()
}
