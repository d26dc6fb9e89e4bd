package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/dashboard"
)

func requestID(ctx echo.Context) string {
	if id := ctx.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return ctx.Request().Header.Get(echo.HeaderXRequestID)
}

// invalidateDashboardMiddleware drops the cached dashboard after every successful write.
func invalidateDashboardMiddleware(svc *dashboard.Service, logger core.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				return err
			}
			switch ctx.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return nil
			}
			if err := svc.Invalidate(ctx.Request().Context()); err != nil {
				logger.Warn("invalidating dashboard cache", err)
			}
			return nil
		}
	}
}
