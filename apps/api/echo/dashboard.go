package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/dashboard"
)

const headerXCache = "X-Cache"

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		ov, hit, err := svc.Overview(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "building dashboard")
		}
		if hit {
			ctx.Response().Header().Set(headerXCache, "HIT")
		} else {
			ctx.Response().Header().Set(headerXCache, "MISS")
		}
		return ctx.JSON(http.StatusOK, ov)
	})
}
