package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/report"
)

func registerReportAPI(g *echo.Group, svc *report.Service) {
	g.GET("/reports/students/:id", func(ctx echo.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		rep, err := svc.Student(ctx.Request().Context(), id)
		if err != nil {
			return errors.Wrap(err, "generating student report")
		}
		return ctx.JSON(http.StatusOK, rep)
	})
}
