package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/homework"
)

type homeworkApi struct {
	svc      *homework.Service
	validate *validator.Validate
}

type wipeResponse struct {
	Deleted int64 `json:"deleted"`
}

func registerHomeworkAPI(g *echo.Group, svc *homework.Service, validate *validator.Validate) {
	api := homeworkApi{svc: svc, validate: validate}

	hg := g.Group("/homework")
	hg.GET("", api.query)
	hg.POST("", api.submit)
	hg.DELETE("", api.clear)
	hg.GET("/grid", api.grid)
	hg.DELETE("/wipe", api.wipe)
}

func (api *homeworkApi) query(ctx echo.Context) error {
	var filter homework.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to homework.QueryFilter")
	}

	entries, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying homework")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *homeworkApi) submit(ctx echo.Context) error {
	var data homework.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to homework.Submission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entries, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting homework")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *homeworkApi) clear(ctx echo.Context) error {
	var data homework.CellRef
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to homework.CellRef")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Clear(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "clearing homework")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *homeworkApi) grid(ctx echo.Context) error {
	var r homework.DateRange
	if err := ctx.Bind(&r); err != nil {
		return errors.Wrap(err, "binding to homework.DateRange")
	}

	grid, err := api.svc.Grid(ctx.Request().Context(), r)
	if err != nil {
		return errors.Wrap(err, "building homework grid")
	}
	return ctx.JSON(http.StatusOK, grid)
}

func (api *homeworkApi) wipe(ctx echo.Context) error {
	n, err := api.svc.Wipe(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "wiping homework")
	}
	return ctx.JSON(http.StatusOK, wipeResponse{Deleted: n})
}
