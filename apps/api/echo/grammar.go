package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/grammar"
	exportsvc "github.com/jamespares/chinaprof/services/export"
)

type grammarApi struct {
	svc      *grammar.Service
	validate *validator.Validate
}

func registerGrammarAPI(g *echo.Group, svc *grammar.Service, validate *validator.Validate) {
	api := grammarApi{svc: svc, validate: validate}

	gg := g.Group("/grammar-errors")
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.DELETE("/:id", api.destroy)
	gg.GET("/catalog", api.catalog)
	gg.GET("/analytics", api.analytics)
	gg.GET("/analytics/export", api.exportAnalytics)
}

func (api *grammarApi) query(ctx echo.Context) error {
	var filter grammar.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to grammar.QueryFilter")
	}

	events, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying grammar errors")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *grammarApi) create(ctx echo.Context) error {
	var data grammar.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to grammar.NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "logging grammar error")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *grammarApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting grammar error")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *grammarApi) catalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, grammar.ByCategory())
}

func (api *grammarApi) analytics(ctx echo.Context) error {
	var af grammar.AnalyticsFilter
	if err := ctx.Bind(&af); err != nil {
		return errors.Wrap(err, "binding to grammar.AnalyticsFilter")
	}
	filter, err := af.Parse()
	if err != nil {
		return err
	}

	a, err := api.svc.Analytics(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "analysing grammar errors")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *grammarApi) exportAnalytics(ctx echo.Context) error {
	var af grammar.AnalyticsFilter
	if err := ctx.Bind(&af); err != nil {
		return errors.Wrap(err, "binding to grammar.AnalyticsFilter")
	}
	filter, err := af.Parse()
	if err != nil {
		return err
	}
	format, err := exportFormat(ctx)
	if err != nil {
		return err
	}

	a, err := api.svc.Analytics(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "analysing grammar errors")
	}
	return sendTable(ctx, "grammar-errors", format, exportsvc.GrammarTable(a))
}
