package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/weeklytest"
	exportsvc "github.com/jamespares/chinaprof/services/export"
)

type weeklyTestApi struct {
	svc      *weeklytest.Service
	validate *validator.Validate
}

func registerWeeklyTestAPI(g *echo.Group, svc *weeklytest.Service, validate *validator.Validate) {
	api := weeklyTestApi{svc: svc, validate: validate}

	tg := g.Group("/weekly-tests")
	tg.GET("", api.query)
	tg.POST("", api.create)

	dg := tg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.GET("/scores", api.scores)
	dg.GET("/results", api.results)
	dg.GET("/results/export", api.exportResults)

	g.POST("/weekly-scores", api.submitScores)
}

func (api *weeklyTestApi) query(ctx echo.Context) error {
	tests, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying weekly tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *weeklyTestApi) create(ctx echo.Context) error {
	var data weeklytest.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to weeklytest.NewTest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating weekly test")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *weeklyTestApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *weeklyTestApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting weekly test")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *weeklyTestApi) scores(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	scores, err := api.svc.Scores(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying scores")
	}
	return ctx.JSON(http.StatusOK, scores)
}

func (api *weeklyTestApi) submitScores(ctx echo.Context) error {
	var data weeklytest.ScoreBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to weeklytest.ScoreBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	scores, err := api.svc.SubmitScores(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting scores")
	}
	return ctx.JSON(http.StatusOK, scores)
}

func (api *weeklyTestApi) results(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.Results(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing test results")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *weeklyTestApi) exportResults(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	format, err := exportFormat(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Results(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing test results")
	}
	return sendTable(ctx, fmt.Sprintf("weekly-test-%d", id), format, exportsvc.TestResultsTable(res))
}
