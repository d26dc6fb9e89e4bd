package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/lessonplan"
)

type lessonPlanApi struct {
	svc      *lessonplan.Service
	validate *validator.Validate
}

func registerLessonPlanAPI(g *echo.Group, svc *lessonplan.Service, validate *validator.Validate) {
	api := lessonPlanApi{svc: svc, validate: validate}

	lg := g.Group("/lesson-plans")
	lg.GET("", api.query)
	lg.POST("", api.create)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.update)
	lg.DELETE("/:id", api.destroy)
}

func (api *lessonPlanApi) query(ctx echo.Context) error {
	var filter lessonplan.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to lessonplan.QueryFilter")
	}

	plans, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying lesson plans")
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *lessonPlanApi) create(ctx echo.Context) error {
	var data lessonplan.NewLessonPlan
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLessonPlan")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lp, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson plan")
	}
	return ctx.JSON(http.StatusCreated, lp)
}

func (api *lessonPlanApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	lp, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lp)
}

func (api *lessonPlanApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data lessonplan.UpdateLessonPlan
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLessonPlan")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	lp, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating lesson plan")
	}
	return ctx.JSON(http.StatusOK, lp)
}

func (api *lessonPlanApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting lesson plan")
	}
	return ctx.NoContent(http.StatusNoContent)
}
