package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/class"
	"github.com/jamespares/chinaprof/core/student"
)

type classApi struct {
	svc        *class.Service
	studentSvc *student.Service
	validate   *validator.Validate
}

func registerClassAPI(g *echo.Group, svc *class.Service, studentSvc *student.Service, validate *validator.Validate) {
	api := classApi{svc: svc, studentSvc: studentSvc, validate: validate}

	cg := g.Group("/classes")
	cg.GET("", api.query)
	cg.POST("", api.create)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/students", api.students)
	dg.GET("/stats", api.stats)
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data class.UpdateClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) students(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err = api.svc.Get(ctx.Request().Context(), id); err != nil {
		return err
	}

	students, err := api.studentSvc.Query(ctx.Request().Context(), &student.QueryFilter{ClassID: id}, nil)
	if err != nil {
		return errors.Wrap(err, "querying class students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *classApi) stats(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st, err := api.svc.Stats(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing class stats")
	}
	return ctx.JSON(http.StatusOK, st)
}
