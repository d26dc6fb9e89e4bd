package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core/comment"
)

type commentApi struct {
	svc      *comment.Service
	validate *validator.Validate
}

func registerCommentAPI(g *echo.Group, svc *comment.Service, validate *validator.Validate) {
	api := commentApi{svc: svc, validate: validate}

	cg := g.Group("/comments")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.DELETE("/:id", api.destroy)
}

func (api *commentApi) query(ctx echo.Context) error {
	var filter comment.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to comment.QueryFilter")
	}

	comments, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *commentApi) create(ctx echo.Context) error {
	var data comment.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to comment.NewComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating comment")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *commentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
