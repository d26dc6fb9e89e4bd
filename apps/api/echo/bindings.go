package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jamespares/chinaprof/core"
	exportsvc "github.com/jamespares/chinaprof/services/export"
)

var (
	orderingParam = "ordering"
	formatParam   = "format"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// pathID reads the positive integer path param "id". Anything else is a 404.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

func exportFormat(ctx echo.Context) (exportsvc.Format, error) {
	f, err := exportsvc.ParseFormat(ctx.QueryParam(formatParam))
	if err != nil {
		return "", core.NewValidationError(err, core.FieldError{Field: formatParam, Error: err.Error()})
	}
	return f, nil
}

// sendTable writes t as an attachment named name.
func sendTable(ctx echo.Context, name string, format exportsvc.Format, t exportsvc.Table) error {
	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, format.ContentType())
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+format.Filename(name)+`"`)
	resp.WriteHeader(http.StatusOK)
	return exportsvc.Write(resp, format, t)
}
