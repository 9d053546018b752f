package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"oompa/backend/internal/filter"
	"oompa/backend/internal/service"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", service.ErrInvalid, name, c.Param(name))
	}
	return id, nil
}

func parseCriteria(c echo.Context) filter.Criteria {
	return filter.Criteria{
		Name:       c.QueryParam("name"),
		Profession: c.QueryParam("profession"),
		Query:      c.QueryParam("q"),
	}.Normalize()
}
