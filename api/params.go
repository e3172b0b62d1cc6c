package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

// referenceDate reads the date query parameter. Requests without one are calculated
// for the current day.
func (h *Handler) referenceDate(ec echo.Context) (time.Time, error) {
	value := ec.QueryParam("date")
	if value == "" {
		return audit.Day(h.now().UTC()), nil
	}

	date, err := audit.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", errors.BadRequest, value)
	}
	return date, nil
}

func (h *Handler) options(ec echo.Context) (kpis.Options, error) {
	options := kpis.Options{
		IncludePatients: h.config.IncludePatientIds,
	}

	err := echo.QueryParamsBinder(ec).
		Bool("includePatients", &options.IncludePatients).
		BindError()
	if err != nil {
		return kpis.Options{}, fmt.Errorf("%w: invalid includePatients parameter", errors.BadRequest)
	}
	return options, nil
}
