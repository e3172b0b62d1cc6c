package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
)

func (h *Handler) GetAuditPeriod(ec echo.Context) error {
	referenceDate, err := h.referenceDate(ec)
	if err != nil {
		return err
	}

	period, err := audit.PeriodForDate(referenceDate)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.BadRequest, err)
	}

	return ec.JSON(http.StatusOK, period)
}
