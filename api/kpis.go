package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) GetUnitKpis(ec echo.Context) error {
	ctx := ec.Request().Context()
	referenceDate, err := h.referenceDate(ec)
	if err != nil {
		return err
	}
	options, err := h.options(ec)
	if err != nil {
		return err
	}

	report, err := h.kpis.Calculate(ctx, ec.Param("unitCode"), referenceDate, options)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, report)
}

func (h *Handler) ExportUnitKpis(ec echo.Context) error {
	ctx := ec.Request().Context()
	referenceDate, err := h.referenceDate(ec)
	if err != nil {
		return err
	}
	options, err := h.options(ec)
	if err != nil {
		return err
	}

	report, err := h.kpis.Calculate(ctx, ec.Param("unitCode"), referenceDate, options)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("npda-kpis-%s-%s.xlsx", report.UnitCode, report.ReferenceDate.Format(audit.DateLayout))
	ec.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ec.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return kpis.NewExport(report).Write(ec.Response())
}

func (h *Handler) GetPatientKpis(ec echo.Context) error {
	ctx := ec.Request().Context()
	referenceDate, err := h.referenceDate(ec)
	if err != nil {
		return err
	}
	options, err := h.options(ec)
	if err != nil {
		return err
	}

	report, err := h.kpis.CalculateForPatient(ctx, ec.Param("patientId"), referenceDate, options)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, report)
}
