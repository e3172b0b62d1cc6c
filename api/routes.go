package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterHandlers adds the versioned routes of the service to the router.
func RegisterHandlers(e *echo.Echo, h *Handler) {
	v1 := e.Group("/v1")

	// (GET /v1/audit/period)
	v1.GET("/audit/period", h.GetAuditPeriod)
	// (GET /v1/units/{unitCode}/kpis)
	v1.GET("/units/:unitCode/kpis", h.GetUnitKpis)
	// (GET /v1/units/{unitCode}/kpis/export)
	v1.GET("/units/:unitCode/kpis/export", h.ExportUnitKpis)
	// (GET /v1/patients/{patientId}/kpis)
	v1.GET("/patients/:patientId/kpis", h.GetPatientKpis)
}
