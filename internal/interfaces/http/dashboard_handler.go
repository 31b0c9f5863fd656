package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/analytics"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
)

// DashboardHandler maneja el resumen del panel.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard godoc
// @Summary      Resumen del panel
// @Description  Stock por unidad, consumo presupuestal vigente y conteos de compras/solicitudes por estado.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "filtrar compras/solicitudes por unidad"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.uc.GetDashboard(c.Context(), c.Query("unit_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
