package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// BudgetHandler maneja las peticiones HTTP de presupuestos por unidad.
type BudgetHandler struct {
	uc *ledger.BudgetUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *ledger.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear presupuesto de unidad
// @Description  Rechaza con 409 si la unidad ya tiene un presupuesto cuyo período se solape.
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetRequest  true  "unit_id, period_start, period_end, amount"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	budget, err := h.uc.Create(c.Context(), ledger.CreateInput{
		UnitID:      in.UnitID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Amount:      in.Amount,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBudgetResponse(budget))
}

// RecordIncome godoc
// @Summary      Registrar ingreso presupuestal
// @Description  Acredita el presupuesto cuyo período cubre la fecha; si no existe, crea uno con el mes calendario.
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordIncomeRequest  true  "unit_id, date, amount, notes"
// @Success      200   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budgets/income [post]
func (h *BudgetHandler) RecordIncome(c *fiber.Ctx) error {
	var in dto.RecordIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	budget, err := h.uc.RecordIncome(c.Context(), in.UnitID, in.Date, in.Amount, in.Notes, GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toBudgetResponse(budget))
}

// ManualDebit godoc
// @Summary      Débito manual de ajuste
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BudgetDebitRequest  true  "unit_id, date, amount, notes"
// @Success      200   {object}  dto.BudgetResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/budgets/debit [post]
func (h *BudgetHandler) ManualDebit(c *fiber.Ctx) error {
	var in dto.BudgetDebitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	budget, err := h.uc.ManualDebit(c.Context(), in.UnitID, in.Date, in.Amount, in.Notes, GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toBudgetResponse(budget))
}

// Available godoc
// @Summary      Presupuesto disponible de una unidad a una fecha
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        date     query  string  false  "fecha (RFC 3339); por defecto hoy"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/budgets/{unit_id}/available [get]
func (h *BudgetHandler) Available(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida (RFC 3339)"})
		}
		date = parsed
	}
	budget, err := h.uc.Available(c.Params("unit_id"), date)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toBudgetResponse(budget))
}

// ListByUnit godoc
// @Summary      Listar presupuestos de una unidad
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.BudgetResponse
// @Router       /api/budgets/{unit_id} [get]
func (h *BudgetHandler) ListByUnit(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByUnit(c.Params("unit_id"), page.Limit, page.Offset)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBudgetResponse(b))
	}
	return c.JSON(out)
}

func toBudgetResponse(b *entity.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:          b.ID,
		UnitID:      b.UnitID,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		Amount:      b.Amount,
		Used:        b.Used,
		Available:   b.Available(),
	}
}
