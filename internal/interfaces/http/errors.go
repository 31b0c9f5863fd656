package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/domain"
)

// handleDomainError traduce errores de dominio a respuestas HTTP. Los errores
// tipados de ledger y workflow llevan su contexto estructurado en Detail para
// que el cliente pueda mostrar faltantes por ítem o la transición rechazada.
func handleDomainError(c *fiber.Ctx, err error) error {
	var reqShortfall *domain.RequestShortfallError
	if errors.As(err, &reqShortfall) {
		detail := make([]dto.ShortfallDetail, 0, len(reqShortfall.Shortfalls))
		for _, s := range reqShortfall.Shortfalls {
			detail = append(detail, dto.ShortfallDetail{
				ItemID:    s.ItemID,
				Requested: s.Requested,
				Available: s.Available,
				Missing:   s.Missing,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente en el CD para enviar la solicitud",
			Detail:  detail,
		})
	}

	var stockShortfall *domain.StockShortfallError
	if errors.As(err, &stockShortfall) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Detail: dto.ShortfallDetail{
				ItemID:    stockShortfall.ItemID,
				Requested: stockShortfall.Requested,
				Available: stockShortfall.Available,
				Missing:   stockShortfall.Missing(),
			},
		})
	}

	var budgetShortfall *domain.BudgetShortfallError
	if errors.As(err, &budgetShortfall) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_BUDGET",
			Message: "presupuesto insuficiente",
			Detail: fiber.Map{
				"unit_id":   budgetShortfall.UnitID,
				"budget_id": budgetShortfall.BudgetID,
				"required":  budgetShortfall.Required,
				"available": budgetShortfall.Available,
				"missing":   budgetShortfall.Missing(),
			},
		})
	}

	var transition *domain.TransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: "transición de estado no permitida",
			Detail: fiber.Map{
				"entity": transition.Entity,
				"from":   transition.From,
				"to":     transition.To,
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrBudgetOverlap):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUDGET_OVERLAP", Message: "la unidad ya tiene un presupuesto que cubre parte del período"})
	case errors.Is(err, domain.ErrNoBudgetForPeriod):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_BUDGET", Message: "no hay presupuesto para el período"})
	case errors.Is(err, domain.ErrDuplicateSelection):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SELECTION", Message: "ya existe una respuesta seleccionada para el ítem"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
