package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// StockHandler maneja movimientos de stock y consultas de saldos.
type StockHandler struct {
	movementUC *ledger.MovementUseCase
	stockRepo  repository.StockRepository
	movRepo    repository.StockMovementRepository
}

// NewStockHandler construye el handler. Los repos se usan solo para lecturas;
// toda escritura pasa por el caso de uso transaccional.
func NewStockHandler(movementUC *ledger.MovementUseCase, stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) *StockHandler {
	return &StockHandler{movementUC: movementUC, stockRepo: stockRepo, movRepo: movRepo}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Tipos: entrada, salida, ajuste (cantidad con signo) y traslado (from/to atómico).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, item_id, unit_id (o from/to para traslado), quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.movementUC.RegisterMovement(c.Context(), ledger.MovementInput{
		UserID:     GetUserID(c),
		ItemID:     in.ItemID,
		UnitID:     in.UnitID,
		FromUnitID: in.FromUnitID,
		ToUnitID:   in.ToUnitID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Reference:  in.Reference,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListByUnit godoc
// @Summary      Saldos de stock de una unidad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/{unit_id} [get]
func (h *StockHandler) ListByUnit(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.stockRepo.ListByUnit(c.Params("unit_id"), page.Limit, page.Offset)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StockResponse{ItemID: s.ItemID, UnitID: s.UnitID, Quantity: s.Quantity, UpdatedAt: s.UpdatedAt})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de stock
// @Description  Filtra por item_id o unit_id (al menos uno requerido) y rango de fechas opcional.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "ID del ítem"
// @Param        unit_id  query  string  false  "ID de la unidad (origen o destino)"
// @Param        from     query  string  false  "desde (RFC 3339)"
// @Param        to       query  string  false  "hasta (RFC 3339)"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida (RFC 3339)"})
	}

	var list []*entity.StockMovement
	switch {
	case c.Query("item_id") != "":
		list, err = h.movRepo.ListByItem(c.Query("item_id"), from, to, page.Limit, page.Offset)
	case c.Query("unit_id") != "":
		list, err = h.movRepo.ListByUnit(c.Query("unit_id"), from, to, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id o unit_id requerido"})
	}
	if err != nil {
		return handleDomainError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ItemID:        m.ItemID,
			FromUnitID:    m.FromUnitID,
			ToUnitID:      m.ToUnitID,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
