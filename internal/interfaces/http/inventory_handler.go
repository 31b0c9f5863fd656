package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/inventory"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// InventoryHandler maneja el inventario individualizado y sus eventos.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// MoveToInventory godoc
// @Summary      Pasar stock a inventario individualizado
// @Description  Ítems con ciclo de vida: cantidad entera, un registro de cantidad 1 por unidad física.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveToInventoryRequest  true  "item_id, unit_id, quantity, location"
// @Success      201   {array}   dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) MoveToInventory(c *fiber.Ctx) error {
	var in dto.MoveToInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	records, err := h.uc.MoveToInventory(c.Context(), inventory.MoveInput{
		ItemID:   in.ItemID,
		UnitID:   in.UnitID,
		Quantity: in.Quantity,
		Location: in.Location,
		UserID:   GetUserID(c),
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.InventoryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toInventoryResponse(r))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReturnToStock godoc
// @Summary      Devolver inventario al stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del registro de inventario"
// @Param        body  body  dto.ReturnToStockRequest  true  "quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/return [post]
func (h *InventoryHandler) ReturnToStock(c *fiber.Ctx) error {
	var in dto.ReturnToStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ReturnToStock(c.Context(), c.Params("id"), in.Quantity, GetUserID(c)); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "inventario devuelto al stock"})
}

// RegisterEvent godoc
// @Summary      Registrar evento de ciclo de vida
// @Description  Solo para registros de ítems con ciclo de vida: mantenimiento, reparacion, baja, reactivacion.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del registro de inventario"
// @Param        body  body  dto.InventoryEventRequest  true  "type, notes"
// @Success      201   {object}  dto.InventoryEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/events [post]
func (h *InventoryHandler) RegisterEvent(c *fiber.Ctx) error {
	var in dto.InventoryEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.uc.RegisterEvent(c.Params("id"), in.Type, in.Notes, GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryEventResponse(event))
}

// ListByUnit godoc
// @Summary      Listar inventario de una unidad
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/unit/{unit_id} [get]
func (h *InventoryHandler) ListByUnit(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	records, err := h.uc.ListByUnit(c.Params("unit_id"), page.Limit, page.Offset)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.InventoryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toInventoryResponse(r))
	}
	return c.JSON(out)
}

// ListEvents godoc
// @Summary      Eventos de un registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro de inventario"
// @Success      200  {array}   dto.InventoryEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/events [get]
func (h *InventoryHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.uc.ListEvents(c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.InventoryEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toInventoryEventResponse(e))
	}
	return c.JSON(out)
}

func toInventoryResponse(r *entity.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:        r.ID,
		ItemID:    r.ItemID,
		UnitID:    r.UnitID,
		Quantity:  r.Quantity,
		Location:  r.Location,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func toInventoryEventResponse(e *entity.InventoryEvent) dto.InventoryEventResponse {
	return dto.InventoryEventResponse{
		ID:          e.ID,
		InventoryID: e.InventoryID,
		Type:        e.Type,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}
