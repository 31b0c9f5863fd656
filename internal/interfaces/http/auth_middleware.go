package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/pkg/jwt"
)

// Locals keys para UserID, UnitID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalUnitID = "unit_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, UnitID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, unitID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUnitID, unitID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUnitID devuelve el UnitID del contexto (después del middleware de auth).
func GetUnitID(c *fiber.Ctx) string {
	v := c.Locals(LocalUnitID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Acciones autorizables. La autorización se decide por (rol, acción) en la
// tabla de capacidades, nunca comparando nombres de rol dentro de los handlers.
const (
	ActionManageCatalog    = "catalog.manage"    // crear/editar unidades e ítems
	ActionManageBudget     = "budget.manage"     // crear presupuestos, ingresos, débitos
	ActionMoveStock        = "stock.move"        // movimientos manuales de stock
	ActionManageInventory  = "inventory.manage"  // individualizar, eventos, retorno
	ActionManagePurchase   = "purchase.manage"   // crear compras, cotizar, cambiar estado
	ActionFinalizePurchase = "purchase.finalize" // finalizar compras (debita presupuesto)
	ActionCreateRequest    = "request.create"    // crear solicitudes y recibirlas
	ActionManageRequest    = "request.manage"    // aprobar, preparar y enviar solicitudes
	ActionViewDashboard    = "dashboard.view"
)

// capabilities tabla (rol, acción). El admin tiene todas las acciones.
var capabilities = map[string]map[string]bool{
	entity.RoleComprador: {
		ActionManagePurchase:   true,
		ActionFinalizePurchase: true,
		ActionManageBudget:     true,
		ActionViewDashboard:    true,
	},
	entity.RoleAlmacenista: {
		ActionMoveStock:       true,
		ActionManageInventory: true,
		ActionManageRequest:   true,
		ActionViewDashboard:   true,
	},
	entity.RoleSolicitante: {
		ActionCreateRequest: true,
	},
}

// HasCapability indica si el rol puede ejecutar la acción.
func HasCapability(role, action string) bool {
	if role == entity.RoleAdmin {
		return true
	}
	return capabilities[role][action]
}

// RequireCapability middleware que rechaza con 403 si el rol del token no
// tiene la capacidad requerida. Debe ir después de AuthMiddleware.
func RequireCapability(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !HasCapability(GetRole(c), action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol no permite esta acción"})
		}
		return c.Next()
	}
}
