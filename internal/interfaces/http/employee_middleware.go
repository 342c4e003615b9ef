package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// employeeChecker es el contrato mínimo que necesita el middleware para verificar al empleado.
// Lo implementa *documents.EmployeeUseCase.
type employeeChecker interface {
	IsActive(ctx context.Context, employeeID int64) (bool, error)
}

// RequireActiveEmployee rechaza peticiones de empleados desconocidos o inactivos.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalEmployeeID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay employee_id en el contexto.
//   - 503 Service Unavailable → fallo de infraestructura al consultar.
//   - 403 Forbidden → empleado inactivo o inexistente.
func RequireActiveEmployee(checker employeeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employeeID := GetEmployeeID(c)
		if employeeID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "employee_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.UserContext(), employeeID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "EMPLOYEE_CHECK_FAILED",
				Message: "no se pudo verificar el empleado, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "EMPLOYEE_INACTIVE",
				Message: "el empleado no está activo",
			})
		}

		return c.Next()
	}
}
