package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// InventoryHandler consultas de saldos, stock bajo y ocupación de racks (protegido).
type InventoryHandler struct {
	reports *documents.ReportUseCase
	exports *documents.ExportUseCase
	log     *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(reports *documents.ReportUseCase, exports *documents.ExportUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{reports: reports, exports: exports, log: log}
}

// Balances godoc
// @Summary      Saldos por producto y ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductBalanceView
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) Balances(c *fiber.Ctx) error {
	list, err := h.reports.SnapshotInventory(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Saldos en o bajo el umbral
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  string  false  "umbral decimal; vacío = WAREHOUSE_LOW_STOCK_THRESHOLD"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var threshold *decimal.Decimal
	if raw := c.Query("threshold"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "INVALID_QUERY", "threshold inválido")
		}
		threshold = &d
	}
	list, err := h.reports.LowStock(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// FrequentProducts godoc
// @Summary      Productos con más movimientos
// @Description  Cuenta las líneas de entradas y salidas por producto, de mayor a menor.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "por defecto 10"
// @Success      200  {array}   dto.ProductFrequencyView
// @Router       /api/inventory/frequent-products [get]
func (h *InventoryHandler) FrequentProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		return badRequest(c, "INVALID_QUERY", "limit debe ser positivo")
	}
	list, err := h.reports.FrequentlyMoved(c.UserContext(), limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Racks godoc
// @Summary      Ocupación de racks
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RackUtilizationView
// @Router       /api/inventory/racks [get]
func (h *InventoryHandler) Racks(c *fiber.Ctx) error {
	list, err := h.reports.RackUtilization(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// ExportXLSX godoc
// @Summary      Exportar saldos a Excel
// @Tags         exports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Router       /api/inventory/export.xlsx [get]
func (h *InventoryHandler) ExportXLSX(c *fiber.Ctx) error {
	b, err := h.exports.BalancesWorkbook(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendWorkbook(c, "saldos", b)
}
