package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler maneja el ciclo de vida de los documentos de almacén (protegido).
type DocumentHandler struct {
	uc      *documents.DocumentUseCase
	exports *documents.ExportUseCase
	log     *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.DocumentUseCase, exports *documents.ExportUseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, exports: exports, log: log}
}

// Create devuelve el handler de creación para el tipo fijado por la ruta.
//
// @Summary      Crear documento
// @Description  Entradas y salidas nacen en estado new. Inventario y reporte de ocupación
//
//	se llenan con el estado actual del libro y quedan cerrados.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDocumentRequest  false  "delivery_date (entradas) o sale_date (salidas)"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts [post]
// @Router       /api/goods-issues [post]
// @Router       /api/inventory-documents [post]
// @Router       /api/storage-reports [post]
func (h *DocumentHandler) Create(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.CreateDocumentRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return badRequest(c, "INVALID_BODY", "cuerpo inválido")
			}
		}
		in.Kind = string(kind)
		out, err := h.uc.Create(c.UserContext(), GetEmployeeID(c), in)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// List devuelve el handler de listado; kind vacío toma el query param kind.
//
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind    query     string  false  "goods_receipt | goods_issue | inventory | storage_report"
// @Param        limit   query     int     false  "máximo 100"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
		}
		page.DefaultPage()
		if page.Limit > 100 {
			page.Limit = 100
		}
		k := string(kind)
		if k == "" {
			k = c.Query("kind")
		}
		items, err := h.uc.List(c.UserContext(), k, page)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.JSON(fiber.Map{
			"items": items,
			"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
		})
	}
}

// Get devuelve el handler de detalle; con kind fijo un documento de otro tipo es 404.
//
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return badRequest(c, "INVALID_ID", "id inválido")
		}
		doc, err := h.uc.Get(c.UserContext(), id)
		if err != nil {
			return writeError(c, h.log, err)
		}
		if kind != "" && doc.Kind != string(kind) {
			return writeError(c, h.log, domain.NewNotFound("documento", id))
		}
		return c.JSON(doc)
	}
}

// AddLine devuelve el handler que agrega líneas a documentos del tipo de la ruta.
//
// @Summary      Agregar línea
// @Description  En entradas un producto repetido responde 422 DUPLICATE_PRODUCT.
//
//	En salidas la cantidad se acumula en la línea existente si hay stock.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "ID del documento"
// @Param        body  body      dto.AddLineRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.AddLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id}/lines [post]
// @Router       /api/goods-issues/{id}/lines [post]
func (h *DocumentHandler) AddLine(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return badRequest(c, "INVALID_ID", "id inválido")
		}
		var in dto.AddLineRequest
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
		if err := h.ensureKind(c, id, kind); err != nil {
			return writeError(c, h.log, err)
		}
		out, err := h.uc.AddLine(c.UserContext(), id, in)
		if err != nil {
			return writeError(c, h.log, err)
		}
		status := fiber.StatusCreated
		if out.Merged {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(out)
	}
}

// AssignLocations asigna ubicaciones a varias líneas de una entrada en un solo paso.
//
// @Summary      Asignar ubicaciones
// @Description  Valida la capacidad acumulada por rack; la entrada pasa a located.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID de la entrada"
// @Param        body  body  dto.AssignLocationsRequest  true  "pares line_id, location_id"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id}/assign-locations [put]
func (h *DocumentHandler) AssignLocations(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.AssignLocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.ensureKind(c, id, entity.KindGoodsReceipt); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.AssignLocations(c.UserContext(), id, in.Assignments); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignLocation asigna la ubicación de una sola línea.
//
// @Summary      Asignar ubicación a una línea
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Param        id      path  int                     true  "ID de la entrada"
// @Param        lineId  path  int                     true  "ID de la línea"
// @Param        body    body  dto.LocationAssignment  true  "location_id"
// @Success      204
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id}/lines/{lineId}/location [put]
func (h *DocumentHandler) AssignLocation(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	lineID, err := pathID(c, "lineId")
	if err != nil {
		return badRequest(c, "INVALID_ID", "lineId inválido")
	}
	var in dto.LocationAssignment
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.ensureKind(c, id, entity.KindGoodsReceipt); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.AssignLocation(c.UserContext(), id, lineID, in.LocationID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transition cambia el estado de un documento.
//
// @Summary      Cambiar estado
// @Description  El cierre de una entrada suma saldos y peso; el de una salida descuenta
//
//	saldos empezando por la ubicación con más cantidad.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID del documento"
// @Param        body  body      dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/status [put]
func (h *DocumentHandler) Transition(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return badRequest(c, "INVALID_BODY", "status requerido")
	}
	if err := h.uc.Transition(c.UserContext(), id, entity.DocumentStatus(in.Status)); err != nil {
		return writeError(c, h.log, err)
	}
	doc, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(doc)
}

// PDF descarga la representación imprimible del documento.
//
// @Summary      PDF del documento
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	b, err := h.exports.DocumentPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="documento-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Send(b)
}

// ExportXLSX descarga el registro de documentos en Excel.
//
// @Summary      Exportar registro de documentos
// @Tags         exports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind  query  string  false  "tipo de documento; vacío = todos"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/export.xlsx [get]
func (h *DocumentHandler) ExportXLSX(c *fiber.Ctx) error {
	b, err := h.exports.DocumentsWorkbook(c.UserContext(), c.Query("kind"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendWorkbook(c, "documentos", b)
}

// ensureKind impide operar sobre un documento de otro tipo desde la ruta de un tipo.
func (h *DocumentHandler) ensureKind(c *fiber.Ctx, id int64, kind entity.DocumentKind) error {
	doc, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if doc.Kind != string(kind) {
		return domain.NewNotFound(string(kind), id)
	}
	return nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func sendWorkbook(c *fiber.Ctx, name string, b []byte) error {
	filename := name + "-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
