package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/reports"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MovementHandler maneja las peticiones HTTP de movimientos de inventario (protegido).
type MovementHandler struct {
	engine  *inventory.MovementEngine
	reports *reports.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *inventory.MovementEngine, reportUC *reports.ReportUseCase) *MovementHandler {
	return &MovementHandler{engine: engine, reports: reportUC}
}

// Post godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN suma y OUT resta la cantidad del artículo en una sola transacción.
// @Description  location, supplier y customer se envían por nombre; sin coincidencia quedan nulos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "item_id, movement_type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  InsufficientStockResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var req dto.PostMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := inventory.MovementInputFromRequest(req, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.engine.PostMovement(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(detail))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Artículo"
// @Param        type     query  string  false  "IN | OUT"
// @Param        search   query  string  false  "Notas, número de referencia o artículo"
// @Param        from     query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusive)"
// @Param        limit    query  int     false  "Máximo 100"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	list, total, err := h.engine.ListMovements(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementList(list, total, filter.Limit, filter.Offset))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.engine.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(detail))
}

// Update godoc
// @Summary      Corregir movimiento (admin)
// @Description  Recalcula la existencia con la diferencia entre el efecto anterior y el nuevo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  InsufficientStockResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	upd, err := inventory.MovementUpdateFromRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.engine.UpdateMovement(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(detail))
}

// Delete godoc
// @Summary      Eliminar movimiento (admin)
// @Description  Revierte su efecto sobre la existencia; falla con 409 si esa existencia ya salió.
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteMovement(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar movimientos a Excel
// @Tags         movements
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        item_id  query  string  false  "Artículo"
// @Param        type     query  string  false  "IN | OUT"
// @Param        from     query  string  false  "Desde"
// @Param        to       query  string  false  "Hasta"
// @Success      200
// @Router       /api/movements/export.xlsx [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	doc, filename, err := h.reports.MovementsXLSX(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	limit, offset := pageParams(c)
	f := repository.MovementFilter{
		ItemID: c.Query("item_id"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	var err error
	if f.From, err = parseTimeParam(c.Query("from"), false); err != nil {
		return f, err
	}
	if f.To, err = parseTimeParam(c.Query("to"), true); err != nil {
		return f, err
	}
	return f, nil
}

// parseTimeParam acepta RFC3339 o YYYY-MM-DD. Con endOfDay, una fecha sola cubre el día completo.
func parseTimeParam(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, &paramError{name: v}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

type paramError struct{ name string }

func (e *paramError) Error() string {
	return "fecha inválida: " + strconv.Quote(e.name)
}
