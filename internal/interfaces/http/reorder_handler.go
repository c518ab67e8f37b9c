package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
)

// ReorderHandler maneja solicitudes de reposición y la lista de sugerencias (protegido).
type ReorderHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewReorderHandler construye el handler.
func NewReorderHandler(replenishment *inventory.ReplenishmentUseCase) *ReorderHandler {
	return &ReorderHandler{replenishment: replenishment}
}

// Create godoc
// @Summary      Crear solicitud de reposición
// @Tags         reorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReorderRequest  true  "item_id, supplier (nombre), quantity"
// @Success      201   {object}  dto.ReorderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorders [post]
func (h *ReorderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.replenishment.CreateReorder(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de reposición
// @Tags         reorders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | ordered | received | cancelled"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reorders [get]
func (h *ReorderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.replenishment.ListReorders(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(list),
		"reorders": list,
	})
}

// GetByID godoc
// @Summary      Obtener solicitud de reposición
// @Tags         reorders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ReorderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorders/{id} [get]
func (h *ReorderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.replenishment.GetReorder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una solicitud
// @Tags         reorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID"
// @Param        body  body  dto.UpdateReorderStatusRequest  true  "status"
// @Success      200   {object}  dto.ReorderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reorders/{id}/status [patch]
func (h *ReorderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateReorderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.replenishment.UpdateReorderStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suggestions godoc
// @Summary      Lista de reposición sugerida
// @Description  Artículos en o bajo su mínimo con la cantidad a pedir para llegar a su nivel ideal,
//
//	ordenados por cobertura ascendente.
//
// @Tags         reorders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reorders/suggestions [get]
func (h *ReorderHandler) Suggestions(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
