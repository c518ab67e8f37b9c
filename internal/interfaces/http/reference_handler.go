package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReferenceHandler sirve las cuatro tablas de referencia con las mismas rutas;
// cada grupo se monta con su kind.
type ReferenceHandler struct {
	uc   *usecase.ReferenceUseCase
	kind entity.ReferenceKind
}

// NewReferenceHandler construye el handler para un tipo de referencia.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, kind entity.ReferenceKind) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear ubicación, proveedor, cliente o categoría
// @Tags         references
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                      true  "locations | suppliers | customers | categories"
// @Param        body  body  dto.CreateReferenceRequest  true  "name, code, email, phone"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar referencias
// @Tags         references
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "locations | suppliers | customers | categories"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ReferenceListResponse
// @Router       /api/{kind} [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), h.kind, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener referencia
// @Tags         references
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "locations | suppliers | customers | categories"
// @Param        id    path  string  true  "ID"
// @Success      200  {object}  dto.ReferenceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *ReferenceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
