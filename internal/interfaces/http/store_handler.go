package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/application/store"
)

// StoreHandler maneja la vitrina pública: gestión del dueño (protegido,
// premium) y lectura/visitas anónimas por slug.
type StoreHandler struct {
	uc *store.UseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *store.UseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar la vitrina del tenant
// @Description  El slug se deriva del título en la creación y nunca cambia después.
// @Tags         store
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertStoreRequest  true  "Configuración de la vitrina"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/store [put]
func (h *StoreHandler) Upsert(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	var in dto.UpsertStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.Upsert(scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Vitrina del tenant autenticado
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store [get]
func (h *StoreHandler) Mine(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	out, err := h.uc.Mine(scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Visitas acumuladas de la vitrina
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store/stats [get]
func (h *StoreHandler) Stats(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	out, err := h.uc.Stats(scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PublicBySlug godoc
// @Summary      Vitrina pública por slug (anónimo)
// @Description  Vitrina inactiva e inexistente responden el mismo 404.
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug de la vitrina"
// @Success      200   {object}  dto.PublicStoreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/s/{slug} [get]
func (h *StoreHandler) PublicBySlug(c *fiber.Ctx) error {
	out, err := h.uc.PublicBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterVisit godoc
// @Summary      Registrar visita anónima a la vitrina
// @Tags         public
// @Accept       json
// @Param        slug  path  string                  true  "Slug de la vitrina"
// @Param        body  body  dto.RegisterVisitRequest  true  "session_id del visitante"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/s/{slug}/visit [post]
func (h *StoreHandler) RegisterVisit(c *fiber.Ctx) error {
	var in dto.RegisterVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_id es requerido"})
	}
	if err := h.uc.RegisterVisit(c.Params("slug"), in.SessionID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
