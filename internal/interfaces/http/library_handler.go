package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
)

// LibraryHandler handles HTTP requests for branches.
type LibraryHandler struct {
	uc *catalog.LibraryUseCase
}

// NewLibraryHandler builds the handler.
func NewLibraryHandler(uc *catalog.LibraryUseCase) *LibraryHandler {
	return &LibraryHandler{uc: uc}
}

// Create godoc
// @Summary      Create a library branch
// @Tags         libraries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLibraryRequest  true  "branch data"
// @Success      201   {object}  dto.LibraryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/libraries [post]
func (h *LibraryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLibraryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a branch by id
// @Tags         libraries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "library id"
// @Success      200  {object}  dto.LibraryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/libraries/{id} [get]
func (h *LibraryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List branches
// @Tags         libraries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "limit"   default(20)
// @Param        offset  query  int  false  "offset"  default(0)
// @Success      200  {object}  dto.LibraryListResponse
// @Router       /api/libraries [get]
func (h *LibraryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a branch
// @Tags         libraries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "library id"
// @Param        body  body  dto.UpdateLibraryRequest  true  "fields to update"
// @Success      200   {object}  dto.LibraryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/libraries/{id} [put]
func (h *LibraryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLibraryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a branch (refused while it holds copies)
// @Tags         libraries
// @Security     Bearer
// @Param        id  path  string  true  "library id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/libraries/{id} [delete]
func (h *LibraryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
