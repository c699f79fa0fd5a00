package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
)

// CopyHandler handles HTTP requests for physical copies.
type CopyHandler struct {
	uc *catalog.CopyUseCase
}

// NewCopyHandler builds the handler.
func NewCopyHandler(uc *catalog.CopyUseCase) *CopyHandler {
	return &CopyHandler{uc: uc}
}

// Add godoc
// @Summary      Register a copy of a book at a branch
// @Tags         copies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCopyRequest  true  "copy data"
// @Success      201   {object}  dto.CopyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/copies [post]
func (h *CopyHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCopyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Add(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a copy by id
// @Tags         copies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "copy id"
// @Success      200  {object}  dto.CopyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/copies/{id} [get]
func (h *CopyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBook godoc
// @Summary      List the copies of a book across branches
// @Tags         copies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "book id"
// @Success      200  {array}  dto.CopyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id}/copies [get]
func (h *CopyHandler) ListByBook(c *fiber.Ctx) error {
	out, err := h.uc.ListByBook(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByLibrary godoc
// @Summary      List the copies held at a branch
// @Tags         copies
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "library id"
// @Param        limit   query  int     false  "limit"   default(20)
// @Param        offset  query  int     false  "offset"  default(0)
// @Success      200  {array}  dto.CopyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/libraries/{id}/copies [get]
func (h *CopyHandler) ListByLibrary(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.ListByLibrary(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Change a copy status (AVAILABLE, LOST, DAMAGED)
// @Tags         copies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "copy id"
// @Param        body  body  dto.UpdateCopyStatusRequest  true  "new status"
// @Success      200   {object}  dto.CopyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/copies/{id}/status [patch]
func (h *CopyHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateCopyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Availability godoc
// @Summary      Count available copies of a book, optionally at one branch
// @Tags         copies
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "book id"
// @Param        library_id  query  string  false  "restrict to a branch"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id}/availability [get]
func (h *CopyHandler) Availability(c *fiber.Ctx) error {
	out, err := h.uc.Availability(c.Context(), c.Params("id"), c.Query("library_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
