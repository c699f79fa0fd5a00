package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
)

// BookHandler handles HTTP requests for catalog titles.
type BookHandler struct {
	uc *catalog.BookUseCase
}

// NewBookHandler builds the handler.
func NewBookHandler(uc *catalog.BookUseCase) *BookHandler {
	return &BookHandler{uc: uc}
}

// Create godoc
// @Summary      Create a book
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "book data"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
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
// @Summary      Get a book by id
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "book id"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Search books (unset filters match everything)
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        title     query  string  false  "title substring"
// @Param        author    query  string  false  "author substring"
// @Param        category  query  string  false  "exact category"
// @Param        year      query  int     false  "published year"
// @Success      200  {object}  dto.BookListResponse
// @Router       /api/books [get]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchBooksRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	out, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Count books matching the filters
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/books/count [get]
func (h *BookHandler) Count(c *fiber.Ctx) error {
	var in dto.SearchBooksRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	count, err := h.uc.Count(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// Update godoc
// @Summary      Update a book (type is immutable)
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "book id"
// @Param        body  body  dto.UpdateBookRequest  true  "fields to update"
// @Success      200   {object}  dto.BookResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBookRequest
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
// @Summary      Delete a book
// @Tags         books
// @Security     Bearer
// @Param        id  path  string  true  "book id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
