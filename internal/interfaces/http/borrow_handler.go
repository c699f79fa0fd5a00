package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/borrowing"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

// BorrowHandler handles loan and return requests. The acting user is
// always taken from the JWT, never from the body.
type BorrowHandler struct {
	uc *borrowing.UseCase
}

// NewBorrowHandler builds the handler.
func NewBorrowHandler(uc *borrowing.UseCase) *BorrowHandler {
	return &BorrowHandler{uc: uc}
}

// loanActor returns the user id that record lookups must match. Staff roles
// get an empty id, which lifts the ownership restriction.
func loanActor(c *fiber.Ctx) string {
	switch GetRole(c) {
	case entity.RoleLibrarian, entity.RoleAdmin:
		return ""
	}
	return GetUserID(c)
}

// Borrow godoc
// @Summary      Borrow a copy
// @Description  Fails with 409 when the copy is unavailable, the per-type limit is reached, or the user holds overdue books.
// @Tags         borrowing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BorrowRequest  true  "copy to borrow"
// @Success      201   {object}  dto.BorrowRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/borrow [post]
func (h *BorrowHandler) Borrow(c *fiber.Ctx) error {
	var in dto.BorrowRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Borrow(c.Context(), GetUserID(c), in.BookCopyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return godoc
// @Summary      Return a borrowed copy
// @Description  Members may only return their own loans; staff may return any. Returning an already-returned record fails with 409.
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "borrow record id"
// @Success      200  {object}  dto.BorrowRecordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/borrow/{id}/return [post]
func (h *BorrowHandler) Return(c *fiber.Ctx) error {
	out, err := h.uc.Return(c.Context(), loanActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Fetch one borrow record
// @Description  Members may only read their own records; staff may read any.
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "borrow record id"
// @Success      200  {object}  dto.BorrowRecordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borrow/{id} [get]
func (h *BorrowHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), loanActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Active godoc
// @Summary      List the caller's active loans
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BorrowListResponse
// @Router       /api/borrow/active [get]
func (h *BorrowHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.ActiveByUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Overdue godoc
// @Summary      List the caller's overdue loans
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BorrowListResponse
// @Router       /api/borrow/overdue [get]
func (h *BorrowHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.uc.OverdueByUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Quota godoc
// @Summary      Show how many more books of each type the caller may borrow
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.QuotaResponse
// @Router       /api/borrow/quota [get]
func (h *BorrowHandler) Quota(c *fiber.Ctx) error {
	out, err := h.uc.Quota(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Count the caller's active loans
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BorrowCountResponse
// @Router       /api/borrow/count [get]
func (h *BorrowHandler) Count(c *fiber.Ctx) error {
	userID := GetUserID(c)
	count, err := h.uc.CountActive(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BorrowCountResponse{UserID: userID, Active: count})
}

// HasOverdue godoc
// @Summary      Report whether the caller holds overdue loans
// @Tags         borrowing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverdueStatusResponse
// @Router       /api/borrow/has-overdue [get]
func (h *BorrowHandler) HasOverdue(c *fiber.Ctx) error {
	userID := GetUserID(c)
	overdue, err := h.uc.HasOverdue(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OverdueStatusResponse{UserID: userID, HasOverdue: overdue})
}

// Receipt godoc
// @Summary      Download a PDF receipt for a borrow record
// @Description  Members may only download receipts for their own loans; staff may download any.
// @Tags         borrowing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "borrow record id"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borrow/{id}/receipt [get]
func (h *BorrowHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.uc.Receipt(c.Context(), loanActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt.pdf"`)
	return c.Send(pdf)
}
