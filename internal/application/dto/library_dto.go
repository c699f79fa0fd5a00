package dto

import "time"

// CreateLibraryRequest input for creating a branch. Name must be unique.
type CreateLibraryRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
}

// UpdateLibraryRequest partial update; nil fields are left untouched.
type UpdateLibraryRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

// LibraryResponse branch output.
type LibraryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LibraryListResponse paged branch list.
type LibraryListResponse struct {
	Items []LibraryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddCopyRequest input for registering a physical copy at a branch.
type AddCopyRequest struct {
	BookID     string `json:"book_id" validate:"required,uuid"`
	LibraryID  string `json:"library_id" validate:"required,uuid"`
	CopyNumber int    `json:"copy_number" validate:"required,min=1"`
}

// UpdateCopyStatusRequest input for marking a copy LOST or DAMAGED (or back
// to AVAILABLE after repair). BORROWED is owned by the borrowing component.
type UpdateCopyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE LOST DAMAGED"`
}

// CopyResponse physical copy output.
type CopyResponse struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	LibraryID  string    `json:"library_id"`
	CopyNumber int       `json:"copy_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
