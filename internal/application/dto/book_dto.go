package dto

import "time"

// CreateBookRequest input for creating a catalog title.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=500"`
	Author        string `json:"author" validate:"required,min=1,max=200"`
	PublishedYear *int   `json:"published_year" validate:"omitempty,min=0,max=3000"`
	Category      string `json:"category" validate:"required,min=1,max=100"`
	BookType      string `json:"book_type" validate:"required,oneof=TRADITIONAL MODERN"`
}

// UpdateBookRequest partial update; nil fields are left untouched.
type UpdateBookRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=500"`
	Author        *string `json:"author" validate:"omitempty,min=1,max=200"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,min=0,max=3000"`
	Category      *string `json:"category" validate:"omitempty,min=1,max=100"`
}

// SearchBooksRequest optional filters; unset filters match everything.
type SearchBooksRequest struct {
	Title    string `query:"title"`
	Author   string `query:"author"`
	Category string `query:"category"`
	Year     *int   `query:"year"`
	PageRequest
}

// BookResponse catalog title output.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Category      string    `json:"category"`
	BookType      string    `json:"book_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookListResponse paged book list.
type BookListResponse struct {
	Items []BookResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AvailabilityResponse availability of a book at a library.
type AvailabilityResponse struct {
	BookID          string `json:"book_id"`
	LibraryID       string `json:"library_id"`
	Available       bool   `json:"available"`
	AvailableCopies int    `json:"available_copies"`
}
