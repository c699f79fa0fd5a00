package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/auth"
	"github.com/shelftrack/shelftrack-api/internal/application/borrowing"
	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/notification"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

// RouterDeps holds the use cases the router wires to handlers.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	BookUC    *catalog.BookUseCase
	LibraryUC *catalog.LibraryUseCase
	CopyUC    *catalog.CopyUseCase
	BorrowUC  *borrowing.UseCase
	NotifyUC  *notification.UseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/register/librarian", authHandler.RegisterLibrarian)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(entity.RoleLibrarian, entity.RoleAdmin)

	// Books: reads for everyone, writes for staff.
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	copyHandler := NewCopyHandler(deps.CopyUC)
	books.Get("/", bookHandler.Search)
	books.Get("/count", bookHandler.Count)
	books.Get("/:id", bookHandler.GetByID)
	books.Get("/:id/copies", copyHandler.ListByBook)
	books.Get("/:id/availability", copyHandler.Availability)
	books.Post("/", staff, bookHandler.Create)
	books.Put("/:id", staff, bookHandler.Update)
	books.Delete("/:id", staff, bookHandler.Delete)

	// Libraries: reads for everyone, writes for staff.
	libraries := protected.Group("/libraries")
	libraryHandler := NewLibraryHandler(deps.LibraryUC)
	libraries.Get("/", libraryHandler.List)
	libraries.Get("/:id", libraryHandler.GetByID)
	libraries.Get("/:id/copies", copyHandler.ListByLibrary)
	libraries.Post("/", staff, libraryHandler.Create)
	libraries.Put("/:id", staff, libraryHandler.Update)
	libraries.Delete("/:id", staff, libraryHandler.Delete)

	// Copies (staff only except reads via /books).
	copies := protected.Group("/copies")
	copies.Get("/:id", copyHandler.GetByID)
	copies.Post("/", staff, copyHandler.Add)
	copies.Patch("/:id/status", staff, copyHandler.UpdateStatus)

	// Borrowing: members act on their own loans, staff on anyone's.
	// Static paths are registered before /:id so they are not captured by it.
	borrow := protected.Group("/borrow")
	borrowHandler := NewBorrowHandler(deps.BorrowUC)
	borrow.Post("/", borrowHandler.Borrow)
	borrow.Get("/active", borrowHandler.Active)
	borrow.Get("/overdue", borrowHandler.Overdue)
	borrow.Get("/quota", borrowHandler.Quota)
	borrow.Get("/count", borrowHandler.Count)
	borrow.Get("/has-overdue", borrowHandler.HasOverdue)
	borrow.Post("/:id/return", borrowHandler.Return)
	borrow.Get("/:id/receipt", borrowHandler.Receipt)
	borrow.Get("/:id", borrowHandler.GetByID)

	// Notifications: own feed for everyone, manual sweep for staff.
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotifyUC)
	notifications.Get("/", notificationHandler.ListMine)
	notifications.Post("/check", staff, notificationHandler.Trigger)
}
