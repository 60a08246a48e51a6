package domain

import "context"

// CatalogRepository provides read access to the remote book catalog
type CatalogRepository interface {
	// ListBooks returns books matching the filters, in service order
	ListBooks(ctx context.Context, filters SearchFilters) ([]Book, error)

	// GetBook returns a single book by identifier
	GetBook(ctx context.Context, id string) (Book, error)
}

// LibraryRepository provides access to the user's favorites library
type LibraryRepository interface {
	// ListLibrary returns the library books in service order
	ListLibrary(ctx context.Context) ([]Book, error)

	// AddToLibrary requests addition of a book to the library
	AddToLibrary(ctx context.Context, bookID string) error

	// RemoveFromLibrary requests removal of a book from the library
	RemoveFromLibrary(ctx context.Context, bookID string) error
}

// HealthChecker probes the remote service
type HealthChecker interface {
	// CheckHealth reports whether the service answered the health
	// endpoint with an OK status
	CheckHealth(ctx context.Context) bool
}
