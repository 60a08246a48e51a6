package service

import (
	"context"
	"log/slog"

	"github.com/bookden/bookden/internal/domain"
)

// LibraryService handles the user's favorites library. Mutations
// re-fetch the full library on success so callers always receive the
// server's view; there is no optimistic local insert.
type LibraryService struct {
	repo   domain.LibraryRepository
	logger *slog.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(repo domain.LibraryRepository, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the library books in service order.
func (s *LibraryService) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.ListLibrary(ctx)
}

// Add adds a book to the library and returns the refreshed list. A
// failed add does not re-fetch; the error propagates so the caller can
// react (e.g. revert a toggle).
func (s *LibraryService) Add(ctx context.Context, bookID string) ([]domain.Book, error) {
	if err := s.repo.AddToLibrary(ctx, bookID); err != nil {
		s.logger.Warn("add to library failed", "bookId", bookID, "error", err)
		return nil, err
	}

	s.logger.Info("added book to library", "bookId", bookID)
	return s.repo.ListLibrary(ctx)
}

// Remove removes a book from the library and returns the refreshed
// list. Symmetric to Add.
func (s *LibraryService) Remove(ctx context.Context, bookID string) ([]domain.Book, error) {
	if err := s.repo.RemoveFromLibrary(ctx, bookID); err != nil {
		s.logger.Warn("remove from library failed", "bookId", bookID, "error", err)
		return nil, err
	}

	s.logger.Info("removed book from library", "bookId", bookID)
	return s.repo.ListLibrary(ctx)
}
