package service

import (
	"context"
	"log/slog"

	"github.com/bookden/bookden/internal/domain"
)

// CatalogService handles catalog browsing. It is stateless; the caller
// owns the loaded list and the active filter set.
type CatalogService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks returns books matching the normalized filters, in the order
// the service returned them. No client-side re-sorting or re-filtering.
func (s *CatalogService) ListBooks(ctx context.Context, filters domain.SearchFilters) ([]domain.Book, error) {
	filters = filters.Normalized()
	s.logger.Debug("listing books", "search", filters.Search, "genre", filters.Genre, "author", filters.Author)
	return s.repo.ListBooks(ctx, filters)
}

// GetBook returns a single book by identifier.
func (s *CatalogService) GetBook(ctx context.Context, id string) (domain.Book, error) {
	return s.repo.GetBook(ctx, id)
}
