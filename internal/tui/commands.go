package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/service"
)

// Command factories for async operations

const requestTimeout = 15 * time.Second

// LoadBooksCmd fetches the catalog with the given filters. The seq is
// echoed back in the result message so stale responses can be dropped.
func LoadBooksCmd(svc *service.CatalogService, filters domain.SearchFilters, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.ListBooks(ctx, filters)
		if err != nil {
			return BooksLoadFailedMsg{Err: err, Seq: seq}
		}
		return BooksLoadedMsg{Books: books, Seq: seq}
	}
}

// LoadBookCmd fetches a single book for the detail page
func LoadBookCmd(svc *service.CatalogService, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		book, err := svc.GetBook(ctx, id)
		if err != nil {
			return BookLoadFailedMsg{BookID: id, Err: err, NotFound: errors.Is(err, domain.ErrBookNotFound)}
		}
		return BookLoadedMsg{Book: book}
	}
}

// LoadLibraryCmd fetches the user's library
func LoadLibraryCmd(svc *service.LibraryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.List(ctx)
		if err != nil {
			return LibraryLoadFailedMsg{Err: err}
		}
		return LibraryLoadedMsg{Books: books}
	}
}

// AddToLibraryCmd adds a book and returns the refreshed library
func AddToLibraryCmd(svc *service.LibraryService, bookID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.Add(ctx, bookID)
		if err != nil {
			return LibraryMutationFailedMsg{BookID: bookID, Added: true, Err: err}
		}
		return LibraryMutatedMsg{BookID: bookID, Added: true, Books: books}
	}
}

// RemoveFromLibraryCmd removes a book and returns the refreshed library
func RemoveFromLibraryCmd(svc *service.LibraryService, bookID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		books, err := svc.Remove(ctx, bookID)
		if err != nil {
			return LibraryMutationFailedMsg{BookID: bookID, Added: false, Err: err}
		}
		return LibraryMutatedMsg{BookID: bookID, Added: false, Books: books}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
