package tui

import "github.com/bookden/bookden/internal/domain"

// Message types for the TUI

// BooksLoadedMsg signals that a catalog request finished. Seq ties the
// response to the request that issued it; responses whose Seq is not
// the latest issued are discarded so the newest request always wins.
type BooksLoadedMsg struct {
	Books []domain.Book
	Seq   int
}

// BooksLoadFailedMsg signals that a catalog request failed
type BooksLoadFailedMsg struct {
	Err error
	Seq int
}

// BookLoadedMsg carries a freshly fetched single book for the detail
// page
type BookLoadedMsg struct {
	Book domain.Book
}

// BookLoadFailedMsg signals that a single-book fetch failed. NotFound
// distinguishes the fallback screen from a transient error.
type BookLoadFailedMsg struct {
	BookID   string
	Err      error
	NotFound bool
}

// LibraryLoadedMsg signals that the library list was (re-)fetched
type LibraryLoadedMsg struct {
	Books []domain.Book
}

// LibraryLoadFailedMsg signals that the library fetch failed
type LibraryLoadFailedMsg struct {
	Err error
}

// LibraryMutatedMsg signals a successful add or remove. Books is the
// refreshed library list fetched right after the mutation.
type LibraryMutatedMsg struct {
	BookID string
	Added  bool
	Books  []domain.Book
}

// LibraryMutationFailedMsg signals a failed add or remove. The error
// text is the user-facing message; callers revert any optimistic state.
type LibraryMutationFailedMsg struct {
	BookID string
	Added  bool
	Err    error
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
