package domain

import "errors"

// Sentinel errors for library mutations. Their text is the user-facing
// message the service contract prescribes, surfaced verbatim by the UI.
var (
	// ErrBookNotFound indicates the requested book does not exist
	ErrBookNotFound = errors.New("Book not found")

	// ErrAlreadyInLibrary indicates a duplicate add
	ErrAlreadyInLibrary = errors.New("Book is already in your library")

	// ErrNotInLibrary indicates a remove for a book not in the library
	ErrNotInLibrary = errors.New("Book is not in your library")
)
