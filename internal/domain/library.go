package domain

import "sort"

// LibraryStats holds aggregate counts over the loaded library list.
type LibraryStats struct {
	TotalBooks    int
	UniqueGenres  int
	UniqueAuthors int
}

// InLibrary reports whether the book identifier appears in the loaded
// library list. Linear scan; library lists are small.
func InLibrary(books []Book, bookID string) bool {
	for _, b := range books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// ComputeStats derives the library stats from the loaded list.
func ComputeStats(books []Book) LibraryStats {
	genres := make(map[string]struct{})
	authors := make(map[string]struct{})
	for _, b := range books {
		genres[b.Genre] = struct{}{}
		authors[b.Author] = struct{}{}
	}
	return LibraryStats{
		TotalBooks:    len(books),
		UniqueGenres:  len(genres),
		UniqueAuthors: len(authors),
	}
}

// Genres returns the distinct non-empty genres among the given books,
// sorted for stable display in the genre selector.
func Genres(books []Book) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, b := range books {
		if b.Genre == "" {
			continue
		}
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	sort.Strings(genres)
	return genres
}
