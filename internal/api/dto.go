package api

import "github.com/bookden/bookden/internal/domain"

// Wire shapes for the book service API

type bookDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Synopsis string `json:"synopsis"`
	Year     int    `json:"year,omitempty"`
}

type libraryEntryDTO struct {
	ID      string  `json:"id"`
	BookID  string  `json:"bookId"`
	AddedAt string  `json:"addedAt"`
	Book    bookDTO `json:"book"`
}

type addRequest struct {
	BookID string `json:"bookId"`
}

type healthDTO struct {
	Status string `json:"status"`
}

func (d bookDTO) toDomain() domain.Book {
	return domain.Book{
		ID:       d.ID,
		Title:    d.Title,
		Author:   d.Author,
		Genre:    d.Genre,
		Synopsis: d.Synopsis,
		Year:     d.Year,
	}
}

func mapBooks(dtos []bookDTO) []domain.Book {
	books := make([]domain.Book, len(dtos))
	for i, d := range dtos {
		books[i] = d.toDomain()
	}
	return books
}
