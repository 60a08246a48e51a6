package domain

import "fmt"

// Book represents a catalog record. Books are owned by the remote
// service; the client never mutates their content, only whether they
// appear in the user's library.
type Book struct {
	ID       string
	Title    string
	Author   string
	Genre    string
	Synopsis string
	Year     int // 0 when the service omits it
}

// DisplayTitle returns the title with the publication year appended
// when known.
func (b Book) DisplayTitle() string {
	if b.Year > 0 {
		return fmt.Sprintf("%s (%d)", b.Title, b.Year)
	}
	return b.Title
}
