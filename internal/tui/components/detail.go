package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/tui/styles"
)

// detailChromeLines is the header block above the synopsis viewport:
// title, author, genre/year, membership, blank separator.
const detailChromeLines = 6

// Detail renders a single book: metadata header, scrollable synopsis,
// and a membership toggle hint. A nil book renders the not-found
// fallback, which is a valid state (e.g. back-navigation after the
// book was removed), not an error.
type Detail struct {
	book      *domain.Book
	inLibrary bool
	toggling  bool

	viewport viewport.Model
	width    int
	height   int
}

// NewDetail creates an empty detail view
func NewDetail() *Detail {
	return &Detail{
		viewport: viewport.New(0, 0),
	}
}

// SetBook sets the displayed book, nil for the not-found fallback
func (d *Detail) SetBook(book *domain.Book) {
	d.book = book
	d.toggling = false
	d.viewport.GotoTop()
	d.refreshContent()
}

// Book returns the displayed book, nil when showing the fallback
func (d *Detail) Book() *domain.Book {
	return d.book
}

// SetMembership updates the heart state for the displayed book
func (d *Detail) SetMembership(inLibrary bool) {
	d.inLibrary = inLibrary
}

// SetToggling marks an add/remove as in flight so the toggle hint can
// show progress and further toggles are ignored upstream
func (d *Detail) SetToggling(toggling bool) {
	d.toggling = toggling
}

func (d *Detail) IsToggling() bool {
	return d.toggling
}

func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width - 4
	d.viewport.Height = height - detailChromeLines - 4
	if d.viewport.Height < 1 {
		d.viewport.Height = 1
	}
	d.refreshContent()
}

func (d *Detail) Update(msg tea.Msg) (*Detail, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *Detail) View() string {
	if d.book == nil {
		return d.renderNotFound()
	}

	b := d.book

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.SubtitleStyle.Render("by " + b.Author))
	sb.WriteString("\n")

	meta := styles.BadgeStyle.Render(b.Genre)
	if b.Year > 0 {
		meta += " " + styles.DimStyle.Render(fmt.Sprintf("%d", b.Year))
	}
	sb.WriteString(meta)
	sb.WriteString("\n")

	sb.WriteString(d.renderMembershipLine())
	sb.WriteString("\n\n")

	sb.WriteString(d.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(d.renderFooter())

	return styles.ActiveBorder.
		Width(d.width - 2).
		Height(d.height - 2).
		Render(sb.String())
}

func (d *Detail) renderMembershipLine() string {
	if d.toggling {
		return styles.DimStyle.Render("updating library...")
	}
	if d.inLibrary {
		return styles.InLibraryHeart + styles.SuccessStyle.Render(" In your library") +
			styles.DimStyle.Render("  (space to remove)")
	}
	return styles.NotInLibraryHeart + styles.DimStyle.Render(" Not in library  (space to add)")
}

func (d *Detail) renderFooter() string {
	b := d.book
	stats := fmt.Sprintf("%d author names · %d words in synopsis",
		len(strings.Fields(b.Author)), len(strings.Fields(b.Synopsis)))
	return styles.DimStyle.Render(stats)
}

func (d *Detail) renderNotFound() string {
	msg := strings.Join([]string{
		styles.TitleStyle.Render("Book not found"),
		"",
		styles.SubtitleStyle.Render("The book you're looking for doesn't exist."),
		styles.DimStyle.Render("Press esc to go back to explore."),
	}, "\n")

	return lipgloss.Place(d.width, d.height,
		lipgloss.Center, lipgloss.Center, msg)
}

func (d *Detail) refreshContent() {
	if d.book == nil {
		return
	}
	synopsis := d.book.Synopsis
	if synopsis == "" {
		synopsis = "No synopsis available."
	}
	d.viewport.SetContent(lipgloss.NewStyle().Width(d.viewport.Width).Render(synopsis))
}
