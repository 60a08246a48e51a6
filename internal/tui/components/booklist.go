package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/tui/styles"
)

// Layout constants for the list
const (
	// Border adds 1 char on each side
	borderWidth  = 2
	borderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	scrollIndicatorLines = 2
)

// BookList is a scrollable, focusable column of books with an optional
// local fuzzy filter. The filter narrows the already-loaded list only;
// it never touches the server.
type BookList struct {
	books []domain.Book

	// Membership lookup for the heart indicator
	inLibrary map[string]bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title    string
	emptyMsg string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into books
}

// NewBookList creates a new book list with the given header title
func NewBookList(title string) *BookList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &BookList{
		title:       title,
		filterInput: ti,
	}
}

// SetBooks replaces the list contents and resets selection and filter
func (l *BookList) SetBooks(books []domain.Book) {
	l.books = books
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// SetMembership updates the heart indicator lookup
func (l *BookList) SetMembership(inLibrary map[string]bool) {
	l.inLibrary = inLibrary
}

// SetEmptyMessage sets the text shown when the list has no items
func (l *BookList) SetEmptyMessage(msg string) {
	l.emptyMsg = msg
}

func (l *BookList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *BookList) SetFocused(focused bool) {
	l.focused = focused
}

func (l *BookList) Title() string {
	return l.title
}

// SelectedBook returns the book under the cursor, nil when empty
func (l *BookList) SelectedBook() *domain.Book {
	count := l.ItemCount()
	if count == 0 || l.cursor >= count {
		return nil
	}
	b := l.books[l.mapIndex(l.cursor)]
	return &b
}

// ItemCount returns the number of items currently visible (filtered)
func (l *BookList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.books)
}

// ToggleFilter activates the filter input
func (l *BookList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *BookList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *BookList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *BookList) ClearFilter() {
	l.clearFilter()
}

func (l *BookList) Update(msg tea.Msg) (*BookList, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	// Typing mode: route keys to the filter input
	if l.IsFilterTyping() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				l.clearFilter()
				return l, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return l, nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return l, nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd
	}

	// Filter accepted but still active: esc clears, / resumes typing
	if l.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				l.clearFilter()
				return l, nil
			case "/":
				l.filterInput.Focus()
				return l, nil
			}
		}
	}

	count := l.ItemCount()
	if count == 0 {
		return l, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.offset = 0
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d":
			l.cursor += l.maxVisible / 2
			if l.cursor >= count {
				l.cursor = count - 1
			}
			l.ensureVisible()
		case "ctrl+u":
			l.cursor -= l.maxVisible / 2
			if l.cursor < 0 {
				l.cursor = 0
			}
			l.ensureVisible()
		}
	}

	return l, nil
}

func (l *BookList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(l.renderContent())
}

// Internal methods

func (l *BookList) recalcMaxVisible() {
	interiorHeight := l.height - borderHeight
	l.maxVisible = interiorHeight - scrollIndicatorLines - 1 // -1 for title
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *BookList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *BookList) clearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *BookList) applyFilter() {
	query := strings.ToLower(l.filterInput.Value())
	if query == "" {
		l.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(l.books))
	for i, b := range l.books {
		lowerTitles[i] = strings.ToLower(b.Title)
	}

	matches := fuzzy.Find(query, lowerTitles)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}
	l.cursor = 0
	l.offset = 0
}

func (l *BookList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

func (l *BookList) renderContent() string {
	contentWidth := l.width - borderWidth

	var b strings.Builder

	// Header: title + count badge
	count := l.ItemCount()
	header := styles.TitleStyle.Render(l.title) + " " + styles.DimBadgeStyle.Render(fmt.Sprintf("%d", count))
	b.WriteString(header)
	b.WriteString("\n")

	// Filter bar when active
	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	if count == 0 {
		msg := l.emptyMsg
		if msg == "" {
			msg = "Nothing here"
		}
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(styles.Truncate(msg, contentWidth)))
		return b.String()
	}

	// Scroll-up indicator
	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}
	for i := l.offset; i < end; i++ {
		book := l.books[l.mapIndex(i)]
		b.WriteString(l.renderRow(book, i == l.cursor, contentWidth))
		b.WriteString("\n")
	}

	// Scroll-down indicator
	if end < count {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}

	return b.String()
}

func (l *BookList) renderRow(book domain.Book, selected bool, width int) string {
	style := styles.NormalItemStyle
	if selected {
		style = styles.SelectedItemStyle
	}

	heart := styles.RenderMembership(l.inLibrary[book.ID])

	title := book.DisplayTitle()
	author := book.Author

	// heart(1) + spaces(2) + padding(2)
	avail := width - 5
	if avail < 4 {
		avail = 4
	}
	titleWidth := avail * 2 / 3
	title = styles.Truncate(title, titleWidth)
	author = styles.Truncate(author, avail-len([]rune(title))-1)

	row := fmt.Sprintf("%s %s %s", heart, title, styles.DimStyle.Render(author))
	return style.Width(width).Render(row)
}
