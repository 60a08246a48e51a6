package components

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/tui/styles"
)

// DefaultDebounceInterval is the trailing window for text-input
// coalescing. Genre changes bypass it entirely.
const DefaultDebounceInterval = 500 * time.Millisecond

// FiltersChangedMsg is emitted when the filter set should be applied.
// Filters are already normalized: no empty-string fields.
type FiltersChangedMsg struct {
	Filters domain.SearchFilters
}

// searchDebounceMsg fires when a debounce window closes. The sequence
// token identifies the burst; stale tokens are ignored so only a single
// trailing emission occurs per burst of input.
type searchDebounceMsg struct {
	seq int
}

type searchField int

const (
	fieldSearch searchField = iota
	fieldAuthor
	fieldGenre
)

// SearchBar owns the catalog filter criteria: a title search box, an
// author box, and a genre selector. Text edits are coalesced behind a
// trailing debounce; genre selection applies immediately.
type SearchBar struct {
	searchInput textinput.Model
	authorInput textinput.Model

	genres     []string // distinct genres from the loaded catalog
	genre      string   // committed selection, "" = all genres
	genreQuery string   // typeahead buffer while the genre field is focused

	field   searchField
	focused bool

	debounceSeq int
	interval    time.Duration
	width       int
}

// NewSearchBar creates a search bar with the default debounce window
func NewSearchBar() *SearchBar {
	search := textinput.New()
	search.Placeholder = "search by title..."
	search.Prompt = "Search: "
	search.PromptStyle = styles.FilterPromptStyle

	author := textinput.New()
	author.Placeholder = "filter by author..."
	author.Prompt = "Author: "
	author.PromptStyle = styles.FilterPromptStyle

	return &SearchBar{
		searchInput: search,
		authorInput: author,
		interval:    DefaultDebounceInterval,
	}
}

// SetInterval overrides the debounce window
func (s *SearchBar) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultDebounceInterval
	}
	s.interval = d
}

// SetGenres updates the genre selector's choices
func (s *SearchBar) SetGenres(genres []string) {
	s.genres = genres
}

func (s *SearchBar) SetWidth(width int) {
	s.width = width
}

// Focus activates the bar, landing on the title search field
func (s *SearchBar) Focus() tea.Cmd {
	s.focused = true
	s.field = fieldSearch
	return s.syncFieldFocus()
}

// Blur deactivates the bar, keeping current values
func (s *SearchBar) Blur() {
	s.focused = false
	s.genreQuery = ""
	s.searchInput.Blur()
	s.authorInput.Blur()
}

func (s *SearchBar) Focused() bool {
	return s.focused
}

// Filters returns the current criteria, normalized: trimmed, with
// whitespace-only fields absent.
func (s *SearchBar) Filters() domain.SearchFilters {
	return domain.SearchFilters{
		Search: s.searchInput.Value(),
		Genre:  s.genre,
		Author: s.authorInput.Value(),
	}.Normalized()
}

// HasActiveFilters reports whether any criterion is set
func (s *SearchBar) HasActiveFilters() bool {
	return !s.Filters().IsZero()
}

// Clear resets all three fields and emits the empty filter set
// immediately, cancelling any pending debounce.
func (s *SearchBar) Clear() tea.Cmd {
	s.searchInput.SetValue("")
	s.authorInput.SetValue("")
	s.genre = ""
	s.genreQuery = ""
	s.debounceSeq++ // invalidate any pending window
	return s.emitCmd()
}

func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		// Only the latest burst may emit
		if msg.seq != s.debounceSeq {
			return s, nil
		}
		return s, s.emitCmd()

	case tea.KeyMsg:
		if !s.focused {
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SearchBar) handleKey(msg tea.KeyMsg) (*SearchBar, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.field = (s.field + 1) % 3
		s.genreQuery = ""
		return s, s.syncFieldFocus()
	case "shift+tab":
		s.field = (s.field + 2) % 3
		s.genreQuery = ""
		return s, s.syncFieldFocus()
	}

	if s.field == fieldGenre {
		return s.handleGenreKey(msg)
	}

	return s.handleTextKey(msg)
}

// handleTextKey routes a key to the focused text input. A changed value
// restarts the debounce window; when both text fields end up empty
// there is nothing to coalesce and the emission is immediate.
func (s *SearchBar) handleTextKey(msg tea.KeyMsg) (*SearchBar, tea.Cmd) {
	input := &s.searchInput
	if s.field == fieldAuthor {
		input = &s.authorInput
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)

	if input.Value() == before {
		return s, cmd
	}

	s.debounceSeq++
	if s.searchInput.Value() == "" && s.authorInput.Value() == "" {
		return s, tea.Batch(cmd, s.emitCmd())
	}

	seq := s.debounceSeq
	debounce := tea.Tick(s.interval, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
	return s, tea.Batch(cmd, debounce)
}

// handleGenreKey drives the genre selector: left/right cycle through
// the catalog's genres, typing narrows them, enter commits the best
// match. Commits emit immediately and do not disturb a pending text
// debounce.
func (s *SearchBar) handleGenreKey(msg tea.KeyMsg) (*SearchBar, tea.Cmd) {
	switch msg.String() {
	case "left":
		return s, s.commitGenre(s.cycleGenre(-1))
	case "right":
		return s, s.commitGenre(s.cycleGenre(1))
	case "enter":
		if candidates := s.genreCandidates(); len(candidates) > 0 {
			s.genreQuery = ""
			return s, s.commitGenre(candidates[0])
		}
		return s, nil
	case "backspace":
		if s.genreQuery != "" {
			runes := []rune(s.genreQuery)
			s.genreQuery = string(runes[:len(runes)-1])
		}
		return s, nil
	case "ctrl+u":
		s.genreQuery = ""
		if s.genre == "" {
			return s, nil
		}
		return s, s.commitGenre("")
	default:
		if len(msg.Runes) > 0 {
			s.genreQuery += string(msg.Runes)
		}
		return s, nil
	}
}

// cycleGenre steps through ["" all, genres...] in the given direction
func (s *SearchBar) cycleGenre(dir int) string {
	choices := append([]string{""}, s.genres...)
	idx := 0
	for i, g := range choices {
		if g == s.genre {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(choices)) % len(choices)
	return choices[idx]
}

// genreCandidates ranks the available genres against the typeahead
// buffer, best match first
func (s *SearchBar) genreCandidates() []string {
	if s.genreQuery == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(s.genreQuery, s.genres)
	sort.Sort(ranks)

	candidates := make([]string, len(ranks))
	for i, r := range ranks {
		candidates[i] = r.Target
	}
	return candidates
}

// commitGenre applies a genre selection and emits immediately. The
// debounce sequence is left alone so a pending text window still fires.
func (s *SearchBar) commitGenre(genre string) tea.Cmd {
	if genre == s.genre {
		return nil
	}
	s.genre = genre
	return s.emitCmd()
}

func (s *SearchBar) emitCmd() tea.Cmd {
	filters := s.Filters()
	return func() tea.Msg {
		return FiltersChangedMsg{Filters: filters}
	}
}

func (s *SearchBar) syncFieldFocus() tea.Cmd {
	s.searchInput.Blur()
	s.authorInput.Blur()

	switch s.field {
	case fieldSearch:
		return s.searchInput.Focus()
	case fieldAuthor:
		return s.authorInput.Focus()
	}
	return nil
}

func (s *SearchBar) View() string {
	if !s.focused && !s.HasActiveFilters() {
		return styles.DimStyle.Render("press f to search and filter")
	}

	parts := []string{
		s.searchInput.View(),
		s.authorInput.View(),
		s.renderGenreField(),
	}

	line := strings.Join(parts, styles.DimStyle.Render("  │  "))
	return lipgloss.NewStyle().MaxWidth(s.width).Render(line)
}

func (s *SearchBar) renderGenreField() string {
	label := styles.FilterPromptStyle.Render("Genre: ")

	value := s.genre
	if value == "" {
		value = "All"
	}

	if s.focused && s.field == fieldGenre {
		if s.genreQuery != "" {
			suggestion := "?"
			if candidates := s.genreCandidates(); len(candidates) > 0 {
				suggestion = candidates[0]
			}
			return label + styles.FilterStyle.Render(s.genreQuery) + styles.DimStyle.Render(" → "+suggestion)
		}
		return label + styles.AccentStyle.Render("‹ "+value+" ›")
	}

	return label + styles.SubtitleStyle.Render(value)
}
