package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookden/bookden/internal/domain"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// drain runs a command tree and flattens the produced messages
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func filtersFrom(msgs []tea.Msg) []domain.SearchFilters {
	var out []domain.SearchFilters
	for _, msg := range msgs {
		if fc, ok := msg.(FiltersChangedMsg); ok {
			out = append(out, fc.Filters)
		}
	}
	return out
}

func newTestBar() *SearchBar {
	bar := NewSearchBar()
	bar.SetInterval(time.Millisecond)
	drain(bar.Focus())
	return bar
}

func TestSearchBarDebounceCoalescesBurst(t *testing.T) {
	bar := newTestBar()

	// A burst of keystrokes: each one restarts the window
	var cmds []tea.Cmd
	for _, r := range []string{"d", "u", "n", "e"} {
		var cmd tea.Cmd
		bar, cmd = bar.Update(keyMsg(r))
		cmds = append(cmds, cmd)
	}

	// Windows opened by all but the last keystroke are stale
	for _, cmd := range cmds[:len(cmds)-1] {
		for _, msg := range drain(cmd) {
			if tick, ok := msg.(searchDebounceMsg); ok {
				var emit tea.Cmd
				bar, emit = bar.Update(tick)
				assert.Empty(t, filtersFrom(drain(emit)), "stale window must not emit")
			}
		}
	}

	// The last window fires exactly one emission with the final text
	var emitted []domain.SearchFilters
	for _, msg := range drain(cmds[len(cmds)-1]) {
		if tick, ok := msg.(searchDebounceMsg); ok {
			var emit tea.Cmd
			bar, emit = bar.Update(tick)
			emitted = append(emitted, filtersFrom(drain(emit))...)
		}
	}
	require.Len(t, emitted, 1)
	assert.Equal(t, "dune", emitted[0].Search)
}

func TestSearchBarGenreCommitsImmediately(t *testing.T) {
	bar := newTestBar()
	bar.SetGenres([]string{"Fantasy", "Sci-Fi"})

	// Pending text debounce...
	var textCmd tea.Cmd
	bar, textCmd = bar.Update(keyMsg("d"))

	// ...then a genre commit before the window closes
	bar, _ = bar.Update(keyMsg("tab"))
	bar, _ = bar.Update(keyMsg("tab"))
	var genreCmd tea.Cmd
	bar, genreCmd = bar.Update(keyMsg("right"))

	genreEmits := filtersFrom(drain(genreCmd))
	require.Len(t, genreEmits, 1, "genre commit emits without waiting")
	assert.Equal(t, "Fantasy", genreEmits[0].Genre)
	assert.Equal(t, "d", genreEmits[0].Search)

	// The pending text window still fires: two emissions total
	var late []domain.SearchFilters
	for _, msg := range drain(textCmd) {
		if tick, ok := msg.(searchDebounceMsg); ok {
			var emit tea.Cmd
			bar, emit = bar.Update(tick)
			late = append(late, filtersFrom(drain(emit))...)
		}
	}
	require.Len(t, late, 1, "genre commit must not cancel the text window")
	assert.Equal(t, "Fantasy", late[0].Genre)
}

func TestSearchBarEmptyTextEmitsImmediately(t *testing.T) {
	bar := newTestBar()

	bar, _ = bar.Update(keyMsg("x"))
	var cmd tea.Cmd
	bar, cmd = bar.Update(keyMsg("backspace"))

	// No debounce when both text fields are empty
	emits := filtersFrom(drain(cmd))
	require.Len(t, emits, 1)
	assert.True(t, emits[0].IsZero())
}

func TestSearchBarClearCancelsPendingWindow(t *testing.T) {
	bar := newTestBar()
	bar.SetGenres([]string{"Horror"})

	bar, _ = bar.Update(keyMsg("a"))
	pendingSeq := bar.debounceSeq

	emits := filtersFrom(drain(bar.Clear()))
	require.Len(t, emits, 1)
	assert.True(t, emits[0].IsZero())

	// The window opened before Clear is now stale
	var emit tea.Cmd
	bar, emit = bar.Update(searchDebounceMsg{seq: pendingSeq})
	assert.Empty(t, filtersFrom(drain(emit)))
}

func TestSearchBarFiltersNormalized(t *testing.T) {
	bar := newTestBar()
	bar.searchInput.SetValue("  dune  ")
	bar.authorInput.SetValue("   ")

	f := bar.Filters()
	assert.Equal(t, "dune", f.Search)
	assert.Empty(t, f.Author, "whitespace-only field is absent")
}

func TestSearchBarGenreTypeahead(t *testing.T) {
	bar := newTestBar()
	bar.SetGenres([]string{"Fantasy", "Science Fiction", "Romance"})

	bar, _ = bar.Update(keyMsg("tab"))
	bar, _ = bar.Update(keyMsg("tab"))
	for _, r := range []string{"s", "c", "i"} {
		bar, _ = bar.Update(keyMsg(r))
	}
	var cmd tea.Cmd
	bar, cmd = bar.Update(keyMsg("enter"))

	emits := filtersFrom(drain(cmd))
	require.Len(t, emits, 1)
	assert.Equal(t, "Science Fiction", emits[0].Genre)
	assert.Empty(t, bar.genreQuery)
}

func TestSearchBarGenreCycleWraps(t *testing.T) {
	bar := newTestBar()
	bar.SetGenres([]string{"Fantasy", "Horror"})
	bar.field = fieldGenre

	var cmd tea.Cmd
	bar, cmd = bar.Update(keyMsg("left"))
	emits := filtersFrom(drain(cmd))
	require.Len(t, emits, 1)
	assert.Equal(t, "Horror", emits[0].Genre, "cycling left from All wraps to the last genre")

	// Re-selecting the same genre is a no-op
	bar.genre = "Horror"
	assert.Nil(t, bar.commitGenre("Horror"))
}
