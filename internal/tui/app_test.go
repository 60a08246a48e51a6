package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookden/bookden/internal/api"
	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/log"
	"github.com/bookden/bookden/internal/service"
)

type fakeCatalog struct {
	books []domain.Book
}

func (f *fakeCatalog) ListBooks(_ context.Context, _ domain.SearchFilters) ([]domain.Book, error) {
	return f.books, nil
}

func (f *fakeCatalog) GetBook(_ context.Context, id string) (domain.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, domain.ErrBookNotFound
}

type fakeLibrary struct {
	books []domain.Book
}

func (f *fakeLibrary) ListLibrary(_ context.Context) ([]domain.Book, error) {
	return f.books, nil
}

func (f *fakeLibrary) AddToLibrary(_ context.Context, _ string) error    { return nil }
func (f *fakeLibrary) RemoveFromLibrary(_ context.Context, _ string) error { return nil }

var testBooks = []domain.Book{
	{ID: "b1", Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Year: 1965},
	{ID: "b2", Title: "Dracula", Author: "Bram Stoker", Genre: "Horror", Year: 1897},
	{ID: "b3", Title: "Emma", Author: "Jane Austen", Genre: "Romance", Year: 1815},
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	logger := log.NullLogger()
	m := NewModel(
		service.NewCatalogService(&fakeCatalog{books: testBooks}, logger),
		service.NewLibraryService(&fakeLibrary{}, logger),
		0, false, logger,
	)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestStaleBookResponseDiscarded(t *testing.T) {
	m := newTestModel(t)

	// Two requests in flight; the older one lands last
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})
	require.Len(t, m.Books, 3)

	updated, _ := m.applyFilters(domain.SearchFilters{Search: "dune"})
	m = updated.(Model)
	stale := BooksLoadedMsg{Books: nil, Seq: m.bookSeq - 1}
	m, _ = update(t, m, stale)
	assert.Len(t, m.Books, 3, "stale response must not clobber the list")

	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks[:1], Seq: m.bookSeq})
	assert.Len(t, m.Books, 1)
	assert.False(t, m.loadingBooks)
}

func TestStaleFailureDiscarded(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})

	m, _ = update(t, m, BooksLoadFailedMsg{Err: assert.AnError, Seq: m.bookSeq - 1})
	assert.Len(t, m.Books, 3)
	assert.Empty(t, m.statusMsg)
}

func TestBooksLoadFailureShowsRetry(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, BooksLoadFailedMsg{Err: errors.New("Failed to fetch books"), Seq: m.bookSeq})
	view := m.View()
	assert.Contains(t, view, "Failed to fetch books")
	assert.Contains(t, view, "press r to retry")

	// r clears the error state and refetches
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.Empty(t, m.booksErr)
	assert.True(t, m.loadingBooks)
}

func TestEqualFiltersSkipReload(t *testing.T) {
	m := newTestModel(t)
	filters := domain.SearchFilters{Genre: "Horror"}

	updated, cmd := m.applyFilters(filters)
	require.NotNil(t, cmd)
	m = updated.(Model)
	seq := m.bookSeq

	updated, cmd = m.applyFilters(filters)
	m = updated.(Model)
	assert.Nil(t, cmd, "unchanged filters must not refetch")
	assert.Equal(t, seq, m.bookSeq)
}

func TestDetailNotFoundFallback(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.openDetail(nil)
	m = updated.(Model)
	assert.Equal(t, PageDetail, m.Page)
	assert.Contains(t, m.View(), "Book not found")

	// esc returns to explore with the selection cleared
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PageExplore, m.Page)
	assert.Nil(t, m.Selected)
	assert.Nil(t, m.Detail.Book())
}

func TestEnterOpensDetailForSelection(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PageDetail, m.Page)
	require.NotNil(t, m.Selected)
	assert.Equal(t, "b1", m.Selected.ID)
	assert.Contains(t, m.View(), "Dune")
}

func TestDetailRefreshReplacesCachedBook(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "opening detail triggers a by-id refresh")

	full := testBooks[0]
	full.Synopsis = "Spice and sandworms."
	m, _ = update(t, m, BookLoadedMsg{Book: full})
	require.NotNil(t, m.Selected)
	assert.Equal(t, "Spice and sandworms.", m.Selected.Synopsis)
}

func TestDetailNotFoundAfterRefetch(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, BookLoadFailedMsg{BookID: "b1", Err: domain.ErrBookNotFound, NotFound: true})
	assert.Nil(t, m.Selected)
	assert.Contains(t, m.View(), "Book not found")
}

func TestFallbackBackAlwaysReturnsToExplore(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, LibraryLoadedMsg{Books: testBooks})

	// Open detail from the library page, then lose the book server-side
	updated, _ := m.showPage(PageLibrary)
	m = updated.(Model)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PageDetail, m.Page)
	m, _ = update(t, m, BookLoadFailedMsg{BookID: "b1", Err: domain.ErrBookNotFound, NotFound: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PageExplore, m.Page, "the fallback's back action lands on explore, not the origin page")

	// A real book still returns to where it was opened from
	updated, _ = m.showPage(PageLibrary)
	m = updated.(Model)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PageLibrary, m.Page)
}

func TestDetailFetchDetectsRemovedBook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	logger := log.NullLogger()
	svc := service.NewCatalogService(api.NewClient(server.URL, 0, logger), logger)

	msg := LoadBookCmd(svc, "gone")()
	failed, ok := msg.(BookLoadFailedMsg)
	require.True(t, ok)
	assert.True(t, failed.NotFound, "a 404 from the service reaches the fallback path")
	assert.Equal(t, "gone", failed.BookID)
}

func TestLibraryMutationRefreshesMembership(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})

	m, _ = update(t, m, LibraryMutatedMsg{BookID: "b1", Added: true, Books: testBooks[:1]})
	assert.True(t, m.Membership["b1"])
	assert.Len(t, m.LibraryBooks, 1)
	assert.Equal(t, "Added to library", m.statusMsg)
	assert.False(t, m.statusError)

	m, _ = update(t, m, LibraryMutatedMsg{BookID: "b1", Added: false, Books: nil})
	assert.False(t, m.Membership["b1"])
	assert.Empty(t, m.LibraryBooks)
	assert.Equal(t, "Removed from library", m.statusMsg)
}

func TestMutationFailureShowsErrorText(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, LibraryMutationFailedMsg{BookID: "b2", Added: true, Err: domain.ErrAlreadyInLibrary})
	assert.Equal(t, "Book is already in your library", m.statusMsg)
	assert.True(t, m.statusError)
}

func TestOptimisticToggleRevertsOnFailure(t *testing.T) {
	m := newTestModel(t)
	m.optimisticToggle = true
	m, _ = update(t, m, BooksLoadedMsg{Books: testBooks, Seq: m.bookSeq})

	updated, cmd := m.toggleLibrary(&testBooks[0])
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Membership["b1"], "optimistic flip applies before the server answers")

	m, _ = update(t, m, LibraryMutationFailedMsg{BookID: "b1", Added: true, Err: domain.ErrBookNotFound})
	assert.False(t, m.Membership["b1"], "failed mutation reverts the flip")
}

func TestTabSwitchesPages(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PageLibrary, m.Page)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PageExplore, m.Page)
}

func TestClearStatusMsg(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, StatusMsg{Message: "hello"})
	require.Equal(t, "hello", m.statusMsg)

	m, _ = update(t, m, ClearStatusMsg{})
	assert.Empty(t, m.statusMsg)
}

func TestLibraryStatsLine(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, LibraryLoadedMsg{Books: testBooks})
	updated, _ := m.showPage(PageLibrary)
	m = updated.(Model)

	assert.Contains(t, m.View(), "3 books · 3 genres · 3 authors")
}
