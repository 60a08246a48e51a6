package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/service"
	"github.com/bookden/bookden/internal/tui/components"
	"github.com/bookden/bookden/internal/tui/styles"
)

// Page identifies the active screen
type Page int

const (
	PageExplore Page = iota
	PageLibrary
	PageDetail
)

const statusClearDelay = 3 * time.Second

// Vertical chrome: tab line + search/stats line + status bar
const chromeHeight = 3

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	Page     Page
	prevPage Page
	Ready    bool
	ShowHelp bool

	// Services
	CatalogSvc *service.CatalogService
	LibrarySvc *service.LibraryService

	// UI components
	SearchBar   *components.SearchBar
	ExploreList *components.BookList
	LibraryList *components.BookList
	Detail      *components.Detail
	Spinner     spinner.Model

	// Data
	Books        []domain.Book
	LibraryBooks []domain.Book
	Membership   map[string]bool
	Selected     *domain.Book

	// In-flight state. bookSeq is the latest issued catalog request;
	// responses carrying an older seq are discarded.
	Filters        domain.SearchFilters
	bookSeq        int
	loadingBooks   bool
	loadingLibrary bool
	booksErr       string
	libraryErr     string
	togglingID     string

	// Toggle behavior: flip membership before the server confirms
	optimisticToggle bool

	// Status bar
	statusMsg   string
	statusError bool

	width  int
	height int

	logger *slog.Logger
}

// NewModel creates the root model
func NewModel(catalogSvc *service.CatalogService, librarySvc *service.LibraryService, debounce time.Duration, optimisticToggle bool, logger *slog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: time.Second / 10}
	sp.Style = styles.SpinnerStyle

	bar := components.NewSearchBar()
	bar.SetInterval(debounce)

	explore := components.NewBookList("Explore")
	explore.SetEmptyMessage("No books match your filters.")
	explore.SetFocused(true)

	library := components.NewBookList("My Library")
	library.SetEmptyMessage("Your library is empty. Find books in Explore and press space to add them.")

	return Model{
		Page:             PageExplore,
		CatalogSvc:       catalogSvc,
		LibrarySvc:       librarySvc,
		SearchBar:        bar,
		ExploreList:      explore,
		LibraryList:      library,
		Detail:           components.NewDetail(),
		Spinner:          sp,
		Membership:       map[string]bool{},
		bookSeq:          1,
		loadingBooks:     true,
		loadingLibrary:   true,
		optimisticToggle: optimisticToggle,
		logger:           logger,
	}
}

// Init starts the initial catalog and library loads
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadBooksCmd(m.CatalogSvc, m.Filters, m.bookSeq),
		LoadLibraryCmd(m.LibrarySvc),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.loadingBooks && !m.loadingLibrary && m.togglingID == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case components.FiltersChangedMsg:
		return m.applyFilters(msg.Filters)

	case BooksLoadedMsg:
		if msg.Seq != m.bookSeq {
			m.logger.Debug("discarding stale book response", "seq", msg.Seq, "current", m.bookSeq)
			return m, nil
		}
		m.loadingBooks = false
		m.booksErr = ""
		m.Books = msg.Books
		m.ExploreList.SetBooks(msg.Books)
		m.ExploreList.SetMembership(m.Membership)
		if m.Filters.IsZero() {
			m.SearchBar.SetGenres(domain.Genres(msg.Books))
		}
		return m, nil

	case BooksLoadFailedMsg:
		if msg.Seq != m.bookSeq {
			return m, nil
		}
		m.loadingBooks = false
		m.booksErr = msg.Err.Error()
		return m, nil

	case BookLoadedMsg:
		if m.Page == PageDetail && m.Selected != nil && m.Selected.ID == msg.Book.ID {
			book := msg.Book
			m.Selected = &book
			m.Detail.SetBook(&book)
			m.Detail.SetMembership(m.Membership[book.ID])
		}
		return m, nil

	case BookLoadFailedMsg:
		if m.Page != PageDetail || m.Selected == nil || m.Selected.ID != msg.BookID {
			return m, nil
		}
		if msg.NotFound {
			// Cached row no longer exists server-side
			m.Selected = nil
			m.Detail.SetBook(nil)
			return m, nil
		}
		return m.setStatus(msg.Err.Error(), true)

	case LibraryLoadedMsg:
		m.loadingLibrary = false
		m.libraryErr = ""
		m.setLibrary(msg.Books)
		return m, nil

	case LibraryLoadFailedMsg:
		m.loadingLibrary = false
		m.libraryErr = msg.Err.Error()
		return m, nil

	case LibraryMutatedMsg:
		m.togglingID = ""
		m.Detail.SetToggling(false)
		m.setLibrary(msg.Books)
		if msg.Added {
			return m.setStatus("Added to library", false)
		}
		return m.setStatus("Removed from library", false)

	case LibraryMutationFailedMsg:
		m.togglingID = ""
		m.Detail.SetToggling(false)
		if m.optimisticToggle {
			// Revert the eager flip
			m.Membership[msg.BookID] = !msg.Added
			m.refreshMembership()
		}
		return m.setStatus(msg.Err.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusError = false
		return m, nil
	}

	// Unhandled messages may belong to a component (debounce ticks,
	// viewport motion)
	return m.updateActiveComponent(msg)
}

// applyFilters issues a new catalog load unless the filters are
// unchanged from the last applied set
func (m Model) applyFilters(filters domain.SearchFilters) (tea.Model, tea.Cmd) {
	if filters == m.Filters {
		return m, nil
	}
	m.Filters = filters
	m.bookSeq++
	m.loadingBooks = true
	m.booksErr = ""
	m.ExploreList.ClearFilter()
	m.logger.Debug("filters changed", "search", filters.Search, "genre", filters.Genre, "author", filters.Author, "seq", m.bookSeq)
	return m, tea.Batch(LoadBooksCmd(m.CatalogSvc, filters, m.bookSeq), m.Spinner.Tick)
}

func (m *Model) setLibrary(books []domain.Book) {
	m.LibraryBooks = books
	m.Membership = make(map[string]bool, len(books))
	for _, b := range books {
		m.Membership[b.ID] = true
	}
	m.LibraryList.SetBooks(books)
	m.refreshMembership()
}

func (m *Model) refreshMembership() {
	m.ExploreList.SetMembership(m.Membership)
	m.LibraryList.SetMembership(m.Membership)
	if m.Selected != nil {
		m.Detail.SetMembership(m.Membership[m.Selected.ID])
	}
}

// toggleLibrary adds or removes the given book from the library
func (m Model) toggleLibrary(book *domain.Book) (tea.Model, tea.Cmd) {
	if book == nil || m.togglingID != "" {
		return m, nil
	}
	m.togglingID = book.ID
	inLibrary := m.Membership[book.ID]
	if m.optimisticToggle {
		m.Membership[book.ID] = !inLibrary
		m.refreshMembership()
	} else if m.Page == PageDetail {
		m.Detail.SetToggling(true)
	}
	if inLibrary {
		return m, tea.Batch(RemoveFromLibraryCmd(m.LibrarySvc, book.ID), m.Spinner.Tick)
	}
	return m, tea.Batch(AddToLibraryCmd(m.LibrarySvc, book.ID), m.Spinner.Tick)
}

// openDetail switches to the detail page, showing the cached row while
// a by-id fetch refreshes it
func (m Model) openDetail(book *domain.Book) (tea.Model, tea.Cmd) {
	m.prevPage = m.Page
	m.Page = PageDetail
	m.Selected = book
	m.Detail.SetBook(book)
	if book == nil {
		return m, nil
	}
	m.Detail.SetMembership(m.Membership[book.ID])
	return m, LoadBookCmd(m.CatalogSvc, book.ID)
}

// closeDetail leaves the detail page and clears the selection. The
// not-found fallback always exits to Explore; a real book returns to
// the page it was opened from.
func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	if m.Selected == nil {
		m.Page = PageExplore
	} else {
		m.Page = m.prevPage
	}
	m.Selected = nil
	m.Detail.SetBook(nil)
	m.Detail.SetToggling(false)
	m.ExploreList.SetFocused(m.Page == PageExplore)
	m.LibraryList.SetFocused(m.Page == PageLibrary)
	return m, nil
}

func (m Model) setStatus(msg string, isError bool) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusError = isError
	return m, ClearStatusCmd(statusClearDelay)
}

func (m Model) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Page {
	case PageDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	default:
		m.SearchBar, cmd = m.SearchBar.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateLayout() {
	listHeight := m.height - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.SearchBar.SetWidth(m.width)
	m.ExploreList.SetSize(m.width, listHeight)
	m.LibraryList.SetSize(m.width, listHeight)
	m.Detail.SetSize(m.width, m.height-1)
}

func (m *Model) activeList() *components.BookList {
	if m.Page == PageLibrary {
		return m.LibraryList
	}
	return m.ExploreList
}
