package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes key presses based on what currently owns input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay swallows everything until dismissed
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.Page == PageDetail {
		return m.handleDetailKey(msg)
	}

	// Search bar owns the keyboard while focused
	if m.SearchBar.Focused() {
		if msg.String() == "esc" {
			m.SearchBar.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		return m, cmd
	}

	// Local list filter owns typing while its input is active
	list := m.activeList()
	if list.IsFilterTyping() {
		var cmd tea.Cmd
		_, cmd = list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m.switchPage()

	case key.Matches(msg, Keys.Explore):
		return m.showPage(PageExplore)

	case key.Matches(msg, Keys.Library):
		return m.showPage(PageLibrary)

	case key.Matches(msg, Keys.Search):
		if m.Page == PageExplore {
			return m, m.SearchBar.Focus()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		list.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Clear):
		if m.Page == PageExplore && m.SearchBar.HasActiveFilters() {
			return m, m.SearchBar.Clear()
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m.refresh()

	case key.Matches(msg, Keys.Enter):
		if book := list.SelectedBook(); book != nil {
			return m.openDetail(book)
		}
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		return m.toggleLibrary(list.SelectedBook())

	case key.Matches(msg, Keys.Escape):
		if list.IsFiltering() {
			list.ClearFilter()
		}
		return m, nil
	}

	var cmd tea.Cmd
	_, cmd = list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Back):
		return m.closeDetail()

	case key.Matches(msg, Keys.Toggle):
		if m.Detail.Book() == nil {
			return m, nil
		}
		return m.toggleLibrary(m.Detail.Book())

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

func (m Model) switchPage() (tea.Model, tea.Cmd) {
	if m.Page == PageExplore {
		return m.showPage(PageLibrary)
	}
	return m.showPage(PageExplore)
}

func (m Model) showPage(page Page) (tea.Model, tea.Cmd) {
	if m.Page == page {
		return m, nil
	}
	m.Page = page
	m.SearchBar.Blur()
	m.ExploreList.SetFocused(page == PageExplore)
	m.LibraryList.SetFocused(page == PageLibrary)
	return m, nil
}

// refresh refetches the current page's list from the server
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.Page == PageLibrary {
		m.loadingLibrary = true
		m.libraryErr = ""
		return m, tea.Batch(LoadLibraryCmd(m.LibrarySvc), m.Spinner.Tick)
	}
	m.bookSeq++
	m.loadingBooks = true
	m.booksErr = ""
	return m, tea.Batch(LoadBooksCmd(m.CatalogSvc, m.Filters, m.bookSeq), m.Spinner.Tick)
}
