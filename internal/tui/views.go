package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bookden/bookden/internal/domain"
	"github.com/bookden/bookden/internal/tui/styles"
)

// View renders the whole application
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	if m.Page == PageDetail {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.Detail.View(),
			m.renderFooter(),
		)
	}

	var middle string
	var list string
	if m.Page == PageLibrary {
		middle = m.renderStatsLine()
		if m.libraryErr != "" {
			list = m.renderLoadError(m.libraryErr)
		} else {
			list = m.LibraryList.View()
		}
	} else {
		middle = m.SearchBar.View()
		if m.booksErr != "" {
			list = m.renderLoadError(m.booksErr)
		} else {
			list = m.ExploreList.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		middle,
		list,
		m.renderFooter(),
	)
}

func (m Model) renderTabs() string {
	explore := "1 Explore"
	library := "2 My Library"
	if m.Page == PageLibrary {
		explore = styles.DimStyle.Render(explore)
		library = styles.AccentStyle.Render(library)
	} else {
		explore = styles.AccentStyle.Render(explore)
		library = styles.DimStyle.Render(library)
	}

	tabs := explore + styles.DimStyle.Render("  ·  ") + library
	title := styles.TitleStyle.Render("Bookden")

	gap := m.width - lipgloss.Width(tabs) - lipgloss.Width(title)
	if gap < 1 {
		return tabs
	}
	return tabs + strings.Repeat(" ", gap) + title
}

// renderStatsLine summarizes the library the way the search bar
// occupies that row on the explore page
func (m Model) renderStatsLine() string {
	if len(m.LibraryBooks) == 0 {
		return styles.DimStyle.Render("no books saved yet")
	}
	stats := domain.ComputeStats(m.LibraryBooks)
	return styles.DimStyle.Render(fmt.Sprintf("%d books · %d genres · %d authors",
		stats.TotalBooks, stats.UniqueGenres, stats.UniqueAuthors))
}

// renderLoadError fills the list area with the failure message and a
// retry hint
func (m Model) renderLoadError(errMsg string) string {
	msg := styles.ErrorStyle.Render(errMsg) + "\n\n" +
		styles.DimStyle.Render("press r to retry")
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.loadingBooks || m.loadingLibrary:
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.togglingID != "":
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Updating library...")
	case m.statusMsg != "":
		if m.statusError {
			left = styles.ErrorStyle.Render(m.statusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.statusMsg)
		}
	}

	var center string
	switch m.Page {
	case PageDetail:
		center = hint("esc", "back") + "  " + hint("space", "add/remove")
	case PageLibrary:
		center = hint("space", "remove") + "  " + hint("enter", "details")
	default:
		center = hint("f", "search") + "  " + hint("space", "add/remove") + "  " + hint("enter", "details")
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	centerWidth := lipgloss.Width(center)

	available := m.width - leftWidth - rightWidth
	if available <= centerWidth {
		gap := m.width - leftWidth - rightWidth
		if gap < 1 {
			gap = 1
		}
		return left + strings.Repeat(" ", gap) + right
	}

	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, action string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+action)
}

func (m Model) renderHelp() string {
	help := `
NAVIGATION                        ACTIONS
  j/k        Up/down                enter  View details
  g/G        First/last item        space  Add/remove favorite
  ctrl+d/u   Half page              r      Refetch current list
  tab        Switch page            c      Clear search filters
  1 / 2      Explore / Library      q      Quit

SEARCH & FILTER
  f          Focus search bar (tab cycles search/author/genre)
  ←/→        Cycle genres · type to jump to a genre · enter to pick
  /          Filter the loaded list locally
  esc        Leave search bar / clear local filter

Press any key to close.`

	box := styles.ModalStyle.Render(help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
