package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

// verdictDelegate renders one routine per line.
type verdictDelegate struct {
	offset int
}

func (d verdictDelegate) Height() int  { return 1 }
func (d verdictDelegate) Spacing() int { return 0 }
func (d verdictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d verdictDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	routine, ok := item.(routineItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var markStyle, nameStyle, pathStyle lipgloss.Style

	width := m.Width() - 28 // mark (3) + routine (22) + spacing (3)

	label := fmt.Sprintf("%s:%d", routine.path, routine.line)
	if routine.reason != "" {
		label += "  " + routine.reason
	}

	var displayLabel string

	if isSelected {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		markStyle = selected.Width(3)
		nameStyle = selected.Width(22)
		pathStyle = selected

		displayLabel = animateScroll(label, width, d.offset)
	} else {
		markStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Width(3)
		if routine.functional {
			markStyle = markStyle.Foreground(lipgloss.Color("10"))
		}

		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(22)
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

		displayLabel = truncateToWidth(label, width)
	}

	mark := "✘"
	if routine.functional {
		mark = "✔"
	}

	line := fmt.Sprintf("%s %s %s",
		markStyle.Render(mark),
		nameStyle.Render(truncateToWidth(routine.routine, 22)),
		pathStyle.Render(displayLabel),
	)
	_, _ = fmt.Fprint(w, line)
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	textWidth := lipgloss.Width(text)
	if textWidth <= width {
		return text
	}

	// Gap between repeats
	gap := "   "

	// Initial pause before scrolling starts (in ticks)
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	effectiveStep := offset - pause

	// Create the repeating pattern: text + gap
	// We work with runes to handle multi-byte characters correctly
	runes := []rune(text + gap)
	n := len(runes)

	if n == 0 {
		return ""
	}

	start := effectiveStep % n

	// Construct the window
	res := make([]rune, 0, width)
	for i := range width {
		idx := (start + i) % n
		res = append(res, runes[idx])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// verdictModel is an interactive, filterable list of routine verdicts.
type verdictModel struct {
	width        int
	height       int
	routineList  list.Model
	delegate     verdictDelegate
	summary      verdictSummary
	rendered     bool
	animOffset   int
	lastSelected int
}

func newVerdictModel() verdictModel {
	delegate := verdictDelegate{}
	routineList := list.New([]list.Item{}, delegate, 80, 20)
	routineList.SetShowPagination(false)
	routineList.SetShowFilter(true)
	routineList.SetShowHelp(false)
	routineList.SetShowTitle(false)
	routineList.SetShowStatusBar(false)
	routineList.FilterInput.Placeholder = "Filter by path or routine…"

	return verdictModel{
		width:        80,
		height:       24,
		routineList:  routineList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (m verdictModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m verdictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.routineList.SetWidth(m.width)

	case tickMsg:
		if m.routineList.FilterState() != list.Filtering && m.rendered {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.routineList.SetDelegate(m.delegate)

			return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			var newList list.Model

			newList, cmd = m.routineList.Update(msg)
			m.routineList = newList

			// a new selection restarts the scroll animation
			if m.routineList.Index() != m.lastSelected {
				m.lastSelected = m.routineList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.routineList.SetDelegate(m.delegate)
			}

			return m, cmd
		}

	case verdictsMsg:
		m = m.handleVerdictsMsg(msg)
	}

	return m, cmd
}

func (m verdictModel) handleVerdictsMsg(msg verdictsMsg) verdictModel {
	m.summary = summarize(msg.rows)

	items := make([]list.Item, 0, len(msg.rows))
	for _, row := range msg.rows {
		items = append(items, routineItem{verdictRow: row})
	}

	m.routineList.SetItems(items)
	m.rendered = true

	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

// fits reports whether every row is visible without scrolling.
func (m verdictModel) fits() bool {
	return len(m.routineList.Items()) <= m.listHeight()
}

func (m verdictModel) listHeight() int {
	// title (2) + summary (2) + footer (1) + border (2) + header (2)
	listHeight := m.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	return listHeight
}

func (m verdictModel) View() string {
	if !m.rendered {
		return "Loading routine list…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("⚡ smartcache verdicts")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Routines: %s   Functional: %s   Wrapped calls: %s   Files: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.summary.routines)),
		accentStyle.Render(fmt.Sprintf("%d", m.summary.functional)),
		accentStyle.Render(fmt.Sprintf("%d", m.summary.wrapped)),
		accentStyle.Render(fmt.Sprintf("%d", m.summary.files)),
	))

	table := m.renderTable()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (m verdictModel) renderTable() string {
	// window width minus margin (2), border (2) and padding (2)
	listWidth := m.width - 6

	m.routineList.SetHeight(m.listHeight())
	m.routineList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-3s %-22s %s", "", "Routine", "Location"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.routineList.View(),
		),
	)
}
