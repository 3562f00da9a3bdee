package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/c4export/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// PageListModel - Interactive page selection
// =============================================================================

// PageListModel is the bubbletea model for choosing the pages of an export.
// Space toggles a page, "a" toggles all, enter confirms. Confirming with
// nothing checked exports the page under the cursor.
type PageListModel struct {
	Pages     []pipeline.PageSummary
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewPageListModel creates a page list with every page checked.
func NewPageListModel(s pipeline.Summary) PageListModel {
	checked := make(map[int]bool, len(s.Pages))
	for i := range s.Pages {
		checked[i] = true
	}
	return PageListModel{Pages: s.Pages, Checked: checked, Height: 15}
}

func (m PageListModel) Init() tea.Cmd {
	return nil
}

func (m PageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Checked = cloneChecked(m.Checked)
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := len(m.Selected()) < len(m.Pages)
			m.Checked = make(map[int]bool, len(m.Pages))
			for i := range m.Pages {
				m.Checked[i] = all
			}
		case "enter":
			if len(m.Pages) == 0 {
				return m, tea.Quit
			}
			if len(m.Selected()) == 0 {
				m.Checked = map[int]bool{m.Cursor: true}
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

// Selected returns the checked page names in document order.
func (m PageListModel) Selected() []string {
	var names []string
	for i, p := range m.Pages {
		if m.Checked[i] {
			names = append(names, p.Name)
		}
	}
	return names
}

func (m PageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ export  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Pages))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Pages[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}
		rows = append(rows, []string{cursor, check, p.Name, strconv.Itoa(p.Nodes), strconv.Itoa(p.Edges)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Page", "Nodes", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Pages) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray)
			}
			switch {
			case idx == m.Cursor && m.Checked[idx]:
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Bold(true)
			case m.Checked[idx]:
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", len(m.Selected()), len(m.Pages))))

	return b.String()
}

func cloneChecked(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// selectPages runs the page picker. ok is false when the user quits without
// confirming.
func selectPages(s pipeline.Summary) (names []string, ok bool, err error) {
	final, err := tea.NewProgram(NewPageListModel(s)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("page picker: %w", err)
	}
	m := final.(PageListModel)
	if !m.Confirmed {
		return nil, false, nil
	}
	return m.Selected(), true, nil
}
