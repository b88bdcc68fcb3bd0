package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webshim/formdata"
)

const (
	ColorPrimary   = "#7D56F4"
	ColorSecondary = "#04B575"
	ColorGray      = "#888888"
	ColorDarkGray  = "#666666"
	ColorWhite     = "#FAFAFA"
)

const maxPreviewBytes = 2048

type fieldItem struct {
	field formdata.Field
}

func (i fieldItem) FilterValue() string { return i.field.Name }
func (i fieldItem) Title() string       { return i.field.Name }

func (i fieldItem) Description() string {
	if i.field.File != nil {
		return fmt.Sprintf("file %q (%s, %d bytes)", i.field.Filename, i.field.File.Type(), i.field.File.Size())
	}
	return truncateString(i.field.Value, 60)
}

type keymap struct {
	quit key.Binding
	open key.Binding
	back key.Binding
}

type model struct {
	path          string
	form          *formdata.FormData
	fieldList     list.Model
	keymap        keymap
	help          help.Model
	showingDetail bool
	selected      formdata.Field
	quitting      bool
	width         int
	height        int
}

func newModel(path string, fd *formdata.FormData) *model {
	items := make([]list.Item, 0, fd.Len())
	for _, f := range fd.Entries() {
		items = append(items, fieldItem{field: f})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)

	fieldList := list.New(items, delegate, 80, 20)
	fieldList.Title = fmt.Sprintf("Form fields in %s", path)
	fieldList.SetShowStatusBar(false)
	fieldList.SetFilteringEnabled(true)
	fieldList.SetShowHelp(false)

	return &model{
		path:      path,
		form:      fd,
		fieldList: fieldList,
		keymap: keymap{
			quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
			open: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "open"),
			),
			back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back"),
			),
		},
		help: help.New(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fieldList.SetWidth(msg.Width)
		m.fieldList.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if m.showingDetail {
			return m.detailUpdate(msg)
		}
		return m.listUpdate(msg)
	}

	return m, nil
}

func (m *model) listUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.open):
		if item, ok := m.fieldList.SelectedItem().(fieldItem); ok {
			m.selected = item.field
			m.showingDetail = true
			return m, tea.ClearScreen
		}
	}

	var cmd tea.Cmd
	m.fieldList, cmd = m.fieldList.Update(msg)
	return m, cmd
}

func (m *model) detailUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.back):
		m.showingDetail = false
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.showingDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m *model) listView() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDarkGray)).
		Italic(true).
		MarginTop(1)

	var b strings.Builder
	b.WriteString(m.fieldList.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ Navigate • Enter Open • Q Quit"))
	return b.String()
}

func (m *model) detailView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimary)).
		PaddingTop(1).
		PaddingBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorGray)).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorPrimary)).
		Padding(1, 2).
		Width(getResponsiveWidth(m.width, 10, 40, 100))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDarkGray)).
		Italic(true).
		MarginTop(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Field %q", m.selected.Name)))
	b.WriteString("\n")

	var content string
	if m.selected.File != nil {
		content = fmt.Sprintf("%s %s\n%s %s\n%s %d bytes\n\n%s",
			labelStyle.Render("Filename:"), valueStyle.Render(m.selected.Filename),
			labelStyle.Render("Type:"), valueStyle.Render(m.selected.File.Type()),
			labelStyle.Render("Size:"), m.selected.File.Size(),
			valueStyle.Render(preview(m.selected.File.Text())))
	} else {
		content = valueStyle.Render(m.selected.Value)
	}

	b.WriteString(boxStyle.Render(content))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc Back • Q Quit"))
	return b.String()
}

func preview(s string) string {
	if len(s) > maxPreviewBytes {
		s = s[:maxPreviewBytes] + "..."
	}
	return strings.ToValidUTF8(s, "�")
}

func getResponsiveWidth(screenWidth, padding, minWidth, maxWidth int) int {
	width := screenWidth - padding
	if width > maxWidth {
		width = maxWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength < 4 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
