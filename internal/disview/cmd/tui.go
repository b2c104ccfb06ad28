package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"disview/internal/backend"
	"disview/internal/config"
	"disview/internal/disview/styles"
	"disview/internal/symtab"
	"disview/internal/ui/colorize"
	"disview/internal/view"
)

type viewMode int

const (
	viewListing viewMode = iota
	viewSymbols
)

type symbolItem struct {
	entry symtab.Entry
}

func (i symbolItem) Title() string {
	return fmt.Sprintf("%x  %s", i.entry.Addr, i.entry.Demangled)
}

func (i symbolItem) Description() string { return "" }

func (i symbolItem) FilterValue() string {
	return fmt.Sprintf("%x %s", i.entry.Addr, i.entry.Demangled)
}

// Custom item delegate for the symbols list
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(symbolItem)
	if !ok {
		return
	}

	var addrStyle lipgloss.Style
	var indicator string

	if index == m.Index() {
		indicator = ">"
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	} else {
		indicator = " "
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	}

	fmt.Fprintf(w, " %s  %s  %s",
		indicator,
		addrStyle.Render(fmt.Sprintf("%x", i.entry.Addr)),
		i.entry.Demangled)
}

type model struct {
	viewport    viewport.Model
	symbolsList list.Model
	spinner     spinner.Model
	mode        viewMode
	filepath    string
	hook        view.Hook
	disView     *view.View
	probe       backend.ProbeResult
	openErr     error
	loading     bool
	width       int
	height      int
}

// Message types
type viewOpenedMsg struct {
	view  *view.View
	probe backend.ProbeResult
	err   error
}

// Commands
func openViewCmd(hook view.Hook, filepath string) tea.Cmd {
	return func() tea.Msg {
		v, res, err := hook.Open(context.Background(), filepath)
		return viewOpenedMsg{view: v, probe: res, err: err}
	}
}

func NewModel(cfg config.Config, filepath string) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	symbolsList := list.New([]list.Item{}, itemDelegate{}, 80, 24)
	symbolsList.SetShowStatusBar(false)
	symbolsList.SetFilteringEnabled(true)
	symbolsList.Title = "Symbols"
	symbolsList.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)
	symbolsList.SetShowHelp(true)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	m := model{
		viewport:    vp,
		symbolsList: symbolsList,
		spinner:     s,
		mode:        viewListing,
		filepath:    filepath,
		hook:        view.NewHook(cfg),
		loading:     true,
		width:       80,
		height:      24,
	}

	m.updateContent()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		openViewCmd(m.hook, m.filepath),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case viewOpenedMsg:
		m.loading = false
		m.disView = msg.view
		m.probe = msg.probe
		m.openErr = msg.err
		if m.disView != nil {
			m.viewport.SetContent(colorize.Listing(m.disView.Content()))
			m.viewport.GotoTop()
			m.updateSymbolsList()
		} else {
			m.updateContent()
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading {
			m.updateContent()
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 2)
			m.symbolsList.SetWidth(msg.Width)
			m.symbolsList.SetHeight(msg.Height - 2)
			if m.disView == nil {
				m.updateContent()
			}
		}

	case tea.KeyMsg:
		// Let the list consume keys while the user is filtering.
		if m.mode == viewSymbols && m.symbolsList.FilterState() == list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, m.quit()
			}
		} else {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, m.quit()
			case "l":
				m.mode = viewListing
				return m, nil
			case "s":
				if m.symbolCount() > 0 {
					m.mode = viewSymbols
				}
				return m, nil
			case "tab":
				if m.mode == viewListing && m.symbolCount() > 0 {
					m.mode = viewSymbols
				} else {
					m.mode = viewListing
				}
				return m, nil
			case "enter":
				if m.mode == viewSymbols {
					if selected := m.symbolsList.SelectedItem(); selected != nil {
						if item, ok := selected.(symbolItem); ok {
							m.jumpToSymbol(item.entry)
							m.mode = viewListing
						}
					}
				}
				return m, nil
			}
		}
	}

	switch m.mode {
	case viewSymbols:
		m.symbolsList, cmd = m.symbolsList.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var content string
	switch m.mode {
	case viewSymbols:
		content = m.symbolsList.View()
	default:
		content = m.viewport.View()
	}

	var menu string
	switch {
	case m.mode == viewSymbols:
		menu = " Enter: jump to symbol • L: listing • Tab: cycle • Q: quit "
	case m.symbolCount() > 0:
		menu = " S: symbols • Tab: cycle • Q: quit "
	default:
		menu = " Q: quit "
	}

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(menu)
}

// quit tears the view down so the original identity is restored before the
// program exits.
func (m *model) quit() tea.Cmd {
	if m.disView != nil {
		_ = m.disView.Teardown()
	}
	return tea.Quit
}

func (m *model) symbolCount() int {
	if m.disView == nil {
		return 0
	}
	return len(m.disView.Symbols())
}

// jumpToSymbol scrolls the listing viewport to the header line of the
// given symbol.
func (m *model) jumpToSymbol(entry symtab.Entry) {
	if m.disView == nil {
		return
	}
	marker := fmt.Sprintf("<%s>:", entry.Name)
	for i, line := range strings.Split(m.disView.Content(), "\n") {
		if strings.HasSuffix(line, marker) {
			m.viewport.SetYOffset(i)
			return
		}
	}
}

// updateContent renders the info panel shown while loading and when the
// file is rejected.
func (m *model) updateContent() {
	var markdown strings.Builder
	markdown.WriteString("# Disview\n\n")
	fmt.Fprintf(&markdown, "```\n; %s\n```\n", m.filepath)

	switch {
	case m.loading:
		fmt.Fprintf(&markdown, "\n%s Probing and disassembling...", m.spinner.View())
	case m.openErr != nil:
		fmt.Fprintf(&markdown, "\n**Backend invocation failed:** %v\n", m.openErr)
	case m.disView == nil:
		fmt.Fprintf(&markdown, "\nNot shown as disassembly: `%s`\n", m.probe.Reason)
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	renderer := styles.GetMarkdownRenderer(width - 2)
	rendered, _ := renderer.Render(markdown.String())
	m.viewport.SetContent(strings.TrimSuffix(rendered, "\n"))
}

func (m *model) updateSymbolsList() {
	entries := m.disView.Symbols().Entries()
	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, symbolItem{entry: entry})
	}
	m.symbolsList.SetItems(items)
	m.symbolsList.Title = fmt.Sprintf("Symbols (%d total)", len(entries))
}
