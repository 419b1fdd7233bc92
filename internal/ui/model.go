// Package ui is the interactive terminal front end of a tabview.View: a
// search bar, a sortable table and an export action.
package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/frota/internal/ui/table"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

// chromeLines counts the non-table lines: title, search bar, status and help.
const chromeLines = 5

// Theme holds the UI colors. Nil fields keep the defaults.
type Theme struct {
	HeaderFG    color.Color
	HeaderBG    color.Color
	SelectedFG  color.Color
	SelectedBG  color.Color
	Placeholder color.Color
	Search      color.Color
	Title       color.Color
}

// Options configures a Model.
type Options struct {
	NoColor bool
	Theme   Theme
	// Sink receives exports. Without one the export key reports an error.
	Sink tabview.FileSink
	// Clipboard receives the CSV on the copy key. Nil hides the key.
	Clipboard tabview.FileSink
	Logger    logr.Logger
}

// Model is the bubbletea model driving one View.
type Model struct {
	view   *tabview.View
	grid   *table.Model
	search textinput.Model
	sink   tabview.FileSink
	clip   tabview.FileSink
	lgr    logr.Logger

	searching bool
	status    string
	statusErr bool
	noColor   bool
	width     int
	height    int

	titleStyle       lipgloss.Style
	placeholderStyle lipgloss.Style
	searchStyle      lipgloss.Style
	errorStyle       lipgloss.Style
	helpStyle        lipgloss.Style
}

// New builds a model over v.
func New(v *tabview.View, opts Options) *Model {
	si := textinput.New()
	si.Placeholder = tabview.SearchPlaceholder
	si.CharLimit = 200
	si.SetWidth(40)
	si.Prompt = ""
	si.SetValue(v.State().SearchTerm)

	grid := table.New()
	grid.SetNoColor(opts.NoColor)
	grid.SetColors(opts.Theme.HeaderFG, opts.Theme.HeaderBG, opts.Theme.SelectedFG, opts.Theme.SelectedBG)

	m := &Model{
		view:    v,
		grid:    grid,
		search:  si,
		sink:    opts.Sink,
		clip:    opts.Clipboard,
		lgr:     opts.Logger,
		noColor: opts.NoColor,
		width:   80,
		height:  24,
	}
	m.applyStyles(opts.Theme)
	m.refresh()
	return m
}

func (m *Model) applyStyles(th Theme) {
	plain := lipgloss.NewStyle()
	if m.noColor {
		m.titleStyle = plain.Bold(true)
		m.placeholderStyle = plain
		m.searchStyle = plain
		m.errorStyle = plain
		m.helpStyle = plain
		return
	}
	pick := func(c color.Color, def string) color.Color {
		if c != nil {
			return c
		}
		return lipgloss.Color(def)
	}
	m.titleStyle = plain.Bold(true).Foreground(pick(th.Title, "13"))
	m.placeholderStyle = plain.Italic(true).Foreground(pick(th.Placeholder, "244"))
	m.searchStyle = plain.Foreground(pick(th.Search, "14"))
	m.errorStyle = plain.Foreground(lipgloss.Color("9"))
	m.helpStyle = plain.Foreground(lipgloss.Color("241"))
}

func (m *Model) refresh() {
	m.grid.SetTable(m.view.Render())
}

// TableView returns the underlying view.
func (m *Model) TableView() *tabview.View { return m.view }

// Searching reports whether the search bar has focus.
func (m *Model) Searching() bool { return m.searching }

// Status returns the last status message.
func (m *Model) Status() string { return m.status }

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.SetWidth(max(msg.Width-10, 10))
		m.grid.SetSize(msg.Width, max(msg.Height-chromeLines, 3))
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKey(msg, key)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		if !m.view.Searchable() {
			return m, nil
		}
		m.searching = true
		m.grid.Blur()
		return m, m.search.Focus()
	case "esc":
		if m.view.State().SearchTerm != "" {
			m.search.SetValue("")
			m.applySearch()
		}
		return m, nil
	case "e":
		m.export()
		return m, nil
	case "c":
		if m.clip != nil {
			m.copyCSV()
		}
		return m, nil
	case "s":
		m.cycleSort()
		return m, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
		m.sortColumn(n - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "enter", "tab":
		m.searching = false
		m.search.Blur()
		m.grid.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	term := m.search.Value()
	if term == m.view.State().SearchTerm {
		return
	}
	m.view.SetSearch(term)
	m.refresh()
	m.lgr.V(1).Info("search updated", "term", term, "rows", len(m.grid.Rows()))
}

func (m *Model) sortColumn(idx int) {
	cols := m.view.Columns()
	if idx >= len(cols) {
		return
	}
	col := cols[idx]
	if !m.view.ToggleSort(col.Key) {
		m.setStatus(fmt.Sprintf("%s não é ordenável", col.Label), true)
		return
	}
	st := m.view.State()
	m.setStatus(fmt.Sprintf("Ordenado por %s (%s)", col.Label, st.SortDirection), false)
	m.refresh()
}

// cycleSort moves the sort to the next sortable column, wrapping around.
func (m *Model) cycleSort() {
	cols := m.view.Columns()
	current := m.view.State().SortKey
	start := 0
	for i, c := range cols {
		if c.Key == current {
			start = i + 1
			break
		}
	}
	for i := range cols {
		c := cols[(start+i)%len(cols)]
		if c.Sortable && c.Key != current {
			m.view.SortBy(c.Key, tabview.Ascending)
			m.setStatus(fmt.Sprintf("Ordenado por %s (%s)", c.Label, tabview.Ascending), false)
			m.refresh()
			return
		}
	}
}

func (m *Model) export() {
	if !m.view.Exportable() {
		m.setStatus("Exportação desabilitada", true)
		return
	}
	if m.sink == nil {
		m.setStatus("Nenhum destino de exportação configurado", true)
		return
	}
	name := m.view.ExportFileName()
	if err := m.view.Export(m.sink); err != nil {
		m.lgr.Error(err, "export failed", "file", name)
		m.setStatus(fmt.Sprintf("Falha ao exportar: %v", err), true)
		return
	}
	m.lgr.V(1).Info("exported", "file", name, "rows", len(m.view.Projection()))
	m.setStatus("Exportado: "+name, false)
}

func (m *Model) copyCSV() {
	if !m.view.Exportable() {
		m.setStatus("Exportação desabilitada", true)
		return
	}
	if err := m.view.Export(m.clip); err != nil {
		m.lgr.Error(err, "copy failed")
		m.setStatus(fmt.Sprintf("Falha ao copiar: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copiado: %d linhas", len(m.view.Projection())), false)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// Frame returns the current screen as plain text.
func (m *Model) Frame() string {
	return m.render()
}

func (m *Model) render() string {
	var b strings.Builder
	if title := m.view.Title(); title != "" {
		b.WriteString(m.titleStyle.Render(title) + "\n")
	}
	if m.view.Searchable() {
		b.WriteString(m.searchStyle.Render("Buscar: ") + m.search.View() + "\n")
	}

	b.WriteString(m.grid.View() + "\n")
	if len(m.grid.Rows()) == 0 {
		b.WriteString(m.placeholderStyle.Render(tabview.NoResultsPlaceholder) + "\n")
	}

	if m.status != "" {
		style := m.helpStyle
		if m.statusErr {
			style = m.errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(m.helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) helpLine() string {
	parts := []string{}
	if m.view.Searchable() {
		parts = append(parts, "/ buscar")
	}
	parts = append(parts, "1-9 ordenar", "s próxima coluna")
	if m.view.Exportable() {
		parts = append(parts, "e "+strings.ToLower(tabview.ExportLabel))
		if m.clip != nil {
			parts = append(parts, "c copiar")
		}
	}
	parts = append(parts, "q sair")
	return strings.Join(parts, " • ")
}
