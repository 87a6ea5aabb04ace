package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/todo-cli/internal/todos"
	"github.com/glabrego/todo-cli/internal/tui/actions"
	"github.com/glabrego/todo-cli/internal/tui/platform"
	"github.com/glabrego/todo-cli/internal/tui/state"
	tuitheme "github.com/glabrego/todo-cli/internal/tui/theme"
	"github.com/glabrego/todo-cli/internal/tui/view"
)

type Service = actions.Service

type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeEdit
	modeSearch
)

func (m inputMode) String() string {
	switch m {
	case modeAdd:
		return "add"
	case modeEdit:
		return "edit"
	case modeSearch:
		return "search"
	default:
		return "list"
	}
}

type Preferences struct {
	SortByAlphabet bool
	ShowIDs        bool
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	service Service
	st      state.State

	cursor   int
	mode     inputMode
	editID   int64
	inflight int

	addInput    textinput.Model
	editInput   textinput.Model
	searchInput textinput.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	theme       tuitheme.Theme

	showHelp bool
	showIDs  bool
	width    int
	height   int
	status   string
	statusID int

	lastLoadDuration  time.Duration
	copyFn            func(string) error
	savePreferencesFn func(Preferences) error
}

func NewModel(service Service) Model {
	addInput := textinput.New()
	addInput.Prompt = "New: "
	addInput.Placeholder = "what needs doing?"
	addInput.CharLimit = 200

	editInput := textinput.New()
	editInput.Prompt = "Edit: "
	editInput.CharLimit = 200

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.Placeholder = "search titles"

	return Model{
		service:     service,
		st:          state.New(),
		addInput:    addInput,
		editInput:   editInput,
		searchInput: searchInput,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
		keys:        defaultKeyMap(),
		theme:       tuitheme.Default(),
		copyFn:      platform.CopyToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, actions.LoadCmd(m.service))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		inputWidth := msg.Width - 12
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.addInput.Width = inputWidth
		m.editInput.Width = inputWidth
		m.searchInput.Width = inputWidth
		return m, nil
	case spinner.TickMsg:
		if !m.st.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case actions.LoadedMsg:
		anchorID := m.anchorID()
		m.st = state.ApplyLoad(m.st, msg.Result)
		m.lastLoadDuration = msg.Duration
		if msg.Result.Ok() {
			m.status = fmt.Sprintf("Loaded %d todos in %dms", len(m.st.Items), m.lastLoadDuration.Milliseconds())
		}
		m.restoreCursor(anchorID)
		return m, nil
	case actions.CreatedMsg:
		m.inflight--
		m.st = state.ApplyCreate(m.st, msg.Result)
		if msg.Result.Ok() {
			m.addInput.SetValue(m.st.Input)
			m.status = fmt.Sprintf("Added %q", msg.Result.Value.Title)
		}
		return m, nil
	case actions.UpdatedMsg:
		m.inflight--
		m.st = state.ApplyUpdate(m.st, msg.ID, msg.Title, msg.Result)
		if msg.Result.Ok() {
			m.status = fmt.Sprintf("Updated todo %d", msg.ID)
		}
		return m, nil
	case actions.DeletedMsg:
		m.inflight--
		anchorID := m.anchorID()
		m.st = state.ApplyDelete(m.st, msg.ID, msg.Result)
		if msg.Result.Ok() {
			m.status = fmt.Sprintf("Deleted todo %d", msg.ID)
		}
		m.restoreCursor(anchorID)
		return m, nil
	case actions.CopySuccessMsg:
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actions.CopyErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case actions.PreferenceSaveErrorMsg:
		m.status = "Could not persist UI preferences: " + msg.Err.Error()
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch state.Current(m.st) {
	case state.ScreenLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case state.ScreenError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m.reload()
		}
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	visible := m.visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = state.ClampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Down):
		m.cursor = state.ClampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = state.ClampCursor(len(visible)-1, len(visible))
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = state.ClampCursor(m.cursor-state.PageStep(m.height, m.status != ""), len(visible))
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = state.ClampCursor(m.cursor+state.PageStep(m.height, m.status != ""), len(visible))
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addInput.SetValue(m.st.Input)
		m.addInput.CursorEnd()
		cmd := m.addInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = item.ID
		m.editInput.SetValue(item.Title)
		m.editInput.CursorEnd()
		cmd := m.editInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		item, ok := m.selected()
		if !ok || m.service == nil {
			return m, nil
		}
		m.inflight++
		m.status = ""
		return m, actions.DeleteCmd(m.service, item.ID)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.st.SearchTerm)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.ClearSearch):
		m.st = state.SetSearchTerm(m.st, "")
		m.searchInput.SetValue("")
		m.cursor = state.ClampCursor(m.cursor, len(m.visible()))
	case key.Matches(msg, m.keys.Sort):
		anchorID := m.anchorID()
		m.st = state.ToggleSort(m.st)
		if m.st.SortByAlphabet {
			m.status = "Sort: a-z"
		} else {
			m.status = "Sort: server order"
		}
		m.restoreCursor(anchorID)
		return m, actions.PersistPreferencesCmd(m.savePreferencesFn, m.preferences())
	case key.Matches(msg, m.keys.ToggleIDs):
		m.showIDs = !m.showIDs
		if m.showIDs {
			m.status = "IDs: on"
		} else {
			m.status = "IDs: off"
		}
		return m, actions.PersistPreferencesCmd(m.savePreferencesFn, m.preferences())
	case key.Matches(msg, m.keys.Copy):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, actions.CopyTitleCmd(item.Title, m.copyFn)
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.addInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		title, ok := state.ValidateTitle(m.st.Input)
		if !ok || m.service == nil {
			return m, nil
		}
		m.inflight++
		m.status = ""
		return m, actions.CreateCmd(m.service, title)
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.st = state.SetInput(m.st, m.addInput.Value())
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.editInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		title, ok := state.ValidateTitle(m.editInput.Value())
		if !ok {
			m.status = "Title must not be empty"
			return m, nil
		}
		m.mode = modeList
		m.editInput.Blur()
		if m.service == nil {
			return m, nil
		}
		m.inflight++
		m.status = ""
		return m, actions.UpdateCmd(m.service, m.editID, title)
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.st = state.SetSearchTerm(m.st, "")
		m.cursor = state.ClampCursor(m.cursor, len(m.visible()))
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.st = state.SetSearchTerm(m.st, m.searchInput.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.st = state.BeginLoad(m.st)
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, actions.LoadCmd(m.service))
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Todo List"))
	b.WriteString(" ")
	b.WriteString(m.theme.ModePill.Render(m.mode.String()))
	b.WriteString("\n\n")

	switch state.Current(m.st) {
	case state.ScreenLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading todos...\n")
		return b.String()
	case state.ScreenError:
		b.WriteString(view.ErrorScreen(m.st.Err, m.theme))
		return b.String()
	}

	if m.showHelp {
		b.WriteString("Help (? or esc to close)\n\n")
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(view.Toolbar(m.mode.String()))
	b.WriteString("\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n")
	if m.mode == modeEdit {
		b.WriteString(m.theme.Prompt.Render(fmt.Sprintf("#%d ", m.editID)))
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
	}
	if m.mode == modeSearch || m.st.SearchTerm != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := m.visible()
	switch {
	case len(m.st.Items) == 0:
		b.WriteString("No todos yet. Press a to add one.\n")
	case len(visible) == 0:
		b.WriteString(fmt.Sprintf("No todos match %q.\n", m.st.SearchTerm))
	default:
		cursor := state.ClampCursor(m.cursor, len(visible))
		start, end := state.CenteredWindow(len(visible), cursor, m.listHeight())
		b.WriteString(view.RenderListBody(view.ListRenderInput{
			Items:          visible,
			Start:          start,
			End:            end,
			Cursor:         cursor,
			RenderItemLine: m.renderItemLine,
		}))
	}

	b.WriteString("\n")
	b.WriteString(view.MessageLine(m.inflight, m.status, m.st.Err, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Footer(m.mode.String(), len(m.st.Items), len(visible), m.st.SearchTerm, m.st.SortByAlphabet, m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderItemLine(item todos.Item, visiblePos int, active bool) string {
	return view.RenderItemLine(view.ItemLineParams{
		Item:       item,
		ShowIDs:    m.showIDs,
		VisiblePos: visiblePos,
		Active:     active,
		Width:      m.width,
	}, m.theme)
}

func (m Model) visible() []todos.Item {
	return view.Visible(m.st.Items, m.st.SearchTerm, m.st.SortByAlphabet)
}

func (m Model) selected() (todos.Item, bool) {
	visible := m.visible()
	if len(visible) == 0 {
		return todos.Item{}, false
	}
	return visible[state.ClampCursor(m.cursor, len(visible))], true
}

func (m Model) anchorID() int64 {
	item, ok := m.selected()
	if !ok {
		return 0
	}
	return item.ID
}

// restoreCursor keeps the cursor on anchorID when it is still visible.
func (m *Model) restoreCursor(anchorID int64) {
	visible := m.visible()
	if anchorID != 0 {
		if idx := state.IndexByID(visible, anchorID); idx >= 0 {
			m.cursor = idx
			return
		}
	}
	m.cursor = state.ClampCursor(m.cursor, len(visible))
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	reserved := 9
	if m.mode == modeEdit {
		reserved++
	}
	if m.mode == modeSearch || m.st.SearchTerm != "" {
		reserved++
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) ApplyPreferences(prefs Preferences) {
	m.st.SortByAlphabet = prefs.SortByAlphabet
	m.showIDs = prefs.ShowIDs
}

func (m *Model) SetPreferencesSaver(saveFn func(Preferences) error) {
	m.savePreferencesFn = saveFn
}

func (m Model) preferences() Preferences {
	return Preferences{
		SortByAlphabet: m.st.SortByAlphabet,
		ShowIDs:        m.showIDs,
	}
}
