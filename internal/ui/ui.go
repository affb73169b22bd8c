package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tarea/internal/codec"
	"tarea/internal/config"
	"tarea/internal/storage"
	"tarea/internal/store"
	"tarea/internal/task"
	"tarea/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeImport
)

type Model struct {
	store *store.Store
	disk  *storage.Store
	cfg   config.Config

	mode    mode
	input   textinput.Model
	status  string
	cursor  int
	visible []task.Task
	counts  view.Counts
	empty   view.EmptyKind

	filter  view.Filter
	sortKey view.Sort
	search  string
	dark    bool

	addCategory task.Category
	addPriority task.Priority
	editID      string
	pendingDel  *task.Task

	confirmDel   bool
	confirmClear bool
	clearCount   int

	styles styles
}

func Run(st *store.Store, disk *storage.Store, cfg config.Config, dark bool, warn string) error {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:       st,
		disk:        disk,
		cfg:         cfg,
		input:       ti,
		mode:        modeList,
		status:      "Press 'a' to add, space to toggle, 'd' to delete.",
		filter:      parseFilter(cfg.DefaultFilter),
		sortKey:     parseSort(cfg.DefaultSort),
		dark:        dark,
		addCategory: task.CategoryPersonal,
		addPriority: task.PriorityMedium,
		styles:      newStyles(dark),
	}
	if warn != "" {
		m.status = warn
	}
	m.refresh()

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeImport:
		return m.updateImportMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Placeholder = "Task text"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add mode: type text, tab cycles category, shift+tab cycles priority"
	case m.cfg.Keys.Toggle:
		if len(m.visible) == 0 {
			return m, nil
		}
		t, err := m.store.ToggleCompletion(m.visible[m.cursor].ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.status = "Marked " + humanDone(t.Completed)
		m.noteSaveErr()
		m.refresh()
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case m.cfg.Keys.Edit:
		if len(m.visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := m.visible[m.cursor]
		m.mode = modeEdit
		m.editID = t.ID
		m.input.Placeholder = "Task text"
		m.input.SetValue(t.Text)
		m.input.Focus()
		m.status = "Edit mode: Enter to save, Esc to cancel"
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.search)
		m.input.Focus()
		m.status = "Search: type a term, Enter to apply, Esc to clear"
	case m.cfg.Keys.Filter:
		m.filter = nextFilter(m.filter)
		m.status = "Filter: " + string(m.filter)
		m.refresh()
	case m.cfg.Keys.Sort:
		m.sortKey = nextSort(m.sortKey)
		m.status = "Sort: " + string(m.sortKey)
		m.refresh()
	case m.cfg.Keys.Theme:
		m.dark = !m.dark
		m.styles = newStyles(m.dark)
		if err := m.disk.SaveTheme(m.dark); err != nil {
			m.status = fmt.Sprintf("theme save failed: %v", err)
		} else if m.dark {
			m.status = "Dark mode on"
		} else {
			m.status = "Dark mode off"
		}
	case m.cfg.Keys.Export:
		return m.exportTasks()
	case m.cfg.Keys.Import:
		m.mode = modeImport
		m.input.Placeholder = "Path to JSON file"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Import: path to a JSON backup, Enter to load, Esc to cancel"
	case m.cfg.Keys.ClearCompleted:
		n := m.store.CompletedCount()
		if n == 0 {
			m.status = "No completed tasks"
			return m, nil
		}
		m.confirmClear = true
		m.clearCount = n
		m.status = fmt.Sprintf("Remove %d completed task(s)? y/n", n)
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab":
		m.addCategory = nextCategory(m.addCategory)
		m.status = "Category: " + string(m.addCategory)
		return m, nil
	case "shift+tab":
		m.addPriority = nextPriority(m.addPriority)
		m.status = "Priority: " + string(m.addPriority)
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		t, err := m.store.Create(m.input.Value(), m.addCategory, m.addPriority)
		if errors.Is(err, task.ErrEmptyText) {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("add failed: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Added \"%s\"", t.Text)
		m.noteSaveErr()
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.addCategory = task.CategoryPersonal
		m.addPriority = task.PriorityMedium
		m.refresh()
		m.cursor = m.cursorFor(t.ID)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.editID = ""
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		t, err := m.store.UpdateText(m.editID, m.input.Value())
		if errors.Is(err, task.ErrEmptyText) {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("edit failed: %v", err)
			return m, nil
		}
		m.status = "Task updated"
		m.noteSaveErr()
		m.mode = modeList
		m.editID = ""
		m.input.SetValue("")
		m.input.Blur()
		m.refresh()
		m.cursor = m.cursorFor(t.ID)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.search = ""
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Search cleared"
		m.refresh()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.search = strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.Blur()
		if m.search == "" {
			m.status = "Search cleared"
		} else {
			m.status = fmt.Sprintf("Searching for \"%s\"", m.search)
		}
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// Live narrowing, like typing into the original search box.
		m.search = strings.TrimSpace(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m Model) updateImportMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Import cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		path := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		if path == "" {
			m.status = "Import cancelled"
			return m, nil
		}
		return m.importTasks(path)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.store.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Task deleted"
			m.noteSaveErr()
		}
		m.confirmDel = false
		m.pendingDel = nil
		m.refresh()
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Clear cancelled"
		m.confirmClear = false
		return m, nil
	case "y", "Y":
		n := m.store.ClearCompleted()
		m.status = fmt.Sprintf("Removed %d completed task(s)", n)
		m.noteSaveErr()
		m.confirmClear = false
		m.refresh()
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) exportTasks() (tea.Model, tea.Cmd) {
	data, err := codec.Export(m.store.Tasks())
	if errors.Is(err, task.ErrNothingToExport) {
		m.status = "No tasks to export"
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("export failed: %v", err)
		return m, nil
	}
	path := filepath.Join(m.cfg.ExportDir, codec.ExportFileName(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.status = fmt.Sprintf("export failed: %v", err)
		return m, nil
	}
	m.status = "Exported to " + path
	return m, nil
}

func (m Model) importTasks(path string) (tea.Model, tea.Cmd) {
	data, err := os.ReadFile(path)
	if err != nil {
		m.status = fmt.Sprintf("import failed: %v", err)
		return m, nil
	}
	records, err := codec.Import(data)
	if errors.Is(err, task.ErrBadFormat) {
		m.status = "Import failed: not a valid task file"
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("import failed: %v", err)
		return m, nil
	}
	n, err := m.store.MergeImported(records)
	if err != nil {
		m.status = "Import failed: no valid tasks in file"
		return m, nil
	}
	m.status = fmt.Sprintf("Imported %d task(s)", n)
	m.noteSaveErr()
	m.refresh()
	return m, nil
}

// refresh recomputes the visible list and counts from the store. Called
// after every mutation and whenever filter/search/sort change.
func (m *Model) refresh() {
	v := view.Compute(m.store.Tasks(), m.filter, m.search, m.sortKey)
	m.visible = v.Tasks
	m.counts = v.Counts
	m.empty = v.Empty
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m *Model) noteSaveErr() {
	if err := m.store.LastSaveErr(); err != nil {
		m.status += fmt.Sprintf(" (save failed: %v)", err)
	}
}

func (m Model) cursorFor(id string) int {
	for i, t := range m.visible {
		if t.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, len(m.visible))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}

func parseFilter(v string) view.Filter {
	switch view.Filter(strings.ToLower(strings.TrimSpace(v))) {
	case view.FilterPending:
		return view.FilterPending
	case view.FilterCompleted:
		return view.FilterCompleted
	default:
		return view.FilterAll
	}
}

func parseSort(v string) view.Sort {
	switch view.Sort(strings.ToLower(strings.TrimSpace(v))) {
	case view.SortPriority:
		return view.SortPriority
	case view.SortAlphabetical:
		return view.SortAlphabetical
	default:
		return view.SortDate
	}
}

func nextFilter(f view.Filter) view.Filter {
	switch f {
	case view.FilterAll:
		return view.FilterPending
	case view.FilterPending:
		return view.FilterCompleted
	default:
		return view.FilterAll
	}
}

func nextSort(s view.Sort) view.Sort {
	switch s {
	case view.SortDate:
		return view.SortPriority
	case view.SortPriority:
		return view.SortAlphabetical
	default:
		return view.SortDate
	}
}

func nextCategory(c task.Category) task.Category {
	cats := task.Categories()
	for i, cand := range cats {
		if cand == c {
			return cats[(i+1)%len(cats)]
		}
	}
	return cats[0]
}

func nextPriority(p task.Priority) task.Priority {
	pris := task.Priorities()
	for i, cand := range pris {
		if cand == p {
			return pris[(i+1)%len(pris)]
		}
	}
	return pris[1]
}
