package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tarea/internal/config"
	"tarea/internal/task"
	"tarea/internal/view"
)

type styles struct {
	title    lipgloss.Style
	counts   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	date     lipgloss.Style
	high     lipgloss.Style
	medium   lipgloss.Style
	low      lipgloss.Style
	help     lipgloss.Style
}

func newStyles(dark bool) styles {
	text := lipgloss.Color("235")
	faint := lipgloss.Color("243")
	accent := lipgloss.Color("63")
	if dark {
		text = lipgloss.Color("252")
		faint = lipgloss.Color("245")
		accent = lipgloss.Color("111")
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		counts:   lipgloss.NewStyle().Foreground(faint),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		done:     lipgloss.NewStyle().Strikethrough(true).Foreground(faint),
		date:     lipgloss.NewStyle().Faint(true),
		high:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		low:      lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
		help:     lipgloss.NewStyle().Faint(true).Foreground(text),
	}
}

func (s styles) priority(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return s.high
	case task.PriorityLow:
		return s.low
	default:
		return s.medium
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Tarea"))
	b.WriteString("  ")
	b.WriteString(m.styles.counts.Render(fmt.Sprintf("%d pending • %d done • %d total",
		m.counts.Pending, m.counts.Completed, m.counts.Total)))
	b.WriteString("\n")
	b.WriteString(m.styles.counts.Render(fmt.Sprintf("filter:%s  sort:%s%s",
		m.filter, m.sortKey, searchSuffix(m.search))))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(m.emptyMessage())
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString(fmt.Sprintf("Add [%s %s | %s]: ", m.addCategory.Icon(), m.addCategory, m.addPriority))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("Edit: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("Search: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeImport:
		b.WriteString("Import file: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		text := t.Text
		if t.Completed {
			text = m.styles.done.Render(text)
		} else if m.cursor == i && m.mode == modeList {
			text = m.styles.selected.Render(text)
		}

		badge := m.styles.priority(t.Priority).Render(strings.ToUpper(string(t.Priority)))
		line := fmt.Sprintf("%s %s %s %s %s %s",
			cursor, checkbox, t.Category.Icon(), badge, text,
			m.styles.date.Render(t.CreatedAt.Format("2006-01-02 15:04")))

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) emptyMessage() string {
	switch m.empty {
	case view.EmptyNoTasks:
		return "No tasks yet. Press 'a' to add one."
	case view.EmptyNoMatch:
		return "No tasks match your search."
	case view.EmptyFiltered:
		return "No tasks in this view."
	default:
		return ""
	}
}

func searchSuffix(term string) string {
	if term == "" {
		return ""
	}
	return "  search:" + term
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s search • %s filter • %s sort • %s theme • %s export • %s import • %s clear done • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.Search, k.Filter, k.Sort, k.Theme, k.Export, k.Import, k.ClearCompleted, k.Quit)
}
