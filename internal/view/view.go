package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tarea/internal/task"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

type Sort string

const (
	SortDate         Sort = "date"
	SortPriority     Sort = "priority"
	SortAlphabetical Sort = "alphabetical"
)

// Counts are always computed over the full collection, never the filtered
// result, so badges reflect global state.
type Counts struct {
	Pending   int
	Completed int
	Total     int
}

// EmptyKind tells the presentation layer which empty-state message to show
// when the visible list has nothing in it.
type EmptyKind int

const (
	EmptyNone     EmptyKind = iota // there is something to show
	EmptyNoTasks                   // the collection itself is empty
	EmptyNoMatch                   // a search term filtered everything out
	EmptyFiltered                  // the status filter left nothing
)

type View struct {
	Tasks  []task.Task
	Counts Counts
	Empty  EmptyKind
}

// Compute derives the visible task list from the collection and the current
// filter, search term and sort key. It is a pure function: the input slice
// is never modified.
func Compute(tasks []task.Task, filter Filter, term string, key Sort) View {
	v := View{Counts: countAll(tasks)}

	visible := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case FilterPending:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		visible = append(visible, t)
	}

	term = strings.TrimSpace(term)
	if term != "" {
		needle := strings.ToLower(term)
		matched := visible[:0]
		for _, t := range visible {
			if strings.Contains(strings.ToLower(t.Text), needle) {
				matched = append(matched, t)
			}
		}
		visible = matched
	}

	sortTasks(visible, key)

	v.Tasks = visible
	v.Empty = emptyKind(len(tasks), len(visible), term)
	return v
}

func countAll(tasks []task.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

func sortTasks(tasks []task.Task, key Sort) {
	switch key {
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	case SortAlphabetical:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(tasks, func(i, j int) bool {
			return c.CompareString(tasks[i].Text, tasks[j].Text) < 0
		})
	default: // SortDate, newest first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func emptyKind(total, visible int, term string) EmptyKind {
	if visible > 0 {
		return EmptyNone
	}
	if total == 0 {
		return EmptyNoTasks
	}
	if term != "" {
		return EmptyNoMatch
	}
	return EmptyFiltered
}
