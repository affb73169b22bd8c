package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tarea/internal/task"
)

// Saver is the persistence trigger. The store calls it after every mutation
// and keeps going whether it succeeds or not; the in-memory collection stays
// authoritative either way.
type Saver interface {
	SaveTasks(tasks []task.Task) error
}

// Store owns the ordered task collection. Base order is newest-first: Create
// prepends, MergeImported appends. Nothing outside the store holds a mutable
// reference to the slice.
type Store struct {
	tasks   []task.Task
	saver   Saver
	saveErr error

	now   func() time.Time
	newID func() string
}

func New(tasks []task.Task, saver Saver) *Store {
	return &Store{
		tasks: append([]task.Task(nil), tasks...),
		saver: saver,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Tasks returns a copy of the collection in base order.
func (s *Store) Tasks() []task.Task {
	return append([]task.Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// LastSaveErr reports the outcome of the most recent persistence trigger.
// A nil result means the last save went through. Save failures never undo
// the mutation that caused them; they are for the status line only.
func (s *Store) LastSaveErr() error {
	return s.saveErr
}

func (s *Store) Create(text string, category task.Category, priority task.Priority) (task.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, task.ErrEmptyText
	}
	t := task.Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		Category:  category,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	s.tasks = append([]task.Task{t}, s.tasks...)
	s.persist()
	return t, nil
}

func (s *Store) ToggleCompletion(id string) (task.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}
	t := s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		now := s.now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	s.tasks[i] = t
	s.persist()
	return t, nil
}

func (s *Store) UpdateText(id, newText string) (task.Task, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return task.Task{}, task.ErrEmptyText
	}
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}
	t := s.tasks[i]
	t.Text = newText
	s.tasks[i] = t
	s.persist()
	return t, nil
}

// Delete removes the task with the given id. An unknown id is an error, not
// a no-op.
func (s *Store) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return task.ErrNotFound
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persist()
	return nil
}

// ClearCompleted removes every completed task and returns how many were
// removed. It only touches storage when something actually went away.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0
	}
	s.tasks = kept
	s.persist()
	return removed
}

// CompletedCount reports how many tasks are currently completed, so the
// caller can build a confirmation prompt before committing to ClearCompleted.
func (s *Store) CompletedCount() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// MergeImported appends already-decoded records to the collection and
// returns how many were accepted. Records missing an id or text are dropped
// here as a second line of defense behind the codec. Imported ids are kept
// verbatim and are not deduplicated against existing ones.
func (s *Store) MergeImported(records []task.Task) (int, error) {
	accepted := make([]task.Task, 0, len(records))
	for _, r := range records {
		if r.ID == "" || strings.TrimSpace(r.Text) == "" {
			continue
		}
		accepted = append(accepted, r)
	}
	if len(accepted) == 0 {
		return 0, task.ErrBadFormat
	}
	s.tasks = append(s.tasks, accepted...)
	s.persist()
	return len(accepted), nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	if s.saver == nil {
		s.saveErr = nil
		return
	}
	s.saveErr = s.saver.SaveTasks(s.Tasks())
}
