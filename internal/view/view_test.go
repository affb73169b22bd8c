package view

import (
	"testing"
	"time"

	"tarea/internal/task"
)

func mk(id, text string, completed bool, pri task.Priority, created time.Time) task.Task {
	t := task.Task{
		ID:        id,
		Text:      text,
		Completed: completed,
		Category:  task.CategoryPersonal,
		Priority:  pri,
		CreatedAt: created,
	}
	if completed {
		at := created.Add(time.Hour)
		t.CompletedAt = &at
	}
	return t
}

func TestComputeDateOrderNewestFirst(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	tasks := []task.Task{
		mk("1", "first", false, task.PriorityMedium, t1),
		mk("2", "second", false, task.PriorityMedium, t2),
		mk("3", "third", false, task.PriorityMedium, t3),
	}

	v := Compute(tasks, FilterAll, "", SortDate)
	want := []string{"3", "2", "1"}
	for i, id := range want {
		if v.Tasks[i].ID != id {
			t.Fatalf("position %d: want id %s, got %s", i, id, v.Tasks[i].ID)
		}
	}
}

func TestComputePriorityStable(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		mk("a", "a", false, task.PriorityMedium, base),
		mk("b", "b", false, task.PriorityHigh, base),
		mk("c", "c", false, task.PriorityMedium, base),
		mk("d", "d", false, task.PriorityLow, base),
		mk("e", "e", false, task.PriorityHigh, base),
	}

	v := Compute(tasks, FilterAll, "", SortPriority)
	want := []string{"b", "e", "a", "c", "d"}
	for i, id := range want {
		if v.Tasks[i].ID != id {
			t.Fatalf("position %d: want id %s, got %s (ties must keep input order)", i, id, v.Tasks[i].ID)
		}
	}
}

func TestComputeAlphabetical(t *testing.T) {
	base := time.Now()
	tasks := []task.Task{
		mk("1", "cherry", false, task.PriorityMedium, base),
		mk("2", "Apple", false, task.PriorityMedium, base),
		mk("3", "banana", false, task.PriorityMedium, base),
	}

	v := Compute(tasks, FilterAll, "", SortAlphabetical)
	want := []string{"Apple", "banana", "cherry"}
	for i, text := range want {
		if v.Tasks[i].Text != text {
			t.Fatalf("position %d: want %q, got %q", i, text, v.Tasks[i].Text)
		}
	}
}

func TestComputeStatusFilter(t *testing.T) {
	base := time.Now()
	tasks := []task.Task{
		mk("1", "open", false, task.PriorityMedium, base),
		mk("2", "closed", true, task.PriorityMedium, base),
	}

	if v := Compute(tasks, FilterPending, "", SortDate); len(v.Tasks) != 1 || v.Tasks[0].ID != "1" {
		t.Errorf("pending filter: got %v", v.Tasks)
	}
	if v := Compute(tasks, FilterCompleted, "", SortDate); len(v.Tasks) != 1 || v.Tasks[0].ID != "2" {
		t.Errorf("completed filter: got %v", v.Tasks)
	}
	if v := Compute(tasks, FilterAll, "", SortDate); len(v.Tasks) != 2 {
		t.Errorf("all filter: got %v", v.Tasks)
	}
}

func TestComputeSearchCaseInsensitive(t *testing.T) {
	base := time.Now()
	tasks := []task.Task{
		mk("1", "Buy MILK", false, task.PriorityMedium, base),
		mk("2", "walk dog", false, task.PriorityMedium, base),
	}

	v := Compute(tasks, FilterAll, "milk", SortDate)
	if len(v.Tasks) != 1 || v.Tasks[0].ID != "1" {
		t.Errorf("expected case-insensitive substring match, got %v", v.Tasks)
	}
}

func TestCountsAreGlobal(t *testing.T) {
	base := time.Now()
	tasks := []task.Task{
		mk("1", "open", false, task.PriorityMedium, base),
		mk("2", "also open", false, task.PriorityMedium, base),
		mk("3", "closed", true, task.PriorityMedium, base),
	}
	want := Counts{Pending: 2, Completed: 1, Total: 3}

	for _, f := range []Filter{FilterAll, FilterPending, FilterCompleted} {
		for _, term := range []string{"", "zzz-no-match"} {
			if got := Compute(tasks, f, term, SortDate).Counts; got != want {
				t.Errorf("Compute(%s, %q) counts = %+v, want %+v", f, term, got, want)
			}
		}
	}
}

func TestEmptyKinds(t *testing.T) {
	base := time.Now()
	tasks := []task.Task{mk("1", "only pending", false, task.PriorityMedium, base)}

	if got := Compute(nil, FilterAll, "", SortDate).Empty; got != EmptyNoTasks {
		t.Errorf("empty collection: got %v, want EmptyNoTasks", got)
	}
	if got := Compute(tasks, FilterAll, "nothing matches", SortDate).Empty; got != EmptyNoMatch {
		t.Errorf("search miss: got %v, want EmptyNoMatch", got)
	}
	if got := Compute(tasks, FilterCompleted, "", SortDate).Empty; got != EmptyFiltered {
		t.Errorf("filter miss: got %v, want EmptyFiltered", got)
	}
	if got := Compute(tasks, FilterAll, "", SortDate).Empty; got != EmptyNone {
		t.Errorf("visible result: got %v, want EmptyNone", got)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		mk("old", "old", false, task.PriorityLow, t1),
		mk("new", "new", false, task.PriorityHigh, t1.Add(time.Hour)),
	}

	Compute(tasks, FilterAll, "", SortDate)
	Compute(tasks, FilterAll, "", SortPriority)
	if tasks[0].ID != "old" || tasks[1].ID != "new" {
		t.Error("Compute reordered the caller's slice")
	}
}
