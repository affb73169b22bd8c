package codec

import (
	"errors"
	"testing"
	"time"

	"tarea/internal/task"
)

func TestExportEmptyCollection(t *testing.T) {
	if _, err := Export(nil); !errors.Is(err, task.ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	if got := ExportFileName(now); got != "tasks_2026-08-31.json" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	for _, doc := range []string{`{}`, `"tasks"`, `42`, `not json`} {
		if _, err := Import([]byte(doc)); !errors.Is(err, task.ErrBadFormat) {
			t.Errorf("Import(%s): expected ErrBadFormat, got %v", doc, err)
		}
	}
}

func TestImportFiltersInvalidRecords(t *testing.T) {
	doc := `[
		{"id": "a", "text": "x", "completed": false},
		{"id": "b"},
		{}
	]`
	records, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Fatalf("expected only record a, got %v", records)
	}
}

func TestImportRequiresBooleanCompleted(t *testing.T) {
	doc := `[
		{"id": "a", "text": "x", "completed": "yes"},
		{"id": "b", "text": "y", "completed": 1},
		{"id": "c", "text": "z"}
	]`
	if _, err := Import([]byte(doc)); !errors.Is(err, task.ErrBadFormat) {
		t.Errorf("non-boolean completed must be dropped, leaving zero records: got %v", err)
	}
}

func TestImportNumericID(t *testing.T) {
	// The original web exports used Date.now() millisecond ids.
	doc := `[{"id": 1767225600123, "text": "from the browser", "completed": false}]`
	records, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if records[0].ID != "1767225600123" {
		t.Errorf("numeric id should keep its decimal spelling, got %q", records[0].ID)
	}
}

func TestImportPreservesUnknownCategory(t *testing.T) {
	doc := `[{"id": "a", "text": "x", "completed": false, "category": "errands", "priority": "urgent"}]`
	records, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if records[0].Category != "errands" {
		t.Errorf("category should be preserved verbatim, got %q", records[0].Category)
	}
	if records[0].Category.Icon() != "📌" {
		t.Errorf("unknown category should use the fallback icon, got %q", records[0].Category.Icon())
	}
	if records[0].Priority != task.PriorityMedium {
		t.Errorf("unknown priority should normalize to medium, got %q", records[0].Priority)
	}
}

func TestImportRepairsCompletedAtPairing(t *testing.T) {
	done := `[{"id": "a", "text": "x", "completed": true, "createdAt": "2026-01-01T00:00:00Z"}]`
	records, err := Import([]byte(done))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if records[0].CompletedAt == nil {
		t.Error("completed record must carry a CompletedAt")
	}

	pending := `[{"id": "a", "text": "x", "completed": false, "completedAt": "2026-01-01T00:00:00Z"}]`
	records, err = Import([]byte(pending))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if records[0].CompletedAt != nil {
		t.Error("pending record must not carry a CompletedAt")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	doneAt := created.Add(2 * time.Hour)
	original := []task.Task{
		{ID: "one", Text: "first", Completed: true, Category: task.CategoryWork, Priority: task.PriorityHigh, CreatedAt: created, CompletedAt: &doneAt},
		{ID: "two", Text: "second", Completed: false, Category: task.CategoryStudy, Priority: task.PriorityLow, CreatedAt: created.Add(time.Minute)},
	}

	data, err := Export(original)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	records, err := Import(data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(records) != len(original) {
		t.Fatalf("expected %d records, got %d", len(original), len(records))
	}
	for i, want := range original {
		got := records[i]
		if got.ID != want.ID || got.Text != want.Text || got.Completed != want.Completed ||
			got.Category != want.Category || got.Priority != want.Priority {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, got, want)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("record %d CreatedAt: got %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
		if (got.CompletedAt == nil) != (want.CompletedAt == nil) {
			t.Errorf("record %d CompletedAt nilness mismatch", i)
		} else if got.CompletedAt != nil && !got.CompletedAt.Equal(*want.CompletedAt) {
			t.Errorf("record %d CompletedAt: got %v, want %v", i, got.CompletedAt, want.CompletedAt)
		}
	}
}
