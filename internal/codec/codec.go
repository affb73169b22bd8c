package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tarea/internal/task"
)

// Export renders the full collection as a pretty-printed JSON array, the
// same shape the persistence layer stores. An empty collection is reported
// as task.ErrNothingToExport so the caller can skip writing a file.
func Export(tasks []task.Task) ([]byte, error) {
	if len(tasks) == 0 {
		return nil, task.ErrNothingToExport
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// ExportFileName builds the dated file name exports are written under.
func ExportFileName(now time.Time) string {
	return "tasks_" + now.Format("2006-01-02") + ".json"
}

// wireTask is the lenient import shape. Documents written by other tools use
// whatever id type they like (the original web app used millisecond
// timestamps), so id is decoded as a raw number-or-string and completed is
// checked to be a real boolean rather than anything truthy.
type wireTask struct {
	ID          json.RawMessage `json:"id"`
	Text        string          `json:"text"`
	Completed   json.RawMessage `json:"completed"`
	Category    string          `json:"category"`
	Priority    string          `json:"priority"`
	CreatedAt   string          `json:"createdAt"`
	CompletedAt *string         `json:"completedAt"`
}

// Import decodes a backup document. The top-level value must be a JSON
// array; elements that lack an id, lack text, or carry a non-boolean
// completed field are dropped silently. A document that yields no valid
// records at all fails with task.ErrBadFormat.
func Import(data []byte) ([]task.Task, error) {
	var wire []wireTask
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", task.ErrBadFormat, err)
	}

	records := make([]task.Task, 0, len(wire))
	for _, w := range wire {
		t, ok := decodeRecord(w)
		if !ok {
			continue
		}
		records = append(records, t)
	}
	if len(records) == 0 {
		return nil, task.ErrBadFormat
	}
	return records, nil
}

func decodeRecord(w wireTask) (task.Task, bool) {
	id := idString(w.ID)
	text := strings.TrimSpace(w.Text)
	completed, ok := boolValue(w.Completed)
	if id == "" || text == "" || !ok {
		return task.Task{}, false
	}

	t := task.Task{
		ID:        id,
		Text:      text,
		Completed: completed,
		Category:  task.Category(w.Category),
		Priority:  task.ParsePriority(w.Priority),
	}
	if w.Category == "" {
		t.Category = task.CategoryPersonal
	}
	if parsed, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		t.CreatedAt = parsed
	}
	if w.CompletedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *w.CompletedAt); err == nil {
			t.CompletedAt = &parsed
		}
	}
	// Keep the completed/completedAt pairing intact no matter what the
	// document said.
	if !t.Completed {
		t.CompletedAt = nil
	} else if t.CompletedAt == nil {
		at := t.CreatedAt
		t.CompletedAt = &at
	}
	return t, true
}

// idString renders a JSON id to its string form: quoted strings lose their
// quotes, numbers keep their decimal spelling, and anything empty, null,
// "0" or "" is rejected by returning "".
func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if n.String() == "0" {
			return ""
		}
		return n.String()
	}
	return ""
}

func boolValue(raw json.RawMessage) (bool, bool) {
	if len(raw) == 0 {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}
