package task

import (
	"errors"
	"strings"
	"time"
)

// Errors shared by the store, codec and storage layers. All of them are
// recoverable: callers surface them on the status line and carry on.
var (
	ErrEmptyText       = errors.New("task text is empty")
	ErrNotFound        = errors.New("task not found")
	ErrBadFormat       = errors.New("not a valid task document")
	ErrNothingToExport = errors.New("no tasks to export")
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryShopping Category = "shopping"
)

var categoryIcons = map[Category]string{
	CategoryWork:     "💼",
	CategoryPersonal: "👤",
	CategoryStudy:    "📚",
	CategoryHealth:   "💪",
	CategoryShopping: "🛒",
}

// Icon returns the display icon for the category. Categories that came in
// through an import are kept verbatim, so unknown values fall back to a
// generic pin.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "📌"
}

func (c Category) Known() bool {
	_, ok := categoryIcons[c]
	return ok
}

func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryStudy, CategoryHealth, CategoryShopping}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: high before medium before low.
// Anything unrecognized ranks as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority normalizes a priority string, mapping anything it does not
// recognize to medium.
func ParsePriority(v string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(v))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is one user-entered item. ID and CreatedAt are set once at creation
// and never change; CompletedAt is non-nil exactly while Completed is true.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}
