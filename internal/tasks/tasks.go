// Package tasks holds the agenda's to-do list: plain CRUD over an ordered
// slice.
package tasks

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrEmptyName = errors.New("task name is empty")
)

// Colors is the palette offered for tasks. The first entry is the default.
var Colors = []string{"#6B9AC4", "#4169E1", "#8B8680", "#E16941", "#41E169", "#9B59B6", "#F39C12", "#E91E63"}

type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Label renders the priority as one to three exclamation marks.
func (p Priority) Label() string {
	return strings.Repeat("!", int(clampPriority(p)))
}

func (p Priority) Name() string {
	switch clampPriority(p) {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	}
	return "Low"
}

func clampPriority(p Priority) Priority {
	if p < PriorityLow {
		return PriorityLow
	}
	if p > PriorityHigh {
		return PriorityHigh
	}
	return p
}

type Task struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Color       string   `json:"color"`
	Priority    Priority `json:"priority"`
	Date        string   `json:"date,omitempty"` // YYYY-MM-DD
	Time        string   `json:"time,omitempty"` // HH:MM
}

func normalize(t Task) Task {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	t.Date = strings.TrimSpace(t.Date)
	t.Time = strings.TrimSpace(t.Time)
	if t.Color == "" {
		t.Color = Colors[0]
	}
	t.Priority = clampPriority(t.Priority)
	return t
}

// List is an ordered task list. Order is user-controlled through Move.
type List struct {
	items []Task
}

func NewList(items []Task) *List {
	l := &List{}
	for _, t := range items {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		l.items = append(l.items, normalize(t))
	}
	return l
}

// All returns a copy of the tasks in list order.
func (l *List) All() []Task {
	return slices.Clone(l.items)
}

func (l *List) Len() int { return len(l.items) }

func (l *List) index(id string) int {
	return slices.IndexFunc(l.items, func(t Task) bool { return t.ID == id })
}

// Get returns the task with id.
func (l *List) Get(id string) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return l.items[i], nil
}

// Add appends a new incomplete task with a fresh id.
func (l *List) Add(t Task) (Task, error) {
	t = normalize(t)
	if t.Name == "" {
		return Task{}, ErrEmptyName
	}
	t.ID = uuid.New().String()
	t.Completed = false
	l.items = append(l.items, t)
	return t, nil
}

// Update applies fn to the task with id. The id cannot be changed and the
// name cannot be emptied.
func (l *List) Update(id string, fn func(*Task)) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := l.items[i]
	fn(&t)
	t = normalize(t)
	t.ID = id
	if t.Name == "" {
		return Task{}, ErrEmptyName
	}
	l.items[i] = t
	return t, nil
}

// Toggle flips the completed flag.
func (l *List) Toggle(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.items[i].Completed = !l.items[i].Completed
	return nil
}

func (l *List) Delete(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Move takes the task with id out of the list and inserts it at the position
// currently held by targetID.
func (l *List) Move(id, targetID string) error {
	from, to := l.index(id), l.index(targetID)
	if from < 0 || to < 0 {
		return ErrNotFound
	}
	if from == to {
		return nil
	}
	t := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, t)
	return nil
}

// ForDate returns the tasks scheduled on dateKey: timed tasks by time first,
// then untimed ones in list order.
func (l *List) ForDate(dateKey string) []Task {
	var out []Task
	for _, t := range l.items {
		if t.Date == dateKey {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		switch {
		case a.Time != "" && b.Time != "":
			return strings.Compare(a.Time, b.Time)
		case a.Time != "":
			return -1
		case b.Time != "":
			return 1
		}
		return 0
	})
	return out
}

// Progress returns the number of completed tasks and the total.
func (l *List) Progress() (done, total int) {
	for _, t := range l.items {
		if t.Completed {
			done++
		}
	}
	return done, len(l.items)
}
