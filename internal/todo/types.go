// Package todo holds the task list, its validation and its encoding.
package todo

import (
	"fmt"
	"strings"
	"time"
)

// Field length limits, counted in characters.
const (
	TitleMaxLength       = 150
	DescriptionMaxLength = 500
)

// Task represents a single to-do item.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// String renders the task as a single line for logs and plain output.
func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d %s", mark, t.ID, t.Title)
}

// Draft is the editable part of a task as typed by the user.
type Draft struct {
	Title       string
	Description string
}

// NewID returns an id derived from now (Unix milliseconds) that does not
// collide with any id in existing.
func NewID(existing []Task, now time.Time) int64 {
	id := now.UnixMilli()
	for containsID(existing, id) {
		id++
	}
	return id
}

// NewTask builds an incomplete task from a validated draft.
func NewTask(id int64, d Draft) Task {
	return Task{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Completed:   false,
	}
}

// Apply merges a validated draft into t, keeping its id and completion state.
func (t Task) Apply(d Draft) Task {
	t.Title = strings.TrimSpace(d.Title)
	t.Description = d.Description
	return t
}

// CountCompleted returns how many tasks are marked completed.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func containsID(tasks []Task, id int64) bool {
	return indexOf(tasks, id) >= 0
}

func indexOf(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
