package todo

import "sort"

// Op names the store operation that produced a Change.
type Op string

const (
	OpReplace Op = "replace"
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpToggle  Op = "toggle"
	OpRemove  Op = "remove"
	OpClear   Op = "clear"
)

// Change describes one store mutation. It is delivered to subscribers
// synchronously, after the mutation has been applied.
type Change struct {
	Op Op
	// ID is the affected task id for add, update, toggle and remove.
	ID int64
	// Changed is false when the operation targeted an id that is not in
	// the list and therefore left it untouched.
	Changed bool
	// Tasks is a snapshot of the list after the mutation.
	Tasks []Task
}

// Store is the task list contract shared by the views and the
// persistence bridge. Operations on absent ids are silent no-ops.
type Store interface {
	ReplaceAll(tasks []Task)
	Add(task Task)
	Update(task Task)
	Toggle(id int64)
	Remove(id int64)
	Clear()

	// Tasks returns a snapshot of the ordered list.
	Tasks() []Task
	// Get returns the task with the given id.
	Get(id int64) (Task, bool)

	// Subscribe registers fn for change notifications and returns a
	// function that removes it.
	Subscribe(fn func(Change)) (unsubscribe func())
}

// List is the in-memory Store. It is not safe for concurrent use: all
// mutations are expected to happen on a single goroutine (the UI update
// loop or a CLI command).
type List struct {
	tasks     []Task
	observers []observer
	nextObs   int
}

type observer struct {
	id int
	fn func(Change)
}

var _ Store = (*List)(nil)

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// ReplaceAll overwrites the entire list.
func (l *List) ReplaceAll(tasks []Task) {
	l.tasks = append([]Task(nil), tasks...)
	sortByCompletion(l.tasks)
	l.notify(Change{Op: OpReplace, Changed: true})
}

// Add inserts a new task and re-sorts.
func (l *List) Add(task Task) {
	l.tasks = append(l.tasks, task)
	sortByCompletion(l.tasks)
	l.notify(Change{Op: OpAdd, ID: task.ID, Changed: true})
}

// Update replaces the task with the same id and re-sorts.
func (l *List) Update(task Task) {
	i := indexOf(l.tasks, task.ID)
	if i < 0 {
		l.notify(Change{Op: OpUpdate, ID: task.ID})
		return
	}
	l.tasks[i] = task
	sortByCompletion(l.tasks)
	l.notify(Change{Op: OpUpdate, ID: task.ID, Changed: true})
}

// Toggle flips the completion flag of the task with id and re-sorts.
func (l *List) Toggle(id int64) {
	i := indexOf(l.tasks, id)
	if i < 0 {
		l.notify(Change{Op: OpToggle, ID: id})
		return
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	sortByCompletion(l.tasks)
	l.notify(Change{Op: OpToggle, ID: id, Changed: true})
}

// Remove deletes the task with id. Order is unaffected.
func (l *List) Remove(id int64) {
	i := indexOf(l.tasks, id)
	if i < 0 {
		l.notify(Change{Op: OpRemove, ID: id})
		return
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	l.notify(Change{Op: OpRemove, ID: id, Changed: true})
}

// Clear empties the list.
func (l *List) Clear() {
	l.tasks = nil
	l.notify(Change{Op: OpClear, Changed: true})
}

// Tasks returns a copy of the ordered list.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task with id, if present.
func (l *List) Get(id int64) (Task, bool) {
	i := indexOf(l.tasks, id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// Subscribe registers fn for change notifications.
func (l *List) Subscribe(fn func(Change)) func() {
	l.nextObs++
	id := l.nextObs
	l.observers = append(l.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range l.observers {
			if o.id == id {
				l.observers = append(l.observers[:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

func (l *List) notify(c Change) {
	if len(l.observers) == 0 {
		return
	}
	c.Tasks = l.Tasks()
	// Copy so an observer may unsubscribe while being notified.
	obs := append([]observer(nil), l.observers...)
	for _, o := range obs {
		o.fn(c)
	}
}

// sortByCompletion moves completed tasks behind incomplete ones, keeping
// insertion order inside each group.
func sortByCompletion(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return !tasks[i].Completed && tasks[j].Completed
	})
}
