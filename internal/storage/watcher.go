// ABOUTME: Table-change notifier backing the live-query contract.
// ABOUTME: Every committed write publishes the affected tables to subscribers.
package storage

import "sync"

// Table identifies one of the store's tables in change notifications.
type Table string

const (
	TableExercises     Table = "exercises"
	TableWorkouts      Table = "workouts"
	TableSets          Table = "sets"
	TablePRs           Table = "personal_records"
	TableTemplates     Table = "templates"
	TableTemplateItems Table = "template_items"
)

// AllTables lists every table, in export order.
var AllTables = []Table{
	TableExercises, TableWorkouts, TableSets,
	TablePRs, TableTemplates, TableTemplateItems,
}

// Watcher is a small pub/sub registry over table mutations. Callers that
// render a query's results subscribe and re-run the query whenever a table
// they read from changes; this replaces storage-engine-level reactivity.
type Watcher struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Table)
}

// NewWatcher creates an empty Watcher.
func NewWatcher() *Watcher {
	return &Watcher{subs: make(map[int]func(Table))}
}

// Subscribe registers fn to be called with each changed table after every
// committed write. The returned function cancels the subscription.
func (w *Watcher) Subscribe(fn func(Table)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// publish notifies all subscribers of changes to the given tables.
// Callbacks run synchronously on the writer's goroutine, after commit.
func (w *Watcher) publish(tables ...Table) {
	w.mu.Lock()
	fns := make([]func(Table), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		for _, t := range tables {
			fn(t)
		}
	}
}
