package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/source"
)

// Collection names one of the two independently loaded collections.
type Collection string

const (
	CollectionTodos Collection = "todos"
	CollectionUsers Collection = "users"
)

// SyncState represents the current state of a collection fetch.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the fetch state for a single collection.
type SyncStatus struct {
	Collection Collection
	State      SyncState
	LastSync   time.Time
	Error      error
}

// TodosLoadedMsg is a tea.Msg sent when the todo fetch completes.
// On failure Err is set and Todos is nil.
type TodosLoadedMsg struct {
	Generation uint64
	Todos      []model.Todo
	Err        error
}

// UsersLoadedMsg is a tea.Msg sent when the user fetch completes.
// On failure Err is set and Users is nil.
type UsersLoadedMsg struct {
	Generation uint64
	Users      []model.User
	Err        error
}

// Loader fetches the todo and user collections as two independent
// Bubble Tea commands. Each call to Load starts a new generation so
// that results of a superseded load can be recognized and dropped.
type Loader struct {
	src     source.Source
	logger  *zap.Logger
	timeout time.Duration

	mu         gosync.Mutex
	generation uint64
	statuses   map[Collection]*SyncStatus
}

// New creates a Loader for the given source. A zero timeout leaves
// each fetch bounded only by the source's own client settings.
func New(src source.Source, timeout time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		src:     src,
		logger:  logger,
		timeout: timeout,
		statuses: map[Collection]*SyncStatus{
			CollectionTodos: {Collection: CollectionTodos, State: SyncIdle},
			CollectionUsers: {Collection: CollectionUsers, State: SyncIdle},
		},
	}
}

// Load starts a new generation and returns a command that fetches both
// collections concurrently. There is no ordering between the two
// resulting messages.
func (l *Loader) Load() tea.Cmd {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	l.setStatus(CollectionTodos, SyncRunning, nil)
	l.setStatus(CollectionUsers, SyncRunning, nil)

	return tea.Batch(l.fetchTodos(gen), l.fetchUsers(gen))
}

// Generation returns the generation of the most recent Load.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// fetchTodos returns a command that loads the todo collection.
func (l *Loader) fetchTodos(gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()

		todos, err := l.src.FetchTodos(ctx)
		l.finish(CollectionTodos, gen, len(todos), err)
		if err != nil {
			return TodosLoadedMsg{Generation: gen, Err: err}
		}
		return TodosLoadedMsg{Generation: gen, Todos: todos}
	}
}

// fetchUsers returns a command that loads the user collection.
func (l *Loader) fetchUsers(gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()

		users, err := l.src.FetchUsers(ctx)
		l.finish(CollectionUsers, gen, len(users), err)
		if err != nil {
			return UsersLoadedMsg{Generation: gen, Err: err}
		}
		return UsersLoadedMsg{Generation: gen, Users: users}
	}
}

func (l *Loader) context() (context.Context, context.CancelFunc) {
	if l.timeout > 0 {
		return context.WithTimeout(context.Background(), l.timeout)
	}
	return context.WithCancel(context.Background())
}

// finish records the outcome of a fetch. Failures are logged only;
// surfacing them is up to the caller.
func (l *Loader) finish(c Collection, gen uint64, n int, err error) {
	log := l.logger.With(
		zap.String("collection", string(c)),
		zap.Uint64("generation", gen),
	)
	if err != nil {
		log.Warn("fetch failed", zap.Error(err))
	} else {
		log.Info("fetch complete", zap.Int("count", n))
	}

	// A superseded fetch must not overwrite the status of a newer one.
	if gen != l.Generation() {
		return
	}
	if err != nil {
		l.setStatus(c, SyncError, err)
		return
	}
	l.setStatus(c, SyncIdle, nil)
}

// GetStatuses returns the current fetch status of both collections,
// todos first.
func (l *Loader) GetStatuses() []SyncStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	return []SyncStatus{
		*l.statuses[CollectionTodos],
		*l.statuses[CollectionUsers],
	}
}

// InFlight returns how many collections are currently being fetched.
func (l *Loader) InFlight() int {
	n := 0
	for _, s := range l.GetStatuses() {
		if s.State == SyncRunning {
			n++
		}
	}
	return n
}

// setStatus updates the fetch status for a collection.
func (l *Loader) setStatus(c Collection, state SyncState, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := l.statuses[c]
	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}
