package store

import (
	"log/slog"
	"sync"
	"time"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// State is the application state managed by the store.
type State = model.State

// DefaultNotificationTTL is how long a notification stays visible unless it is dismissed earlier.
const DefaultNotificationTTL = 3 * time.Second

// Store is the single owner of the mutable application state. All changes go through Reduce;
// readers only ever get snapshots. A Store is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)
	ids         *IDSource
	scheduler   *Scheduler
	metrics     *Metrics
	log         *slog.Logger
	ttl         time.Duration
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNotificationTTL sets the display window of notifications.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock replaces time.Now as the source for notification ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMetrics records dispatched actions in the given metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store holding the initial state.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state: normalize(initial),
		ttl:   DefaultNotificationTTL,
		now:   time.Now,
		log:   slog.With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = NewIDSource(s.now)
	s.scheduler = NewScheduler(s.ttl, func(id int64) {
		s.log.Debug("notification expired", "id", id)
		s.Dispatch(RemoveNotification{Id: id})
	})
	s.metrics.observePeople(len(s.state.People))
	return s
}

// normalize replaces nil slices so that snapshots always serialize as JSON arrays.
func normalize(state State) State {
	if state.People == nil {
		state.People = []model.Person{}
	}
	if state.Notifications == nil {
		state.Notifications = []model.Notification{}
	}
	if state.Theme == "" {
		state.Theme = model.ThemeLight
	}
	return state
}

// State returns a snapshot of the current state. Snapshots share backing arrays with the store,
// which is safe because Reduce never modifies a slice in place.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a function that is called with the new state after every dispatch. It is
// called while the store is locked, so it must not block and must not dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies the actions in order and returns the resulting state.
func (s *Store) Dispatch(actions ...Action) State {
	return s.Transact(func(State) []Action { return actions })
}

// Transact calls fn with the current state and applies the actions it returns, all under one
// lock. Policy checks that read the state before deciding what to dispatch use it so that no
// other dispatch can slip in between the check and the change.
func (s *Store) Transact(fn func(State) []Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := fn(s.state)
	if len(actions) == 0 {
		return s.state
	}
	for _, action := range actions {
		s.state = Reduce(s.state, action)
		s.metrics.countAction(action.Name())
		switch a := action.(type) {
		case AddNotification:
			s.scheduler.Schedule(a.Notification.Id)
		case RemoveNotification:
			s.scheduler.Cancel(a.Id)
		}
	}
	s.metrics.observePeople(len(s.state.People))
	for _, fn := range s.subscribers {
		fn(s.state)
	}
	return s.state
}

// NewNotification builds an AddNotification action with a fresh id.
func (s *Store) NewNotification(message string, kind model.Kind) AddNotification {
	if kind == "" {
		kind = model.KindInfo
	}
	return AddNotification{Notification: model.Notification{
		Id:      s.ids.Next(),
		Message: message,
		Kind:    kind,
	}}
}

// Notify dispatches a new notification and returns it.
func (s *Store) Notify(message string, kind model.Kind) model.Notification {
	action := s.NewNotification(message, kind)
	s.Dispatch(action)
	return action.Notification
}

// PendingExpiries returns the number of notifications still waiting for their timer.
func (s *Store) PendingExpiries() int {
	return s.scheduler.Pending()
}

// Close cancels all pending notification timers.
func (s *Store) Close() {
	s.scheduler.Stop()
}
