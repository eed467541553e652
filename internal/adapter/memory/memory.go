// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"macrotrend/internal/domain"
)

// DB implements every repository port over in-process maps and slices.
type DB struct {
	mu       sync.Mutex
	weights  map[string]domain.WeightEntry
	intake   []domain.IntakeEntry
	targets  []domain.Target
	goal     *domain.GoalConfig
	users    []*domain.User
	sessions map[string]*domain.Session

	intakeIDCounter int64
	targetIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		weights:  make(map[string]domain.WeightEntry),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository = (*DB)(nil)
	_ domain.IntakeRepository = (*DB)(nil)
	_ domain.TargetRepository = (*DB)(nil)
	_ domain.GoalRepository   = (*DB)(nil)
	_ domain.UserRepository   = (*DB)(nil)
)

// --- WeightRepository ---

// UpsertWeight writes the entry for its day, honouring the overwrite policy.
func (db *DB) UpsertWeight(ctx context.Context, e domain.WeightEntry, overwrite bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.weights[e.Day]; exists && !overwrite {
		return domain.ErrDuplicateDay
	}
	db.weights[e.Day] = e
	return nil
}

// WeightRange returns entries with from <= day <= to, ordered by day.
func (db *DB) WeightRange(ctx context.Context, from, to string) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.WeightEntry
	for day, e := range db.weights {
		if day >= from && day <= to {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// LatestWeight returns the most recent entry by day, or nil.
func (db *DB) LatestWeight(ctx context.Context) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.WeightEntry
	for day := range db.weights {
		e := db.weights[day]
		if latest == nil || e.Day > latest.Day {
			latest = &e
		}
	}
	return latest, nil
}

// --- IntakeRepository ---

// AppendIntake adds an intake entry.
func (db *DB) AppendIntake(ctx context.Context, e domain.IntakeEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.intakeIDCounter++
	e.ID = db.intakeIDCounter
	db.intake = append(db.intake, e)
	return e.ID, nil
}

// DeleteLatestIntake removes the most recently appended intake entry.
func (db *DB) DeleteLatestIntake(ctx context.Context) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.intake) == 0 {
		return false, nil
	}
	db.intake = db.intake[:len(db.intake)-1]
	return true, nil
}

// IntakeRange returns entries with from <= day <= to, ordered by day.
func (db *DB) IntakeRange(ctx context.Context, from, to string) ([]domain.IntakeEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.IntakeEntry
	for _, e := range db.intake {
		if e.Day >= from && e.Day <= to {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DailyIntakeTotals sums intake entries per day, ordered by day. Days with
// no entries are absent.
func (db *DB) DailyIntakeTotals(ctx context.Context, from, to string) ([]domain.DayIntake, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	byDay := make(map[string]*domain.DayIntake)
	for _, e := range db.intake {
		if e.Day < from || e.Day > to {
			continue
		}
		t, ok := byDay[e.Day]
		if !ok {
			t = &domain.DayIntake{Day: e.Day}
			byDay[e.Day] = t
		}
		t.Calories += e.Calories
		t.ProteinG += e.ProteinG
		t.FatG += e.FatG
		t.CarbsG += e.CarbsG
	}

	out := make([]domain.DayIntake, 0, len(byDay))
	for _, t := range byDay {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// --- TargetRepository ---

// SaveTarget appends a superseding target row.
func (db *DB) SaveTarget(ctx context.Context, t domain.Target) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.targetIDCounter++
	t.ID = db.targetIDCounter
	db.targets = append(db.targets, t)
	return t.ID, nil
}

// LatestTarget returns the most recent target with AsOf <= asOf, or nil.
func (db *DB) LatestTarget(ctx context.Context, asOf string) (*domain.Target, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.Target
	for i := range db.targets {
		t := db.targets[i]
		if t.AsOf > asOf {
			continue
		}
		if latest == nil || t.AsOf > latest.AsOf || (t.AsOf == latest.AsOf && t.ID > latest.ID) {
			latest = &t
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	return &ret, nil
}

// ListTargets returns targets with AsOf <= through, ordered by AsOf then ID.
func (db *DB) ListTargets(ctx context.Context, through string) ([]domain.Target, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Target
	for _, t := range db.targets {
		if t.AsOf <= through {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AsOf != out[j].AsOf {
			return out[i].AsOf < out[j].AsOf
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --- GoalRepository ---

// SaveGoal stores the goal configuration.
func (db *DB) SaveGoal(ctx context.Context, g domain.GoalConfig) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goal = &g
	return nil
}

// GetGoal returns the configured goal, or nil when unset.
func (db *DB) GetGoal(ctx context.Context) (*domain.GoalConfig, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.goal == nil {
		return nil, nil
	}
	g := *db.goal
	return &g, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	ret := *u
	return &ret, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo is the SessionRepository view of a DB. Sessions live on a
// wrapper because DB's method set already carries the user Create.
type SessionRepo struct {
	db *DB
}

// Sessions returns the SessionRepository view of the DB.
func (db *DB) Sessions() *SessionRepo {
	return &SessionRepo{db: db}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token, or nil.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	ret := *s
	return &ret, nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}
