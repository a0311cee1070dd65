package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momverse/momverse/internal/cryptox"
	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/models"
	"github.com/momverse/momverse/internal/storage"
)

// Options tunes Manager behavior.
type Options struct {
	// VerifyCredentials makes Login check the password against the stored
	// verifier. When false any password is accepted for a known email.
	VerifyCredentials bool

	// Now returns the current time. Defaults to time.Now in UTC.
	Now func() time.Time

	// NewID returns a fresh record ID. Defaults to a random UUID.
	NewID func() string
}

// Manager owns the persisted accounts, the session pointer and the
// activity collections of a single device.
type Manager struct {
	store storage.Store
	log   logging.Logger
	opts  Options

	mu sync.Mutex
}

func NewManager(store storage.Store, log logging.Logger, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Manager{
		store: store,
		log:   log.With("component", "session"),
		opts:  opts,
	}
}

// Register stores candidate as a new account and makes it the current user.
// An empty ID is assigned. The email must not belong to another account;
// emails are compared exactly.
func (m *Manager) Register(ctx context.Context, candidate models.User, password []byte) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if candidate.ID == "" {
		candidate.ID = m.opts.NewID()
	}

	salt, verifier := cryptox.NewCredentials(password)
	stored := models.StoredUser{User: candidate, PasswordSalt: salt, PasswordVerifier: verifier}

	_, err := storage.UpdateCollection(ctx, m.store, storage.NamespaceUsers, m.log,
		func(users []models.StoredUser) ([]models.StoredUser, error) {
			for _, u := range users {
				if u.Email == candidate.Email {
					return nil, ErrDuplicateEmail
				}
			}
			return append(users, stored), nil
		})
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	if err := storage.WriteValue(ctx, m.store, storage.NamespaceSession, candidate); err != nil {
		return models.User{}, fmt.Errorf("register: set session: %w", err)
	}

	m.log.Info(ctx, "user registered", "user_id", candidate.ID)
	return candidate, nil
}

// Login makes the account with the given email the current user.
func (m *Manager) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := storage.ReadCollection[models.StoredUser](ctx, m.store, storage.NamespaceUsers, m.log)
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	var found *models.StoredUser
	for i := range users {
		if users[i].Email == email {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return models.User{}, ErrUserNotFound
	}

	if m.opts.VerifyCredentials && !cryptox.CheckPassword(password, found.PasswordSalt, found.PasswordVerifier) {
		m.log.Warn(ctx, "login rejected", "user_id", found.ID)
		return models.User{}, ErrInvalidCredentials
	}

	if err := storage.WriteValue(ctx, m.store, storage.NamespaceSession, found.User); err != nil {
		return models.User{}, fmt.Errorf("login: set session: %w", err)
	}

	m.log.Info(ctx, "user logged in", "user_id", found.ID)
	return found.User, nil
}

// Logout clears the session pointer. It is a no-op when nobody is logged in.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, storage.NamespaceSession); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user, or nil when there is none.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := storage.ReadValue[models.User](ctx, m.store, storage.NamespaceSession, m.log)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

// Users lists registered accounts in registration order, without their
// credential material.
func (m *Manager) Users(ctx context.Context) ([]models.User, error) {
	stored, err := storage.ReadCollection[models.StoredUser](ctx, m.store, storage.NamespaceUsers, m.log)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}

	users := make([]models.User, 0, len(stored))
	for _, s := range stored {
		users = append(users, s.User)
	}
	return users, nil
}

// AppendFeedLog prepends l to the feeding log and returns the updated
// collection, newest first. A zero ID or Timestamp is filled in.
func (m *Manager) AppendFeedLog(ctx context.Context, l models.FeedLog) ([]models.FeedLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l.ID == "" {
		l.ID = m.opts.NewID()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = m.opts.Now()
	}

	logs, err := storage.UpdateCollection(ctx, m.store, storage.NamespaceFeedingLogs, m.log,
		func(cur []models.FeedLog) ([]models.FeedLog, error) {
			return prepend(cur, l), nil
		})
	if err != nil {
		return nil, fmt.Errorf("append feed log: %w", err)
	}

	m.log.Debug(ctx, "feed log appended", "id", l.ID, "type", string(l.Type))
	return logs, nil
}

// FeedLogs returns the feeding log, newest first.
func (m *Manager) FeedLogs(ctx context.Context) ([]models.FeedLog, error) {
	logs, err := storage.ReadCollection[models.FeedLog](ctx, m.store, storage.NamespaceFeedingLogs, m.log)
	if err != nil {
		return nil, fmt.Errorf("feed logs: %w", err)
	}
	return logs, nil
}

// AppendJournalEntry prepends e to the journal and returns the updated
// collection, newest first. Text must not be blank and Mood must be one of
// models.Moods.
func (m *Manager) AppendJournalEntry(ctx context.Context, e models.JournalEntry) ([]models.JournalEntry, error) {
	if strings.TrimSpace(e.Text) == "" {
		return nil, ErrEmptyEntry
	}
	if !e.Mood.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, e.Mood)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID = m.opts.NewID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = m.opts.Now()
	}

	entries, err := storage.UpdateCollection(ctx, m.store, storage.NamespaceJournal, m.log,
		func(cur []models.JournalEntry) ([]models.JournalEntry, error) {
			return prepend(cur, e), nil
		})
	if err != nil {
		return nil, fmt.Errorf("append journal entry: %w", err)
	}

	m.log.Debug(ctx, "journal entry appended", "id", e.ID, "mood", string(e.Mood))
	return entries, nil
}

// JournalEntries returns the journal, newest first.
func (m *Manager) JournalEntries(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := storage.ReadCollection[models.JournalEntry](ctx, m.store, storage.NamespaceJournal, m.log)
	if err != nil {
		return nil, fmt.Errorf("journal entries: %w", err)
	}
	return entries, nil
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
