package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/models"
	"github.com/momverse/momverse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 15, 30, 123456789, time.UTC)

func newTestManager(t *testing.T, opts Options) (*Manager, storage.Store) {
	t.Helper()
	st := storage.NewMemoryStore()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.NewID == nil {
		var n int
		opts.NewID = func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}
	}
	return NewManager(st, logging.Discard(), opts), st
}

func alice() models.User {
	return models.User{Name: "Alice", Email: "alice@example.com", BabyName: "Bo", BabyDOB: "2024-03-01"}
}

func TestRegister_AssignsIDAndSetsSession(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	u, err := m.Register(ctx, alice(), []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u, *cur)
}

func TestRegister_KeepsGivenID(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	in := alice()
	in.ID = "fixed"

	u, err := m.Register(context.Background(), in, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, in, u)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.Register(ctx, alice(), []byte("pw"))
	require.NoError(t, err)

	other := alice()
	other.Name = "Someone Else"
	_, err = m.Register(ctx, other, []byte("pw2"))
	require.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := m.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.Register(ctx, alice(), []byte("pw"))
	require.NoError(t, err)

	upper := alice()
	upper.Email = "ALICE@example.com"
	_, err = m.Register(ctx, upper, []byte("pw"))
	require.NoError(t, err)

	users, _ := m.Users(ctx)
	assert.Len(t, users, 2)
}

func TestRegister_DoesNotStorePassword(t *testing.T) {
	m, st := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.Register(ctx, alice(), []byte("hunter2-plaintext"))
	require.NoError(t, err)

	raw, err := st.Get(ctx, storage.NamespaceUsers)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2-plaintext")
	assert.Contains(t, string(raw), "passwordVerifier")
}

func TestLogin_UnknownEmail(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	_, err := m.Login(context.Background(), "nobody@example.com", []byte("pw"))
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_AcceptsAnyPasswordByDefault(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	reg, err := m.Register(ctx, alice(), []byte("right"))
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	u, err := m.Login(ctx, "alice@example.com", []byte("wrong"))
	require.NoError(t, err)
	assert.Equal(t, reg, u)

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, reg, *cur)
}

func TestLogin_VerifyCredentials(t *testing.T) {
	m, _ := newTestManager(t, Options{VerifyCredentials: true})
	ctx := context.Background()

	reg, err := m.Register(ctx, alice(), []byte("right"))
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "alice@example.com", []byte("wrong"))
	require.ErrorIs(t, err, ErrInvalidCredentials)

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	u, err := m.Login(ctx, "alice@example.com", []byte("right"))
	require.NoError(t, err)
	assert.Equal(t, reg, u)
}

func TestLogout_Idempotent(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	require.NoError(t, m.Logout(ctx))

	_, err := m.Register(ctx, alice(), []byte("pw"))
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestCurrentUser_CorruptPointerIsNone(t *testing.T) {
	m, st := newTestManager(t, Options{})
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, storage.NamespaceSession, []byte("{not json")))

	cur, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestAppendFeedLog_NewestFirst(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	l1 := models.FeedLog{ID: "l1", Type: models.FeedTypeBottle, Timestamp: fixedNow, AmountMl: models.Int(90)}
	l2 := models.FeedLog{ID: "l2", Type: models.FeedTypeBreast, Timestamp: fixedNow.Add(time.Hour), DurationMinutes: models.Int(7), Side: models.SideRight}

	got, err := m.AppendFeedLog(ctx, l1)
	require.NoError(t, err)
	assert.Equal(t, []models.FeedLog{l1}, got)

	got, err = m.AppendFeedLog(ctx, l2)
	require.NoError(t, err)
	assert.Equal(t, []models.FeedLog{l2, l1}, got)

	read, err := m.FeedLogs(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]models.FeedLog{l2, l1}, read); diff != "" {
		t.Fatalf("feed logs mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendFeedLog_FillsIDAndTimestamp(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	got, err := m.AppendFeedLog(context.Background(), models.FeedLog{Type: models.FeedTypePump, AmountMl: models.Int(60)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "id-1", got[0].ID)
	assert.True(t, got[0].Timestamp.Equal(fixedNow))
}

func TestAppendFeedLog_NoCrossFieldValidation(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	_, err := m.AppendFeedLog(context.Background(), models.FeedLog{Type: models.FeedTypeBottle, Side: models.SideLeft, DurationMinutes: models.Int(3)})
	require.NoError(t, err)
}

func TestFeedLogs_RoundTripKeepsInstant(t *testing.T) {
	st, err := storage.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	m := NewManager(st, logging.Discard(), Options{})
	ctx := context.Background()

	ts := time.Date(2024, 2, 29, 23, 59, 59, 987654321, time.FixedZone("EST", -5*3600))
	in := models.FeedLog{ID: "x", Type: models.FeedTypeBreast, Timestamp: ts, DurationMinutes: models.Int(2), Side: models.SideBoth, Note: "sleepy"}

	_, err = m.AppendFeedLog(ctx, in)
	require.NoError(t, err)

	got, err := m.FeedLogs(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.Equal(ts))
	assert.Equal(t, in.ID, got[0].ID)
	assert.Equal(t, in.Type, got[0].Type)
	assert.Equal(t, in.DurationMinutes, got[0].DurationMinutes)
	assert.Equal(t, in.Side, got[0].Side)
	assert.Equal(t, in.Note, got[0].Note)
	assert.Nil(t, got[0].AmountMl)
}

func TestFeedLogs_CorruptCollectionIsEmpty(t *testing.T) {
	m, st := newTestManager(t, Options{})
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, storage.NamespaceFeedingLogs, []byte(`[{"id":"a","timestamp":"not a date"}]`)))

	got, err := m.FeedLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = m.AppendFeedLog(ctx, models.FeedLog{Type: models.FeedTypeBottle, AmountMl: models.Int(30)})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAppendJournalEntry_EmptyStore(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.AppendJournalEntry(ctx, models.JournalEntry{Text: "hello", Mood: models.MoodCalm})
	require.NoError(t, err)

	got, err := m.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Text)
	assert.Equal(t, models.MoodCalm, got[0].Mood)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[0].Timestamp.Equal(fixedNow))
}

func TestAppendJournalEntry_NewestFirst(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.AppendJournalEntry(ctx, models.JournalEntry{Text: "first", Mood: models.MoodTired})
	require.NoError(t, err)
	got, err := m.AppendJournalEntry(ctx, models.JournalEntry{Text: "second", Mood: models.MoodHappy})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Text)
	assert.Equal(t, "first", got[1].Text)
}

func TestAppendJournalEntry_Rejects(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	ctx := context.Background()

	_, err := m.AppendJournalEntry(ctx, models.JournalEntry{Text: "  ", Mood: models.MoodCalm})
	require.ErrorIs(t, err, ErrEmptyEntry)

	_, err = m.AppendJournalEntry(ctx, models.JournalEntry{Text: "hi", Mood: "ecstatic"})
	require.ErrorIs(t, err, ErrInvalidMood)

	got, err := m.JournalEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManager_StorageFailure(t *testing.T) {
	m, st := newTestManager(t, Options{})
	ctx := context.Background()
	require.NoError(t, st.Close())

	_, err := m.Register(ctx, alice(), []byte("pw"))
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = m.Login(ctx, "alice@example.com", nil)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = m.AppendFeedLog(ctx, models.FeedLog{Type: models.FeedTypeBottle})
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = m.JournalEntries(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	assert.ErrorIs(t, m.Logout(ctx), storage.ErrStorageUnavailable)
	assert.False(t, errors.Is(m.Logout(ctx), ErrUserNotFound))
}

func TestManager_ConcurrentAppendsKeepEveryRecord(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), logging.Discard(), Options{})
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.AppendFeedLog(ctx, models.FeedLog{Type: models.FeedTypeBottle, AmountMl: models.Int(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := m.FeedLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)
}
