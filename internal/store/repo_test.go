package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLRepo {
	t.Helper()
	r, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func repos(t *testing.T) map[string]Repo {
	return map[string]Repo{
		"memory": NewMemory(),
		"sqlite": openTestSQLite(t),
	}
}

func TestRepo_Profiles(t *testing.T) {
	ctx := context.Background()
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := r.GetProfile(ctx, 42)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, r.UpsertProfile(ctx, 42, "Asha"))
			p, err := r.GetProfile(ctx, 42)
			require.NoError(t, err)
			assert.Equal(t, "Asha", p.DisplayName)
			assert.Equal(t, domain.DefaultLanguage, p.Language)

			require.NoError(t, r.SetLanguage(ctx, 42, "ta"))
			require.NoError(t, r.UpsertProfile(ctx, 42, "Asha K"))
			p, err = r.GetProfile(ctx, 42)
			require.NoError(t, err)
			assert.Equal(t, "Asha K", p.DisplayName)
			assert.Equal(t, "ta", p.Language, "display name refresh must keep the language")

			require.NoError(t, r.SetCustomResponse(ctx, 42, "Assistant  Ping", "pong"))
			require.NoError(t, r.SetCustomResponse(ctx, 42, "assistant ping", "pong!"))
			p, err = r.GetProfile(ctx, 42)
			require.NoError(t, err)
			reply, ok := p.CustomResponse("ASSISTANT PING")
			assert.True(t, ok)
			assert.Equal(t, "pong!", reply)
			assert.Len(t, p.CustomResponses, 1)
		})
	}
}

func TestRepo_SetLanguageCreatesProfile(t *testing.T) {
	ctx := context.Background()
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, r.SetLanguage(ctx, 7, "bn"))
			p, err := r.GetProfile(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, "bn", p.Language)
		})
	}
}

func TestRepo_Feedback(t *testing.T) {
	ctx := context.Background()
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, r.AddFeedback(ctx, domain.FeedbackEntry{UserID: 1, Body: "first"}))
			require.NoError(t, r.AddFeedback(ctx, domain.FeedbackEntry{UserID: 2, Body: "second"}))

			got, err := r.ListFeedback(ctx, 10)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "second", got[0].Body)
			assert.Equal(t, int64(1), got[1].UserID)
			assert.False(t, got[1].CreatedAt.IsZero())
		})
	}
}

func TestRepo_Reminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			past := &domain.Reminder{UserID: 1, DueAt: now.Add(-time.Minute), Payload: "stretch"}
			exact := &domain.Reminder{UserID: 2, DueAt: now, Payload: "drink water"}
			future := &domain.Reminder{UserID: 3, DueAt: now.Add(time.Minute), Payload: "later"}
			for _, rem := range []*domain.Reminder{future, exact, past} {
				require.NoError(t, r.AddReminder(ctx, rem))
				require.NotEmpty(t, rem.ID)
			}

			due, err := r.ListDue(ctx, now, 10)
			require.NoError(t, err)
			require.Len(t, due, 2)
			assert.Equal(t, past.ID, due[0].ID)
			assert.Equal(t, exact.ID, due[1].ID)
			assert.Equal(t, "drink water", due[1].Payload)
			assert.True(t, due[1].DueAt.Equal(now))

			limited, err := r.ListDue(ctx, now, 1)
			require.NoError(t, err)
			assert.Len(t, limited, 1)

			require.NoError(t, r.DeleteReminder(ctx, past.ID))
			require.NoError(t, r.DeleteReminder(ctx, past.ID))
			due, err = r.ListDue(ctx, now, 10)
			require.NoError(t, err)
			require.Len(t, due, 1)
			assert.Equal(t, exact.ID, due[0].ID)

			due, err = r.ListDue(ctx, now.Add(time.Hour), 10)
			require.NoError(t, err)
			assert.Len(t, due, 2)
		})
	}
}

func TestOpenSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	r, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	rem := &domain.Reminder{UserID: 9, DueAt: time.Now().Add(-time.Second), Payload: "persisted"}
	require.NoError(t, r.AddReminder(ctx, rem))
	require.NoError(t, r.Close())

	r, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer r.Close()
	due, err := r.ListDue(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, rem.ID, due[0].ID)
}

func TestDialectRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y <= ? LIMIT ?"
	assert.Equal(t, q, dialectSQLite.rebind(q))
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y <= $2 LIMIT $3", dialectPostgres.rebind(q))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "")
	require.Error(t, err)
}
