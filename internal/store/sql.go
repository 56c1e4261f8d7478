package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// dialect captures the few differences between SQLite and Postgres.
// Queries are written with "?" placeholders and rebound per dialect.
type dialect struct {
	name     string
	numbered bool // $1, $2, ... instead of ?
}

var (
	dialectSQLite   = dialect{name: "sqlite"}
	dialectPostgres = dialect{name: "postgres", numbered: true}
)

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLRepo implements Repo on database/sql for both supported dialects.
type SQLRepo struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLRepo(db *sql.DB, d dialect) *SQLRepo {
	return &SQLRepo{db: db, dialect: d, now: time.Now}
}

// Close releases the underlying database resources.
func (r *SQLRepo) Close() error {
	return r.db.Close()
}

func (r *SQLRepo) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query), args...)
	return err
}

// UpsertProfile inserts a profile with the default language or refreshes its display name.
func (r *SQLRepo) UpsertProfile(ctx context.Context, userID int64, displayName string) error {
	now := toUnix(r.now())
	return r.exec(ctx, `
		INSERT INTO users (user_id, display_name, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			updated_at   = excluded.updated_at`,
		userID, displayName, domain.DefaultLanguage, now, now,
	)
}

// SetLanguage upserts the preferred language of a user.
func (r *SQLRepo) SetLanguage(ctx context.Context, userID int64, lang string) error {
	now := toUnix(r.now())
	return r.exec(ctx, `
		INSERT INTO users (user_id, display_name, language, created_at, updated_at)
		VALUES (?, '', ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			language   = excluded.language,
			updated_at = excluded.updated_at`,
		userID, lang, now, now,
	)
}

// GetProfile returns the profile with its custom responses, or ErrNotFound.
func (r *SQLRepo) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(`
		SELECT user_id, display_name, language, created_at, updated_at
		FROM users
		WHERE user_id = ?`),
		userID,
	)

	var (
		p                domain.UserProfile
		created, updated int64
	)
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Language, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = fromUnix(created)
	p.UpdatedAt = fromUnix(updated)

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
		SELECT phrase, reply FROM custom_responses WHERE user_id = ?`),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var phrase, reply string
		if err := rows.Scan(&phrase, &reply); err != nil {
			return nil, err
		}
		if p.CustomResponses == nil {
			p.CustomResponses = make(map[string]string)
		}
		p.CustomResponses[phrase] = reply
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetCustomResponse upserts one trigger -> reply pair.
func (r *SQLRepo) SetCustomResponse(ctx context.Context, userID int64, trigger, reply string) error {
	return r.exec(ctx, `
		INSERT INTO custom_responses (user_id, phrase, reply, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, phrase) DO UPDATE SET
			reply      = excluded.reply,
			updated_at = excluded.updated_at`,
		userID, domain.NormalizeTrigger(trigger), reply, toUnix(r.now()),
	)
}

// AddFeedback appends a feedback entry.
func (r *SQLRepo) AddFeedback(ctx context.Context, e domain.FeedbackEntry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = r.now()
	}
	return r.exec(ctx, `
		INSERT INTO feedback (user_id, body, created_at) VALUES (?, ?, ?)`,
		e.UserID, e.Body, toUnix(created),
	)
}

// ListFeedback returns up to limit entries, newest first.
func (r *SQLRepo) ListFeedback(ctx context.Context, limit int) ([]domain.FeedbackEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
		SELECT user_id, body, created_at
		FROM feedback
		ORDER BY id DESC
		LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.FeedbackEntry
	for rows.Next() {
		var (
			e       domain.FeedbackEntry
			created int64
		)
		if err := rows.Scan(&e.UserID, &e.Body, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = fromUnix(created)
		res = append(res, e)
	}
	return res, rows.Err()
}

// AddReminder assigns a new ID to rem and inserts it.
func (r *SQLRepo) AddReminder(ctx context.Context, rem *domain.Reminder) error {
	if rem == nil {
		return errors.New("nil reminder")
	}
	rem.ID = newReminderID()
	if rem.CreatedAt.IsZero() {
		rem.CreatedAt = r.now().UTC()
	}
	return r.exec(ctx, `
		INSERT INTO reminders (id, user_id, due_at, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rem.ID, rem.UserID, toUnix(rem.DueAt), rem.Payload, toUnix(rem.CreatedAt),
	)
}

// ListDue returns up to limit reminders whose due_at is <= now.
// Results are ordered by due_at ascending.
func (r *SQLRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
		SELECT id, user_id, due_at, payload, created_at
		FROM reminders
		WHERE due_at <= ?
		ORDER BY due_at ASC
		LIMIT ?`),
		toUnix(now), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Reminder
	for rows.Next() {
		var (
			rem          domain.Reminder
			due, created int64
		)
		if err := rows.Scan(&rem.ID, &rem.UserID, &due, &rem.Payload, &created); err != nil {
			return nil, err
		}
		rem.DueAt = fromUnix(due)
		rem.CreatedAt = fromUnix(created)
		res = append(res, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteReminder removes a reminder by ID. Deleting a missing ID is not an error.
func (r *SQLRepo) DeleteReminder(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM reminders WHERE id = ?`, id)
}
