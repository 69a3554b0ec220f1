package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

// UpsertUser registers chatID, refreshing the stored display name.
func (r *Repository) UpsertUser(ctx context.Context, chatID int64, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (chat_id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET name = excluded.name`,
		chatID, name, r.timestamp())
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetUser returns the stored profile of chatID, or ErrNotFound.
func (r *Repository) GetUser(ctx context.Context, chatID int64) (*domain.UserProfile, error) {
	var (
		u                         domain.UserProfile
		name, lang, phone, source sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT chat_id, name, lang, phone, source FROM users WHERE chat_id = ?", chatID).
		Scan(&u.ChatID, &name, &lang, &phone, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Name = name.String
	u.Language, _ = domain.ParseLanguage(lang.String)
	u.Phone = phone.String
	u.Source = source.String
	return &u, nil
}

func (r *Repository) SetUserLang(ctx context.Context, chatID int64, lang domain.Language) error {
	return r.setUserField(ctx, chatID, "lang", string(lang))
}

func (r *Repository) SetUserPhone(ctx context.Context, chatID int64, phone string) error {
	return r.setUserField(ctx, chatID, "phone", phone)
}

// SetUserSource keeps the first deep-link source a user arrived with.
func (r *Repository) SetUserSource(ctx context.Context, chatID int64, source string) error {
	if err := r.ensureUser(ctx, chatID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET source = ? WHERE chat_id = ? AND (source IS NULL OR source = '')",
		source, chatID)
	if err != nil {
		return fmt.Errorf("update user source: %w", err)
	}
	return nil
}

func (r *Repository) setUserField(ctx context.Context, chatID int64, column, value string) error {
	if err := r.ensureUser(ctx, chatID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET "+column+" = ? WHERE chat_id = ?", value, chatID); err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	return nil
}

func (r *Repository) ensureUser(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (chat_id, created_at) VALUES (?, ?) ON CONFLICT(chat_id) DO NOTHING",
		chatID, r.timestamp())
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// ListUserIDs returns up to limit chat ids, newest users first. A limit of
// zero or less returns every user.
func (r *Repository) ListUserIDs(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT chat_id FROM users ORDER BY created_at DESC, chat_id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Stats summarises users, messages and orders. Users without a stored
// language are counted under defaultLang.
func (r *Repository) Stats(ctx context.Context, defaultLang domain.Language) (domain.Stats, error) {
	st := domain.Stats{Languages: make(map[string]int64)}
	cutoff := formatTime(r.now().Add(-24 * time.Hour))

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.UsersTotal, "SELECT COUNT(*) FROM users", nil},
		{&st.MessagesTotal, "SELECT COUNT(*) FROM messages", nil},
		{&st.Messages24h, "SELECT COUNT(*) FROM messages WHERE ts >= ?", []any{cutoff}},
		{&st.OrdersTotal, "SELECT COUNT(*) FROM orders", nil},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return domain.Stats{}, fmt.Errorf("query stats: %w", err)
		}
	}

	rows, err := r.db.QueryContext(ctx, "SELECT COALESCE(lang, ''), COUNT(*) FROM users GROUP BY lang")
	if err != nil {
		return domain.Stats{}, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			lang string
			n    int64
		)
		if err := rows.Scan(&lang, &n); err != nil {
			return domain.Stats{}, fmt.Errorf("scan languages: %w", err)
		}
		if lang == "" {
			lang = string(defaultLang)
		}
		st.Languages[lang] += n
	}
	return st, rows.Err()
}
