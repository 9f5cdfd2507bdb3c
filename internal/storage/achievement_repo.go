package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate reports an insert that violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

type AchievementRepo struct {
	db *sql.DB
}

func NewAchievementRepo(db *sql.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Exists reports whether the user already earned the milestone code.
func (r *AchievementRepo) Exists(ctx context.Context, email, code string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM user_achievements WHERE email = ? AND code = ? LIMIT 1
	`, email, code)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("achievement exists: %w", err)
	}
	return true, nil
}

// Insert records an earned achievement. A second insert for the same
// (email, code) returns ErrDuplicate.
func (r *AchievementRepo) Insert(ctx context.Context, a AchievementRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_achievements (email, code, achievement_type, name, description, xp_reward, earned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.Email, a.Code, a.Type, a.Name, a.Description, a.XPReward, a.EarnedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("achievement %q for %s: %w", a.Code, a.Email, ErrDuplicate)
		}
		return 0, fmt.Errorf("achievement insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("achievement last insert id: %w", err)
	}
	return id, nil
}

func (r *AchievementRepo) ListByUser(ctx context.Context, email string) ([]AchievementRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, code, achievement_type, name, description, xp_reward, earned_at
		FROM user_achievements
		WHERE email = ?
		ORDER BY earned_at DESC, id DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []AchievementRecord
	for rows.Next() {
		var a AchievementRecord
		if err := rows.Scan(&a.ID, &a.Email, &a.Code, &a.Type, &a.Name, &a.Description, &a.XPReward, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}
