package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

func (r *CommunityRepo) Insert(ctx context.Context, email, activityType, name, location string, xpEarned int, createdAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO community_activities (email, activity_type, activity_name, location, xp_earned, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, email, activityType, name, location, xpEarned, createdAt)
	if err != nil {
		return 0, fmt.Errorf("community activity insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("community activity last insert id: %w", err)
	}
	return id, nil
}

func (r *CommunityRepo) ListByUser(ctx context.Context, email string) ([]CommunityActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, activity_type, activity_name, location, xp_earned, created_at
		FROM community_activities
		WHERE email = ?
		ORDER BY created_at DESC, id DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("community activity list: %w", err)
	}
	defer rows.Close()

	var out []CommunityActivity
	for rows.Next() {
		var a CommunityActivity
		if err := rows.Scan(&a.ID, &a.Email, &a.Type, &a.Name, &a.Location, &a.XPEarned, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("community activity scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("community activity rows: %w", err)
	}
	return out, nil
}
