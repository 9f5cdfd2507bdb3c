package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, email string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, username, full_name, total_xp, events_attended, spaces_explored, events_created, created_at
		FROM user_profiles
		WHERE email = ?
	`, email)

	var p Profile
	if err := row.Scan(&p.Email, &p.Username, &p.FullName, &p.TotalXP, &p.EventsAttended, &p.SpacesExplored, &p.EventsCreated, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context, email, username, fullName string) (*Profile, error) {
	p, err := r.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (email, username, full_name) VALUES (?, ?, ?)
	`, email, username, fullName); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, email)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET username = ?, full_name = ?, total_xp = ?, events_attended = ?, spaces_explored = ?, events_created = ?
		WHERE email = ?
	`, p.Username, p.FullName, p.TotalXP, p.EventsAttended, p.SpacesExplored, p.EventsCreated, p.Email)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
