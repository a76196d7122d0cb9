package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const MainProfileID = "main_user"

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) WithTx(tx *sql.Tx) *ProfileRepo {
	return &ProfileRepo{db: tx}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, level, total_xp, missions_completed, updated_at
		FROM profiles WHERE user_id = ?
	`, userID)

	var (
		p         Profile
		updatedAt string
	)
	if err := row.Scan(&p.UserID, &p.Level, &p.TotalXP, &p.MissionsCompleted, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = t
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, updated_at) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, formatTime(time.Now())); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	return r.GetOrCreate(ctx, MainProfileID)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET level = ?, total_xp = ?, missions_completed = ?, updated_at = ?
		WHERE user_id = ?
	`, p.Level, p.TotalXP, p.MissionsCompleted, formatTime(p.UpdatedAt), p.UserID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
