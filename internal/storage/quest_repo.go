package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) WithTx(tx *sql.Tx) *QuestRepo {
	return &QuestRepo{db: tx}
}

func (r *QuestRepo) Insert(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (id, title, description, created_at) VALUES (?, ?, ?, ?)
	`, q.ID, q.Title, q.Description, formatTime(q.CreatedAt))
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, description, created_at FROM quests WHERE id = ?`, id)
	return scanQuest(row)
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, created_at FROM quests ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func scanQuest(row scanner) (*Quest, error) {
	var (
		q         Quest
		desc      sql.NullString
		createdAt string
	)
	if err := row.Scan(&q.ID, &q.Title, &desc, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	q.CreatedAt = t
	q.Description = nullStringPtr(desc)
	return &q, nil
}
