package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type MissionRepo struct {
	db DBTX
}

func NewMissionRepo(db DBTX) *MissionRepo {
	return &MissionRepo{db: db}
}

// WithTx returns a repo bound to tx.
func (r *MissionRepo) WithTx(tx *sql.Tx) *MissionRepo {
	return &MissionRepo{db: tx}
}

const missionColumns = `id, quest_id, position, title, description, room,
	status, difficulty, is_daily, due_date, created_at, completed_at, xp_awarded,
	target_count, count_progress, elapsed_seconds,
	recurrence_pattern, recurrence_interval, recurrence_weekdays, recurrence_day_of_month,
	recurrence_end_date, recurrence_max_occurrences,
	occurrence_number, parent_mission_id, next_occurrence_id`

// Insert stores m. m.ID must already be assigned.
func (r *MissionRepo) Insert(ctx context.Context, m Mission) error {
	var weekdaysJSON *string
	if len(m.Recurrence.Weekdays) > 0 {
		data, err := json.Marshal(m.Recurrence.Weekdays)
		if err != nil {
			return fmt.Errorf("marshal weekdays: %w", err)
		}
		s := string(data)
		weekdaysJSON = &s
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	if m.OccurrenceNumber < 1 {
		m.OccurrenceNumber = 1
	}
	if m.Recurrence.Interval < 1 {
		m.Recurrence.Interval = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO missions (`+missionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.QuestID, m.Position, m.Title, m.Description, m.Room,
		m.Status, m.Difficulty, boolToInt(m.IsDaily), m.DueDate, formatTime(m.CreatedAt), formatTimePtr(m.CompletedAt), m.XPAwarded,
		m.TargetCount, m.CountProgress, m.ElapsedSeconds,
		m.Recurrence.Pattern, m.Recurrence.Interval, weekdaysJSON, m.Recurrence.DayOfMonth,
		m.Recurrence.EndDate, m.Recurrence.MaxOccurrences,
		m.OccurrenceNumber, m.ParentMissionID, m.NextOccurrenceID,
	)
	if err != nil {
		return fmt.Errorf("mission insert: %w", err)
	}
	return nil
}

// Get returns nil, nil when no mission has the id.
func (r *MissionRepo) Get(ctx context.Context, id string) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = ?`, id)
	return scanMission(row)
}

func (r *MissionRepo) ListAll(ctx context.Context) ([]Mission, error) {
	return r.list(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY created_at ASC, id ASC`)
}

func (r *MissionRepo) ListByQuest(ctx context.Context, questID string) ([]Mission, error) {
	return r.list(ctx, `SELECT `+missionColumns+` FROM missions WHERE quest_id = ? ORDER BY position ASC, created_at ASC`, questID)
}

func (r *MissionRepo) list(ctx context.Context, query string, args ...any) ([]Mission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission list rows: %w", err)
	}
	return out, nil
}

// NextPosition returns the position after the last mission in the quest.
func (r *MissionRepo) NextPosition(ctx context.Context, questID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM missions WHERE quest_id = ?`, questID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("mission next position: %w", err)
	}
	return n, nil
}

// MarkDone flips a pending mission to done. It fails with ErrConcurrentUpdate
// if the mission is no longer pending.
func (r *MissionRepo) MarkDone(ctx context.Context, id string, completedAt time.Time, xpAwarded int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions
		SET status = 'done', completed_at = ?, xp_awarded = ?
		WHERE id = ? AND status = 'pending'
	`, formatTime(completedAt), xpAwarded, id)
	if err != nil {
		return fmt.Errorf("mission mark done: %w", err)
	}
	return expectOneRow(res, "mission mark done")
}

// MarkPending reverts a done mission. It fails with ErrConcurrentUpdate if the
// mission is no longer done.
func (r *MissionRepo) MarkPending(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions
		SET status = 'pending', completed_at = NULL, xp_awarded = 0
		WHERE id = ? AND status = 'done'
	`, id)
	if err != nil {
		return fmt.Errorf("mission mark pending: %w", err)
	}
	return expectOneRow(res, "mission mark pending")
}

// LinkNextOccurrence records nextID as the successor of id. Only the first
// link wins, so a recurrence chain never forks.
func (r *MissionRepo) LinkNextOccurrence(ctx context.Context, id string, nextID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET next_occurrence_id = ?
		WHERE id = ? AND next_occurrence_id IS NULL
	`, nextID, id)
	if err != nil {
		return fmt.Errorf("mission link next: %w", err)
	}
	return expectOneRow(res, "mission link next")
}

// AddCount moves a pending counted mission's progress by delta, clamped to
// 0..target_count, and returns the new count. It fails with
// ErrConcurrentUpdate if the mission is done or has no target.
func (r *MissionRepo) AddCount(ctx context.Context, id string, delta int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		UPDATE missions
		SET count_progress = MIN(MAX(count_progress + ?, 0), target_count)
		WHERE id = ? AND status = 'pending' AND target_count IS NOT NULL
		RETURNING count_progress
	`, delta, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("mission add count: %w", ErrConcurrentUpdate)
	}
	if err != nil {
		return 0, fmt.Errorf("mission add count: %w", err)
	}
	return count, nil
}

// AddElapsed adds seconds to a pending mission's timer and returns the new
// total. It fails with ErrConcurrentUpdate if the mission is done.
func (r *MissionRepo) AddElapsed(ctx context.Context, id string, seconds int) (int, error) {
	var elapsed int
	err := r.db.QueryRowContext(ctx, `
		UPDATE missions
		SET elapsed_seconds = elapsed_seconds + ?
		WHERE id = ? AND status = 'pending'
		RETURNING elapsed_seconds
	`, seconds, id).Scan(&elapsed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("mission add elapsed: %w", ErrConcurrentUpdate)
	}
	if err != nil {
		return 0, fmt.Errorf("mission add elapsed: %w", err)
	}
	return elapsed, nil
}

func (r *MissionRepo) SetQuest(ctx context.Context, id string, questID *string, position int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE missions SET quest_id = ?, position = ? WHERE id = ?`, questID, position, id)
	if err != nil {
		return fmt.Errorf("mission set quest: %w", err)
	}
	return nil
}

// UnlinkPredecessor clears the next_occurrence_id pointing at id, so the
// previous occurrence becomes the head of its series again.
func (r *MissionRepo) UnlinkPredecessor(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE missions SET next_occurrence_id = NULL WHERE next_occurrence_id = ?`, id); err != nil {
		return fmt.Errorf("mission unlink predecessor: %w", err)
	}
	return nil
}

func (r *MissionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mission delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mission delete rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMission(row scanner) (*Mission, error) {
	var (
		m              Mission
		questID        sql.NullString
		description    sql.NullString
		isDaily        int
		dueDate        sql.NullString
		createdAt      string
		completedAt    sql.NullString
		targetCount    sql.NullInt64
		weekdaysRaw    sql.NullString
		dayOfMonth     sql.NullInt64
		endDate        sql.NullString
		maxOccurrences sql.NullInt64
		parentID       sql.NullString
		nextID         sql.NullString
	)

	if err := row.Scan(
		&m.ID, &questID, &m.Position, &m.Title, &description, &m.Room,
		&m.Status, &m.Difficulty, &isDaily, &dueDate, &createdAt, &completedAt, &m.XPAwarded,
		&targetCount, &m.CountProgress, &m.ElapsedSeconds,
		&m.Recurrence.Pattern, &m.Recurrence.Interval, &weekdaysRaw, &dayOfMonth,
		&endDate, &maxOccurrences,
		&m.OccurrenceNumber, &parentID, &nextID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("mission scan: %w", err)
	}

	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		m.CompletedAt = &t
	}
	m.IsDaily = isDaily != 0
	m.QuestID = nullStringPtr(questID)
	m.Description = nullStringPtr(description)
	m.DueDate = nullStringPtr(dueDate)
	m.TargetCount = nullIntPtr(targetCount)
	m.Recurrence.DayOfMonth = nullIntPtr(dayOfMonth)
	m.Recurrence.EndDate = nullStringPtr(endDate)
	m.Recurrence.MaxOccurrences = nullIntPtr(maxOccurrences)
	m.ParentMissionID = nullStringPtr(parentID)
	m.NextOccurrenceID = nullStringPtr(nextID)

	if weekdaysRaw.Valid && weekdaysRaw.String != "" {
		if err := json.Unmarshal([]byte(weekdaysRaw.String), &m.Recurrence.Weekdays); err != nil {
			return nil, fmt.Errorf("unmarshal weekdays: %w", err)
		}
	}
	return &m, nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
