package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed-width UTC timestamps keep lexical order equal to time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(db *sql.DB) (*SQLiteJournal, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// OpenSQLite opens the journal at path and applies migrations.
func OpenSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps PRAGMA foreign_keys in effect for every statement.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	journal, err := NewSQLiteJournal(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// SaveDay writes the day and its tasks in one transaction, replacing any
// earlier record with the same ID.
func (j *SQLiteJournal) SaveDay(ctx context.Context, in DayRecord) (err error) {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("storage: day id is required")
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM day_tasks WHERE day_id = ?`, in.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO days (id, started_at, ended_at, completed_count, total_count, completion_percentage, schedule_adjusted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			completed_count = excluded.completed_count,
			total_count = excluded.total_count,
			completion_percentage = excluded.completion_percentage,
			schedule_adjusted = excluded.schedule_adjusted`,
		in.ID, mustTime(in.StartedAt), mustTime(in.EndedAt), in.CompletedCount, in.TotalCount, in.CompletionPercentage, boolInt(in.ScheduleAdjusted),
	); err != nil {
		return err
	}
	for _, task := range in.Tasks {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO day_tasks (id, day_id, position, name, priority, category, notes, planned_minutes, actual_minutes, completed, started_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, in.ID, task.Position, task.Name, task.Priority, task.Category, task.Notes, task.PlannedMinutes,
			nullFloat(task.ActualMinutes), boolInt(task.Completed), nullTime(task.StartedAt), nullTime(task.CompletedAt),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLiteJournal) GetDay(ctx context.Context, id string) (DayRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at, completed_count, total_count, completion_percentage, schedule_adjusted
		FROM days WHERE id = ?`, id)
	day, err := scanDay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DayRecord{}, ErrNotFound
		}
		return DayRecord{}, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, position, name, priority, category, notes, planned_minutes, actual_minutes, completed, started_at, completed_at
		FROM day_tasks WHERE day_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return DayRecord{}, err
	}
	defer rows.Close()

	day.Tasks = make([]TaskRecord, 0)
	for rows.Next() {
		task, scanErr := scanTaskRecord(rows)
		if scanErr != nil {
			return DayRecord{}, scanErr
		}
		day.Tasks = append(day.Tasks, task)
	}
	return day, rows.Err()
}

func (j *SQLiteJournal) DeleteDay(ctx context.Context, id string) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM day_tasks WHERE day_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM days WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err = checkRowsAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// ListDays returns day summaries, newest first.
func (j *SQLiteJournal) ListDays(ctx context.Context, filter DayListFilter) ([]DayRecord, error) {
	query := `SELECT id, started_at, ended_at, completed_count, total_count, completion_percentage, schedule_adjusted FROM days`
	args := make([]any, 0, 3)
	if filter.Since != nil {
		query += ` WHERE started_at >= ?`
		args = append(args, mustTime(*filter.Since))
	}
	query += ` ORDER BY started_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayRecord, 0)
	for rows.Next() {
		day, scanErr := scanDay(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, day)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(s scanner) (DayRecord, error) {
	var out DayRecord
	var started, ended string
	var adjusted int
	if err := s.Scan(&out.ID, &started, &ended, &out.CompletedCount, &out.TotalCount, &out.CompletionPercentage, &adjusted); err != nil {
		return DayRecord{}, err
	}
	startedAt, err := parseRequiredTime(started)
	if err != nil {
		return DayRecord{}, err
	}
	endedAt, err := parseRequiredTime(ended)
	if err != nil {
		return DayRecord{}, err
	}
	out.StartedAt = startedAt
	out.EndedAt = endedAt
	out.ScheduleAdjusted = adjusted == 1
	return out, nil
}

func scanTaskRecord(s scanner) (TaskRecord, error) {
	var out TaskRecord
	var actual sql.NullFloat64
	var completed int
	var started, done sql.NullString
	if err := s.Scan(&out.ID, &out.Position, &out.Name, &out.Priority, &out.Category, &out.Notes, &out.PlannedMinutes, &actual, &completed, &started, &done); err != nil {
		return TaskRecord{}, err
	}
	startedAt, err := parseNullableTime(started)
	if err != nil {
		return TaskRecord{}, err
	}
	completedAt, err := parseNullableTime(done)
	if err != nil {
		return TaskRecord{}, err
	}
	if actual.Valid {
		v := actual.Float64
		out.ActualMinutes = &v
	}
	out.Completed = completed == 1
	out.StartedAt = startedAt
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
