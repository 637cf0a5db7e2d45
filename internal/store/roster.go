package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Activity is the registry record served over the wire. Participants are in
// signup order and never nil, so an empty roster serializes as [].
type Activity struct {
	Description  string   `json:"description"`
	Schedule     string   `json:"schedule"`
	Participants []string `json:"participants"`
}

// ListActivities returns every activity keyed by name.
func (s *Store) ListActivities(ctx context.Context) (map[string]Activity, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, description, schedule FROM activities")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]Activity)
	for rows.Next() {
		var name string
		var a Activity
		if err := rows.Scan(&name, &a.Description, &a.Schedule); err != nil {
			return nil, err
		}
		a.Participants = []string{}
		result[name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx, "SELECT activity, email FROM participants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = prows.Close() }()

	for prows.Next() {
		var activity, email string
		if err := prows.Scan(&activity, &email); err != nil {
			return nil, err
		}
		a, ok := result[activity]
		if !ok {
			continue
		}
		a.Participants = append(a.Participants, email)
		result[activity] = a
	}
	return result, prows.Err()
}

// Signup appends email to the activity's roster. Preconditions are checked
// in order: the activity must exist, then the email must not already be on
// the roster.
func (s *Store) Signup(ctx context.Context, activity, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := activityExists(ctx, tx, activity); err != nil {
		return err
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM participants WHERE activity = ? AND email = ?",
		activity, email,
	).Scan(&exists)
	switch {
	case err == nil:
		return ErrAlreadySignedUp
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO participants (activity, email) VALUES (?, ?)",
		activity, email,
	); err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return tx.Commit()
}

// Unregister removes email from the activity's roster.
func (s *Store) Unregister(ctx context.Context, activity, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := activityExists(ctx, tx, activity); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM participants WHERE activity = ? AND email = ?",
		activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotSignedUp
	}
	return tx.Commit()
}

// ParticipantCounts returns the roster size per activity.
func (s *Store) ParticipantCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT a.name, COUNT(p.id)
		FROM activities a
		LEFT JOIN participants p ON p.activity = a.name
		GROUP BY a.name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

func activityExists(ctx context.Context, tx *sql.Tx, activity string) error {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM activities WHERE name = ?", activity,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrActivityNotFound
	}
	return err
}
