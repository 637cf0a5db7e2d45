package store

import (
	"context"
	"encoding/json"
	"time"
)

// RosterSnapshot is one periodic record of roster sizes.
type RosterSnapshot struct {
	ID         int64          `json:"id"`
	TakenAt    string         `json:"takenAt"`
	Total      int            `json:"total"`
	ByActivity map[string]int `json:"byActivity"`
}

// RecordRosterSnapshot stores the roster counts observed at takenAt.
func (s *Store) RecordRosterSnapshot(ctx context.Context, takenAt time.Time, counts map[string]int) (int64, error) {
	total := 0
	for _, n := range counts {
		total += n
	}
	detail, err := json.Marshal(counts)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO roster_snapshots (taken_at, total, detail) VALUES (?, ?, ?)",
		takenAt.UTC().Format(time.RFC3339), total, string(detail),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRosterSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListRosterSnapshots(ctx context.Context, limit int) ([]RosterSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, taken_at, total, detail FROM roster_snapshots ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RosterSnapshot
	for rows.Next() {
		var snap RosterSnapshot
		var detail string
		if err := rows.Scan(&snap.ID, &snap.TakenAt, &snap.Total, &detail); err != nil {
			return nil, err
		}
		if detail != "" {
			if err := json.Unmarshal([]byte(detail), &snap.ByActivity); err != nil {
				return nil, err
			}
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
