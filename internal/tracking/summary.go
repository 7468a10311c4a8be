package tracking

import (
	"database/sql"
	"fmt"
	"time"
)

// CommandStats aggregates usage for one command name.
type CommandStats struct {
	Command    string
	Count      int
	Saved      int
	AvgSavings float64
}

// DayStats aggregates saved tokens for one calendar day.
type DayStats struct {
	Date  string // YYYY-MM-DD
	Saved int
}

// Summary is the lifetime usage rollup behind `scour gain`.
type Summary struct {
	TotalCommands int
	TotalInput    int
	TotalOutput   int
	TotalSaved    int
	AvgSavingsPct float64
	ByCommand     []CommandStats
	ByDay         []DayStats
}

// RecentRecord is one row of the invocation history.
type RecentRecord struct {
	Command     string
	SavedTokens int
	SavingsPct  float64
	Timestamp   time.Time
}

// GetSummary computes the lifetime rollup. ByDay covers the last 30 days.
func (s *Store) GetSummary() (*Summary, error) {
	summary := &Summary{}

	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0),
		       COALESCE(SUM(saved_tokens), 0)
		FROM invocations
	`)
	if err := row.Scan(&summary.TotalCommands, &summary.TotalInput,
		&summary.TotalOutput, &summary.TotalSaved); err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}

	if summary.TotalInput > 0 {
		summary.AvgSavingsPct = float64(summary.TotalSaved) / float64(summary.TotalInput) * 100.0
	}

	byCommand, err := s.byCommand()
	if err != nil {
		return nil, err
	}
	summary.ByCommand = byCommand

	byDay, err := s.byDay(30)
	if err != nil {
		return nil, err
	}
	summary.ByDay = byDay

	return summary, nil
}

func (s *Store) byCommand() ([]CommandStats, error) {
	rows, err := s.db.Query(`
		SELECT command,
		       COUNT(*),
		       COALESCE(SUM(saved_tokens), 0),
		       COALESCE(SUM(input_tokens), 0)
		FROM invocations
		GROUP BY command
		ORDER BY SUM(saved_tokens) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying by-command stats: %w", err)
	}
	defer rows.Close()

	var stats []CommandStats
	for rows.Next() {
		var cs CommandStats
		var input int
		if err := rows.Scan(&cs.Command, &cs.Count, &cs.Saved, &input); err != nil {
			return nil, fmt.Errorf("scanning command stats: %w", err)
		}
		if input > 0 {
			cs.AvgSavings = float64(cs.Saved) / float64(input) * 100.0
		}
		stats = append(stats, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command stats: %w", err)
	}
	return stats, nil
}

func (s *Store) byDay(days int) ([]DayStats, error) {
	rows, err := s.db.Query(`
		SELECT DATE(created_at), COALESCE(SUM(saved_tokens), 0)
		FROM invocations
		WHERE created_at >= DATE('now', ?)
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)
	`, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("querying daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DayStats
	for rows.Next() {
		var ds DayStats
		if err := rows.Scan(&ds.Date, &ds.Saved); err != nil {
			return nil, fmt.Errorf("scanning daily stats: %w", err)
		}
		stats = append(stats, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily stats: %w", err)
	}
	return stats, nil
}

// GetRecent returns the newest records, most recent first.
func (s *Store) GetRecent(limit int) ([]RecentRecord, error) {
	rows, err := s.db.Query(`
		SELECT command, saved_tokens, input_tokens, created_at
		FROM invocations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent records: %w", err)
	}
	defer rows.Close()

	var records []RecentRecord
	for rows.Next() {
		var rec RecentRecord
		var input int
		var created sql.NullTime
		if err := rows.Scan(&rec.Command, &rec.SavedTokens, &input, &created); err != nil {
			return nil, fmt.Errorf("scanning recent record: %w", err)
		}
		if input > 0 {
			rec.SavingsPct = float64(rec.SavedTokens) / float64(input) * 100.0
		}
		if created.Valid {
			rec.Timestamp = created.Time
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent records: %w", err)
	}
	return records, nil
}
