package database

import (
	"context"
	"fmt"
)

// PeriodCount is one aggregation bucket: a period label ("2024-03" or
// "2024") and the number of events falling into it.
type PeriodCount struct {
	Period string
	Total  int
}

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountEventsByMonth groups all events by year-month of event_time, newest
// period first.
func (r *ReportRepository) CountEventsByMonth(ctx context.Context) ([]PeriodCount, error) {
	return r.countByPeriod(ctx, "%Y-%m", "YYYY-MM")
}

// CountEventsByYear groups all events by year of event_time, newest period
// first.
func (r *ReportRepository) CountEventsByYear(ctx context.Context) ([]PeriodCount, error) {
	return r.countByPeriod(ctx, "%Y", "YYYY")
}

func (r *ReportRepository) countByPeriod(ctx context.Context, sqliteFormat, pgFormat string) ([]PeriodCount, error) {
	// The label formats sort lexicographically in chronological order, so
	// ORDER BY the label gives newest-first directly.
	var expr string
	if r.db.dbType == "postgres" {
		expr = fmt.Sprintf("to_char(event_time, '%s')", pgFormat)
	} else {
		expr = fmt.Sprintf("strftime('%s', event_time)", sqliteFormat)
	}

	query := fmt.Sprintf(`
		SELECT %s AS period, COUNT(*) AS total
		FROM events
		GROUP BY period
		ORDER BY period DESC`, expr)

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()

	var counts []PeriodCount
	for rows.Next() {
		var pc PeriodCount
		if err := rows.Scan(&pc.Period, &pc.Total); err != nil {
			return nil, fmt.Errorf("failed to scan period count: %w", err)
		}
		counts = append(counts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read period counts: %w", err)
	}

	return counts, nil
}
