// Package reports turns raw event counts into the aggregate report shapes
// the frontend renders.
package reports

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/pjunjae/safetycam/internal/database"
)

const (
	TypeMonthly = "monthly"
	TypeYearly  = "yearly"
)

// ErrInvalidType is returned for report types other than monthly/yearly.
var ErrInvalidType = errors.New("invalid report type")

// Report is one aggregation bucket as served to clients.
type Report struct {
	ID          string `json:"id"`
	MonthOrYear string `json:"monthOrYear"`
	Total       int    `json:"total"`
}

// Stat is one label/value pair in a report detail breakdown.
type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Detail is the per-report breakdown payload.
type Detail struct {
	ID    string `json:"id"`
	Stats []Stat `json:"stats"`
}

type Service struct {
	repo *database.ReportRepository
}

func NewService(repo *database.ReportRepository) *Service {
	return &Service{repo: repo}
}

// Generate buckets all events by month or year and returns the buckets
// newest first. The report type is checked before any query runs.
func (s *Service) Generate(ctx context.Context, reportType string) ([]Report, error) {
	var counts []database.PeriodCount
	var err error

	switch reportType {
	case TypeMonthly:
		counts, err = s.repo.CountEventsByMonth(ctx)
	case TypeYearly:
		counts, err = s.repo.CountEventsByYear(ctx)
	default:
		return nil, ErrInvalidType
	}
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	reports := make([]Report, 0, len(counts))
	for _, pc := range counts {
		reports = append(reports, Report{
			ID:          BucketID(pc.Period, pc.Total),
			MonthOrYear: pc.Period,
			Total:       pc.Total,
		})
	}
	return reports, nil
}

// BucketID derives a display identifier for a report bucket from its period
// label and count. It is deterministic but not a stored key: reports are
// computed on the fly and have no row of their own.
func BucketID(period string, total int) string {
	sum := md5.Sum([]byte(period + strconv.Itoa(total)))
	return hex.EncodeToString(sum[:])
}

// Detail returns the breakdown for a report id. There is no persisted
// report entity yet, so the id is echoed back and the stats are a fixed
// placeholder set.
func (s *Service) Detail(id string) Detail {
	return Detail{
		ID: id,
		Stats: []Stat{
			{Label: "Person detected", Value: 30},
			{Label: "Pet detected", Value: 15},
			{Label: "Vehicle detected", Value: 10},
			{Label: "Other", Value: 5},
		},
	}
}
