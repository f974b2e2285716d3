package dto

import (
	"time"

	"storekeeper/internal/domain/reports"
)

// Report responses reuse the domain report types directly: they are
// read-only aggregates with stable JSON tags and no entity internals to
// hide. Only the query parameters need DTOs here.

// --- Summary query ---

type SummaryQuery struct {
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
}

func (q *SummaryQuery) ToFilter() reports.SummaryFilter {
	return reports.SummaryFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
	}
}

// --- Growth query ---

type GrowthQuery struct {
	// Window is a Go duration string ("24h", "7h30m"); defaults to 24h
	Window string     `form:"window"`
	AsOf   *time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (q *GrowthQuery) ToFilter() (reports.GrowthFilter, error) {
	f := reports.GrowthFilter{}

	if q.Window != "" {
		window, err := time.ParseDuration(q.Window)
		if err != nil {
			return f, err
		}
		f.Window = window
	}
	if q.AsOf != nil {
		f.AsOf = *q.AsOf
	}

	return f, nil
}
