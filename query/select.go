package query

import (
	"github.com/tabwork/gridbase/record"
)

type condition interface {
	matches(r *record.Record) bool
}

// Result is one page of a filtered collection. Total counts all records
// passing the filters, independent of pagination.
type Result struct {
	Page  []record.Record
	Total int
}

// Select applies the criteria to the given collection and returns the
// requested page plus the total filtered count. Filter order: status, then
// free-text search, then role. A page past the end of the filtered set
// yields an empty page; Total still reflects the full count. Select is pure,
// identical inputs yield identical results.
func Select(records []record.Record, c Criteria) Result {
	conditions := []condition{
		statusCondition{filter: c.Status},
		newSearchCondition(c.SearchText),
		roleCondition{filter: c.Role},
	}

	filtered := make([]record.Record, 0, len(records))
recordLoop:
	for i := range records {
		for _, cond := range conditions {
			if !cond.matches(&records[i]) {
				continue recordLoop
			}
		}
		filtered = append(filtered, records[i])
	}

	page := c.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := c.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	offset := (page - 1) * pageSize
	if offset >= len(filtered) {
		return Result{Page: []record.Record{}, Total: len(filtered)}
	}
	end := offset + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{Page: filtered[offset:end], Total: len(filtered)}
}

// Pages returns how many pages the given total fills at the criteria's page
// size, at least 1.
func (c Criteria) Pages(total int) int {
	pageSize := c.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp returns a copy of the criteria with the page clamped to the last
// page the given total fills. Used after commits that shrink the filtered
// set.
func (c Criteria) Clamp(total int) Criteria {
	if c.Page < 1 {
		c.Page = DefaultPage
	}
	if pages := c.Pages(total); c.Page > pages {
		c.Page = pages
	}
	return c
}
