package query

import (
	"net/url"
	"strconv"
)

// Query-string keys of the navigation boundary.
const (
	keyPage     = "page"
	keyPageSize = "itemsPerPage"
	keySearch   = "search"
	keyStatus   = "status"
	keyRole     = "role"
)

// FromValues reads criteria from navigation query parameters. Absent or
// non-numeric page/itemsPerPage default to 1/5, an absent or invalid status
// defaults to active, a role of "all" or absent maps to the wildcard.
func FromValues(values url.Values) Criteria {
	c := Default()

	if page, err := strconv.Atoi(values.Get(keyPage)); err == nil && page > 0 {
		c.Page = page
	}
	if pageSize, err := strconv.Atoi(values.Get(keyPageSize)); err == nil && pageSize > 0 {
		c.PageSize = pageSize
	}
	c.SearchText = values.Get(keySearch)
	if values.Has(keyStatus) {
		c.Status = ParseStatus(values.Get(keyStatus))
	}
	c.Role = ParseRoleFilter(values.Get(keyRole))

	return c
}

// Values renders the criteria as navigation query parameters. FromValues
// round-trips them.
func (c Criteria) Values() url.Values {
	values := make(url.Values, 5)

	page := c.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := c.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	values.Set(keyPage, strconv.Itoa(page))
	values.Set(keyPageSize, strconv.Itoa(pageSize))
	if c.SearchText != "" {
		values.Set(keySearch, c.SearchText)
	}
	values.Set(keyStatus, c.Status.String())
	if !c.Role.IsAll() {
		values.Set(keyRole, c.Role.String())
	}

	return values
}
