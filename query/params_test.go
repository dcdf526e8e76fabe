package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabwork/gridbase/record"
)

func TestFromValuesDefaults(t *testing.T) {
	t.Parallel()

	c := FromValues(url.Values{})
	require.Equal(t, DefaultPage, c.Page)
	require.Equal(t, DefaultPageSize, c.PageSize)
	require.Equal(t, StatusActive, c.Status)
	require.True(t, c.Role.IsAll())
	require.Empty(t, c.SearchText)
}

func TestFromValuesInvalid(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("page", "banana")
	values.Set("itemsPerPage", "-3")
	values.Set("status", "sometimes")
	values.Set("role", "overlord")

	c := FromValues(values)
	require.Equal(t, DefaultPage, c.Page)
	require.Equal(t, DefaultPageSize, c.PageSize)
	require.Equal(t, StatusActive, c.Status)
	require.True(t, c.Role.IsAll())
}

func TestFromValuesParses(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("page", "3")
	values.Set("itemsPerPage", "10")
	values.Set("search", "harbor")
	values.Set("status", "all")
	values.Set("role", "Moderator")

	c := FromValues(values)
	require.Equal(t, 3, c.Page)
	require.Equal(t, 10, c.PageSize)
	require.Equal(t, "harbor", c.SearchText)
	require.Equal(t, StatusAll, c.Status)
	role, ok := c.Role.Role()
	require.True(t, ok)
	require.Equal(t, record.RoleModerator, role)
}

func TestValuesRoundTrip(t *testing.T) {
	t.Parallel()

	c := Criteria{
		Status:     StatusInactive,
		Role:       OnlyRole(record.RoleEditor),
		SearchText: "quarry",
		Page:       2,
		PageSize:   25,
	}

	require.Equal(t, c, FromValues(c.Values()))

	// the wildcard role is omitted from the values and still round-trips
	c.Role = AnyRole()
	values := c.Values()
	require.False(t, values.Has("role"))
	require.Equal(t, c, FromValues(values))
}
