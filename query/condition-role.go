package query

import (
	"github.com/tabwork/gridbase/record"
)

type roleCondition struct {
	filter RoleFilter
}

func (c roleCondition) matches(r *record.Record) bool {
	role, specific := c.filter.Role()
	if !specific {
		return true
	}
	return r.Role == role
}
