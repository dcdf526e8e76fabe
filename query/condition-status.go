package query

import (
	"github.com/tabwork/gridbase/record"
)

type statusCondition struct {
	filter StatusFilter
}

func (c statusCondition) matches(r *record.Record) bool {
	switch c.filter {
	case StatusActive:
		return r.Active
	case StatusInactive:
		return !r.Active
	default:
		return true
	}
}
