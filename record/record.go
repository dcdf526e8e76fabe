// Package record defines the managed record entity and its dynamic
// attributes.
package record

import (
	"github.com/mitchellh/copystructure"
)

// Record is a single managed user entity. IDs are assigned by the store and
// are immutable once set.
type Record struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	RegisteredDate string  `json:"registeredDate"`
	Active         bool    `json:"isActive"`
	Role           Role    `json:"role"`
	Children       []Child `json:"children,omitempty"`
}

// Child is one dynamic column/value attribute attached to a record. Column
// names need not be unique within a record.
type Child struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Copy returns a deep copy of the record, including its children.
func (r Record) Copy() Record {
	dup, err := copystructure.Copy(r)
	if err != nil {
		// Record only holds plain values and slices, copystructure cannot
		// fail on it.
		panic(err)
	}
	return dup.(Record)
}

// Equal reports whether both records hold the same values, comparing
// children element-wise.
func (r Record) Equal(other Record) bool {
	if r.ID != other.ID ||
		r.Name != other.Name ||
		r.Age != other.Age ||
		r.Email != other.Email ||
		r.Phone != other.Phone ||
		r.Address != other.Address ||
		r.RegisteredDate != other.RegisteredDate ||
		r.Active != other.Active ||
		r.Role != other.Role {
		return false
	}
	return ChildrenEqual(r.Children, other.Children)
}

// ChildrenEqual compares two children sequences element-wise. Order matters.
func ChildrenEqual(a, b []Child) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CopyChildren returns a copy of the given children sequence that shares no
// backing storage with the original.
func CopyChildren(children []Child) []Child {
	if children == nil {
		return nil
	}
	dup := make([]Child, len(children))
	copy(dup, children)
	return dup
}
