package session

import (
	"fmt"
	"strconv"

	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/validate"
)

// RowState is the edit state of a single row. Cell and row editing are
// mutually exclusive per row.
type RowState uint8

// Row states.
const (
	Viewing RowState = iota
	CellEditing
	RowEditing
)

func (s RowState) String() string {
	switch s {
	case CellEditing:
		return "cell-editing"
	case RowEditing:
		return "row-editing"
	default:
		return "viewing"
	}
}

// Editable record fields, by their JSON names.
const (
	FieldName           = "name"
	FieldAge            = "age"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldAddress        = "address"
	FieldRegisteredDate = "registeredDate"
	FieldActive         = "isActive"
	FieldRole           = "role"
	FieldChildren       = "children"
)

var editableFields = []string{
	FieldName, FieldAge, FieldEmail, FieldPhone, FieldAddress,
	FieldRegisteredDate, FieldActive, FieldRole, FieldChildren,
}

func knownField(field string) bool {
	for _, known := range editableFields {
		if field == known {
			return true
		}
	}
	return false
}

// Row pairs a displayed record with its edit buffer. The buffer is seeded
// from the original at page load and owned by the session until commit or
// cancel; the store never sees it in between.
type Row struct {
	original record.Record
	buffer   record.Record

	state        RowState
	editingField string

	touched map[string]bool
	errs    map[string]validate.FieldError
}

func newRow(original record.Record) *Row {
	return &Row{
		original: original,
		buffer:   original.Copy(),
		touched:  make(map[string]bool),
		errs:     make(map[string]validate.FieldError),
	}
}

// State returns the row's edit state.
func (row *Row) State() RowState {
	return row.state
}

// Original returns a copy of the record as it was at page load.
func (row *Row) Original() record.Record {
	return row.original.Copy()
}

// Buffer returns a copy of the row's current edit buffer.
func (row *Row) Buffer() record.Record {
	return row.buffer.Copy()
}

// ID returns the row's record id.
func (row *Row) ID() int {
	return row.original.ID
}

// Touched reports whether the field was changed since page load.
func (row *Row) Touched(field string) bool {
	return row.touched[field]
}

// FieldErrors returns a copy of the row's current field error flags.
func (row *Row) FieldErrors() map[string]validate.FieldError {
	errs := make(map[string]validate.FieldError, len(row.errs))
	for field, code := range row.errs {
		errs[field] = code
	}
	return errs
}

// Valid reports whether the row carries no field errors.
func (row *Row) Valid() bool {
	return len(row.errs) == 0
}

// setField writes a typed value into the buffer.
func (row *Row) setField(field string, value interface{}) error {
	set := func(ok bool) error {
		if !ok {
			return fmt.Errorf("%w: %s = %T", ErrBadValue, field, value)
		}
		row.touched[field] = true
		return nil
	}

	switch field {
	case FieldName:
		v, ok := value.(string)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Name = v
	case FieldAge:
		v, ok := value.(int)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Age = v
	case FieldEmail:
		v, ok := value.(string)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Email = v
	case FieldPhone:
		v, ok := value.(string)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Phone = v
	case FieldAddress:
		v, ok := value.(string)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Address = v
	case FieldRegisteredDate:
		v, ok := value.(string)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.RegisteredDate = v
	case FieldActive:
		v, ok := value.(bool)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Active = v
	case FieldRole:
		v, ok := value.(record.Role)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Role = v
	case FieldChildren:
		v, ok := value.([]record.Child)
		if err := set(ok); err != nil {
			return err
		}
		row.buffer.Children = record.CopyChildren(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// resetField restores a single field from the original and clears its
// touched mark and error flags.
func (row *Row) resetField(field string) {
	switch field {
	case FieldName:
		row.buffer.Name = row.original.Name
	case FieldAge:
		row.buffer.Age = row.original.Age
	case FieldEmail:
		row.buffer.Email = row.original.Email
	case FieldPhone:
		row.buffer.Phone = row.original.Phone
	case FieldAddress:
		row.buffer.Address = row.original.Address
	case FieldRegisteredDate:
		row.buffer.RegisteredDate = row.original.RegisteredDate
	case FieldActive:
		row.buffer.Active = row.original.Active
	case FieldRole:
		row.buffer.Role = row.original.Role
	case FieldChildren:
		// clear, then repopulate from the original
		row.buffer.Children = row.buffer.Children[:0]
		row.buffer.Children = append(row.buffer.Children, row.original.Children...)
	}
	delete(row.touched, field)
	row.clearFieldErrors(field)
}

// resetAll restores every field from the original record.
func (row *Row) resetAll() {
	for _, field := range editableFields {
		row.resetField(field)
	}
}

// fieldValue reads a field from the buffer.
func (row *Row) fieldValue(field string) (interface{}, error) {
	switch field {
	case FieldName:
		return row.buffer.Name, nil
	case FieldAge:
		return row.buffer.Age, nil
	case FieldEmail:
		return row.buffer.Email, nil
	case FieldPhone:
		return row.buffer.Phone, nil
	case FieldAddress:
		return row.buffer.Address, nil
	case FieldRegisteredDate:
		return row.buffer.RegisteredDate, nil
	case FieldActive:
		return row.buffer.Active, nil
	case FieldRole:
		return row.buffer.Role, nil
	case FieldChildren:
		return record.CopyChildren(row.buffer.Children), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// fieldChanged reports whether the buffered field differs from the original,
// comparing children element-wise.
func (row *Row) fieldChanged(field string) bool {
	switch field {
	case FieldName:
		return row.buffer.Name != row.original.Name
	case FieldAge:
		return row.buffer.Age != row.original.Age
	case FieldEmail:
		return row.buffer.Email != row.original.Email
	case FieldPhone:
		return row.buffer.Phone != row.original.Phone
	case FieldAddress:
		return row.buffer.Address != row.original.Address
	case FieldRegisteredDate:
		return row.buffer.RegisteredDate != row.original.RegisteredDate
	case FieldActive:
		return row.buffer.Active != row.original.Active
	case FieldRole:
		return row.buffer.Role != row.original.Role
	case FieldChildren:
		return !record.ChildrenEqual(row.buffer.Children, row.original.Children)
	default:
		return false
	}
}

// clearFieldErrors drops the error flag of the field, including the
// per-child flags when field is children.
func (row *Row) clearFieldErrors(field string) {
	delete(row.errs, field)
	if field == FieldChildren {
		for key := range row.errs {
			if len(key) > len(FieldChildren) && key[:len(FieldChildren)+1] == FieldChildren+"." {
				delete(row.errs, key)
			}
		}
	}
}

// validateField refreshes the error flag of a single field. Email
// uniqueness is checked against storedEmails in single-row mode; bulk mode
// overrides the email flag through revalidateBatch afterwards.
func (row *Row) validateField(field string, storedEmails []string) {
	row.clearFieldErrors(field)

	switch field {
	case FieldName:
		if !validate.Required(row.buffer.Name) {
			row.errs[field] = validate.ErrRequired
		}
	case FieldPhone:
		if !validate.Required(row.buffer.Phone) {
			row.errs[field] = validate.ErrRequired
		}
	case FieldAddress:
		if !validate.Required(row.buffer.Address) {
			row.errs[field] = validate.ErrRequired
		}
	case FieldRegisteredDate:
		if !validate.Required(row.buffer.RegisteredDate) {
			row.errs[field] = validate.ErrRequired
		}
	case FieldAge:
		if !validate.AgeInRange(row.buffer.Age) {
			row.errs[field] = validate.ErrOutOfRange
		}
	case FieldRole:
		if !row.buffer.Role.IsValid() {
			row.errs[field] = validate.ErrInvalidRole
		}
	case FieldEmail:
		switch {
		case !validate.Required(row.buffer.Email):
			row.errs[field] = validate.ErrRequired
		case !validate.EmailShape(row.buffer.Email):
			row.errs[field] = validate.ErrInvalidEmail
		case validate.EmailConflicts(row.buffer.Email, row.original.Email, storedEmails):
			row.errs[field] = validate.ErrNotUniqueEmail
		}
	case FieldActive:
		// booleans cannot be invalid
	case FieldChildren:
		for i, child := range row.buffer.Children {
			if !validate.Required(child.Column) {
				row.errs[FieldChildren+"."+strconv.Itoa(i)+".column"] = validate.ErrRequired
			}
			if !validate.Required(child.Value) {
				row.errs[FieldChildren+"."+strconv.Itoa(i)+".value"] = validate.ErrRequired
			}
		}
	}
}

// validateAll refreshes every field error flag.
func (row *Row) validateAll(storedEmails []string) {
	for _, field := range editableFields {
		row.validateField(field, storedEmails)
	}
}

// fieldValid reports whether the given field currently carries no error,
// including per-child errors for children.
func (row *Row) fieldValid(field string) bool {
	if _, ok := row.errs[field]; ok {
		return false
	}
	if field == FieldChildren {
		for key := range row.errs {
			if len(key) > len(FieldChildren) && key[:len(FieldChildren)+1] == FieldChildren+"." {
				return false
			}
		}
	}
	return true
}

// diff collects the fields to commit in bulk mode: touched, currently valid
// and different from the original.
func (row *Row) diff() map[string]interface{} {
	changes := make(map[string]interface{})
	for _, field := range editableFields {
		if !row.touched[field] {
			continue
		}
		if !row.fieldValid(field) {
			continue
		}
		if !row.fieldChanged(field) {
			continue
		}
		value, err := row.fieldValue(field)
		if err != nil {
			continue
		}
		changes[field] = value
	}
	return changes
}

// fullPatch snapshots every editable field of the buffer, for full-row
// commits.
func (row *Row) fullPatch() map[string]interface{} {
	patch := make(map[string]interface{}, len(editableFields))
	for _, field := range editableFields {
		value, err := row.fieldValue(field)
		if err != nil {
			continue
		}
		patch[field] = value
	}
	return patch
}
