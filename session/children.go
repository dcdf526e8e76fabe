package session

import (
	"fmt"

	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/validate"
)

// childForm is the short-lived add-column form, scoped to a single target
// record. Only one can be open at a time.
type childForm struct {
	recordID int
	column   string
	value    string
}

// StartAddColumn opens the add-column form for the given record, replacing
// any previously open one.
func (m *Manager) StartAddColumn(recordID int) {
	m.addForm = &childForm{recordID: recordID}
}

// SetAddColumn fills the open add-column form.
func (m *Manager) SetAddColumn(column, value string) error {
	if m.addForm == nil {
		return ErrNoForm
	}
	m.addForm.column = column
	m.addForm.value = value
	return nil
}

// AddColumnTarget returns the record id of the open add-column form, or
// false when none is open.
func (m *Manager) AddColumnTarget() (int, bool) {
	if m.addForm == nil {
		return 0, false
	}
	return m.addForm.recordID, true
}

// SaveAddColumn appends the form's column/value pair to the target record's
// children and immediately commits the whole updated record. Both fields
// are required; an incomplete form blocks without mutating anything. A
// target that left the page dissolves the form silently.
func (m *Manager) SaveAddColumn() error {
	if m.addForm == nil {
		return ErrNoForm
	}
	if !validate.Required(m.addForm.column) || !validate.Required(m.addForm.value) {
		blocksTotal.Inc()
		return fmt.Errorf("%w: column and value are required", ErrBlocked)
	}

	row := m.rowByID(m.addForm.recordID)
	if row == nil {
		m.addForm = nil
		return nil
	}

	row.buffer.Children = append(row.buffer.Children, record.Child{
		Column: m.addForm.column,
		Value:  m.addForm.value,
	})
	row.touched[FieldChildren] = true

	if err := m.store.Update(row.ID(), row.fullPatch()); err != nil {
		return err
	}
	commitsTotal.Inc()
	log.Debugf("session %s: added column %q to record %d", m.id, m.addForm.column, row.ID())
	m.addForm = nil
	m.refreshClamped()
	return nil
}

// CancelAddColumn discards the add-column form without mutating anything.
func (m *Manager) CancelAddColumn() {
	m.addForm = nil
}

// AddChild appends an empty child to the row's buffer. The structural
// change unlocks the row for a full field-set if it was read-only.
func (m *Manager) AddChild(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if err := row.childrenInScope(i); err != nil {
		return err
	}
	row.buffer.Children = append(row.buffer.Children, record.Child{})
	row.touched[FieldChildren] = true
	if row.state == Viewing {
		row.state = RowEditing
	}
	row.validateField(FieldChildren, nil)
	return nil
}

// SetChildAt fills one child of the row's buffer.
func (m *Manager) SetChildAt(i, j int, column, value string) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if err := row.childrenInScope(i); err != nil {
		return err
	}
	if j < 0 || j >= len(row.buffer.Children) {
		return fmt.Errorf("%w: child %d", ErrBadRow, j)
	}
	row.buffer.Children[j] = record.Child{Column: column, Value: value}
	row.touched[FieldChildren] = true
	row.validateField(FieldChildren, nil)
	return nil
}

// RemoveChildAt removes one child from the row's buffer. Like AddChild it
// unlocks the row.
func (m *Manager) RemoveChildAt(i, j int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if err := row.childrenInScope(i); err != nil {
		return err
	}
	if j < 0 || j >= len(row.buffer.Children) {
		return fmt.Errorf("%w: child %d", ErrBadRow, j)
	}
	row.buffer.Children = append(row.buffer.Children[:j], row.buffer.Children[j+1:]...)
	row.touched[FieldChildren] = true
	if row.state == Viewing {
		row.state = RowEditing
	}
	row.validateField(FieldChildren, nil)
	return nil
}

// childrenInScope rejects structural child edits while the row has a cell
// edit open on a different field. Those changes would ride the next cell
// commit unvalidated.
func (row *Row) childrenInScope(i int) error {
	if row.state == CellEditing && row.editingField != FieldChildren {
		return fmt.Errorf("%w: row %d is %s on %s", ErrBadState, i, row.state, row.editingField)
	}
	return nil
}

func (m *Manager) rowByID(id int) *Row {
	for _, row := range m.rows {
		if row.ID() == id {
			return row
		}
	}
	return nil
}
