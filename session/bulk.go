package session

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/validate"
)

// IsBulk reports whether the session is in bulk mode.
func (m *Manager) IsBulk() bool {
	return m.bulk.IsSet()
}

// EnterBulk unlocks every visible row's buffer simultaneously and arms the
// batch email rule as the live revalidation trigger.
func (m *Manager) EnterBulk() {
	if !m.bulk.SetToIf(false, true) {
		return
	}
	for _, row := range m.rows {
		row.state = RowEditing
	}
	m.RevalidateBatch()
	log.Debugf("session %s: bulk mode on (%d rows)", m.id, len(m.rows))
}

// RevalidateBatch re-runs the cross-row plus cross-store email rule over
// every visible row and updates the email flags. The session's field-change
// handler calls it after every value change in bulk mode; it is exported so
// outer layers can trigger it explicitly as well.
func (m *Manager) RevalidateBatch() {
	formEmails := make([]string, len(m.rows))
	pageEmails := make([]string, len(m.rows))
	for i, row := range m.rows {
		formEmails[i] = row.buffer.Email
		pageEmails[i] = row.original.Email
	}

	flags := validate.BatchEmails(formEmails, pageEmails, m.store.AllEmails())

	for i, row := range m.rows {
		row.clearFieldErrors(FieldEmail)
		switch {
		case !validate.Required(row.buffer.Email):
			row.errs[FieldEmail] = validate.ErrRequired
		case !validate.EmailShape(row.buffer.Email):
			row.errs[FieldEmail] = validate.ErrInvalidEmail
		case flags[i]:
			row.errs[FieldEmail] = validate.ErrNotUniqueEmail
		}
	}
}

// SaveBulk commits the per-row diffs of every touched, valid and actually
// changed field. Rows with an empty diff are skipped. When any row is still
// invalid the whole save is a no-op and the blocking rows are reported;
// partial commits do not happen.
func (m *Manager) SaveBulk() error {
	if !m.bulk.IsSet() {
		return fmt.Errorf("%w: not in bulk mode", ErrBadState)
	}

	storedEmails := m.store.AllEmails()
	for _, row := range m.rows {
		row.validateAll(storedEmails)
	}
	m.RevalidateBatch()

	var blocked *multierror.Error
	for i, row := range m.rows {
		if !row.Valid() {
			blocked = multierror.Append(blocked,
				fmt.Errorf("row %d (record %d): %v", i, row.ID(), row.errs))
		}
	}
	if err := blocked.ErrorOrNil(); err != nil {
		blocksTotal.Inc()
		log.Debugf("session %s: bulk save blocked: %s", m.id, err)
		return fmt.Errorf("%w: %s", ErrBlocked, err)
	}

	committed := 0
	for _, row := range m.rows {
		changes := row.diff()
		if len(changes) == 0 {
			continue
		}
		if err := m.store.Update(row.ID(), changes); err != nil {
			return err
		}
		commitsTotal.Inc()
		committed++
	}

	m.bulk.UnSet()
	log.Debugf("session %s: bulk save committed %d of %d rows", m.id, committed, len(m.rows))
	m.refreshClamped()
	return nil
}

// CancelBulk discards every buffer and leaves bulk mode without committing
// anything. Email validation reverts to the single-row rule.
func (m *Manager) CancelBulk() {
	if !m.bulk.SetToIf(true, false) {
		return
	}
	for _, row := range m.rows {
		row.resetAll()
		row.state = Viewing
	}
	m.Refresh()
}
