// Package session tracks which rows and cells of the displayed page are
// being edited, validates the edit buffers and commits only validated
// changes to the store. It reconciles the three views of the data: the
// persisted collection, the filtered page and the in-progress buffers.
package session

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofrs/uuid"
	"github.com/tevino/abool"

	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/query"
	"github.com/tabwork/gridbase/store"
)

var (
	commitsTotal = metrics.GetOrCreateCounter("gridbase_session_commits_total")
	blocksTotal  = metrics.GetOrCreateCounter("gridbase_session_validation_blocks_total")
)

// Confirmer gates destructive operations. DeleteRow asks it before touching
// the store.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Manager is the edit session over one filtered, paginated view of the
// store. It is single-user: operations are synchronous and there is no
// timeout-based expiry of open edits.
type Manager struct {
	id       uuid.UUID
	store    *store.Store
	criteria query.Criteria

	rows  []*Row
	total int

	bulk    *abool.AtomicBool
	addForm *childForm

	confirmer Confirmer
}

// New creates a session on the given store and runs the first query.
func New(s *store.Store, criteria query.Criteria) *Manager {
	if criteria.Page < 1 {
		criteria.Page = query.DefaultPage
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = query.DefaultPageSize
	}

	m := &Manager{
		id:       uuid.Must(uuid.NewV4()),
		store:    s,
		criteria: criteria,
		bulk:     abool.New(),
	}
	m.Refresh()
	return m
}

// SetConfirmer installs the confirmation gate for destructive operations.
// Without one, DeleteRow refuses.
func (m *Manager) SetConfirmer(c Confirmer) {
	m.confirmer = c
}

// Criteria returns the session's current filter and paging state.
func (m *Manager) Criteria() query.Criteria {
	return m.criteria
}

// Total returns the filtered record count of the last query.
func (m *Manager) Total() int {
	return m.total
}

// Rows returns the rows of the current page.
func (m *Manager) Rows() []*Row {
	return m.rows
}

// Row returns the row at the given page index.
func (m *Manager) Row(i int) (*Row, error) {
	if i < 0 || i >= len(m.rows) {
		return nil, fmt.Errorf("%w: %d", ErrBadRow, i)
	}
	return m.rows[i], nil
}

// Refresh re-queries the store and rebuilds every row. Open edit buffers
// are discarded; callers commit or cancel first.
func (m *Manager) Refresh() {
	res := query.Select(m.store.All(), m.criteria)
	m.total = res.Total

	m.rows = make([]*Row, 0, len(res.Page))
	for _, r := range res.Page {
		row := newRow(r)
		if m.bulk.IsSet() {
			row.state = RowEditing
		}
		m.rows = append(m.rows, row)
	}
	if m.bulk.IsSet() {
		m.RevalidateBatch()
	}
	log.Tracef("session %s: refreshed page %d (%d rows, %d total)",
		m.id, m.criteria.Page, len(m.rows), m.total)
}

// refreshClamped re-queries and pulls the page back into range when the
// filtered set shrank below the current page.
func (m *Manager) refreshClamped() {
	m.Refresh()
	clamped := m.criteria.Clamp(m.total)
	if clamped.Page != m.criteria.Page {
		log.Debugf("session %s: page clamped %d -> %d", m.id, m.criteria.Page, clamped.Page)
		m.criteria = clamped
		m.Refresh()
	}
}

// SetPage moves to the given page and re-queries.
func (m *Manager) SetPage(page int) {
	if page < 1 {
		page = query.DefaultPage
	}
	m.criteria.Page = page
	m.Refresh()
}

// SetPageSize changes the page size, resets to the first page and
// re-queries.
func (m *Manager) SetPageSize(size int) {
	if size < 1 {
		size = query.DefaultPageSize
	}
	m.criteria.PageSize = size
	m.criteria.Page = query.DefaultPage
	m.Refresh()
}

// SetSearch replaces the search term, resets to the first page and
// re-queries. Debouncing rapid input is the caller's concern.
func (m *Manager) SetSearch(text string) {
	m.criteria.SearchText = text
	m.criteria.Page = query.DefaultPage
	m.Refresh()
}

// SetStatus replaces the status filter, resets to the first page and
// re-queries.
func (m *Manager) SetStatus(f query.StatusFilter) {
	m.criteria.Status = f
	m.criteria.Page = query.DefaultPage
	m.Refresh()
}

// SetRole replaces the role filter, resets to the first page and
// re-queries.
func (m *Manager) SetRole(f query.RoleFilter) {
	m.criteria.Role = f
	m.criteria.Page = query.DefaultPage
	m.Refresh()
}

// SetField writes a value into a row's edit buffer and revalidates the
// field. In bulk mode every row's email is revalidated against the batch
// rule afterwards. The write must stay inside the row's edit scope: a full
// buffer in row edit, the single open field in cell edit, nothing while
// viewing.
func (m *Manager) SetField(i int, field string, value interface{}) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if !knownField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	switch {
	case row.state == RowEditing:
	case row.state == CellEditing && field == row.editingField:
	default:
		return fmt.Errorf("%w: row %d is %s, field %s is not open", ErrBadState, i, row.state, field)
	}
	if err := row.setField(field, value); err != nil {
		return err
	}
	row.validateField(field, m.store.AllEmails())
	if m.bulk.IsSet() {
		m.RevalidateBatch()
	}
	return nil
}

/* cell editing */

// StartCellEdit unlocks a single field of the row's buffer. Only allowed
// from the viewing state; a row in full row-edit has no separate cell
// scope.
func (m *Manager) StartCellEdit(i int, field string) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != Viewing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}
	if _, err := row.fieldValue(field); err != nil {
		return err
	}
	row.state = CellEditing
	row.editingField = field
	return nil
}

// CommitCellEdit commits the cell edit. A valid field commits the whole row
// buffer (the buffer mirrors all fields); an invalid one resets the field
// to the original value and exits without committing. Either way the row
// returns to viewing.
func (m *Manager) CommitCellEdit(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != CellEditing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}

	field := row.editingField
	row.state = Viewing
	row.editingField = ""

	row.validateField(field, m.store.AllEmails())
	if !row.fieldValid(field) {
		blocksTotal.Inc()
		row.resetField(field)
		return nil
	}

	if err := m.store.Update(row.ID(), row.fullPatch()); err != nil {
		return err
	}
	commitsTotal.Inc()
	log.Debugf("session %s: cell commit record %d field %s", m.id, row.ID(), field)
	m.refreshClamped()
	return nil
}

// CancelCellEdit resets the edited field to the original value and exits
// cell editing without committing.
func (m *Manager) CancelCellEdit(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != CellEditing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}
	row.resetField(row.editingField)
	row.state = Viewing
	row.editingField = ""
	return nil
}

/* row (inline) editing */

// StartRowEdit opens the full edit buffer of a row.
func (m *Manager) StartRowEdit(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != Viewing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}
	row.state = RowEditing
	return nil
}

// SaveRowEdit validates the whole buffer and commits it. An invalid buffer
// is a silent no-op: the row stays in edit mode with its flags set so the
// values can be corrected.
func (m *Manager) SaveRowEdit(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != RowEditing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}

	row.validateAll(m.store.AllEmails())
	if !row.Valid() {
		blocksTotal.Inc()
		log.Debugf("session %s: row save of record %d blocked: %v", m.id, row.ID(), row.errs)
		return nil
	}

	if err := m.store.Update(row.ID(), row.fullPatch()); err != nil {
		return err
	}
	commitsTotal.Inc()
	log.Debugf("session %s: row commit record %d", m.id, row.ID())
	m.refreshClamped()
	return nil
}

// CancelRowEdit restores every field from the original record, replaces the
// children wholesale and exits edit mode.
func (m *Manager) CancelRowEdit(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if row.state != RowEditing {
		return fmt.Errorf("%w: row %d is %s", ErrBadState, i, row.state)
	}
	row.resetAll()
	row.state = Viewing
	return nil
}

/* row actions */

// ToggleActive flips a row's active flag through the store and re-queries,
// clamping the page when the row left the filtered set.
func (m *Manager) ToggleActive(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if err := m.store.ToggleActive(row.ID()); err != nil {
		return err
	}
	m.refreshClamped()
	return nil
}

// DeleteRow deletes a row's record after the confirmation gate passes, then
// re-queries and clamps the page.
func (m *Manager) DeleteRow(i int) error {
	row, err := m.Row(i)
	if err != nil {
		return err
	}
	if m.confirmer == nil || !m.confirmer.Confirm(
		fmt.Sprintf("Are you sure you want to delete %s?", row.original.Name)) {
		return ErrNotConfirmed
	}
	if err := m.store.Delete(row.ID()); err != nil {
		return err
	}
	log.Debugf("session %s: deleted record %d", m.id, row.ID())
	m.refreshClamped()
	return nil
}
