package session

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/tabwork/gridbase/query"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage/hashmap"
	"github.com/tabwork/gridbase/store"
	"github.com/tabwork/gridbase/validate"
)

// countingBackend counts persists, so tests can assert how many store
// commits an operation issued.
type countingBackend struct {
	*hashmap.HashMap
	saves int
}

func (b *countingBackend) Save(records []record.Record) error {
	b.saves++
	return b.HashMap.Save(records)
}

func seedRecords(n int) []record.Record {
	records := make([]record.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, record.Record{
			ID:             i,
			Name:           fmt.Sprintf("Person %02d", i),
			Age:            20 + i,
			Email:          fmt.Sprintf("person%02d@example.com", i),
			Phone:          "555-0100",
			Address:        fmt.Sprintf("%d Main Street", i),
			RegisteredDate: "2023-01-01",
			Active:         true,
			Role:           record.RoleUser,
		})
	}
	return records
}

func newTestSession(t *testing.T, records []record.Record, criteria query.Criteria) (*Manager, *store.Store, *countingBackend) {
	t.Helper()
	backend := &countingBackend{HashMap: hashmap.New()}
	s, err := store.New(backend, records)
	require.NoError(t, err)
	backend.saves = 0
	return New(s, criteria), s, backend
}

func allCriteria(pageSize int) query.Criteria {
	return query.Criteria{Status: query.StatusAll, Page: 1, PageSize: pageSize}
}

func TestRefreshBuildsPage(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestSession(t, seedRecords(12), allCriteria(5))

	require.Equal(t, 12, m.Total())
	require.Len(t, m.Rows(), 5)
	require.Equal(t, 1, m.Rows()[0].ID())

	m.SetPage(3)
	require.Len(t, m.Rows(), 2)
	require.Equal(t, 11, m.Rows()[0].ID())
}

func TestFilterChangesResetPage(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestSession(t, seedRecords(12), allCriteria(5))
	m.SetPage(3)

	m.SetSearch("person")
	require.Equal(t, 1, m.Criteria().Page)

	m.SetPage(2)
	m.SetStatus(query.StatusActive)
	require.Equal(t, 1, m.Criteria().Page)

	m.SetPage(2)
	m.SetRole(query.OnlyRole(record.RoleUser))
	require.Equal(t, 1, m.Criteria().Page)
}

func TestCellEditCommit(t *testing.T) {
	t.Parallel()

	m, s, backend := newTestSession(t, seedRecords(3), allCriteria(5))

	require.NoError(t, m.StartCellEdit(0, FieldName))
	require.Equal(t, CellEditing, m.Rows()[0].State())
	require.NoError(t, m.SetField(0, FieldName, "Renamed"))
	require.NoError(t, m.CommitCellEdit(0))

	require.Equal(t, 1, backend.saves)
	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "Renamed", r.Name)

	// rows are rebuilt after commit
	require.Equal(t, Viewing, m.Rows()[0].State())
	require.Equal(t, "Renamed", m.Rows()[0].Original().Name)
}

func TestCellEditInvalidResets(t *testing.T) {
	t.Parallel()

	m, s, backend := newTestSession(t, seedRecords(3), allCriteria(5))

	require.NoError(t, m.StartCellEdit(0, FieldAge))
	require.NoError(t, m.SetField(0, FieldAge, 200))
	require.NoError(t, m.CommitCellEdit(0))

	// no commit, the field snapped back to the original value
	require.Equal(t, 0, backend.saves)
	require.Equal(t, 21, m.Rows()[0].Buffer().Age)
	require.Equal(t, Viewing, m.Rows()[0].State())

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, 21, r.Age)
}

func TestCellEditScopeIsSingleField(t *testing.T) {
	t.Parallel()

	m, s, backend := newTestSession(t, seedRecords(3), allCriteria(5))

	// only the open field accepts writes while a cell edit is running
	require.NoError(t, m.StartCellEdit(0, FieldName))
	require.ErrorIs(t, m.SetField(0, FieldAge, 300), ErrBadState)
	require.ErrorIs(t, m.AddChild(0), ErrBadState)
	require.ErrorIs(t, m.SetChildAt(0, 0, "x", "y"), ErrBadState)
	require.ErrorIs(t, m.RemoveChildAt(0, 0), ErrBadState)

	require.NoError(t, m.SetField(0, FieldName, "Renamed"))
	require.NoError(t, m.CommitCellEdit(0))

	// the commit carried the rename and nothing else
	require.Equal(t, 1, backend.saves)
	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "Renamed", r.Name)
	require.Equal(t, 21, r.Age)
	require.Empty(t, r.Children)

	// no writes at all while viewing
	require.ErrorIs(t, m.SetField(1, FieldName, "Sneaky"), ErrBadState)
	require.Equal(t, "Person 02", m.Rows()[1].Buffer().Name)
}

func TestCellEditCancel(t *testing.T) {
	t.Parallel()

	m, _, backend := newTestSession(t, seedRecords(3), allCriteria(5))

	require.NoError(t, m.StartCellEdit(1, FieldEmail))
	require.NoError(t, m.SetField(1, FieldEmail, "changed@example.com"))
	require.NoError(t, m.CancelCellEdit(1))

	require.Equal(t, 0, backend.saves)
	require.Equal(t, "person02@example.com", m.Rows()[1].Buffer().Email)
}

func TestCellEditStateGuards(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestSession(t, seedRecords(3), allCriteria(5))

	// no cell edit while the row is in full row edit
	require.NoError(t, m.StartRowEdit(0))
	require.ErrorIs(t, m.StartCellEdit(0, FieldName), ErrBadState)

	// no double cell edit
	require.NoError(t, m.StartCellEdit(1, FieldName))
	require.ErrorIs(t, m.StartCellEdit(1, FieldAge), ErrBadState)

	// commit and cancel need an open cell edit
	require.ErrorIs(t, m.CommitCellEdit(2), ErrBadState)
	require.ErrorIs(t, m.CancelCellEdit(2), ErrBadState)

	// unknown fields are rejected up front
	require.ErrorIs(t, m.StartCellEdit(2, "salary"), ErrUnknownField)
	require.ErrorIs(t, m.SetField(2, "salary", 1), ErrUnknownField)

	_, err := m.Row(17)
	require.ErrorIs(t, err, ErrBadRow)
}

func TestRowEditSave(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestSession(t, seedRecords(3), allCriteria(5))

	require.NoError(t, m.StartRowEdit(0))
	require.NoError(t, m.SetField(0, FieldName, "Edited"))
	require.NoError(t, m.SetField(0, FieldRole, record.RoleEditor))
	require.NoError(t, m.SaveRowEdit(0))

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "Edited", r.Name)
	require.Equal(t, record.RoleEditor, r.Role)
	require.Equal(t, Viewing, m.Rows()[0].State())
}

func TestRowEditInvalidSaveKeepsEditing(t *testing.T) {
	t.Parallel()

	m, s, backend := newTestSession(t, seedRecords(3), allCriteria(5))

	require.NoError(t, m.StartRowEdit(0))
	require.NoError(t, m.SetField(0, FieldEmail, "person02@example.com")) // collides with row 2
	require.NoError(t, m.SaveRowEdit(0))

	// silent block: still editing, flag set, nothing committed
	require.Equal(t, 0, backend.saves)
	require.Equal(t, RowEditing, m.Rows()[0].State())
	require.Equal(t, validate.ErrNotUniqueEmail, m.Rows()[0].FieldErrors()[FieldEmail])

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "person01@example.com", r.Email)
}

func TestRowEditCancelRestoresExactly(t *testing.T) {
	t.Parallel()

	records := seedRecords(2)
	records[0].Children = []record.Child{
		{Column: "team", Value: "core"},
		{Column: "floor", Value: "3"},
	}
	m, _, backend := newTestSession(t, records, allCriteria(5))
	original := m.Rows()[0].Original()

	require.NoError(t, m.StartRowEdit(0))
	require.NoError(t, m.SetField(0, FieldName, "Scribbles"))
	require.NoError(t, m.SetField(0, FieldAge, 99))
	require.NoError(t, m.AddChild(0))
	require.NoError(t, m.SetChildAt(0, 2, "badge", "blue"))
	require.NoError(t, m.RemoveChildAt(0, 0))
	require.NoError(t, m.CancelRowEdit(0))

	restored := m.Rows()[0].Buffer()
	require.True(t, original.Equal(restored), spew.Sdump(restored))
	require.Equal(t, Viewing, m.Rows()[0].State())
	require.Equal(t, 0, backend.saves)
	require.False(t, m.Rows()[0].Touched(FieldName))
	require.Empty(t, m.Rows()[0].FieldErrors())
}

func TestDeleteClampsPage(t *testing.T) {
	t.Parallel()

	// 6 records at page size 5: page 2 holds exactly one row
	m, s, _ := newTestSession(t, seedRecords(6), allCriteria(5))
	m.SetConfirmer(ConfirmFunc(func(string) bool { return true }))
	m.SetPage(2)
	require.Len(t, m.Rows(), 1)

	require.NoError(t, m.DeleteRow(0))

	require.Equal(t, 5, s.Size())
	require.Equal(t, 1, m.Criteria().Page)
	require.Len(t, m.Rows(), 5)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestSession(t, seedRecords(3), allCriteria(5))

	// no confirmer installed
	require.ErrorIs(t, m.DeleteRow(0), ErrNotConfirmed)

	// confirmer declines
	m.SetConfirmer(ConfirmFunc(func(string) bool { return false }))
	require.ErrorIs(t, m.DeleteRow(0), ErrNotConfirmed)
	require.Equal(t, 3, s.Size())

	m.SetConfirmer(ConfirmFunc(func(string) bool { return true }))
	require.NoError(t, m.DeleteRow(0))
	require.Equal(t, 2, s.Size())
}

func TestToggleActiveClampsPage(t *testing.T) {
	t.Parallel()

	// active filter, 6 active records, page 2 holds one row; deactivating
	// it shrinks the filtered set below the page
	m, _, _ := newTestSession(t, seedRecords(6),
		query.Criteria{Status: query.StatusActive, Page: 2, PageSize: 5})
	require.Len(t, m.Rows(), 1)

	require.NoError(t, m.ToggleActive(0))

	require.Equal(t, 5, m.Total())
	require.Equal(t, 1, m.Criteria().Page)
	require.Len(t, m.Rows(), 5)
}

func TestEditLeavingFilterClampsPage(t *testing.T) {
	t.Parallel()

	// search matches exactly 6 names; renaming the only row on page 2
	// away from the term shrinks the filtered set
	records := seedRecords(12)
	m, _, _ := newTestSession(t, records,
		query.Criteria{Status: query.StatusAll, SearchText: "person 0", Page: 2, PageSize: 5})
	require.Equal(t, 9, m.Total())

	m.SetPage(2)
	require.Len(t, m.Rows(), 4)

	for i := 3; i >= 1; i-- {
		require.NoError(t, m.StartCellEdit(i, FieldName))
		require.NoError(t, m.SetField(i, FieldName, fmt.Sprintf("Other %d", i)))
		require.NoError(t, m.CommitCellEdit(i))
	}

	// three renames dropped the total to 6, page 2 still has one row
	require.Equal(t, 6, m.Total())
	require.Equal(t, 2, m.Criteria().Page)

	require.NoError(t, m.StartCellEdit(0, FieldName))
	require.NoError(t, m.SetField(0, FieldName, "Other 0"))
	require.NoError(t, m.CommitCellEdit(0))

	require.Equal(t, 5, m.Total())
	require.Equal(t, 1, m.Criteria().Page)
}
