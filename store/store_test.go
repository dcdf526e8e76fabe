package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage/hashmap"
)

func newTestStore(t *testing.T, seed []record.Record) (*Store, *hashmap.HashMap) {
	t.Helper()
	backend := hashmap.New()
	s, err := New(backend, seed)
	require.NoError(t, err)
	return s, backend
}

func TestShutdownBlocksOperations(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{
		{ID: 1, Name: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, s.Shutdown())

	_, err := s.Create(record.Record{Name: "Grace"})
	require.ErrorIs(t, err, ErrNotLoaded)
	require.ErrorIs(t, s.Update(1, Patch{"name": "x"}), ErrNotLoaded)
	require.ErrorIs(t, s.Delete(1), ErrNotLoaded)
	require.ErrorIs(t, s.ToggleActive(1), ErrNotLoaded)
	_, err = s.FindByID(1)
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestSeedOnFirstUse(t *testing.T) {
	t.Parallel()

	backend := hashmap.New()
	s, err := New(backend, nil)
	require.NoError(t, err)
	require.Equal(t, len(DefaultSeed()), s.Size())

	// the seed is persisted immediately
	persisted, err := backend.Load()
	require.NoError(t, err)
	require.Len(t, persisted, s.Size())

	// a second store on the same backend loads, not re-seeds
	s2, err := New(backend, []record.Record{{Name: "odd one out"}})
	require.NoError(t, err)
	require.Equal(t, s.Size(), s2.Size())
}

func TestCreateAssignsIDs(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{})
	require.Equal(t, 0, s.Size())

	first, err := s.Create(record.Record{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)

	second, err := s.Create(record.Record{Name: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	// deleting the record with the highest id does not free its id
	require.NoError(t, s.Delete(second.ID))
	third, err := s.Create(record.Record{Name: "Edsger", Email: "edsger@example.com"})
	require.NoError(t, err)
	require.Equal(t, 2, third.ID)

	// ids are not reused while higher ids exist
	require.NoError(t, s.Delete(first.ID))
	fourth, err := s.Create(record.Record{Name: "Barbara", Email: "barbara@example.com"})
	require.NoError(t, err)
	require.Equal(t, 3, fourth.ID)
}

func TestUpdateMergesFields(t *testing.T) {
	t.Parallel()

	s, backend := newTestStore(t, []record.Record{
		{ID: 1, Name: "Ada", Age: 36, Email: "ada@example.com", Active: true, Role: record.RoleAdmin},
	})

	err := s.Update(1, Patch{"age": 37, "isActive": false})
	require.NoError(t, err)

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, 37, r.Age)
	require.False(t, r.Active)
	// untouched fields survive
	require.Equal(t, "Ada", r.Name)
	require.Equal(t, record.RoleAdmin, r.Role)

	// children replacement is wholesale
	err = s.Update(1, Patch{"children": []record.Child{{Column: "team", Value: "core"}}})
	require.NoError(t, err)
	r, err = s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, []record.Child{{Column: "team", Value: "core"}}, r.Children)

	// the id cannot be patched
	require.NoError(t, s.Update(1, Patch{"id": 99, "name": "Lovelace"}))
	r, err = s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "Lovelace", r.Name)

	// every mutation persisted the whole collection
	persisted, err := backend.Load()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	require.Equal(t, "Lovelace", persisted[0].Name)
}

func TestUpdateMissingIsNoOp(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{{ID: 1, Name: "Ada"}})

	require.NoError(t, s.Update(42, Patch{"name": "ghost"}))
	require.NoError(t, s.Delete(42))
	require.NoError(t, s.ToggleActive(42))
	require.Equal(t, 1, s.Size())

	_, err := s.FindByID(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRejectsMistypedPatch(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{{ID: 1, Name: "Ada", Age: 36}})

	err := s.Update(1, Patch{"age": "old"})
	require.ErrorIs(t, err, ErrInvalidPatch)

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, 36, r.Age)
}

func TestToggleActive(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{{ID: 1, Name: "Ada", Active: true}})

	require.NoError(t, s.ToggleActive(1))
	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.False(t, r.Active)

	require.NoError(t, s.ToggleActive(1))
	r, err = s.FindByID(1)
	require.NoError(t, err)
	require.True(t, r.Active)
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{
		{ID: 1, Name: "Ada", Children: []record.Child{{Column: "team", Value: "core"}}},
	})

	all := s.All()
	all[0].Children[0].Value = "changed"
	all[0].Name = "changed"

	r, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "Ada", r.Name)
	require.Equal(t, "core", r.Children[0].Value)

	// FindByID results are detached too, also when served from cache
	r.Children[0].Value = "changed"
	again, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "core", again.Children[0].Value)
}

func TestAllEmails(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, []record.Record{
		{ID: 1, Email: " Ada@Example.com "},
		{ID: 2, Email: "grace@example.com"},
	})

	// emails come back as stored, callers normalize
	require.Equal(t, []string{" Ada@Example.com ", "grace@example.com"}, s.AllEmails())
}
