package jsonfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabwork/gridbase/formats"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

func TestJSONFile(t *testing.T) {
	t.Parallel()

	for _, format := range []uint8{formats.JSON, formats.CBOR, formats.MsgPack} {
		dir := t.TempDir()

		jf, err := New(dir, format)
		require.NoError(t, err)

		_, err = jf.Load()
		require.ErrorIs(t, err, storage.ErrNoSnapshot)

		snapshot := []record.Record{
			{ID: 1, Name: "Ada", Email: "ada@example.com", Role: record.RoleAdmin, Active: true},
			{ID: 2, Name: "Grace", Email: "grace@example.com", Role: record.RoleUser,
				Children: []record.Child{{Column: "team", Value: "infra"}}},
		}
		require.NoError(t, jf.Save(snapshot))

		// a fresh instance sees the snapshot
		jf2, err := New(dir, format)
		require.NoError(t, err)
		loaded, err := jf2.Load()
		require.NoError(t, err)
		require.Equal(t, snapshot, loaded)

		require.NoError(t, jf.Shutdown())
	}
}
