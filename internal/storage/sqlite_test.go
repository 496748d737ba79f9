package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/casa-abandonada/internal/models"
	"github.com/tatianab/casa-abandonada/internal/testhelpers"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves.db")
	store, err := OpenSQLite(context.Background(), path, testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func record(room string) *models.SaveRecord {
	return &models.SaveRecord{
		Player:          models.Character{Name: "Investigador"},
		Inventory:       []models.Item{{Name: "vela"}},
		CurrentRoom:     room,
		Health:          70,
		Fear:            20,
		Sanity:          90,
		Luck:            13,
		GameTime:        4,
		CompletedEvents: []string{},
		EndingFlags:     map[string]bool{"good": false, "bad": false},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "slot1", record("corredor")))
	require.NoError(t, store.Save(ctx, "slot1", record("porao")))
	require.NoError(t, store.Save(ctx, "slot2", record("cozinha")))

	rec, err := store.Load(ctx, "slot1")
	require.NoError(t, err)
	require.Equal(t, "porao", rec.CurrentRoom)
	require.Equal(t, 13, rec.Luck)
	require.Equal(t, []string{"vela"}, []string{rec.Inventory[0].Name})

	slots, err := store.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"slot1", "slot2"}, slots)
}

func TestSQLiteStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Load(ctx, "missing")
	require.ErrorIs(t, err, models.ErrSaveNotFound)

	_, err = store.db.ExecContext(ctx, `INSERT INTO saves (slot, data, updated_at) VALUES ('broken', 'player: x', '')`)
	require.NoError(t, err)
	_, err = store.Load(ctx, "broken")
	require.ErrorIs(t, err, models.ErrSaveSchema)

	require.ErrorIs(t, store.Save(ctx, "../x", record("corredor")), models.ErrSaveIO)
}
