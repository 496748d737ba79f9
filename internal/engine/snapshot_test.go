package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/casa-abandonada/internal/config"
	"github.com/tatianab/casa-abandonada/internal/models"
)

func TestSnapshotRestore(t *testing.T) {
	e := newTestEngine(t, &seqRand{vals: []int{63}})
	run(t, e, "pegar lanterna")
	run(t, e, "mover norte")
	run(t, e, "responder 9")

	rec := e.Snapshot()
	require.Equal(t, []string{"vela", "fosforos"}, rec.RoomItems["hall_entrada"])

	store := models.NewFileStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.DefaultSlot, rec))
	loaded, err := store.Load(ctx, models.DefaultSlot)
	require.NoError(t, err)

	restored, err := Restore(config.DefaultGame(), testContent(t), loaded, WithRand(&seqRand{}))
	require.NoError(t, err)
	require.Equal(t, e.CurrentRoomID(), restored.CurrentRoomID())
	require.Equal(t, e.Status(), restored.Status())
	require.Equal(t, 64, restored.Status().Luck)
	require.Equal(t, []string{"lanterna"}, restored.Inventory().Names())
	require.Equal(t, e.EndingFlags(), restored.EndingFlags())
	require.Equal(t, []string{"vela", "fosforos"}, restored.World().Room("hall_entrada").Items)

	// the restored game is independent of the one it came from
	run(t, restored, "mover sul")
	require.Equal(t, "corredor", e.CurrentRoomID())
}

func TestRestoreKeepsEnding(t *testing.T) {
	e := newTestEngine(t, nil)
	e.ApplyEffects(models.Effects{models.StatSanity: -100})
	require.Equal(t, EndingBad, e.CheckEnding())

	restored, err := Restore(config.DefaultGame(), testContent(t), e.Snapshot())
	require.NoError(t, err)
	require.Equal(t, EndingBad, restored.Ending())
	require.True(t, run(t, restored, "olhar").Has("The game is over."))
}

func TestRestoreRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.SaveRecord)
	}{
		{"unknown room", func(r *models.SaveRecord) { r.CurrentRoom = "nowhere" }},
		{"health out of range", func(r *models.SaveRecord) { r.Health = 101 }},
		{"luck out of range", func(r *models.SaveRecord) { r.Luck = 0 }},
		{"negative time", func(r *models.SaveRecord) { r.GameTime = -1 }},
		{"too many items", func(r *models.SaveRecord) {
			r.Inventory = make([]models.Item, models.DefaultInventoryLimit+1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestEngine(t, nil).Snapshot()
			tt.modify(rec)
			_, err := Restore(config.DefaultGame(), testContent(t), rec)
			require.ErrorIs(t, err, models.ErrSaveSchema)
		})
	}

	_, err := Restore(config.DefaultGame(), testContent(t), nil)
	require.ErrorIs(t, err, models.ErrSaveSchema)
}
