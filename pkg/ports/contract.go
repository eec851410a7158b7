package ports

import (
	"context"
	"testing"
	"time"

	"github.com/arborlab/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTrailStoreContract runs a suite of tests verifying that a TrailStore
// implementation adheres to the interface contract. Adapter test files call
// this against their concrete store.
func RunTrailStoreContract(t *testing.T, store TrailStore) {
	ctx := context.Background()
	trailID := "contract-trail-" + time.Now().Format("20060102150405")

	newTrail := func(id string) *domain.Trail {
		return &domain.Trail{
			ID:     id,
			TreeID: "triage-v1",
			Steps: []domain.Step{
				{NodeID: "q1", Prompt: "Is this a billing issue?", Response: "yes"},
			},
			Outcome:   "Routed to billing",
			EndNodeID: "end_billing",
			Completed: true,
			StartedAt: time.Now().UTC().Truncate(time.Second),
			EndedAt:   time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		trail := newTrail(trailID)
		require.NoError(t, store.Save(ctx, trail), "Save should not return error")

		loaded, err := store.Load(ctx, trailID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, trail.TreeID, loaded.TreeID)
		assert.Equal(t, trail.Outcome, loaded.Outcome)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, "q1", loaded.Steps[0].NodeID)
		assert.True(t, loaded.Completed)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+trailID)
		assert.ErrorIs(t, err, domain.ErrTrailNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newTrail(trailID)))

		require.NoError(t, store.Delete(ctx, trailID), "Delete should not return error")

		_, err := store.Load(ctx, trailID)
		assert.ErrorIs(t, err, domain.ErrTrailNotFound, "Load after Delete should return ErrTrailNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := trailID + "-1"
		id2 := trailID + "-2"
		_ = store.Save(ctx, newTrail(id1))
		_ = store.Save(ctx, newTrail(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		trails, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, trails, id1)
		assert.Contains(t, trails, id2)
	})
}
