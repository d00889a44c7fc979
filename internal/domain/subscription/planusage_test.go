package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "construlink/internal/domain/subscription/valueobjects"
)

func TestNewPlanUsage(t *testing.T) {
	t.Run("starts with all counters at zero", func(t *testing.T) {
		usage, err := NewPlanUsage(1, "2026-08")
		require.NoError(t, err)

		for _, r := range vo.AllResourceTypes {
			assert.Equal(t, 0, usage.Count(r))
		}
		assert.False(t, usage.HasUsage())
	})

	t.Run("rejects zero supplier", func(t *testing.T) {
		_, err := NewPlanUsage(0, "2026-08")
		assert.Error(t, err)
	})

	t.Run("rejects malformed month key", func(t *testing.T) {
		for _, key := range []string{"", "2026", "2026-13", "08-2026", "2026-8"} {
			_, err := NewPlanUsage(1, key)
			assert.Error(t, err, "key %q", key)
		}
	})
}

func TestPlanUsageIncrement(t *testing.T) {
	t.Run("repeated increments accumulate", func(t *testing.T) {
		usage, err := NewPlanUsage(1, "2026-08")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, usage.Increment(vo.ResourceProducts, 1))
		}
		require.NoError(t, usage.Increment(vo.ResourceQuotes, 3))

		assert.Equal(t, 5, usage.Count(vo.ResourceProducts))
		assert.Equal(t, 3, usage.Count(vo.ResourceQuotes))
		assert.Equal(t, 0, usage.Count(vo.ResourcePhotos))
		assert.True(t, usage.HasUsage())
	})

	t.Run("rejects non-positive delta", func(t *testing.T) {
		usage, err := NewPlanUsage(1, "2026-08")
		require.NoError(t, err)

		assert.Error(t, usage.Increment(vo.ResourceProducts, 0))
		assert.Error(t, usage.Increment(vo.ResourceProducts, -1))
	})

	t.Run("rejects unknown resource", func(t *testing.T) {
		usage, err := NewPlanUsage(1, "2026-08")
		require.NoError(t, err)
		assert.Error(t, usage.Increment(vo.ResourceType("downloads"), 1))
	})
}

func TestReconstructPlanUsage(t *testing.T) {
	now := time.Now().UTC()

	t.Run("round trips persisted counters", func(t *testing.T) {
		usage, err := ReconstructPlanUsage(4, 2, "2026-07", 8, 2, 1, 4, now)
		require.NoError(t, err)

		assert.Equal(t, uint(4), usage.ID())
		assert.Equal(t, uint(2), usage.SupplierID())
		assert.Equal(t, "2026-07", usage.MonthKey())
		assert.Equal(t, 8, usage.Count(vo.ResourceProducts))
		assert.Equal(t, 2, usage.Count(vo.ResourceQuotes))
		assert.Equal(t, 1, usage.Count(vo.ResourceSpecialties))
		assert.Equal(t, 4, usage.Count(vo.ResourcePhotos))
	})

	t.Run("rejects negative counters", func(t *testing.T) {
		_, err := ReconstructPlanUsage(4, 2, "2026-07", -1, 0, 0, 0, now)
		assert.Error(t, err)
	})

	t.Run("rejects zero ID", func(t *testing.T) {
		_, err := ReconstructPlanUsage(0, 2, "2026-07", 0, 0, 0, 0, now)
		assert.Error(t, err)
	})
}
