package reviews

import (
	"testing"

	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/stretchr/testify/require"
)

func reviewsWith(categories ...Category) []mongodb.ReviewDb {
	out := make([]mongodb.ReviewDb, 0, len(categories))
	for _, c := range categories {
		out = append(out, mongodb.ReviewDb{Category: string(c)})
	}
	return out
}

func TestComputeStats(t *testing.T) {
	t.Run("No reviews gives all zeros", func(t *testing.T) {
		require.Equal(t, Stats{}, ComputeStats(nil))
		require.Equal(t, Stats{}, ComputeStats([]mongodb.ReviewDb{}))
	})

	t.Run("Counts each category and the positive share", func(t *testing.T) {
		stats := ComputeStats(reviewsWith(Skip, Timepass, GoForIt, Perfection, Perfection))

		require.Equal(t, CategoryCounts{Skip: 1, Timepass: 1, GoForIt: 1, Perfection: 2}, stats.Counts)
		require.Equal(t, 5, stats.Total)
		require.Equal(t, 60, stats.Percentage)
	})

	t.Run("Rounds half up", func(t *testing.T) {
		require.Equal(t, 67, ComputeStats(reviewsWith(GoForIt, Perfection, Skip)).Percentage)
		require.Equal(t, 50, ComputeStats(reviewsWith(GoForIt, Skip)).Percentage)
		require.Equal(t, 13, ComputeStats(reviewsWith(GoForIt, Skip, Skip, Skip, Skip, Skip, Skip, Skip)).Percentage)
	})

	t.Run("Unknown categories are ignored", func(t *testing.T) {
		stats := ComputeStats(reviewsWith("Masterpiece", Skip))
		require.Equal(t, 1, stats.Total)
		require.Equal(t, 0, stats.Percentage)
	})
}
