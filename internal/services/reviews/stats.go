package reviews

import (
	"math"

	"github.com/lealre/reelstate/internal/mongodb"
)

// ComputeStats counts reviews per category and the share of positive ones
// ("Go for it" and "Perfection"), rounded half up. It is computed from the
// full set on every read, hidden reviews included.
func ComputeStats(reviewsDb []mongodb.ReviewDb) Stats {
	var stats Stats
	for _, r := range reviewsDb {
		switch Category(r.Category) {
		case Skip:
			stats.Counts.Skip++
		case Timepass:
			stats.Counts.Timepass++
		case GoForIt:
			stats.Counts.GoForIt++
		case Perfection:
			stats.Counts.Perfection++
		default:
			continue
		}
		stats.Total++
	}

	if stats.Total == 0 {
		return Stats{}
	}

	positive := stats.Counts.GoForIt + stats.Counts.Perfection
	stats.Percentage = int(math.Floor(float64(positive)*100/float64(stats.Total) + 0.5))
	return stats
}
