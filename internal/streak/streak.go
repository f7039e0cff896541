// Package streak counts runs of consecutive qualifying days in a score series.
package streak

import (
	"sort"

	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/scoring"
)

func sorted(series []models.DayScore) []models.DayScore {
	out := make([]models.DayScore, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Current counts consecutive qualifying days ending at today.
// A missing today, a gap, or a day below threshold ends the run. Days after today are ignored.
func Current(series []models.DayScore, today models.Date, threshold float64) int {
	days := sorted(series)

	count := 0
	expected := today
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if d.Date.After(today) {
			continue
		}
		if !d.Date.Equal(expected) || !scoring.Qualifies(d.Score, threshold) {
			break
		}
		count++
		expected = expected.AddDays(-1)
	}
	return count
}

// Best is the longest run of consecutive qualifying days anywhere in the series.
func Best(series []models.DayScore, threshold float64) int {
	days := sorted(series)

	best, current := 0, 0
	var prev models.Date
	for i, d := range days {
		if !scoring.Qualifies(d.Score, threshold) {
			current = 0
			prev = d.Date
			continue
		}
		if i > 0 && current > 0 && prev.AddDays(1).Equal(d.Date) {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prev = d.Date
	}
	return best
}
