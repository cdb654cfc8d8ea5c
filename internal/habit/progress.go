package habit

import "github.com/julianstephens/habitone/internal/models"

// Progress counts completed habits. The ratio divides by at least one so an
// empty list reports zero progress.
func Progress(habits []models.Habit) (completed, total int, ratio float64) {
	for _, h := range habits {
		if h.IsCompleted {
			completed++
		}
	}
	total = len(habits)
	ratio = float64(completed) / float64(max(total, 1))
	return completed, total, ratio
}

// Percent returns the ratio as a whole percentage, truncated
func Percent(ratio float64) int {
	return int(ratio * 100)
}
