// Package stats computes the purely derivative display values shown on
// the admin and teacher dashboards.
package stats

import (
	"sort"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// Average returns the mean of values, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// AverageScore averages the per-class average scores, 0 when no classes.
func AverageScore(classes []api.ClassPerformance) float64 {
	scores := make([]float64, 0, len(classes))
	for _, class := range classes {
		scores = append(scores, class.AverageScore)
	}
	return Average(scores)
}

// TotalStudents sums student counts over all classes.
func TotalStudents(classes []api.ClassPerformance) int {
	total := 0
	for _, class := range classes {
		total += class.TotalStudents
	}
	return total
}

// TopperCount sums leaderboard sizes over all classes.
func TopperCount(classes []api.ClassPerformance) int {
	total := 0
	for _, class := range classes {
		total += len(class.TopPerformers)
	}
	return total
}

// TopN returns the n highest scorers, descending by score. The sort is
// stable so ties keep their original order.
func TopN(toppers []api.Topper, n int) []api.Topper {
	sorted := make([]api.Topper, len(toppers))
	copy(sorted, toppers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n < 0 || n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ClassName resolves a class id to its display name.
func ClassName(classes []api.Class, id int) (string, bool) {
	for _, class := range classes {
		if class.ID == id {
			return class.Name, true
		}
	}
	return "", false
}
