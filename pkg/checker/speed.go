package checker

import "time"

var speedThresholds = []struct {
	limit    time.Duration
	category SpeedCategory
}{
	{100 * time.Millisecond, SpeedExcellent},
	{300 * time.Millisecond, SpeedGood},
	{700 * time.Millisecond, SpeedAcceptable},
	{1500 * time.Millisecond, SpeedSlow},
}

// Categorize buckets an elapsed time. Each bound is exclusive, so a value
// sitting exactly on a threshold falls into the slower category.
func Categorize(elapsed time.Duration) SpeedCategory {
	for _, t := range speedThresholds {
		if elapsed < t.limit {
			return t.category
		}
	}
	return SpeedPoor
}

// measure rounds elapsed to the reported millisecond and categorizes the
// rounded value, so the shown time and its category always agree.
func measure(elapsed time.Duration) (time.Duration, SpeedCategory) {
	rounded := elapsed.Round(time.Millisecond)
	return rounded, Categorize(rounded)
}
