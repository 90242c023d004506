package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeBoundaries(t *testing.T) {
	cases := map[time.Duration]SpeedCategory{
		0:                       SpeedExcellent,
		99 * time.Millisecond:   SpeedExcellent,
		100 * time.Millisecond:  SpeedGood,
		299 * time.Millisecond:  SpeedGood,
		300 * time.Millisecond:  SpeedAcceptable,
		699 * time.Millisecond:  SpeedAcceptable,
		700 * time.Millisecond:  SpeedSlow,
		1499 * time.Millisecond: SpeedSlow,
		1500 * time.Millisecond: SpeedPoor,
		12 * time.Second:        SpeedPoor,
	}

	for elapsed, want := range cases {
		assert.Equal(t, want, Categorize(elapsed), "elapsed %v", elapsed)
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, SpeedAcceptable, Categorize(400*time.Millisecond))
	}
}

func TestMeasureCategorizesRoundedTime(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    time.Duration
		speed   SpeedCategory
	}{
		{99600 * time.Microsecond, 100 * time.Millisecond, SpeedGood},
		{99400 * time.Microsecond, 99 * time.Millisecond, SpeedExcellent},
		{299500 * time.Microsecond, 300 * time.Millisecond, SpeedAcceptable},
		{1499700 * time.Microsecond, 1500 * time.Millisecond, SpeedPoor},
	}

	for _, tc := range cases {
		got, speed := measure(tc.elapsed)
		assert.Equal(t, tc.want, got, "elapsed %v", tc.elapsed)
		assert.Equal(t, tc.speed, speed, "elapsed %v", tc.elapsed)
	}
}
