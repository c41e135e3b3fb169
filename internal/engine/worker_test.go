package engine

import (
	"math/rand"
	"testing"
	"time"
)

func TestHitDelayJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, rate := range []int{1, 10, 60, 300, 600, 6000} {
		base := time.Minute / time.Duration(rate)
		low := time.Duration(float64(base) * 0.9)
		high := time.Duration(float64(base) * 1.1)
		if low < minHitDelay {
			low = minHitDelay
		}
		if high < minHitDelay {
			high = minHitDelay
		}

		for i := 0; i < 1000; i++ {
			d := hitDelay(rng, rate)
			if d < low || d > high {
				t.Fatalf("rate %d: delay %s outside [%s, %s]", rate, d, low, high)
			}
		}
	}
}

func TestHitDelayFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	// 6000/min nominally means 10ms between hits; the floor wins.
	for i := 0; i < 1000; i++ {
		if d := hitDelay(rng, 6000); d != minHitDelay {
			t.Fatalf("expected floored delay %s, got %s", minHitDelay, d)
		}
	}
}

func TestRandDurationBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	min, max := 2*time.Second, 9*time.Second

	for i := 0; i < 1000; i++ {
		d := randDuration(rng, min, max)
		if d < min || d > max {
			t.Fatalf("duration %s outside [%s, %s]", d, min, max)
		}
	}

	if d := randDuration(rng, min, min); d != min {
		t.Fatalf("degenerate bounds: got %s", d)
	}
}

func TestRandBetweenBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := randBetween(rng, 30, 90)
		if n < 30 || n > 90 {
			t.Fatalf("value %d outside [30, 90]", n)
		}
		seen[n] = true
	}

	if len(seen) < 10 {
		t.Fatalf("draws barely vary: %d distinct", len(seen))
	}

	if n := randBetween(rng, 60, 60); n != 60 {
		t.Fatalf("degenerate bounds: got %d", n)
	}
}
