package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// worker is one phase scheduler. It starts in an active phase and loops
// between active and idle until the running flag clears. A fault inside
// the loop stops this worker only; siblings keep going.
func (e *Engine) worker(id int) {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("worker failed",
				zap.Int("worker", id),
				zap.Any("reason", r),
			)
		}
	}()

	rng := rand.New(rand.NewSource(e.seed + int64(id)))

	if !e.sleep(time.Duration(id-1) * workerStagger) {
		return
	}

	for e.running.Load() {
		e.activePhase(id, rng)
		if !e.running.Load() {
			return
		}
		if rng.Float64() < e.cfg.IdleChance {
			e.idlePhase(id, rng)
		}
	}
}

// activePhase draws a duration and a rate, then emits hits at the jittered
// pace until the duration elapses or the running flag clears. The flag is
// checked before every hit, so a Stop halts the phase before the next hit,
// not merely before the next sleep.
func (e *Engine) activePhase(id int, rng *rand.Rand) {
	duration := randDuration(rng, e.cfg.ActiveMin, e.cfg.ActiveMax)
	rate := randBetween(rng, e.cfg.MinRate, e.cfg.MaxRate)

	e.report.active(id, rate, duration)

	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		if !e.running.Load() {
			return
		}
		e.hit(id, rng)
		if !e.sleep(hitDelay(rng, rate)) {
			return
		}
	}
}

// idlePhase suspends without emitting hits. A Stop during the sleep ends
// it immediately.
func (e *Engine) idlePhase(id int, rng *rand.Rand) {
	duration := randDuration(rng, e.cfg.IdleMin, e.cfg.IdleMax)
	e.report.idle(id, duration)
	e.sleep(duration)
}

// hitDelay converts a rate in hits per minute into the delay before the
// next hit, jittered by ±10% and floored at minHitDelay.
func hitDelay(rng *rand.Rand, rate int) time.Duration {
	base := time.Minute / time.Duration(rate)
	d := time.Duration(float64(base) * (0.9 + 0.2*rng.Float64()))
	if d < minHitDelay {
		d = minHitDelay
	}
	return d
}

func randDuration(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}

func randBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
