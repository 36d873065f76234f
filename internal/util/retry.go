// ABOUTME: Backoff utilities for outbound API calls
// ABOUTME: Jittered exponential backoff shared by the embedding client
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the per-attempt wait so a deep retry chain never stalls a
// request for more than half a minute.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the wait before the given retry attempt: the base
// delay doubled per attempt, capped at 30s, with ±25% random jitter so
// concurrent requests hitting the same rate limit do not retry in lockstep.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap the shift to avoid overflow; the 30s ceiling is hit long before.
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// SleepWithContext waits for the given duration unless the context is
// cancelled first. Returns false when the wait was interrupted.
func SleepWithContext(done <-chan struct{}, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return false
	case <-timer.C:
		return true
	}
}
