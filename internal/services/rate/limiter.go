package rate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minuteWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles the two abuse-prone surfaces of the admin API: login
// attempts (keyed by caller address) and assistant calls (keyed by admin).
type Limiter struct {
	store          WindowStore
	loginPerMinute int
	assistPerMin   int
}

func NewLimiter(store WindowStore, loginPerMinute, assistPerMinute int) *Limiter {
	if loginPerMinute < 0 {
		loginPerMinute = 0
	}
	if assistPerMinute < 0 {
		assistPerMinute = 0
	}

	return &Limiter{
		store:          store,
		loginPerMinute: loginPerMinute,
		assistPerMin:   assistPerMinute,
	}
}

// AllowLogin returns false with a retry-after hint when the caller exhausted
// the login budget for the current minute. A zero limit disables the check.
func (l *Limiter) AllowLogin(ctx context.Context, callerKey string) (int64, bool, error) {
	callerKey = strings.TrimSpace(callerKey)
	if callerKey == "" {
		return 0, false, fmt.Errorf("invalid rate limit key")
	}
	return l.allow(ctx, "rate:login:min:"+callerKey, l.loginPerMinute)
}

func (l *Limiter) AllowAssist(ctx context.Context, adminID int64) (int64, bool, error) {
	if adminID <= 0 {
		return 0, false, fmt.Errorf("invalid admin id")
	}
	return l.allow(ctx, "rate:assist:min:"+strconv.FormatInt(adminID, 10), l.assistPerMin)
}

func (l *Limiter) allow(ctx context.Context, key string, limit int) (int64, bool, error) {
	if limit <= 0 {
		return 0, true, nil
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, key, minuteWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(limit) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
