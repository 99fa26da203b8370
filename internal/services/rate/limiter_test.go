package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/ivankudzin/svcmarket/internal/repo/redis"
)

func TestLimiterBlocksLoginAttempts(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 3, 100)

	ctx := context.Background()
	caller := "203.0.113.7"

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := limiter.AllowLogin(ctx, caller)
		if err != nil {
			t.Fatalf("allow login #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowLogin(ctx, caller)
	if err != nil {
		t.Fatalf("allow login #4: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on fourth login in minute window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}

	mr.FastForward(61 * time.Second)

	retryAfter, allowed, err = limiter.AllowLogin(ctx, caller)
	if err != nil {
		t.Fatalf("allow login after window: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("unexpected result after fast forward: allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func TestLimiterBlocksAssistCalls(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 100, 2)

	ctx := context.Background()
	adminID := int64(42)

	for i := 0; i < 2; i++ {
		_, allowed, err := limiter.AllowAssist(ctx, adminID)
		if err != nil {
			t.Fatalf("allow assist #%d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("unexpected block on allow #%d", i+1)
		}
	}

	retryAfter, allowed, err := limiter.AllowAssist(ctx, adminID)
	if err != nil {
		t.Fatalf("allow assist #3: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on third assist call in minute window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}
}

func TestLimiterZeroLimitDisablesCheck(t *testing.T) {
	limiter := NewLimiter(nil, 0, 0)

	if _, allowed, err := limiter.AllowLogin(context.Background(), "203.0.113.7"); err != nil || !allowed {
		t.Fatalf("expected unlimited login: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowAssist(context.Background(), 1); err != nil || !allowed {
		t.Fatalf("expected unlimited assist: allowed=%v err=%v", allowed, err)
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
