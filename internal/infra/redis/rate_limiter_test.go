//go:build !integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRedisClient struct {
	count   int64
	incrErr error
	expires map[string]time.Duration
}

func (f *fakeRedisClient) Ping(ctx context.Context) error { return nil }

func (f *fakeRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.count++
	return f.count, nil
}

func (f *fakeRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if f.expires == nil {
		f.expires = map[string]time.Duration{}
	}
	f.expires[key] = expiration
	return nil
}

func (f *fakeRedisClient) Close() error { return nil }

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to limit then rejects", func(t *testing.T) {
		fake := &fakeRedisClient{}
		limiter := NewRateLimiter(fake)
		key := ChatCommandKey(42, "add")

		for i := 0; i < 3; i++ {
			ok, err := limiter.Allow(ctx, key, 3, time.Minute)
			if err != nil {
				t.Fatalf("Allow #%d: %v", i+1, err)
			}
			if !ok {
				t.Fatalf("hit %d within limit should be allowed", i+1)
			}
		}

		ok, err := limiter.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow over limit: %v", err)
		}
		if ok {
			t.Error("hit past the limit should be rejected")
		}
	})

	t.Run("first hit sets the window expiry", func(t *testing.T) {
		fake := &fakeRedisClient{}
		limiter := NewRateLimiter(fake)
		key := ChatCommandKey(42, "list")

		if _, err := limiter.Allow(ctx, key, 3, time.Minute); err != nil {
			t.Fatal(err)
		}

		if fake.expires[key] != time.Minute {
			t.Errorf("expected expiry on first hit, got %v", fake.expires[key])
		}
	})

	t.Run("redis failure surfaces", func(t *testing.T) {
		fake := &fakeRedisClient{incrErr: errors.New("connection refused")}
		limiter := NewRateLimiter(fake)

		_, err := limiter.Allow(ctx, ChatCommandKey(1, "status"), 3, time.Minute)
		if err == nil {
			t.Fatal("expected error from failing client")
		}
	})
}
