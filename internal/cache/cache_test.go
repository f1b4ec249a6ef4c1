package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New("")
	ctx := context.Background()

	c.Set(ctx, "k", map[string]int{"n": 1}, time.Minute)

	var dest map[string]int
	if c.Get(ctx, "k", &dest) {
		t.Error("Get on a disabled cache should report a miss")
	}

	c.Del(ctx, "k")
	if err := c.Close(); err != nil {
		t.Errorf("Close on a disabled cache: %v", err)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	c := New("not-a-redis-url")
	if c.client != nil {
		t.Error("a bad REDIS_URL should yield a disabled cache")
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := SessionHistoryKey("u1", "practice"); got != "sessions:u1:practice" {
		t.Errorf("SessionHistoryKey = %q", got)
	}
	if got := SessionHistoryKey("u1", ""); got != "sessions:u1:all" {
		t.Errorf("SessionHistoryKey with empty kind = %q, want the all bucket", got)
	}
	if got := ProfileKey("u1"); got != "profile:u1" {
		t.Errorf("ProfileKey = %q", got)
	}
	if got := DialectProfileKey("u1"); got != "dialect:u1" {
		t.Errorf("DialectProfileKey = %q", got)
	}
}
