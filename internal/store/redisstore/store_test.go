package redisstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestAllowAction_DeniesBeyondMax(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, err := s.AllowAction(ctx, 1, "chat_message", 3, time.Minute)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("call %d of 3 must be allowed", i)
		}
	}

	allowed, err := s.AllowAction(ctx, 1, "chat_message", 3, time.Minute)
	if err != nil {
		t.Fatalf("call 4: %v", err)
	}
	if allowed {
		t.Fatalf("call beyond max must be denied")
	}
}

func TestAllowAction_FreshWindowAdmits(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if allowed, err := s.AllowAction(ctx, 1, "chat_message", 1, time.Minute); err != nil || !allowed {
		t.Fatalf("first call must be allowed, got allowed=%v err=%v", allowed, err)
	}
	if allowed, err := s.AllowAction(ctx, 1, "chat_message", 1, time.Minute); err != nil || allowed {
		t.Fatalf("second call must be denied, got allowed=%v err=%v", allowed, err)
	}

	mr.FastForward(2 * time.Minute)

	if allowed, err := s.AllowAction(ctx, 1, "chat_message", 1, time.Minute); err != nil || !allowed {
		t.Fatalf("first call of a fresh window must be allowed, got allowed=%v err=%v", allowed, err)
	}
}

func TestAllowAction_CounterAlwaysCarriesTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AllowAction(ctx, 7, "chat_message", 1, time.Minute); err != nil {
		t.Fatalf("allow: %v", err)
	}

	key := fmt.Sprintf("ratelimit:%s:%d", "chat_message", uint64(7))
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Fatalf("counter key must have a TTL, got %s", ttl)
	}
}

func TestAllowAction_UsersCountedSeparately(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if allowed, err := s.AllowAction(ctx, 1, "chat_message", 1, time.Minute); err != nil || !allowed {
		t.Fatalf("user 1 first call must be allowed, got allowed=%v err=%v", allowed, err)
	}
	if allowed, err := s.AllowAction(ctx, 2, "chat_message", 1, time.Minute); err != nil || !allowed {
		t.Fatalf("user 2 must have their own window, got allowed=%v err=%v", allowed, err)
	}
}
