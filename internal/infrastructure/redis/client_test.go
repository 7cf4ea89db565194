package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects and responds to ping", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := NewClient(ctx, "redis://"+s.Addr())
		if err != nil {
			t.Fatalf("expected client, got error: %v", err)
		}
		defer client.Close()

		if err := client.Set(ctx, "conn-check", "1", 0).Err(); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if got, err := client.Get(ctx, "conn-check").Result(); err != nil || got != "1" {
			t.Fatalf("get returned %q, %v", got, err)
		}
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		if _, err := NewClient(ctx, "://bad-url"); err == nil {
			t.Fatal("expected error for invalid URL")
		}
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		addr := s.Addr()
		s.Close()

		if _, err := NewClient(ctx, "redis://"+addr); err == nil {
			t.Fatal("expected ping error when server is down")
		}
	})
}
