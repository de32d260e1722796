package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemory("test", time.Minute)

	if err := c.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got != "v1" {
		t.Fatalf("got %q want %q", got, "v1")
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	if err := c.Set(ctx, "otp:a@x.com", "123456", 30*time.Millisecond); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, err := c.Get(ctx, "otp:a@x.com"); !IsNotFound(err) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemory_Exists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	ok, err := c.Exists(ctx, "nope")
	if err != nil || ok {
		t.Fatalf("Exists(nope) = %v, %v; want false, nil", ok, err)
	}

	_ = c.Set(ctx, "yes", "1", time.Minute)
	ok, err = c.Exists(ctx, "yes")
	if err != nil || !ok {
		t.Fatalf("Exists(yes) = %v, %v; want true, nil", ok, err)
	}
}
