package otp

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/cvision/internal/cache"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(cache.NewMemory("", time.Minute))
}

func TestIssue_SixDigits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	for i := 0; i < 20; i++ {
		code, err := s.Issue(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("Issue err: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q has non-digit chars", code)
			}
		}
	}
}

func TestVerify_AtMostOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	code, err := s.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.Verify(ctx, "a@x.com", code)
	if err != nil || !ok {
		t.Fatalf("first Verify = %v, %v; want true, nil", ok, err)
	}

	// Mismo input, segunda vez: el código fue consumido.
	ok, err = s.Verify(ctx, "a@x.com", code)
	if err != nil || ok {
		t.Fatalf("second Verify = %v, %v; want false, nil", ok, err)
	}
}

func TestVerify_WrongCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	code, err := s.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.Verify(ctx, "a@x.com", "000000")
	if code != "000000" && (ok || err != nil) {
		t.Fatalf("wrong code accepted: %v, %v", ok, err)
	}

	// El código correcto sigue pendiente tras un intento fallido.
	ok, err = s.Verify(ctx, "a@x.com", code)
	if err != nil || !ok {
		t.Fatalf("valid code rejected after failed attempt: %v, %v", ok, err)
	}
}

func TestVerify_UnknownEmail(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	ok, err := s.Verify(context.Background(), "nobody@x.com", "123456")
	if err != nil || ok {
		t.Fatalf("Verify for unknown email = %v, %v; want false, nil", ok, err)
	}
}

func TestIssue_OverwritesPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	first, err := s.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Issue(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		if ok, _ := s.Verify(ctx, "a@x.com", first); ok {
			t.Fatal("old code should be superseded")
		}
	}
	if ok, _ := s.Verify(ctx, "a@x.com", second); !ok {
		t.Fatal("latest code should verify")
	}
}
