package jwt

import (
	"testing"
	"time"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer("http://localhost:8080", "access-secret-A", "refresh-secret-B")
	if err != nil {
		t.Fatalf("NewIssuer err: %v", err)
	}
	return iss
}

func TestNewIssuer_SecretValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer("iss", "", "b"); err != ErrMissingSecret {
		t.Fatalf("want ErrMissingSecret, got %v", err)
	}
	if _, err := NewIssuer("iss", "a", ""); err != ErrMissingSecret {
		t.Fatalf("want ErrMissingSecret, got %v", err)
	}
	if _, err := NewIssuer("iss", "same", "same"); err != ErrSameSecret {
		t.Fatalf("want ErrSameSecret, got %v", err)
	}
}

func TestSignParse_RoundTrip(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	for _, kind := range []Kind{KindAccess, KindRefresh} {
		raw, exp, err := iss.Sign("user-1", "a@x.com", kind)
		if err != nil {
			t.Fatalf("Sign(%s) err: %v", kind, err)
		}
		if !exp.After(time.Now()) {
			t.Fatalf("Sign(%s) exp in the past: %v", kind, exp)
		}

		claims, err := iss.Parse(raw, kind)
		if err != nil {
			t.Fatalf("Parse(%s) err: %v", kind, err)
		}
		if claims.Subject != "user-1" || claims.Email != "a@x.com" {
			t.Fatalf("claims mismatch: %+v", claims)
		}
	}
}

func TestParse_RejectsCrossKind(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	access, _, err := iss.Sign("user-1", "a@x.com", KindAccess)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(access, KindRefresh); err != ErrTokenInvalid {
		t.Fatalf("access token parsed as refresh: %v", err)
	}

	refresh, _, err := iss.Sign("user-1", "a@x.com", KindRefresh)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(refresh, KindAccess); err != ErrTokenInvalid {
		t.Fatalf("refresh token parsed as access: %v", err)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	// Más allá de la tolerancia de 30s
	raw, _, err := iss.SignWithTTL("user-1", "a@x.com", KindAccess, -2*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(raw, KindAccess); err != ErrTokenInvalid {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	for _, raw := range []string{"", "garbage", "a.b.c", "eyJ.eyJ."} {
		if _, err := iss.Parse(raw, KindAccess); err != ErrTokenInvalid {
			t.Fatalf("Parse(%q) = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestParse_RejectsForeignSignature(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)
	other, err := NewIssuer("http://localhost:8080", "other-access", "other-refresh")
	if err != nil {
		t.Fatal(err)
	}

	raw, _, err := other.Sign("user-1", "a@x.com", KindAccess)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(raw, KindAccess); err != ErrTokenInvalid {
		t.Fatalf("foreign-signed token accepted: %v", err)
	}
}

func TestDecodeExpiryUnverified(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	raw, exp, err := iss.Sign("user-1", "a@x.com", KindAccess)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := DecodeExpiryUnverified(raw)
	if !ok {
		t.Fatal("expected ok")
	}
	if got.Unix() != exp.Unix() {
		t.Fatalf("exp mismatch: got %v want %v", got, exp)
	}

	if _, ok := DecodeExpiryUnverified("not-a-jwt"); ok {
		t.Fatal("garbage should not decode")
	}
}

func TestSign_UniquePerIssue(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer(t)

	// Dos tokens emitidos en el mismo segundo no pueden colisionar
	a, _, err := iss.Sign("user-1", "a@x.com", KindRefresh)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	b, _, err := iss.Sign("user-1", "a@x.com", KindRefresh)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct tokens for consecutive issues")
	}
}
