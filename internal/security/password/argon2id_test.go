package password

import (
	"strings"
	"testing"
)

// Params reducidos para que los tests no quemen CPU.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	phc, err := Hash(testParams, "secret1")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC format: %q", phc)
	}
	if !Verify("secret1", phc) {
		t.Fatal("Verify should accept the original password")
	}
	if Verify("wrongpass", phc) {
		t.Fatal("Verify should reject a wrong password")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	t.Parallel()
	if _, err := Hash(testParams, ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()
	for _, phc := range []string{
		"",
		"not-a-phc",
		"$argon2id$v=19$m=8192,t=1,p=1$xxx", // faltan partes
		"$bcrypt$v=19$m=8192,t=1,p=1$a$b",
		"$argon2id$v=18$m=8192,t=1,p=1$a$b", // versión errónea
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$b",
	} {
		if Verify("whatever", phc) {
			t.Fatalf("Verify accepted malformed hash %q", phc)
		}
	}
}

func TestHash_SaltedUnique(t *testing.T) {
	t.Parallel()
	a, err := Hash(testParams, "same-password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hash(testParams, "same-password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
}
