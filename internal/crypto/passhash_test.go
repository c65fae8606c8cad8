package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 32
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal", n)
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	pw := []byte("password123")
	h1, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword(2): %v", err)
	}

	if want := saltLen + int(argonKeyLen); len(h1) != want {
		t.Fatalf("len=%d, want=%d", len(h1), want)
	}
	if bytes.Equal(h1, h2) {
		t.Fatalf("fresh salt must change the stored value")
	}
	if bytes.Equal(h1[saltLen:], h2[saltLen:]) {
		t.Fatalf("keys under different salts are equal")
	}
}
