package auth

import (
	"testing"
	"time"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	uid, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected uid 42, got %d", uid)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := SignJWT(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := SignJWT(42, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret!") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch for wrong password")
	}
}
