package password_test

import (
	"errors"
	"strings"
	"testing"

	"skynest/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "valid password", password: "supersecret", expectError: false},
		{name: "empty password", password: "", expectError: true},
		{name: "password with special characters", password: "P@ssw0rd!#$%", expectError: false},
		{name: "over the bcrypt 72 byte limit", password: strings.Repeat("a", 100), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if hash != "" {
					t.Errorf("expected empty hash on error, got %s", hash)
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") && !strings.HasPrefix(hash, "$2y$") {
				t.Errorf("expected bcrypt hash format, got %s", hash)
			}

			if err := password.Verify(tt.password, hash); err != nil {
				t.Errorf("expected round trip verification to succeed, got %v", err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("supersecret")
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		password    string
		hash        string
		expectError error
	}{
		{name: "correct password", password: "supersecret", hash: hash, expectError: nil},
		{name: "wrong password", password: "not-the-password", hash: hash, expectError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectError: password.ErrInvalidPassword},
		{name: "empty hash", password: "supersecret", hash: "", expectError: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectError == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}

				return
			}

			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}

	t.Run("garbage hash", func(t *testing.T) {
		if err := password.Verify("supersecret", "not-a-bcrypt-hash"); err == nil {
			t.Error("expected error for malformed hash, got nil")
		}
	})
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("supersecret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	second, err := password.Hash("supersecret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if first == second {
		t.Error("expected salted hashes to differ")
	}

	if err := password.Verify("supersecret", first); err != nil {
		t.Errorf("first hash failed verification: %v", err)
	}

	if err := password.Verify("supersecret", second); err != nil {
		t.Errorf("second hash failed verification: %v", err)
	}
}
