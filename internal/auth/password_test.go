// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword_Argon2(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	tests := []struct {
		password string
		want     bool
	}{
		{"admin123", true},
		{"wrongpassword", false},
		{"", false},
	}
	for _, tt := range tests {
		valid, err := CheckPassword(tt.password, hash)
		if err != nil {
			t.Fatalf("CheckPassword(%q) error: %v", tt.password, err)
		}
		if valid != tt.want {
			t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, valid, tt.want)
		}
	}
}

func TestCheckPassword_StoredArgon2Hash(t *testing.T) {
	// Hash of "changeme" with older parameters (m=65536,t=1,p=4).
	stored := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := CheckPassword("changeme", stored)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("stored hash rejected correct password")
	}
	if !NeedsRehash(stored) {
		t.Error("old parameters should need a rehash")
	}
}

func TestCheckPassword_Bcrypt(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	if ok, err := CheckPassword("admin123", string(hashed)); err != nil || !ok {
		t.Errorf("bcrypt correct password = %v, %v", ok, err)
	}
	if ok, err := CheckPassword("nope", string(hashed)); err != nil || ok {
		t.Errorf("bcrypt wrong password = %v, %v", ok, err)
	}
	if !NeedsRehash(string(hashed)) {
		t.Error("bcrypt hashes should be rehashed to argon2id")
	}
}

func TestCheckPassword_Malformed(t *testing.T) {
	if _, err := CheckPassword("x", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
	_, err := CheckPassword("x", "$scrypt$v=1$a$b$c")
	if !errors.Is(err, ErrUnsupportedHash) {
		t.Errorf("err = %v, want ErrUnsupportedHash", err)
	}
}

func TestNeedsRehash_Current(t *testing.T) {
	hash, _ := HashPassword("pw")
	if NeedsRehash(hash) {
		t.Error("fresh hash should not need a rehash")
	}
}
