// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package password

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewHasher()

	for _, pw := range []string{"password1", "corr3ct h0rse battery staple", "", "éüñ漢字"} {
		digest, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q) failed: %v", pw, err)
		}

		ok, err := h.Verify(pw, digest)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !ok {
			t.Errorf("Verify(%q, Hash(%q)) = false, want true", pw, pw)
		}
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	ok, err := h.Verify("password2", digest)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher()

	d1, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	d2, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if d1 == d2 {
		t.Error("two hashes of the same password are identical")
	}

	for _, d := range []string{d1, d2} {
		if ok, err := h.Verify("password1", d); err != nil || !ok {
			t.Errorf("Verify failed for %s: ok=%v err=%v", d, ok, err)
		}
	}
}

func TestHashFormat(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=3,p=1$") {
		t.Errorf("unexpected digest prefix: %s", digest)
	}
	if parts := strings.Split(digest, "$"); len(parts) != 6 {
		t.Errorf("expected 6 $-delimited segments, got %d", len(parts))
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher()

	testCases := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"not a digest", "hunter2"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=1$%%%$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=65536"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify("password1", tc.digest)
			if ok {
				t.Error("malformed digest verified")
			}
			if err == nil {
				t.Error("expected an error for malformed digest")
			}
		})
	}
}
