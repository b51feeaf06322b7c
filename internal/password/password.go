// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

// Package password derives and verifies argon2id digests in PHC string
// format. The digest embeds algorithm, parameters and salt, so no
// external storage is needed to verify.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, OWASP recommendation.
const (
	defaultTime    = 3
	defaultMemory  = 64 * 1024 // KiB
	defaultThreads = 1
	defaultKeyLen  = 32
	defaultSaltLen = 16
)

type params struct {
	time    uint32
	memory  uint32
	threads uint8
}

type Hasher struct {
	params params
}

func NewHasher() *Hasher {
	return &Hasher{
		params: params{
			time:    defaultTime,
			memory:  defaultMemory,
			threads: defaultThreads,
		},
	}
}

// Hash derives a digest with a fresh random salt. Two calls with the
// same password never return the same string.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, defaultSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.time, h.params.memory, h.params.threads, defaultKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory, h.params.time, h.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the digest under the parameters embedded in encoded
// and compares in constant time. A malformed or unsupported digest
// verifies as false with an error, never as true.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	salt, key, p, err := decode(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// decode parses the $argon2id$v=..$m=..,t=..,p=..$salt$key PHC layout.
func decode(encoded string) (salt, key []byte, p params, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, p, fmt.Errorf("invalid digest format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, p, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, p, fmt.Errorf("failed to parse version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, p, fmt.Errorf("unsupported argon2 version: %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, nil, p, fmt.Errorf("failed to parse parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, p, fmt.Errorf("failed to decode salt: %w", err)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, p, fmt.Errorf("failed to decode key: %w", err)
	}

	return salt, key, p, nil
}
