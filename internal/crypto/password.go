// Package crypto implements password hashing for account credentials using
// argon2id with the parameters recommended by RFC 9106 for memory-constrained
// environments.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	// Argon2Time is the number of iterations (time cost).
	Argon2Time = 1
	// Argon2Memory is the memory cost in KiB (64 MiB).
	Argon2Memory = 64 * 1024
	// Argon2Threads is the parallelism degree.
	Argon2Threads = 4
	// Argon2KeyLen is the derived key length in bytes.
	Argon2KeyLen = 32
	// SaltSize is the salt length in bytes.
	SaltSize = 16
)

// ErrPasswordMismatch is returned by VerifyPassword when the password does
// not match the stored hash.
var ErrPasswordMismatch = fmt.Errorf("password does not match")

// HashPassword derives an argon2id hash with a fresh random salt and encodes
// it in the standard $argon2id$ format, so parameters can evolve without
// breaking stored hashes.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		Argon2Memory, Argon2Time, Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword checks password against an encoded argon2id hash in
// constant time. Returns ErrPasswordMismatch on a wrong password.
func VerifyPassword(password, encodedHash string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	salt, key, params, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(computed, key) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(encodedHash string) ([]byte, []byte, argonParams, error) {
	var params argonParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("malformed hash version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, params, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, fmt.Errorf("malformed hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("malformed salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("malformed key: %w", err)
	}

	return salt, key, params, nil
}
