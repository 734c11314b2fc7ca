package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"
)

// Argon2id parameters. These match the records issued by the previous
// implementation, so stored hashes keep verifying byte-for-byte.
const (
	argon2Prefix  = "$argon2id$"
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Legacy scrypt parameters for pre-migration "salt:digestHex" records.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
)

type hashScheme int

const (
	schemeArgon2id hashScheme = iota
	schemeLegacyScrypt
	schemeMalformed
)

// classifyHash decides which verification scheme a stored hash uses. The
// encoding is self-describing; there is no stored scheme version field.
func classifyHash(stored string) hashScheme {
	if strings.HasPrefix(stored, argon2Prefix) {
		return schemeArgon2id
	}
	salt, digest, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || digest == "" {
		return schemeMalformed
	}
	return schemeLegacyScrypt
}

// HashPassword hashes a plaintext password with argon2id and a fresh random
// salt. New and rotated credentials are always written in this encoding.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword checks a plaintext against a stored hash, supporting both
// argon2id and legacy scrypt "salt:digestHex" encodings. Malformed stored
// data verifies false; no error escapes.
func VerifyPassword(password, stored string) bool {
	switch classifyHash(stored) {
	case schemeArgon2id:
		return verifyArgon2id(password, stored)
	case schemeLegacyScrypt:
		return verifyLegacyScrypt(password, stored)
	default:
		return false
	}
}

func verifyArgon2id(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}

func verifyLegacyScrypt(password, stored string) bool {
	salt, digestHex, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || digestHex == "" {
		return false
	}

	expected, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return constantTimeEqual(key, expected)
}

// constantTimeEqual compares two byte slices without leaking where they
// differ. A length mismatch still runs a full-width comparison before
// returning false.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		if len(a) < len(b) {
			a = make([]byte, len(b))
		} else {
			b = make([]byte, len(a))
		}
		subtle.ConstantTimeCompare(a, b)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
