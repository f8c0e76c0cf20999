package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned for stored hashes that are not argon2id strings.
var ErrInvalidHash = errors.New("invalid argon2id hash")

const hashPrefix = "$argon2id$v=19$"

var b64 = base64.RawStdEncoding

// argonParams are the cost settings encoded into every hash.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// Hasher hashes account passwords with argon2id using the configured costs.
type Hasher struct {
	params argonParams
}

// NewHasher clamps the configured costs into a safe range.
func NewHasher(cfg config.PasswordConfig) Hasher {
	return Hasher{params: argonParams{
		memory:  uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		time:    uint32(clamp(cfg.ArgonTime, 1, 10)),
		threads: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		saltLen: uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		keyLen:  uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}}
}

// Hash returns the encoded form "$argon2id$v=19$m=..,t=..,p=..$salt$key".
func (h Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	salt := make([]byte, h.params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := derive(password, salt, h.params)
	return fmt.Sprintf("%sm=%d,t=%d,p=%d$%s$%s",
		hashPrefix, h.params.memory, h.params.time, h.params.threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether password matches the encoded hash.
func (h Hasher) Verify(password, encoded string) (bool, error) {
	params, salt, key, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, derive(password, salt, params)) == 1, nil
}

// NeedsRehash is true when the stored hash was produced with different costs
// than the hasher currently uses. Unparseable hashes always need a rehash.
func (h Hasher) NeedsRehash(encoded string) bool {
	params, _, _, err := parseHash(encoded)
	if err != nil {
		return true
	}
	return params != h.params
}

func derive(password string, salt []byte, p argonParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

func parseHash(encoded string) (argonParams, []byte, []byte, error) {
	rest, ok := strings.CutPrefix(encoded, hashPrefix)
	if !ok {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	fields := strings.Split(rest, "$")
	if len(fields) != 3 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}

	var params argonParams
	if _, err := fmt.Sscanf(fields[0], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	salt, err := b64.DecodeString(fields[1])
	if err != nil || len(salt) == 0 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(fields[2])
	if err != nil || len(key) == 0 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	params.saltLen = uint32(len(salt))
	params.keyLen = uint32(len(key))
	return params, salt, key, nil
}

func clamp(value, lo, hi int) int {
	return min(max(value, lo), hi)
}
