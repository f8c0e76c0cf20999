package security_test

import (
	"testing"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastCosts = config.PasswordConfig{
	ArgonMemoryKB:    64,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerify(t *testing.T) {
	hasher := security.NewHasher(fastCosts)

	hash, err := hasher.Hash("adopt-dont-shop")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$m=64,t=1,p=1$")

	ok, err := hasher.Verify("adopt-dont-shop", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("adopt-or-shop", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := hasher.Hash("adopt-dont-shop")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts should differ")
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := security.NewHasher(fastCosts).Hash("")
	require.Error(t, err)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	hasher := security.NewHasher(fastCosts)
	for _, encoded := range []string{
		"not-a-hash",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA",
		"$argon2id$v=19$m=64,t=1,p=1$$aGFzaA",
	} {
		_, err := hasher.Verify("pw", encoded)
		assert.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}
}

func TestNeedsRehash(t *testing.T) {
	hasher := security.NewHasher(fastCosts)
	hash, err := hasher.Hash("kibble")
	require.NoError(t, err)
	assert.False(t, hasher.NeedsRehash(hash))

	stronger := fastCosts
	stronger.ArgonTime = 2
	assert.True(t, security.NewHasher(stronger).NeedsRehash(hash))
	assert.True(t, hasher.NeedsRehash("garbage"))
}

func TestNewHasherClampsCosts(t *testing.T) {
	hash, err := security.NewHasher(config.PasswordConfig{}).Hash("kibble")
	require.NoError(t, err)
	assert.Contains(t, hash, "m=8,t=1,p=1$")
}
