package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordVerifier_HashAndVerify(t *testing.T) {
	v := NewPasswordVerifier(1000)

	encoded, err := v.Hash("Secret123")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 5)
	assert.Equal(t, "pbkdf2", parts[0])
	assert.Equal(t, "sha256", parts[1])
	assert.Equal(t, "1000", parts[2])
	assert.NotContains(t, encoded, "Secret123")

	assert.True(t, v.Verify(encoded, "Secret123"))
	assert.False(t, v.Verify(encoded, "secret123"))
	assert.False(t, v.Verify(encoded, ""))
}

func TestPasswordVerifier_FreshSaltPerHash(t *testing.T) {
	v := NewPasswordVerifier(1000)

	a, err := v.Hash("same")
	require.NoError(t, err)
	b, err := v.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, v.Verify(a, "same"))
	assert.True(t, v.Verify(b, "same"))
}

func TestPasswordVerifier_UsesEmbeddedIterations(t *testing.T) {
	encoded, err := NewPasswordVerifier(1500).Hash("pw")
	require.NoError(t, err)

	// a verifier configured differently still honours the stored count
	assert.True(t, NewPasswordVerifier(1000).Verify(encoded, "pw"))
}

func TestPasswordVerifier_MalformedNeverMatches(t *testing.T) {
	v := NewPasswordVerifier(1000)

	for _, encoded := range []string{
		"",
		"pbkdf2$sha256$1000$c2FsdA==",
		"bcrypt$sha256$1000$c2FsdA==$ZGs=",
		"pbkdf2$sha1$1000$c2FsdA==$ZGs=",
		"pbkdf2$sha256$abc$c2FsdA==$ZGs=",
		"pbkdf2$sha256$-1$c2FsdA==$ZGs=",
		"pbkdf2$sha256$1000$!!!$ZGs=",
		"pbkdf2$sha256$1000$c2FsdA==$!!!",
		"pbkdf2$sha256$1000$$ZGs=",
	} {
		assert.False(t, v.Verify(encoded, "pw"), encoded)
	}
}

func TestNewPasswordVerifier_DefaultIterations(t *testing.T) {
	v := NewPasswordVerifier(0).(*passwordVerifier)
	assert.Equal(t, DefaultPBKDF2Iterations, v.iterations)
}

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}
