package totp

import (
	"bytes"
	"encoding/base32"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the RFC 6238 SHA-1 seed "12345678901234567890" in Base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestAuthenticator_KnownAnswers(t *testing.T) {
	a := NewAuthenticator("INE5680-App")

	// RFC 6238 appendix B, truncated to six digits
	tests := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
	}

	for _, tt := range tests {
		code, err := a.CurrentCode(rfcSecret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "t=%d", tt.unix)
		assert.True(t, a.Verify(rfcSecret, tt.want, time.Unix(tt.unix, 0)))
	}
}

func TestAuthenticator_NewSecret(t *testing.T) {
	a := NewAuthenticator("INE5680-App")

	s1, err := a.NewSecret("alice")
	require.NoError(t, err)
	s2, err := a.NewSecret("alice")
	require.NoError(t, err)

	assert.NotEqual(t, s1.Base32, s2.Base32)

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s1.Base32)
	require.NoError(t, err)
	assert.Len(t, raw, SecretSize)

	u, err := url.Parse(s1.URI)
	require.NoError(t, err)
	assert.Equal(t, "otpauth", u.Scheme)
	assert.Equal(t, "totp", u.Host)
	assert.Contains(t, u.Path, "alice")
	assert.Equal(t, s1.Base32, u.Query().Get("secret"))
	assert.Equal(t, "INE5680-App", u.Query().Get("issuer"))
}

func TestAuthenticator_URI(t *testing.T) {
	a := NewAuthenticator("INE5680-App")

	u, err := url.Parse(a.URI("bob", rfcSecret))
	require.NoError(t, err)

	assert.Equal(t, "otpauth", u.Scheme)
	assert.Equal(t, "totp", u.Host)
	assert.Equal(t, "/INE5680-App:bob", u.Path)

	q := u.Query()
	assert.Equal(t, rfcSecret, q.Get("secret"))
	assert.Equal(t, "INE5680-App", q.Get("issuer"))
	assert.Equal(t, "SHA1", q.Get("algorithm"))
	assert.Equal(t, "6", q.Get("digits"))
	assert.Equal(t, "30", q.Get("period"))
}

func TestAuthenticator_SkewWindow(t *testing.T) {
	a := NewAuthenticator("INE5680-App")
	now := time.Unix(1111111109, 0)

	codeAt := func(offset time.Duration) string {
		code, err := a.CurrentCode(rfcSecret, now.Add(offset))
		require.NoError(t, err)
		return code
	}

	assert.True(t, a.Verify(rfcSecret, codeAt(0), now), "current step")
	assert.True(t, a.Verify(rfcSecret, codeAt(-30*time.Second), now), "previous step")
	assert.True(t, a.Verify(rfcSecret, codeAt(30*time.Second), now), "next step")

	assert.False(t, a.Verify(rfcSecret, codeAt(-60*time.Second), now), "two steps behind")
	assert.False(t, a.Verify(rfcSecret, codeAt(60*time.Second), now), "two steps ahead")
	assert.False(t, a.Verify(rfcSecret, codeAt(90*time.Second), now), "three steps ahead")
}

func TestAuthenticator_RejectsMalformed(t *testing.T) {
	a := NewAuthenticator("INE5680-App")
	now := time.Unix(1111111109, 0)

	for _, code := range []string{"", "08180", "0818044", "abcdef", "081805"} {
		assert.False(t, a.Verify(rfcSecret, code, now), code)
	}

	assert.False(t, a.Verify("not base32!", "081804", now))
}

func TestAuthenticator_VerifyIsIdempotent(t *testing.T) {
	a := NewAuthenticator("INE5680-App")
	now := time.Unix(1111111109, 0)

	for i := 0; i < 3; i++ {
		assert.True(t, a.Verify(rfcSecret, "081804", now))
	}
}

func TestAuthenticator_QRCode(t *testing.T) {
	a := NewAuthenticator("INE5680-App")

	img, err := a.QRCode("alice", rfcSecret)
	require.NoError(t, err)

	pngSignature := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	assert.True(t, bytes.HasPrefix(img, pngSignature))
}

func TestAuthenticator_Parameters(t *testing.T) {
	a := NewAuthenticator("issuer")

	assert.Equal(t, "issuer", a.Issuer())
	assert.Equal(t, 30, a.Period())
	assert.Equal(t, 6, a.Digits())
	assert.False(t, strings.Contains(a.URI("x", rfcSecret), " "))
}
