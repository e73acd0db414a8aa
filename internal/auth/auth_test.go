package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, "painting-auction", "clients", time.Hour)
	id := Identity{UserID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: RoleBidder}

	token, expires, err := svc.Issue(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = svc.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenService_VerifyRejects(t *testing.T) {
	svc := NewTokenService(testSecret, "painting-auction", "clients", time.Hour)
	id := Identity{UserID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: RoleBidder}
	valid, _, err := svc.Issue(id)
	require.NoError(t, err)

	expired := NewTokenService(testSecret, "painting-auction", "clients", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(id)
	require.NoError(t, err)

	otherIssuer := NewTokenService(testSecret, "someone-else", "clients", time.Hour)
	otherIssuerToken, _, err := otherIssuer.Issue(id)
	require.NoError(t, err)

	otherAudience := NewTokenService(testSecret, "painting-auction", "elsewhere", time.Hour)
	otherAudienceToken, _, err := otherAudience.Issue(id)
	require.NoError(t, err)

	otherKey := NewTokenService("ffffffffffffffffffffffffffffffff", "painting-auction", "clients", time.Hour)
	otherKeyToken, _, err := otherKey.Issue(id)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": id.UserID.String(), "iss": "painting-auction", "aud": "clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid", "iss": "painting-auction", "aud": "clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"bearer only", "Bearer "},
		{"garbage", "abc.def.ghi"},
		{"tampered", valid + "x"},
		{"expired", expiredToken},
		{"wrong issuer", otherIssuerToken},
		{"wrong audience", otherAudienceToken},
		{"wrong key", otherKeyToken},
		{"alg none", noneToken},
		{"bad subject", badSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, h.Compare(hash, "s3cret-pass"))
	assert.False(t, h.Compare(hash, "wrong"))
	assert.False(t, h.Compare("not-a-hash", "s3cret-pass"))
}

func TestIdentity(t *testing.T) {
	owner := uuid.New()

	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: RoleBidder}.IsAdmin())
	assert.True(t, Identity{UserID: owner}.Owns(owner))
	assert.False(t, Identity{UserID: uuid.New()}.Owns(owner))
	assert.False(t, Identity{}.Owns(uuid.Nil))

	for _, r := range []string{RoleUser, RoleAdmin, RoleBidder} {
		assert.True(t, ValidRole(r), r)
	}
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}
