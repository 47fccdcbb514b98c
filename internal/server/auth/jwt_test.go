package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scanfact/scanfact/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	id := Identity{
		ID:          "u-1",
		Email:       "alice@corp.example",
		DisplayName: "Alice",
		Role:        common.RoleCompany,
	}

	token, err := GenerateToken(id, testSecret, time.Minute)
	require.NoError(t, err)

	got, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, &id, got)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(Identity{ID: "u-1", Role: common.RoleAdmin}, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(Identity{ID: "u-1", Role: common.RoleAdmin}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	token, err := GenerateToken(Identity{ID: "u-1", Role: "SUPERUSER"}, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
