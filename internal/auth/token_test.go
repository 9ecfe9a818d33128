package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, subject string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestNewTokenSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))

	assert.Equal(t, "inline", NewTokenSource("inline", path).Token())
	assert.Equal(t, "from-file", NewTokenSource("", path).Token())
	assert.Equal(t, "", NewTokenSource("", filepath.Join(t.TempDir(), "missing")).Token())
	assert.Equal(t, "", NewTokenSource("", "").Token())
}

func TestFileToken_PicksUpChanges(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	src := FileToken{Path: path}
	assert.Empty(t, src.Token())

	require.NoError(t, os.WriteFile(path, []byte("later"), 0o600))
	assert.Equal(t, "later", src.Token())
}

func TestSubject(t *testing.T) {
	t.Parallel()

	sub, err := Subject(signed(t, "player-42"))
	require.NoError(t, err)
	assert.Equal(t, "player-42", sub)

	_, err = Subject(signed(t, ""))
	assert.Error(t, err)

	_, err = Subject("not-a-jwt")
	assert.Error(t, err)

	_, err = Subject("")
	assert.Error(t, err)
}
