package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/models"
	"vitrine/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test_secret"))
	require.NoError(t, err)
	return s
}

func TestStore_SetCredentialAndRestore(t *testing.T) {
	dir := t.TempDir()

	store, err := session.NewStore(dir)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())

	user := models.User{ID: "u-1", Email: "customer@demo.com", Name: "Demo Customer", Role: models.RoleCustomer}
	token := signedToken(t, jwt.MapClaims{"user_id": "u-1", "role": "customer"})
	require.NoError(t, store.SetCredential(token, user))

	// A fresh store over the same directory restores the credential without
	// any network round-trip.
	restored, err := session.NewStore(dir)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, token, restored.Token())
	got, ok := restored.User()
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestStore_CorruptUserRecordDiscardsBoth(t *testing.T) {
	dir := t.TempDir()

	store, err := session.NewStore(dir)
	require.NoError(t, err)
	user := models.User{ID: "u-1", Email: "customer@demo.com", Name: "Demo"}
	require.NoError(t, store.SetCredential(signedToken(t, jwt.MapClaims{}), user))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	restored, err := session.NewStore(dir)
	require.NoError(t, err)
	assert.False(t, restored.IsAuthenticated())
	assert.Empty(t, restored.Token())
	_, ok := restored.User()
	assert.False(t, ok)

	// Both files must be gone, not just invalid.
	_, err = os.Stat(filepath.Join(dir, "jwt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "user.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()

	store, err := session.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetCredential(signedToken(t, jwt.MapClaims{}), models.User{ID: "u-1"}))

	store.Clear()
	assert.False(t, store.IsAuthenticated())

	restored, err := session.NewStore(dir)
	require.NoError(t, err)
	assert.False(t, restored.IsAuthenticated())
}

func TestStore_IsAdmin(t *testing.T) {
	const msRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   bool
	}{
		{"role string", jwt.MapClaims{"role": "admin"}, true},
		{"role string capitalized", jwt.MapClaims{"role": "Admin"}, true},
		{"roles native array", jwt.MapClaims{"roles": []interface{}{"customer", "Admin"}}, true},
		{"roles json-encoded array", jwt.MapClaims{"roles": `["Admin"]`}, true},
		{"ms schema claim", jwt.MapClaims{msRoleClaim: "Admin"}, true},
		{"customer role", jwt.MapClaims{"role": "customer"}, false},
		{"no role claims", jwt.MapClaims{"user_id": "u-1"}, false},
		{"roles json array without admin", jwt.MapClaims{"roles": `["customer"]`}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := session.NewStore(t.TempDir())
			require.NoError(t, err)
			require.NoError(t, store.SetCredential(signedToken(t, tc.claims), models.User{ID: "u-1"}))
			assert.Equal(t, tc.want, store.IsAdmin())
		})
	}
}

func TestStore_IsAdminDegradesOnGarbageToken(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)

	// Not a JWT at all. IsAdmin must not panic or error outward.
	require.NoError(t, store.SetCredential("not.a.jwt", models.User{ID: "u-1"}))
	assert.False(t, store.IsAdmin())

	store.Clear()
	assert.False(t, store.IsAdmin())
}
