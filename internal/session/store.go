// Package session owns the persisted authentication credential: the bearer
// token and the cached user record. Every API call reads the token from here,
// and any 401 clears it, so the store is the single synchronized owner of
// that state.
package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgrijalva/jwt-go"

	"vitrine/internal/models"
)

// Fixed storage keys. The credential survives restarts under these names in
// the session directory.
const (
	tokenFile = "jwt"
	userFile  = "user.json"
)

// msRoleClaim is the claim URI some identity stacks use instead of a plain
// "role" claim.
const msRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// Store persists a credential across process restarts and guards it with a
// mutex so concurrent API calls and 401 clears do not race.
type Store struct {
	mu    sync.RWMutex
	dir   string
	token string
	user  *models.User
}

// NewStore opens (creating if needed) the session directory and restores any
// persisted credential without a network round-trip. A persisted user record
// that fails to parse discards both the user and the token.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	s := &Store{dir: dir}
	s.restore()
	return s, nil
}

func (s *Store) restore() {
	tokenBytes, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return
	}

	userBytes, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		// Token without a user record is as good as no credential.
		s.removeFiles()
		return
	}
	var user models.User
	if err := json.Unmarshal(userBytes, &user); err != nil {
		log.Printf("session: discarding unreadable user record: %v", err)
		s.removeFiles()
		return
	}

	s.token = token
	s.user = &user
}

// SetCredential stores the token and user in memory and on disk.
func (s *Store) SetCredential(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userBytes, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userBytes, 0o600); err != nil {
		return err
	}

	s.token = token
	s.user = &user
	return nil
}

// Clear drops the credential from memory and disk. It always succeeds;
// filesystem removal failures are logged, not returned, because the in-memory
// state is what callers observe.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	s.removeFiles()
}

func (s *Store) removeFiles() {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("session: failed to remove %s: %v", name, err)
		}
	}
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached user record if one is stored.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a credential is currently stored.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin decodes the stored token's claims, without signature verification
// (the client holds no signing secret), and tests for an administrative role
// marker. The role may arrive as a plain string, a JSON-encoded array, or a
// native array, under "role", "roles", or the MS schema claim URI. Any decode
// failure degrades to false.
func (s *Store) IsAdmin() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return hasAdminRole(claims)
}

func hasAdminRole(claims jwt.MapClaims) bool {
	candidates := []interface{}{claims["role"], claims["roles"], claims[msRoleClaim]}
	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if strings.EqualFold(v, models.RoleAdmin) {
				return true
			}
			// The claim may itself be a JSON-encoded array of roles.
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err == nil && containsAdmin(arr) {
				return true
			}
		case []interface{}:
			for _, item := range v {
				if str, ok := item.(string); ok && strings.EqualFold(str, models.RoleAdmin) {
					return true
				}
			}
		case []string:
			if containsAdmin(v) {
				return true
			}
		}
	}
	return false
}

func containsAdmin(roles []string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, models.RoleAdmin) {
			return true
		}
	}
	return false
}
