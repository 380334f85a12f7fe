package session

import (
	"context"
	"fmt"

	"vitrine/internal/models"
)

// Authenticator is the slice of the API client the session layer needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Credential, error)
	Register(ctx context.Context, email, password, name string) (*models.Credential, error)
}

// Manager ties the credential store to the backend auth endpoints. Login and
// Register propagate backend errors unchanged; Logout is local and always
// succeeds.
type Manager struct {
	store *Store
	auth  Authenticator
}

// NewManager creates a Manager over an existing store.
func NewManager(store *Store, auth Authenticator) *Manager {
	return &Manager{store: store, auth: auth}
}

// Login authenticates against the backend and persists the credential.
func (m *Manager) Login(ctx context.Context, email, password string) (models.User, error) {
	cred, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := m.store.SetCredential(cred.Token, cred.User); err != nil {
		return models.User{}, fmt.Errorf("failed to persist credential: %w", err)
	}
	return cred.User, nil
}

// Register creates an account and persists the returned credential, same
// contract as Login.
func (m *Manager) Register(ctx context.Context, email, password, name string) (models.User, error) {
	cred, err := m.auth.Register(ctx, email, password, name)
	if err != nil {
		return models.User{}, err
	}
	if err := m.store.SetCredential(cred.Token, cred.User); err != nil {
		return models.User{}, fmt.Errorf("failed to persist credential: %w", err)
	}
	return cred.User, nil
}

// Logout clears the stored credential synchronously. No network call.
func (m *Manager) Logout() {
	m.store.Clear()
}
