package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vitrine/internal/models"
	"vitrine/internal/session"
)

// MockAuthenticator is a mock implementation of session.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*models.Credential, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockAuthenticator) Register(ctx context.Context, email, password, name string) (*models.Credential, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func TestManager_LoginStoresCredential(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	mockAuth := new(MockAuthenticator)
	mgr := session.NewManager(store, mockAuth)

	cred := &models.Credential{
		User:  models.User{ID: "u-1", Email: "customer@demo.com", Name: "Demo", Role: models.RoleCustomer},
		Token: "header.payload.sig",
	}
	mockAuth.On("Login", mock.Anything, "customer@demo.com", "password").Return(cred, nil).Once()

	user, err := mgr.Login(context.Background(), "customer@demo.com", "password")
	assert.NoError(t, err)
	assert.Equal(t, cred.User, user)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, cred.Token, store.Token())
	mockAuth.AssertExpectations(t)
}

func TestManager_LoginPropagatesBackendError(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	mockAuth := new(MockAuthenticator)
	mgr := session.NewManager(store, mockAuth)

	mockAuth.On("Login", mock.Anything, "customer@demo.com", "wrong").
		Return(nil, fmt.Errorf("401: Invalid credentials")).Once()

	_, err = mgr.Login(context.Background(), "customer@demo.com", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401: Invalid credentials")
	assert.False(t, store.IsAuthenticated())
	mockAuth.AssertExpectations(t)
}

func TestManager_RegisterStoresCredential(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	mockAuth := new(MockAuthenticator)
	mgr := session.NewManager(store, mockAuth)

	cred := &models.Credential{
		User:  models.User{ID: "u-2", Email: "new@demo.com", Name: "New User", Role: models.RoleCustomer},
		Token: "header.payload.sig",
	}
	mockAuth.On("Register", mock.Anything, "new@demo.com", "password", "New User").Return(cred, nil).Once()

	user, err := mgr.Register(context.Background(), "new@demo.com", "password", "New User")
	assert.NoError(t, err)
	assert.Equal(t, "u-2", user.ID)
	assert.True(t, store.IsAuthenticated())
	mockAuth.AssertExpectations(t)
}

func TestManager_LogoutClearsSynchronously(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SetCredential("header.payload.sig", models.User{ID: "u-1"}))

	mgr := session.NewManager(store, new(MockAuthenticator))
	mgr.Logout()

	assert.False(t, store.IsAuthenticated())
}
