package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/pkg/auth"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if _, exists := f.users[u.Username]; exists {
		return &apperrors.AppError{
			Code:    apperrors.CodeStorage,
			Reason:  apperrors.ReasonDuplicateUsername,
			Message: "username already exists",
		}
	}
	u.ID = uuid.New()
	stored := *u
	f.users[u.Username] = &stored
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user", nil)
}

type memoryRevoker struct {
	revoked map[string]bool
}

func (m *memoryRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	m.revoked[token] = true
	return nil
}

func (m *memoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return m.revoked[token], nil
}

func newTestService(revoker TokenRevoker) (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)
	return NewService(repo, jwtSvc, hasher, revoker, nil), repo
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	tokens, err := svc.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.Equal(t, "alice", tokens.Principal.Username)

	claims, err := svc.ValidateToken(context.Background(), tokens.Token)
	require.NoError(t, err)
	assert.Equal(t, tokens.Principal.ID, claims.PrincipalID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))

	_, err = svc.Authenticate(context.Background(), "nobody", "pw1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	// Second provisioning fails distinctly, first account unaffected.
	_, err = svc.CreateUser(context.Background(), "alice", "pw2")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonDuplicateUsername, apperrors.ReasonOf(err))

	_, err = svc.Authenticate(context.Background(), "alice", "pw1")
	assert.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), "alice", "pw2")
	assert.Error(t, err)
}

func TestLoadPrincipal(t *testing.T) {
	svc, _ := newTestService(nil)

	user, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	principal, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)

	_, err = svc.LoadPrincipal(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	revoker := &memoryRevoker{revoked: make(map[string]bool)}
	svc, _ := newTestService(revoker)

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	tokens, err := svc.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), tokens.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.Token))

	_, err = svc.ValidateToken(context.Background(), tokens.Token)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}
