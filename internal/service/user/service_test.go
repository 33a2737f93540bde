package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type userRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRoleFunc  func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]domain.User, error)
	CountByRoleFunc func(ctx context.Context) (map[domain.UserRole]int, error)

	mu          sync.Mutex
	createCalls []domain.User
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, *u)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	c := *u
	c.ID = uuid.New()
	return &c, nil
}

func (m *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return &domain.User{ID: id, Role: role}, nil
}

func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []domain.User{}, nil
}

func (m *userRepoMock) CountByRole(ctx context.Context) (map[domain.UserRole]int, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx)
	}
	return map[domain.UserRole]int{}, nil
}

type tokenIssuerMock struct {
	gotUserID uuid.UUID
	gotRole   string
	err       error
}

func (m *tokenIssuerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	m.gotUserID, m.gotRole = userID, role
	if m.err != nil {
		return "", m.err
	}
	return "token-" + role, nil
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestService(users userRepo, tokens tokenIssuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(logger, users, tokens)
}

func ctxWithRole(userID uuid.UUID, role domain.UserRole) context.Context {
	return ctxutil.WithUserRole(ctxutil.WithUserID(context.Background(), userID), role.String())
}

// ---------------------------------------------------------------------------
// Provision tests
// ---------------------------------------------------------------------------

func TestService_Provision_CreatesWithDefaultRole(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{}
	svc := newTestService(users, nil)

	u, created, err := svc.Provision(context.Background(), ProvisionInput{Email: "  Siobhan@Example.ie ", Name: "Siobhán"})
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, "siobhan@example.ie", u.Email)
	assert.Equal(t, domain.UserRoleContributor, u.Role)
	require.Len(t, users.createCalls, 1)
}

func TestService_Provision_ReturnsExisting(t *testing.T) {
	t.Parallel()

	existing := &domain.User{ID: uuid.New(), Email: "eoin@example.ie", Role: domain.UserRoleEditor}
	users := &userRepoMock{
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) { return existing, nil },
	}
	svc := newTestService(users, nil)

	u, created, err := svc.Provision(context.Background(), ProvisionInput{Email: "eoin@example.ie", Role: domain.UserRoleAdmin})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, existing, u)
	assert.Equal(t, domain.UserRoleEditor, u.Role, "provision must not change an existing role")
	assert.Empty(t, users.createCalls)
}

func TestService_Provision_CreateRace(t *testing.T) {
	t.Parallel()

	winner := &domain.User{ID: uuid.New(), Email: "niamh@example.ie"}
	lookups := 0
	users := &userRepoMock{
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) {
			lookups++
			if lookups == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		CreateFunc: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(users, nil)

	u, created, err := svc.Provision(context.Background(), ProvisionInput{Email: "niamh@example.ie"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, u.ID)
}

func TestService_Provision_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, nil)

	for _, in := range []ProvisionInput{
		{Email: ""},
		{Email: "not-an-email"},
		{Email: "a@b.ie", Role: "OWNER"},
	} {
		_, _, err := svc.Provision(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %+v", in)
	}
}

// ---------------------------------------------------------------------------
// IssueToken tests
// ---------------------------------------------------------------------------

func TestService_IssueToken_UsesStoredRole(t *testing.T) {
	t.Parallel()

	u := &domain.User{ID: uuid.New(), Role: domain.UserRoleEditor}
	users := &userRepoMock{
		GetByIDFunc:    func(context.Context, uuid.UUID) (*domain.User, error) { return u, nil },
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) { return u, nil },
	}
	tokens := &tokenIssuerMock{}
	svc := newTestService(users, tokens)

	token, err := svc.IssueTokenByEmail(context.Background(), "x@example.ie")
	require.NoError(t, err)
	assert.Equal(t, "token-EDITOR", token)
	assert.Equal(t, u.ID, tokens.gotUserID)
}

func TestService_IssueToken_Errors(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, &tokenIssuerMock{})
	_, err := svc.IssueToken(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u := &domain.User{ID: uuid.New(), Role: domain.UserRoleContributor}
	signErr := errors.New("sign failed")
	svc = newTestService(&userRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.User, error) { return u, nil },
	}, &tokenIssuerMock{err: signErr})
	_, err = svc.IssueToken(context.Background(), u.ID)
	assert.ErrorIs(t, err, signErr)
}

// ---------------------------------------------------------------------------
// SetUserRole tests
// ---------------------------------------------------------------------------

func TestService_SetUserRole_Success(t *testing.T) {
	t.Parallel()

	target := uuid.New()
	svc := newTestService(&userRepoMock{}, nil)

	u, err := svc.SetUserRole(ctxWithRole(uuid.New(), domain.UserRoleAdmin), target, domain.UserRoleEditor)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleEditor, u.Role)
	assert.Equal(t, target, u.ID)
}

func TestService_SetUserRole_Guards(t *testing.T) {
	t.Parallel()

	admin := uuid.New()
	svc := newTestService(&userRepoMock{}, nil)

	_, err := svc.SetUserRole(context.Background(), uuid.New(), domain.UserRoleEditor)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.SetUserRole(ctxWithRole(uuid.New(), domain.UserRoleEditor), uuid.New(), domain.UserRoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.SetUserRole(ctxWithRole(admin, domain.UserRoleAdmin), uuid.New(), "OWNER")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.SetUserRole(ctxWithRole(admin, domain.UserRoleAdmin), admin, domain.UserRoleContributor)
	assert.ErrorIs(t, err, domain.ErrValidation, "admins cannot demote themselves")

	_, err = svc.SetUserRole(ctxWithRole(admin, domain.UserRoleAdmin), admin, domain.UserRoleAdmin)
	assert.NoError(t, err)
}

func TestService_SetRoleByEmail(t *testing.T) {
	t.Parallel()

	u := &domain.User{ID: uuid.New()}
	var updated uuid.UUID
	svc := newTestService(&userRepoMock{
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) { return u, nil },
		UpdateRoleFunc: func(_ context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
			updated = id
			return &domain.User{ID: id, Role: role}, nil
		},
	}, nil)

	got, err := svc.SetRoleByEmail(context.Background(), "u@example.ie", domain.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated)
	assert.Equal(t, domain.UserRoleAdmin, got.Role)
}

// ---------------------------------------------------------------------------
// ListUsers tests
// ---------------------------------------------------------------------------

func TestService_ListUsers(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	users := &userRepoMock{
		ListFunc: func(_ context.Context, limit, offset int) ([]domain.User, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.User{{ID: uuid.New()}}, nil
		},
		CountByRoleFunc: func(context.Context) (map[domain.UserRole]int, error) {
			return map[domain.UserRole]int{domain.UserRoleContributor: 7, domain.UserRoleAdmin: 1}, nil
		},
	}
	svc := newTestService(users, nil)

	list, total, err := svc.ListUsers(ctxWithRole(uuid.New(), domain.UserRoleAdmin), 0, -5)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 8, total)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, _, err = svc.ListUsers(ctxWithRole(uuid.New(), domain.UserRoleEditor), 10, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
