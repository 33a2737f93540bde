package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int, error)
}

// tokenIssuer mints identity tokens.
type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
}

// Service implements user provisioning, token issuing and role administration.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenIssuer
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, tokens tokenIssuer) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		tokens: tokens,
	}
}
